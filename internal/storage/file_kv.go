package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// errCorruptDocument marks a state file that exists but does not decode.
var errCorruptDocument = errors.New("storage: corrupt document")

type fileDocument struct {
	Namespace string                     `json:"namespace"`
	Entries   map[string]json.RawMessage `json:"entries"`
}

// FileKV keeps a namespace in a single JSON document, rewritten through a
// temp file and rename on every Put.
type FileKV struct {
	mu        sync.Mutex
	path      string
	namespace string
}

func NewFileKV(path, namespace string) (*FileKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: file path is required")
	}
	if namespace == "" {
		return nil, errors.New("storage: namespace is required")
	}
	return &FileKV{path: path, namespace: namespace}, nil
}

func (f *FileKV) Close() error { return nil }

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	raw, ok := doc.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(raw), nil
}

func (f *FileKV) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("storage: value for %q is not valid JSON", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.readForWrite()
	if err != nil {
		return err
	}
	doc.Entries[key] = json.RawMessage(append([]byte(nil), value...))
	return f.write(doc)
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := doc.Entries[key]; !ok {
		return ErrNotFound
	}
	delete(doc.Entries, key)
	return f.write(doc)
}

func (f *FileKV) read() (fileDocument, error) {
	doc := fileDocument{Namespace: f.namespace, Entries: make(map[string]json.RawMessage)}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return doc, nil
	}
	var all map[string]fileDocument
	if err := json.Unmarshal(raw, &all); err != nil {
		return doc, fmt.Errorf("%w: decode %s: %v", errCorruptDocument, f.path, err)
	}
	if existing, ok := all[f.namespace]; ok && existing.Entries != nil {
		doc.Entries = existing.Entries
	}
	return doc, nil
}

// readForWrite moves an undecodable file to path+".corrupt" and starts the
// namespace over, so one bad file cannot block every later save.
func (f *FileKV) readForWrite() (fileDocument, error) {
	doc, err := f.read()
	if !errors.Is(err, errCorruptDocument) {
		return doc, err
	}
	aside := f.path + ".corrupt"
	if rerr := os.Rename(f.path, aside); rerr != nil {
		return doc, fmt.Errorf("storage: move corrupt %s aside: %w", f.path, rerr)
	}
	slog.Warn("state file was corrupt, starting over", "path", f.path, "moved_to", aside, "error", err)
	return fileDocument{Namespace: f.namespace, Entries: make(map[string]json.RawMessage)}, nil
}

// write keeps other namespaces in the same file intact.
func (f *FileKV) write(doc fileDocument) error {
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	all := make(map[string]fileDocument)
	if raw, err := os.ReadFile(f.path); err == nil && strings.TrimSpace(string(raw)) != "" {
		if err := json.Unmarshal(raw, &all); err != nil {
			all = make(map[string]fileDocument)
		}
	}
	all[f.namespace] = doc
	payload, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
