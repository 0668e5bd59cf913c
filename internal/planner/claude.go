package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

const maxAdviceExpenses = 10

// messageClient is the subset of the Anthropic messages service used here.
type messageClient interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type ClaudeConfig struct {
	APIKey    string
	Models    []string
	MaxTokens int64
	Timeout   time.Duration
}

// ClaudeAssistant calls Claude, falling through the configured models in
// order until one produces a usable answer.
type ClaudeAssistant struct {
	messages  messageClient
	models    []string
	maxTokens int64
	timeout   time.Duration
	log       *slog.Logger
}

func NewClaudeAssistant(cfg ClaudeConfig, log *slog.Logger) (*ClaudeAssistant, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrUnavailable
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return newClaudeAssistant(&client.Messages, cfg, log)
}

func newClaudeAssistant(messages messageClient, cfg ClaudeConfig, log *slog.Logger) (*ClaudeAssistant, error) {
	models := make([]string, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, errors.New("planner: at least one model is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	if log == nil {
		log = slog.Default()
	}
	return &ClaudeAssistant{
		messages:  messages,
		models:    models,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		log:       log,
	}, nil
}

func (c *ClaudeAssistant) BreakdownGoal(ctx context.Context, title string) (Breakdown, error) {
	var out Breakdown
	err := c.complete(ctx, "breakdown", breakdownPrompt(title), func(text string) error {
		b, err := DecodeBreakdown(text)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	return out, err
}

func (c *ClaudeAssistant) SuggestDailyTasks(ctx context.Context, yearlyTitles []string) ([]Suggestion, error) {
	var out []Suggestion
	err := c.complete(ctx, "suggest", suggestPrompt(yearlyTitles), func(text string) error {
		s, err := DecodeSuggestions(text)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	return out, err
}

func (c *ClaudeAssistant) PriceReward(ctx context.Context, title string) (int, error) {
	var out int
	err := c.complete(ctx, "price", pricePrompt(title), func(text string) error {
		n, err := DecodePrice(text)
		if err != nil {
			return err
		}
		out = n
		return nil
	})
	return out, err
}

func (c *ClaudeAssistant) AdviseOnBudget(ctx context.Context, expenses []model.Expense, dailyLimit decimal.Decimal) (string, error) {
	var out string
	err := c.complete(ctx, "advise", advicePrompt(expenses, dailyLimit), func(text string) error {
		text = strings.TrimSpace(text)
		if text == "" {
			return ErrEmptyResponse
		}
		out = text
		return nil
	})
	return out, err
}

func (c *ClaudeAssistant) Categorize(ctx context.Context, title string) (model.Category, error) {
	out := model.CategoryGeneral
	err := c.complete(ctx, "categorize", categorizePrompt(title), func(text string) error {
		cat, err := DecodeCategory(text)
		if err != nil {
			return err
		}
		out = cat
		return nil
	})
	return out, err
}

// complete sends prompt to each model in turn. A transport failure or a
// response rejected by accept moves on to the next model.
func (c *ClaudeAssistant) complete(ctx context.Context, op, prompt string, accept func(string) error) error {
	var errs []error
	for _, m := range c.models {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := c.send(ctx, m, prompt)
		if err == nil {
			err = accept(text)
		}
		if err == nil {
			return nil
		}
		c.log.Warn("assistant call failed", slog.String("op", op), slog.String("model", m), slog.String("error", err.Error()))
		errs = append(errs, fmt.Errorf("%s: %w", m, err))
	}
	return fmt.Errorf("%s: %w", op, errors.Join(errs...))
}

func (c *ClaudeAssistant) send(ctx context.Context, m, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	msg, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
