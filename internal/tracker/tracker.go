// Package tracker owns the in-memory application state and every operation
// that mutates it. All methods are safe for concurrent use.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/enjaz/internal/model"
	"github.com/sandeepkv93/enjaz/internal/planner"
)

var (
	ErrGoalNotFound       = errors.New("tracker: goal not found")
	ErrFixedGoal          = errors.New("tracker: fixed daily tasks cannot be deleted")
	ErrEmptyTitle         = errors.New("tracker: title is required")
	ErrRewardNotFound     = errors.New("tracker: reward not found")
	ErrBuiltinReward      = errors.New("tracker: built-in rewards cannot be deleted")
	ErrInsufficientPoints = errors.New("tracker: insufficient points")
	ErrInvalidAmount      = errors.New("tracker: amount must be positive")
	ErrExpenseNotFound    = errors.New("tracker: expense not found")
	ErrNoExpenses         = errors.New("tracker: no expenses recorded")
)

// Saver persists a full state snapshot.
type Saver interface {
	Save(ctx context.Context, st model.State) error
}

type Options struct {
	// CarryOverUnspent moves the unspent part of a day's limit into the
	// rollover balance at reconciliation.
	CarryOverUnspent bool
}

type Tracker struct {
	mu        sync.Mutex
	state     model.State
	store     Saver
	assistant planner.Assistant
	log       *slog.Logger
	opts      Options

	now     func() time.Time
	newID   func() string
	saveErr error
}

func New(st model.State, store Saver, assistant planner.Assistant, log *slog.Logger, opts Options) *Tracker {
	if assistant == nil {
		assistant = planner.Unavailable{}
	}
	if log == nil {
		log = slog.Default()
	}
	st = st.Clone()
	if st.Stats.Categories == nil {
		st.Stats.Categories = make(map[model.Category]model.CategoryStats, len(model.Categories()))
	}
	return &Tracker{
		state:     st,
		store:     store,
		assistant: assistant,
		log:       log,
		opts:      opts,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Snapshot returns a deep copy safe to read without the lock.
func (t *Tracker) Snapshot() model.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Rewards lists built-in rewards followed by custom ones.
func (t *Tracker) Rewards() []model.Reward {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append(model.BuiltinRewards(), t.state.CustomRewards...)
}

// SaveErr reports the outcome of the most recent save.
func (t *Tracker) SaveErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveErr
}

// AddGoal prepends a manual goal in the general category. The category can be
// refined later through ApplyCategory.
func (t *Tracker) AddGoal(title string, tf model.TimeFrame) (model.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Goal{}, ErrEmptyTitle
	}
	if !tf.IsValid() {
		return model.Goal{}, fmt.Errorf("%w: %q", model.ErrInvalidTimeFrame, tf)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	g := model.Goal{
		ID:        t.newID(),
		Title:     title,
		TimeFrame: tf,
		Category:  model.CategoryGeneral,
		Points:    model.PointsFor(tf),
		DueDate:   t.now().UTC(),
	}
	t.state.Goals = append([]model.Goal{g}, t.state.Goals...)
	t.persistLocked(context.Background())
	return g, nil
}

// CategorizeGoal asks the assistant for a category, defaulting to general.
func (t *Tracker) CategorizeGoal(ctx context.Context, title string) model.Category {
	cat, err := t.assistant.Categorize(ctx, title)
	if err != nil {
		t.log.Info("categorize failed, keeping general", slog.String("title", title), slog.String("error", err.Error()))
		return model.CategoryGeneral
	}
	return model.CoerceCategory(string(cat))
}

// ApplyCategory sets a goal's category. A goal removed in the meantime yields
// ErrGoalNotFound and nothing changes.
func (t *Tracker) ApplyCategory(id string, cat model.Category) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.goalIndexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrGoalNotFound, id)
	}
	cat = model.CoerceCategory(string(cat))
	if t.state.Goals[idx].Category == cat {
		return nil
	}
	if t.state.Goals[idx].Completed {
		// Move the earned experience along with the goal, but never more
		// than the old category still holds.
		old := t.state.Goals[idx].Category
		before := t.state.Stats.Category(old)
		after := LoseExp(before, t.state.Goals[idx].Points)
		t.state.Stats.Categories[old] = after
		t.state.Stats.Categories[cat] = GainExp(t.state.Stats.Category(cat), expTotal(before)-expTotal(after))
	}
	t.state.Goals[idx].Category = cat
	t.persistLocked(context.Background())
	return nil
}

// DeleteGoal removes a goal. With cascade it also removes every descendant;
// without it, direct children are re-parented to the goal's parent. Returns
// the number of goals removed.
func (t *Tracker) DeleteGoal(id string, cascade bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.goalIndexLocked(id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrGoalNotFound, id)
	}
	if model.IsFixedDailyTask(id) {
		return 0, ErrFixedGoal
	}

	doomed := map[string]bool{id: true}
	if cascade {
		children := make(map[string][]string, len(t.state.Goals))
		for _, g := range t.state.Goals {
			if g.ParentID != "" {
				children[g.ParentID] = append(children[g.ParentID], g.ID)
			}
		}
		queue := []string{id}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, child := range children[cur] {
				if !doomed[child] && !model.IsFixedDailyTask(child) {
					doomed[child] = true
					queue = append(queue, child)
				}
			}
		}
	}

	parent := t.state.Goals[idx].ParentID
	kept := t.state.Goals[:0:0]
	for _, g := range t.state.Goals {
		if doomed[g.ID] {
			continue
		}
		if g.ParentID == id {
			g.ParentID = parent
		}
		kept = append(kept, g)
	}
	removed := len(t.state.Goals) - len(kept)
	t.state.Goals = kept
	t.persistLocked(context.Background())
	return removed, nil
}

// InsertPlan prepends a plan's goals, skipping ids already present.
func (t *Tracker) InsertPlan(plan planner.Plan) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	present := make(map[string]bool, len(t.state.Goals))
	for _, g := range t.state.Goals {
		present[g.ID] = true
	}
	fresh := make([]model.Goal, 0, len(plan.Goals))
	for _, g := range plan.Goals {
		if present[g.ID] {
			continue
		}
		present[g.ID] = true
		g.Category = model.CoerceCategory(string(g.Category))
		fresh = append(fresh, g)
	}
	if len(fresh) == 0 {
		return 0
	}
	t.state.Goals = append(fresh, t.state.Goals...)
	t.persistLocked(context.Background())
	return len(fresh)
}

// AddCustomReward prices a new reward through the assistant. Pricing failures
// fall back to model.DefaultRewardCost.
func (t *Tracker) AddCustomReward(ctx context.Context, title string) (model.Reward, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Reward{}, ErrEmptyTitle
	}
	cost, err := t.assistant.PriceReward(ctx, title)
	if err != nil {
		t.log.Info("reward pricing failed, using default", slog.String("title", title), slog.String("error", err.Error()))
		cost = model.DefaultRewardCost
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	r := model.Reward{
		ID:    t.newID(),
		Title: title,
		Cost:  model.ClampRewardCost(cost),
		Icon:  model.CustomRewardIcon,
	}
	t.state.CustomRewards = append([]model.Reward{r}, t.state.CustomRewards...)
	t.persistLocked(ctx)
	return r, nil
}

func (t *Tracker) DeleteReward(id string) error {
	if model.IsBuiltinReward(id) {
		return ErrBuiltinReward
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.state.CustomRewards {
		if r.ID == id {
			t.state.CustomRewards = append(t.state.CustomRewards[:i:i], t.state.CustomRewards[i+1:]...)
			t.persistLocked(context.Background())
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrRewardNotFound, id)
}

// AdviseOnBudget never mutates state; assistant failures are returned as is.
func (t *Tracker) AdviseOnBudget(ctx context.Context) (string, error) {
	t.mu.Lock()
	expenses := append([]model.Expense(nil), t.state.Budget.Expenses...)
	limit := t.state.Budget.DailyLimit
	t.mu.Unlock()

	if len(expenses) == 0 {
		return "", ErrNoExpenses
	}
	advice, err := t.assistant.AdviseOnBudget(ctx, expenses, limit)
	if err != nil {
		return "", fmt.Errorf("budget advice: %w", err)
	}
	return advice, nil
}

func (t *Tracker) goalIndexLocked(id string) int {
	for i := range t.state.Goals {
		if t.state.Goals[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked saves the current state. Failures are logged and kept for
// SaveErr; in-memory state stays authoritative.
func (t *Tracker) persistLocked(ctx context.Context) {
	if t.store == nil {
		return
	}
	err := t.store.Save(ctx, t.state)
	if err != nil {
		t.log.Error("save state", slog.String("error", err.Error()))
	}
	t.saveErr = err
}
