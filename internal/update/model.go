package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/enjaz/internal/model"
	"github.com/sandeepkv93/enjaz/internal/planner"
	"github.com/sandeepkv93/enjaz/internal/scheduler"
	"github.com/sandeepkv93/enjaz/internal/tracker"
)

type Tab string

const (
	TabGoals  Tab = "Goals"
	TabShop   Tab = "Shop"
	TabBudget Tab = "Budget"
	TabStats  Tab = "Stats"
)

func Tabs() []Tab {
	return []Tab{TabGoals, TabShop, TabBudget, TabStats}
}

// request names an assistant call that may be in flight.
type request string

const (
	requestPlan       request = "plan"
	requestReward     request = "reward pricing"
	requestAdvice     request = "advice"
	requestCategorize request = "categorize"
	requestSuggest    request = "daily suggestions"
)

var requestOrder = []request{requestPlan, requestReward, requestAdvice, requestCategorize, requestSuggest}

const statusEventKey = "status"

const defaultStatusTTL = 6 * time.Second

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Goals   string
	Shop    string
	Budget  string
	Stats   string
	Palette string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Deps are the long-lived collaborators the model drives. Tracker and Planner
// are required; a nil Scheduler disables day rollover and status expiry.
type Deps struct {
	Tracker   *tracker.Tracker
	Planner   *planner.Planner
	Scheduler *scheduler.Engine
	Log       *slog.Logger
	Context   context.Context
	StatusTTL time.Duration
}

type Model struct {
	CurrentTab    Tab
	Cursor        map[Tab]int
	Palette       CommandPaletteState
	HelpVisible   bool
	Status        StatusBar
	Notifications []Notification
	Advice        string
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	pending   map[request]int
	tracker   *tracker.Tracker
	planner   *planner.Planner
	scheduler *scheduler.Engine
	log       *slog.Logger
	ctx       context.Context
	statusTTL time.Duration
	now       func() time.Time

	commandInput textinput.Model
	spinner      spinner.Model
	helpModel    help.Model
}

type SwitchTabMsg struct {
	Tab Tab
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// SchedulerEventMsg carries a fired scheduler event into the update loop.
type SchedulerEventMsg struct {
	Event scheduler.Event
}

// ReconcileMsg asks the model to reconcile against the current day, as done
// once at startup.
type ReconcileMsg struct{}

type planResultMsg struct {
	plan planner.Plan
	err  error
}

type rewardAddedMsg struct {
	reward model.Reward
	err    error
}

type adviceMsg struct {
	day    string
	advice string
	err    error
}

type categorizedMsg struct {
	goalID   string
	category model.Category
}

type suggestionsMsg struct {
	day   string
	added int
}

func NewModel(deps Deps) Model {
	m := Model{
		CurrentTab: TabGoals,
		Cursor:     make(map[Tab]int, len(Tabs())),
		Keys: GlobalKeyMap{
			Goals:   "1",
			Shop:    "2",
			Budget:  "3",
			Stats:   "4",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		pending:   make(map[request]int),
		tracker:   deps.Tracker,
		planner:   deps.Planner,
		scheduler: deps.Scheduler,
		log:       deps.Log,
		ctx:       deps.Context,
		statusTTL: deps.StatusTTL,
		now:       time.Now,
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.statusTTL <= 0 {
		m.statusTTL = defaultStatusTTL
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add weekly read two chapters"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 56

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

// Pending lists in-flight assistant requests in a stable order.
func (m Model) Pending() []string {
	var out []string
	for _, r := range requestOrder {
		if m.pending[r] > 0 {
			out = append(out, string(r))
		}
	}
	return out
}

func (m Model) busy() bool {
	for _, n := range m.pending {
		if n > 0 {
			return true
		}
	}
	return false
}

// begin marks r in flight and returns the spinner tick when the spinner was
// idle.
func (m *Model) begin(r request) tea.Cmd {
	idle := !m.busy()
	m.pending[r]++
	if idle {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) finish(r request) {
	if m.pending[r] > 0 {
		m.pending[r]--
	}
}
