// Package tui implements the interactive goal menu.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/eternal-quest/internal/goals"
	"github.com/jonathan/eternal-quest/internal/observability"
	"github.com/jonathan/eternal-quest/internal/quest"
	"github.com/jonathan/eternal-quest/internal/store"
	"github.com/jonathan/eternal-quest/internal/types"
	"go.uber.org/zap"
)

// Opener returns the store for a destination entered in the menu.
type Opener func(ctx context.Context, dsn string) (store.Store, error)

// Action is a menu entry
type Action int

const (
	ActionCreate Action = iota
	ActionRecord
	ActionList
	ActionScore
	ActionLevel
	ActionSave
	ActionLoad
	ActionQuit
)

var menuLabels = []string{
	ActionCreate: "Create new goal",
	ActionRecord: "Record event",
	ActionList:   "List goals",
	ActionScore:  "Show score",
	ActionLevel:  "Show level",
	ActionSave:   "Save goals",
	ActionLoad:   "Load goals",
	ActionQuit:   "Quit",
}

// field is one prompt of a multi-step action
type field struct {
	key   string
	label string
	def   string
}

// Model is the bubbletea model of the menu. The tracker is shared, not copied.
type Model struct {
	ctx          context.Context
	tracker      *quest.Tracker
	open         Opener
	defaultStore string
	logger       *zap.Logger

	cursor  int
	action  Action
	prompts []field
	answers map[string]string
	input   textinput.Model

	output    string
	status    string
	statusErr bool
	quitting  bool

	styles Styles
}

// NewModel creates the menu for tracker. defaultStore pre-fills the save and load prompts.
func NewModel(ctx context.Context, tracker *quest.Tracker, open Opener, defaultStore string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40

	return Model{
		ctx:          ctx,
		tracker:      tracker,
		open:         open,
		defaultStore: defaultStore,
		logger:       logger,
		input:        ti,
		styles:       DefaultStyles(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.prompting() {
		return m.updatePrompt(key)
	}
	return m.updateMenu(key)
}

func (m Model) prompting() bool {
	return len(m.prompts) > 0
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuLabels)-1 {
			m.cursor++
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		return m.choose(Action(m.cursor))
	default:
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(menuLabels) {
			m.cursor = n - 1
			return m.choose(Action(n - 1))
		}
	}
	return m, nil
}

// choose starts an action, prompting first when it needs input.
func (m Model) choose(a Action) (tea.Model, tea.Cmd) {
	m.action = a
	m.output = ""
	m.setStatus("", false)

	switch a {
	case ActionCreate:
		kinds := make([]string, 0, len(goals.Kinds))
		for _, k := range goals.Kinds {
			kinds = append(kinds, strings.ToLower(string(k)))
		}
		m.startPrompt(field{key: "kind", label: "Goal type (" + strings.Join(kinds, ", ") + ")"})
	case ActionRecord:
		m.startPrompt(field{key: "name", label: "Goal name"})
	case ActionSave, ActionLoad:
		m.startPrompt(field{key: "store", label: "Store", def: m.defaultStore})
	case ActionList:
		m.output = m.render(func(p *observability.Printer) { p.PrintGoals(m.tracker.ListGoals()) })
	case ActionScore:
		m.output = m.render(func(p *observability.Printer) { p.PrintScore(m.tracker.Score()) })
	case ActionLevel:
		m.output = m.render(func(p *observability.Printer) {
			p.PrintLevel(m.tracker.Level(), m.tracker.XP(), m.tracker.NextLevelAt())
		})
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startPrompt(first field) {
	m.prompts = []field{first}
	m.answers = make(map[string]string)
	m.input.SetValue("")
	m.input.Placeholder = first.def
	m.input.Focus()
}

func (m Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.endPrompt()
		m.setStatus("Cancelled.", false)
		return m, nil
	case tea.KeyEnter:
		current := m.prompts[0]
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			value = current.def
		}
		m.answers[current.key] = value

		if current.key == "kind" {
			m.prompts = append(m.prompts, createFields(value)...)
		}
		m.prompts = m.prompts[1:]
		if len(m.prompts) > 0 {
			m.input.SetValue("")
			m.input.Placeholder = m.prompts[0].def
			return m, nil
		}

		answers := m.answers
		m.endPrompt()
		m.run(answers)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *Model) endPrompt() {
	m.prompts = nil
	m.input.Blur()
	m.input.SetValue("")
}

// createFields lists the prompts that follow the goal type.
func createFields(kind string) []field {
	fields := []field{
		{key: "name", label: "Goal name"},
		{key: "value", label: "Points", def: "0"},
	}
	k, err := goals.ParseKind(kind)
	if err != nil {
		return fields
	}
	switch k {
	case goals.KindChecklist:
		fields = append(fields,
			field{key: "target_count", label: "Times to complete"},
			field{key: "bonus_value", label: "Bonus points", def: "0"})
	case goals.KindProgress:
		fields = append(fields,
			field{key: "target_progress", label: "Target progress"},
			field{key: "progress_value", label: "Progress per event"})
	}
	return fields
}

// run executes the current action with the collected answers.
func (m *Model) run(answers map[string]string) {
	switch m.action {
	case ActionCreate:
		m.create(answers)
	case ActionRecord:
		name := answers["name"]
		out := m.tracker.RecordEvent(name)
		m.output = m.render(func(p *observability.Printer) { p.PrintOutcome(name, out) })
	case ActionSave:
		m.save(answers["store"])
	case ActionLoad:
		m.load(answers["store"])
	}
}

func (m *Model) create(answers map[string]string) {
	req := types.CreateGoalRequest{Kind: answers["kind"], Name: answers["name"]}

	ints := []struct {
		key string
		dst *int
	}{
		{"value", &req.Value},
		{"target_count", &req.TargetCount},
		{"bonus_value", &req.BonusValue},
		{"target_progress", &req.TargetProgress},
		{"progress_value", &req.ProgressValue},
	}
	for _, f := range ints {
		text, ok := answers[f.key]
		if !ok || text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			m.setStatus(fmt.Sprintf("%s must be a whole number, got %q", f.key, text), true)
			return
		}
		*f.dst = n
	}

	if err := req.Validate(); err != nil {
		m.setStatus(fmt.Sprintf("Invalid goal: %v", err), true)
		return
	}

	g, err := m.tracker.CreateGoal(req.Kind, req.Name, req.Value, req.Options())
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Created %s goal %q.", g.Kind, g.Name), false)
}

func (m *Model) save(dsn string) {
	s, err := m.open(m.ctx, dsn)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	defer func() { _ = s.Close() }()

	if err := m.tracker.Save(m.ctx, s); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Saved %d goals to %s.", m.tracker.Len(), dsn), false)
}

func (m *Model) load(dsn string) {
	s, err := m.open(m.ctx, dsn)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	defer func() { _ = s.Close() }()

	if err := m.tracker.Load(m.ctx, s); err != nil {
		if errors.Is(err, goals.ErrSourceUnavailable) {
			m.logger.Info("no saved goals", zap.String("store", dsn), zap.Error(err))
			m.setStatus(fmt.Sprintf("No saved goals at %s; starting with an empty tracker.", dsn), true)
			return
		}
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Loaded %d goals from %s.", m.tracker.Len(), dsn), false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) render(fn func(p *observability.Printer)) string {
	var buf bytes.Buffer
	fn(observability.NewPrinter(&buf))
	return strings.TrimRight(buf.String(), "\n")
}

// View renders the menu.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Eternal Quest"))
	sb.WriteString("\n")

	for i, label := range menuLabels {
		line := fmt.Sprintf("%d. %s", i+1, label)
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(m.styles.Item.Render(line))
		}
		sb.WriteString("\n")
	}

	if m.output != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Output.Render(m.output))
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString("\n")
		if m.statusErr {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Status.Render(m.status))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.prompting() {
		sb.WriteString(m.prompts[0].label + ": " + m.input.View())
		sb.WriteString("\n")
		sb.WriteString(m.styles.Help.Render("enter: confirm • esc: cancel"))
	} else {
		sb.WriteString(m.styles.Help.Render("↑/↓: move • enter or 1-8: select • q: quit"))
	}
	sb.WriteString("\n")
	return sb.String()
}

// Run starts the menu on the terminal and blocks until the user quits.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("menu failed: %w", err)
	}
	return nil
}
