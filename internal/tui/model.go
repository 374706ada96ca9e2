// Package tui is the terminal front end of the calculator form. It follows
// the bubbletea loop: key presses update the form aggregate, the submit key
// starts a request whose outcome comes back as a message.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simplici0/laborcalc/internal/api"
	"github.com/Simplici0/laborcalc/internal/form"
	"github.com/Simplici0/laborcalc/internal/submit"
)

// outcomeMsg carries a finished round-trip back onto the loop.
type outcomeMsg struct {
	outcome submit.Outcome
}

// Model is the form screen.
type Model struct {
	ctx    context.Context
	ctrl   *submit.Controller
	logger *slog.Logger

	agg    form.Aggregate
	fields []form.Field
	inputs []textinput.Model
	// focus indexes fields; len(fields) is the submit button.
	focus int

	spinner spinner.Model
	hint    string

	width  int
	height int
}

// New builds the form screen around an aggregate and a controller.
func New(ctx context.Context, ctrl *submit.Controller, agg form.Aggregate, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		logger:  logger,
		agg:     agg,
		fields:  form.Fields(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
	}

	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		if !isTextKind(f.Kind) {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Help
		in.CharLimit = 64
		in.Width = 32
		if v, err := agg.Value(f.Section, f.Name); err == nil {
			in.SetValue(v.(string))
		}
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	return m
}

func isTextKind(k form.Kind) bool {
	return k == form.KindText || k == form.KindNumber || k == form.KindDate
}

// Aggregate returns the current form values.
func (m *Model) Aggregate() form.Aggregate {
	return m.agg
}

// Init starts the cursor blink of the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, spinner ticks and request outcomes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case outcomeMsg:
		state := m.ctrl.Finish(msg.outcome)
		if state.Status == submit.StatusError {
			m.logger.Info("calculation failed", "error", state.Err)
		} else {
			m.logger.Info("calculation succeeded")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		if m.onSubmitButton() {
			return m, m.submit()
		}
		return m, m.setFocus(m.focus + 1)
	}

	if m.onSubmitButton() {
		return m, nil
	}
	f := m.fields[m.focus]
	if !isTextKind(f.Kind) {
		switch msg.String() {
		case "right", "l", " ":
			m.cycle(f, 1)
		case "left", "h":
			m.cycle(f, -1)
		}
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.onSubmitButton() || !isTextKind(m.fields[m.focus].Kind) {
		return m, nil
	}
	f := m.fields[m.focus]
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.setField(f, m.inputs[m.focus].Value())
	return m, cmd
}

func (m *Model) onSubmitButton() bool {
	return m.focus == len(m.fields)
}

// setFocus moves focus, wrapping around the fields and the submit button.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.fields) + 1
	i = ((i % n) + n) % n

	if !m.onSubmitButton() && isTextKind(m.fields[m.focus].Kind) {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if !m.onSubmitButton() && isTextKind(m.fields[m.focus].Kind) {
		return m.inputs[m.focus].Focus()
	}
	return nil
}

// cycle moves a select control to the next or previous option.
func (m *Model) cycle(f form.Field, step int) {
	if len(f.Options) == 0 {
		return
	}
	current, err := m.agg.Value(f.Section, f.Name)
	if err != nil {
		return
	}
	idx := 0
	for i, opt := range f.Options {
		if opt.Value == current {
			idx = i
			break
		}
	}
	n := len(f.Options)
	next := f.Options[((idx+step)%n+n)%n]
	m.setField(f, next.Value)
}

func (m *Model) setField(f form.Field, value any) {
	next, err := m.agg.SetField(f.Section, f.Name, value)
	if err != nil {
		m.logger.Error("set form field", "section", f.Section, "field", f.Name, "error", err)
		return
	}
	m.agg = next

	// A shown hint follows the edits: it clears once the form passes, or
	// moves on to the next offending control.
	if m.hint != "" {
		m.hint = ""
		if err := m.agg.Check(); err != nil {
			m.hint = err.Error()
		}
	}
}

// submit starts a calculation unless one is already running. Values that
// break a control's own constraints block submission, the way a browser
// refuses to submit an invalid form.
func (m *Model) submit() tea.Cmd {
	if m.ctrl.State().Loading {
		return nil
	}

	req, err := m.agg.Payload()
	if err != nil {
		m.hint = err.Error()
		var ferr *form.FieldError
		if errors.As(err, &ferr) {
			return m.focusField(ferr.Section, ferr.Field)
		}
		return nil
	}
	m.hint = ""

	m.ctrl.Begin()
	m.logger.Info("submitting calculation", "endpoint", m.ctrl.Endpoint(), "role", req.Human.Role, "model", req.AIAgent.Model)
	return tea.Batch(m.spinner.Tick, send(m.ctx, m.ctrl, req))
}

func send(ctx context.Context, ctrl *submit.Controller, req api.CalculateRequest) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: ctrl.Send(ctx, req)}
	}
}

func (m *Model) focusField(section form.Section, name string) tea.Cmd {
	for i, f := range m.fields {
		if f.Section == section && f.Name == name {
			return m.setFocus(i)
		}
	}
	return nil
}
