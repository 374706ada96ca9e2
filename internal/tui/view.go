package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Simplici0/laborcalc/internal/form"
	"github.com/Simplici0/laborcalc/internal/render"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC")).MarginTop(1)
	labelStyle    = lipgloss.NewStyle().Width(26)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5B8DEF"))
	disabledStyle = buttonStyle.BorderForeground(lipgloss.Color("#555555")).Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4CAF50")).
			Padding(0, 1).
			MarginRight(1)
	resultTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
)

// View renders the form, the submit control, the error banner and the result
// panel.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Digital Labor Generator"))
	b.WriteByte('\n')

	var current form.Section
	for i, f := range m.fields {
		if f.Section != current {
			current = f.Section
			b.WriteString(sectionStyle.Render(form.SectionTitle(current)))
			b.WriteByte('\n')
		}
		b.WriteString(m.fieldLine(i, f))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	state := m.ctrl.State()
	b.WriteString(m.button(state.Loading))
	b.WriteByte('\n')

	if m.hint != "" {
		b.WriteString(hintStyle.Render(m.hint))
		b.WriteByte('\n')
	}
	if state.Err != "" {
		b.WriteString(errorStyle.Render(state.Err))
		b.WriteByte('\n')
	}
	if blocks := render.Blocks(state.Result); blocks != nil {
		b.WriteString(sectionStyle.Render("Results"))
		b.WriteByte('\n')
		b.WriteString(resultPanel(blocks))
		b.WriteByte('\n')
	}

	b.WriteString(helpStyle.Render("tab/shift+tab move • ←/→ change selection • enter next • ctrl+s calculate • esc quit"))
	return b.String()
}

func (m *Model) fieldLine(i int, f form.Field) string {
	focused := i == m.focus
	label := f.Label
	if f.Required {
		label += " *"
	}
	cursor := "  "
	if focused {
		cursor = focusedStyle.Render("> ")
		label = focusedStyle.Render(label)
	}

	var value string
	if isTextKind(f.Kind) {
		value = m.inputs[i].View()
	} else {
		value = m.optionLabel(f)
		if focused {
			value = "< " + value + " >"
		}
	}

	line := cursor + labelStyle.Render(label) + value
	if f.Help != "" && !isTextKind(f.Kind) {
		line += "  " + helpStyle.Render(f.Help)
	}
	return line
}

func (m *Model) optionLabel(f form.Field) string {
	v, err := m.agg.Value(f.Section, f.Name)
	if err != nil {
		return ""
	}
	for _, opt := range f.Options {
		if opt.Value == v {
			return opt.Label
		}
	}
	return fmt.Sprint(v)
}

func (m *Model) button(loading bool) string {
	if loading {
		return disabledStyle.Render(m.spinner.View() + " Calculating")
	}
	label := "Calculate"
	if m.onSubmitButton() {
		label = focusedStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func resultPanel(blocks []render.Block) string {
	boxes := make([]string, 0, len(blocks))
	for _, block := range blocks {
		body := resultTitleStyle.Render(block.Title) + "\n" + strings.Join(block.Lines, "\n")
		boxes = append(boxes, resultStyle.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
