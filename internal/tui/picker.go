package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/audit"
)

// runItem implements list.Item for run display
type runItem struct {
	run audit.RunSummary
}

func (i runItem) Title() string {
	return i.run.ID
}

func (i runItem) Description() string {
	statusIcon := "●"
	switch i.run.Last {
	case audit.EventDone:
		statusIcon = "✓"
	case audit.EventError:
		statusIcon = "✗"
	}

	return fmt.Sprintf("%s %s | %d events | %s",
		statusIcon,
		i.run.Last,
		i.run.Events,
		formatAge(i.run.Updated, time.Now()),
	)
}

func (i runItem) FilterValue() string {
	return i.run.ID
}

func formatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Model is the bubbletea model for the run picker
type Model struct {
	list     list.Model
	selected string
	quitting bool
}

// NewPicker creates a new run picker
func NewPicker(runs []audit.RunSummary) Model {
	items := make([]list.Item, len(runs))
	for i, run := range runs {
		items[i] = runItem{run: run}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "forage-routes - Select Run"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(runItem); ok {
				m.selected = item.run.ID
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Show  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Selected returns the chosen run id, empty if the user quit
func (m Model) Selected() string {
	return m.selected
}

// RunPicker runs the interactive run picker
func RunPicker(runs []audit.RunSummary) (string, error) {
	if len(runs) == 0 {
		return "", nil
	}

	p := tea.NewProgram(NewPicker(runs), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	return finalModel.(Model).Selected(), nil
}

// SimplePicker is a non-interactive picker that just lists runs
func SimplePicker(runs []audit.RunSummary) string {
	var sb strings.Builder

	sb.WriteString("forage-routes - Runs\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(runs) == 0 {
		sb.WriteString("No recorded runs.\n")
		sb.WriteString("Enable history with history_dir in the config file.\n")
		return sb.String()
	}

	now := time.Now()
	for i, run := range runs {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, run.ID, run.Last))
		sb.WriteString(fmt.Sprintf("   Events: %d | Updated: %s\n\n", run.Events, formatAge(run.Updated, now)))
	}

	return sb.String()
}
