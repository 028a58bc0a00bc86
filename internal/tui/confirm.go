package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user cancels the prompt.
var ErrAborted = errors.New("prompt aborted")

// confirmModel is the bubbletea model behind ConfirmPrompter.
type confirmModel struct {
	question string
	input    textinput.Model
	answer   string
	done     bool
	aborted  bool
}

func newConfirmModel(question string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "y/N"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "› "
	ti.Focus()

	return confirmModel{question: question, input: ti}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.answer = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return questionStyle.Render(m.question) + "\n" +
		m.input.View() + "\n" +
		helpStyle.Render("[enter] Answer  [esc] Abort")
}

// ConfirmPrompter asks questions with an interactive text input.
type ConfirmPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewConfirmPrompter creates a ConfirmPrompter on the given terminal streams.
func NewConfirmPrompter(in io.Reader, out io.Writer) *ConfirmPrompter {
	return &ConfirmPrompter{in: in, out: out}
}

// Ask runs the prompt until the user answers or aborts.
func (p *ConfirmPrompter) Ask(ctx context.Context, question string) (string, error) {
	prog := tea.NewProgram(newConfirmModel(question),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out))

	final, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	m := final.(confirmModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.answer, nil
}
