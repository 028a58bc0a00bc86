package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Prompter asks the user a free-text question and returns the answer.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// IsAffirmative reports whether answer counts as "yes": it must start with
// y or Y. Everything else, including the empty string, is a no.
func IsAffirmative(answer string) bool {
	return strings.HasPrefix(strings.ToLower(answer), "y")
}

// NewPrompter returns an interactive ConfirmPrompter when in and out are
// both terminals, and a LinePrompter otherwise.
func NewPrompter(in *os.File, out *os.File) Prompter {
	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		return NewConfirmPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}

// LinePrompter reads one line per question from a reader.
type LinePrompter struct {
	mu     sync.Mutex
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter creates a LinePrompter writing questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Ask writes question and reads the answer line. A final line without a
// newline is still an answer; io.EOF is only returned when no input is left.
func (p *LinePrompter) Ask(ctx context.Context, question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(p.out, "%s ", question); err != nil {
		return "", err
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ScriptedPrompter replays canned answers, for tests and non-interactive use.
type ScriptedPrompter struct {
	mu      sync.Mutex
	Answers []string

	// Questions records every question asked
	Questions []string
}

// NewScriptedPrompter creates a prompter answering with answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

// Ask returns the next answer, or io.EOF once they are used up.
func (p *ScriptedPrompter) Ask(ctx context.Context, question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.Questions = append(p.Questions, question)
	if len(p.Answers) == 0 {
		return "", io.EOF
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}
