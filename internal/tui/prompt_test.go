package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"YES please", true},
		{"yep", true},
		{"n", false},
		{"no", false},
		{"", false},
		{" y", false},
		{"ok", false},
		{"sure, yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := IsAffirmative(tt.answer); got != tt.want {
				t.Errorf("IsAffirmative(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("no\n  Yes \nlast"), &out)
	ctx := context.Background()

	for _, want := range []string{"no", "Yes", "last"} {
		got, err := p.Ask(ctx, "Did it work?")
		if err != nil {
			t.Fatalf("Ask error: %v", err)
		}
		if got != want {
			t.Errorf("Ask() = %q, want %q", got, want)
		}
	}

	if _, err := p.Ask(ctx, "Did it work?"); !errors.Is(err, io.EOF) {
		t.Errorf("Ask after input end = %v, want io.EOF", err)
	}
	if strings.Count(out.String(), "Did it work?") != 4 {
		t.Errorf("questions written = %q", out.String())
	}
}

func TestLinePrompter_EmptyAnswer(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("\n"), io.Discard)
	got, err := p.Ask(context.Background(), "?")
	if err != nil || got != "" {
		t.Errorf("Ask() = %q, %v; want empty answer", got, err)
	}
}

func TestLinePrompter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewLinePrompter(strings.NewReader("y\n"), io.Discard)
	if _, err := p.Ask(ctx, "?"); !errors.Is(err, context.Canceled) {
		t.Errorf("Ask() error = %v, want context.Canceled", err)
	}
}

func TestScriptedPrompter(t *testing.T) {
	p := NewScriptedPrompter("n", "y")
	ctx := context.Background()

	first, _ := p.Ask(ctx, "q1")
	second, _ := p.Ask(ctx, "q2")
	if first != "n" || second != "y" {
		t.Errorf("answers = %q, %q", first, second)
	}
	if _, err := p.Ask(ctx, "q3"); !errors.Is(err, io.EOF) {
		t.Errorf("exhausted Ask() error = %v, want io.EOF", err)
	}
	if len(p.Questions) != 3 {
		t.Errorf("Questions = %v", p.Questions)
	}
}

func typeString(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestConfirmModel_Answer(t *testing.T) {
	var m tea.Model = newConfirmModel("Did the pages render?")
	if !strings.Contains(m.View(), "Did the pages render?") {
		t.Errorf("View() missing question: %q", m.View())
	}

	m = typeString(m, "yes ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("enter should quit the program")
	}

	cm := m.(confirmModel)
	if !cm.done || cm.answer != "yes" {
		t.Errorf("model = done:%v answer:%q", cm.done, cm.answer)
	}
	if cm.View() != "" {
		t.Errorf("View() after answer = %q, want empty", cm.View())
	}
}

func TestConfirmModel_Abort(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlD} {
		var m tea.Model = newConfirmModel("?")
		m = typeString(m, "y")
		m, _ = m.Update(tea.KeyMsg{Type: key})
		if cm := m.(confirmModel); !cm.aborted || cm.done {
			t.Errorf("key %v: model = %+v, want aborted", key, cm)
		}
	}
}

func TestBanners(t *testing.T) {
	if got := IterationBanner(1, ""); !strings.Contains(got, "Iteration 1") || !strings.Contains(got, "new session") {
		t.Errorf("IterationBanner(1) = %q", got)
	}
	if got := IterationBanner(2, "sess-7"); !strings.Contains(got, "resuming sess-7") {
		t.Errorf("IterationBanner(2) = %q", got)
	}

	summary := ScanSummary("sess-7", []string{"c.test"}, 1)
	if !strings.Contains(summary, "c.test") || !strings.Contains(summary, "1 (1 new)") {
		t.Errorf("ScanSummary = %q", summary)
	}

	final := FinalSummary(3, 4, 1, "/tmp/routes.txt")
	for _, want := range []string{"Route discovery complete", "4 entries", "/tmp/routes.txt"} {
		if !strings.Contains(final, want) {
			t.Errorf("FinalSummary missing %q: %q", want, final)
		}
	}
}
