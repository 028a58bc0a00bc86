package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)

	newEntryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// IterationBanner renders the heading shown before each sandbox run.
func IterationBanner(iteration int, session string) string {
	title := fmt.Sprintf("Iteration %d", iteration)
	if session != "" {
		title += " · resuming " + session
	} else {
		title += " · new session"
	}
	return bannerStyle.Render(title)
}

// ScanSummary renders the entries discovered by one scan.
func ScanSummary(session string, discovered []string, added int) string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("session") + session + "\n")
	sb.WriteString(labelStyle.Render("blocked") + fmt.Sprintf("%d (%d new)", len(discovered), added) + "\n")
	for _, entry := range discovered {
		sb.WriteString("  " + newEntryStyle.Render("+ "+entry) + "\n")
	}
	return sb.String()
}

// FinalSummary renders the closing report of a discovery run.
func FinalSummary(iterations int, allowed, blocked int, destination string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Route discovery complete") + "\n")
	sb.WriteString(labelStyle.Render("runs") + fmt.Sprintf("%d", iterations) + "\n")
	sb.WriteString(labelStyle.Render("ip-add") + fmt.Sprintf("%d entries", allowed) + "\n")
	sb.WriteString(labelStyle.Render("ip-block") + fmt.Sprintf("%d entries", blocked) + "\n")
	if destination != "" {
		sb.WriteString(labelStyle.Render("saved") + destination + "\n")
	}
	return sb.String()
}
