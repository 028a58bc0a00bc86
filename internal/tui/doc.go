// Package tui provides the terminal interaction of forage-routes.
//
// Prompter is the per-iteration confirmation question. On a terminal,
// ConfirmPrompter shows a bubbletea text input; otherwise LinePrompter reads
// one line from standard input. Only IsAffirmative decides what the answer
// means.
//
// The package also renders the iteration banners and summaries, and a
// list picker over recorded runs.
package tui
