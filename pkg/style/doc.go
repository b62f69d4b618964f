// Package style renders command output for the terminal.
//
// Colors and styles are lipgloss based and adapt to light and dark
// backgrounds. Messages use a small [tag]text[/tag] markup so the same
// string can be rendered styled for a terminal or stripped for pipes and
// NO_COLOR environments.
package style
