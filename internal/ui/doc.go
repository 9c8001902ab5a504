// Package ui renders styled terminal output for the CLI with lipgloss.
//
// Output written to a pipe or file is left unstyled; lipgloss detects the terminal
// profile of stdout on its own.
package ui
