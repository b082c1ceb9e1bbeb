package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/taskifyapp/taskify/task"
	"golang.org/x/term"
)

var (
	styleDone       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleTodo       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	styleHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	styleOverdue = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func renderStatus(s task.Status) string {
	switch s {
	case task.StatusDone:
		return styleDone.Render(string(s))
	case task.StatusInProgress:
		return styleInProgress.Render(string(s))
	default:
		return styleTodo.Render(string(s))
	}
}

func renderPriority(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return styleHigh.Render(string(p))
	case task.PriorityMedium:
		return styleMedium.Render(string(p))
	default:
		return styleLow.Render(string(p))
	}
}

// renderTag colors a tag label with its registry color.
func renderTag(tag task.Tag) string {
	if tag.Color == "" {
		return tag.Label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color)).Render(tag.Label)
}

// terminalWidth returns the stdout width, or a sane default when
// stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 20 {
		return 80
	}
	return width
}
