package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	commandKeywords = []string{
		"newTable", "addToTable", "showColumns", "sort", "set", "remove",
		"formGroups", "filter", "getCommon", "aggregate",
	}

	conditionTokens = []string{
		"equalTo", "smallerThan", "biggerThan",
		"min", "max", "sum", "avg", "count", "all",
	}
)

// CommandHighlighter provides syntax highlighting for pipe-delimited
// commands
type CommandHighlighter struct {
	keywords       map[string]bool
	conditions     map[string]bool
	keywordStyle   lipgloss.Style
	conditionStyle lipgloss.Style
	numberStyle    lipgloss.Style
	pipeStyle      lipgloss.Style
}

func NewCommandHighlighter() *CommandHighlighter {
	h := &CommandHighlighter{
		keywords:   make(map[string]bool),
		conditions: make(map[string]bool),
	}

	for _, kw := range commandKeywords {
		h.keywords[kw] = true
	}
	for _, cond := range conditionTokens {
		h.conditions[cond] = true
	}

	h.keywordStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF79C6")).
		Bold(true)

	h.conditionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8BE9FD")).
		Bold(true)

	h.numberStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#BD93F9"))

	h.pipeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFB86C"))

	return h
}

// Highlight colors the fields of a command without changing its text.
func (h *CommandHighlighter) Highlight(command string) string {
	parts := strings.Split(command, "|")
	highlighted := make([]string, 0, len(parts))

	for i, part := range parts {
		trimmed := strings.TrimSpace(part)

		switch {
		case i == 0 && h.keywords[trimmed]:
			highlighted = append(highlighted, h.keywordStyle.Render(part))
		case h.conditions[trimmed]:
			highlighted = append(highlighted, h.conditionStyle.Render(part))
		case isNumeric(trimmed):
			highlighted = append(highlighted, h.numberStyle.Render(part))
		default:
			highlighted = append(highlighted, part)
		}
	}

	return strings.Join(highlighted, h.pipeStyle.Render("|"))
}

// isNumeric checks if a string represents a number
func isNumeric(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789.-", c) {
			return false
		}
	}
	return s != ""
}
