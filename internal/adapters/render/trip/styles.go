package trip

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	section    lipgloss.Style
	question   lipgloss.Style
	badge      lipgloss.Style
	detail     lipgloss.Style
	meta       lipgloss.Style
	empty      lipgloss.Style
	warning    lipgloss.Style
	highlight  lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	marker     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:    lipgloss.NewStyle().MarginTop(1),
		question:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:       lipgloss.NewStyle().Faint(true),
		empty:      lipgloss.NewStyle().Faint(true),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		marker:     lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	}
}
