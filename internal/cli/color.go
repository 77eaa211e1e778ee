package cli

import "github.com/charmbracelet/lipgloss"

// Teamwork-like palette.
const (
	colorAccent = lipgloss.Color("#FF8C00")
	colorRed    = lipgloss.Color("#E5484D")
	colorYellow = lipgloss.Color("#F5D90A")
	colorCyan   = lipgloss.Color("#00CFCF")
	colorGrey   = lipgloss.Color("#808080")
	colorGreen  = lipgloss.Color("#2ECC71")
)

var styles = struct {
	primary, error, warning, info, silent, success, text lipgloss.Style
	header, cell, border                                 lipgloss.Style
}{
	primary: lipgloss.NewStyle().Foreground(colorAccent),
	error:   lipgloss.NewStyle().Foreground(colorRed),
	warning: lipgloss.NewStyle().Foreground(colorYellow),
	info:    lipgloss.NewStyle().Foreground(colorCyan),
	silent:  lipgloss.NewStyle().Foreground(colorGrey),
	success: lipgloss.NewStyle().Foreground(colorGreen),
	text:    lipgloss.NewStyle(),

	header: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1),
	cell:   lipgloss.NewStyle().Padding(0, 1),
	border: lipgloss.NewStyle().Foreground(colorGrey),
}

func Primary(text string) string { return styles.primary.Render(text) }
func Error(text string) string   { return styles.error.Render(text) }
func Warning(text string) string { return styles.warning.Render(text) }
func Info(text string) string    { return styles.info.Render(text) }
func Silent(text string) string  { return styles.silent.Render(text) }
func Success(text string) string { return styles.success.Render(text) }
func Text(text string) string    { return styles.text.Render(text) }
