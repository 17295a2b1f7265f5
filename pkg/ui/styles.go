package ui

import "github.com/charmbracelet/lipgloss"

// ANSI escape codes for simple terminal output (CLI commands)
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Color palette
var (
	// Brand colors
	Primary   = lipgloss.Color("#7D56F4") // Purple
	Secondary = lipgloss.Color("#00D4AA") // Teal

	// Status colors
	Good    = lipgloss.Color("#00D26A") // Green
	Warning = lipgloss.Color("#FFB800") // Amber
	Error   = lipgloss.Color("#FF3838") // Red
	Info    = lipgloss.Color("#4D96FF") // Blue
	Muted   = lipgloss.Color("#6B7280") // Gray

	// Score band colors
	ScoreHigh = lipgloss.Color("#00D26A")
	ScoreMid  = lipgloss.Color("#FFD93D")
	ScoreLow  = lipgloss.Color("#FF3838")
)

// Pre-configured styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(Primary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	URLStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Underline(true)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3B3B4F")).
			Padding(0, 1)

	DividerStyle = lipgloss.NewStyle().
			Foreground(Muted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)

// StatusStyle returns the style for a check status string.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch status {
	case "good":
		return base.Foreground(Good)
	case "warning":
		return base.Foreground(Warning)
	case "error":
		return base.Foreground(Error)
	case "info":
		return base.Foreground(Info)
	default:
		return base.Foreground(Muted)
	}
}

// ScoreStyle returns the style for a 0-100 score.
func ScoreStyle(score float64) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch {
	case score >= 80:
		return base.Foreground(ScoreHigh)
	case score >= 60:
		return base.Foreground(ScoreMid)
	default:
		return base.Foreground(ScoreLow)
	}
}
