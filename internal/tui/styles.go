package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#A78BFA") // purple
	accentColor  = lipgloss.Color("#10B981") // green
	warningColor = lipgloss.Color("#F59E0B") // amber
	errorColor   = lipgloss.Color("#F87171") // red
	mutedColor   = lipgloss.Color("#9CA3AF") // gray
	textColor    = lipgloss.Color("#F9FAFB") // light text
	borderColor  = lipgloss.Color("#6B7280") // gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Foreground(textColor).
			Padding(0, 1)

	// tokenedCardStyle marks a slot carrying the local player's token.
	tokenedCardStyle = cardStyle.
				BorderForeground(accentColor).
				Foreground(accentColor).
				Bold(true)

	emptySlotStyle = cardStyle.
			BorderForeground(mutedColor).
			Foreground(mutedColor)

	keyHintStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	timerStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	timerWarningStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true).
				Blink(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(textColor)

	frozenStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	winnersStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Foreground(accentColor).
			Bold(true).
			Padding(1, 3)
)
