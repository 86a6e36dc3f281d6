package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette

const (
	colorRed     lipgloss.Color = "#f38ba8"
	colorYellow  lipgloss.Color = "#f9e2af"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorBlue    lipgloss.Color = "#89b4fa"
	colorSky     lipgloss.Color = "#89dceb"
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorOverlay lipgloss.Color = "#7f849c"
	colorSurface lipgloss.Color = "#313244"
)

// Shell styles are created once and reused across presentations; only the
// bound row data is rebuilt per open.
var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	infoStyle   = lipgloss.NewStyle().Foreground(colorSky)
	detailStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	hintStyle   = lipgloss.NewStyle().Foreground(colorOverlay)
	focusStyle  = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface)

	// errorBorder shells both the alert and the Error-severity dialog.
	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRed).
			Padding(0, 1)

	warnBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(0, 1)
)

// setAccent retints the accent-driven styles from config. Called once at
// App construction, before the program renders anything.
func setAccent(c lipgloss.Color) {
	titleStyle = titleStyle.Foreground(c)
}
