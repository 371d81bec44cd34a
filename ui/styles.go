package ui

import "github.com/charmbracelet/lipgloss"

// Palette using standard ANSI terminal colors (0-15) so the UI adapts
// to the user's terminal theme. Red is the house color: it marks the
// played part of the spiral, same as in the exported frames.
var (
	colorBorder  = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorTitle   = lipgloss.ANSIColor(9)  // bright red
	colorText    = lipgloss.ANSIColor(7)  // white (light gray)
	colorDim     = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorAccent  = lipgloss.ANSIColor(11) // bright yellow
	colorPlayed  = lipgloss.ANSIColor(9)  // bright red
	colorTrace   = lipgloss.ANSIColor(7)  // white (light gray)
	colorSeekBar = lipgloss.ANSIColor(11) // bright yellow
	colorOK      = lipgloss.ANSIColor(10) // bright green

	// Spectrum gradient: dim red -> red -> bright yellow
	spectrumLow  = lipgloss.ANSIColor(1)
	spectrumMid  = lipgloss.ANSIColor(9)
	spectrumHigh = lipgloss.ANSIColor(11)
)

// Lip Gloss styles
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	trackStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorText)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorOK).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	paramActiveStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	paramInactiveStyle = lipgloss.NewStyle().
				Foreground(colorText)

	progressFillStyle = lipgloss.NewStyle().
				Foreground(colorPlayed)

	okStyle = lipgloss.NewStyle().
			Foreground(colorOK)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(9)) // bright red

	seekFillStyle = lipgloss.NewStyle().Foreground(colorSeekBar)
	seekDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)
