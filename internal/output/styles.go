package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for every ANSI 256 color used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: package names, paths, registries.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for packages that will be published.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for packages skipped because they already exist.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failed probes (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (package names, paths, registries).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Package status values shown by list and summary output.
const (
	StatusNew       = "new"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// StatusStyle returns the lipgloss style for a package status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusNew:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusPublished:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPackageColumnWidth keeps status words aligned across lines.
const minPackageColumnWidth = 40

// FormatPackageLine renders a package identifier with a right-aligned,
// color-coded status suffix.
//
// Format: p:<[scope/]name@version>  <status>
func FormatPackageLine(fullName, status string) string {
	padding := minPackageColumnWidth - len(fullName)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("p:") +
		StyleNoun.Render(fullName) +
		strings.Repeat(" ", padding) +
		StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
