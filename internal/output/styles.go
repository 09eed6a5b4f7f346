package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: genre ids, feature ids, file paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "generated" file status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and modified entries.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed entries.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (genre ids, feature ids, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleAdded styles added entries in diff output.
	StyleAdded = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleRemoved styles removed entries in diff output.
	StyleRemoved = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleModified styles modified entries in diff output.
	StyleModified = lipgloss.NewStyle().Foreground(ColorYellow)
)

// minPathColumnWidth is the minimum width for the file path column before
// the hash suffix, so hashes align consistently.
const minPathColumnWidth = 48

// FormatFileLine renders a generated file path with a right-aligned,
// dimmed short hash suffix.
func FormatFileLine(path, contentHash string) string {
	short := contentHash
	if len(short) > 12 {
		short = short[:12]
	}

	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleNoun.Render(path) + strings.Repeat(" ", padding) + StyleDim.Render(short)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatSummary renders a bold summary line.
func FormatSummary(format string, args ...interface{}) string {
	return StyleSummary.Render(fmt.Sprintf(format, args...))
}
