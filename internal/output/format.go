package output

import "strings"

// Format specifies the output format for generated manifests.
type Format string

const (
	// FormatYAML writes the manifest as a YAML document.
	FormatYAML Format = "yaml"

	// FormatJSON writes the manifest as JSON.
	FormatJSON Format = "json"

	// FormatDir writes the generated files into a directory tree.
	FormatDir Format = "dir"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a string into a Format. The second return reports
// whether the input named a valid format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "dir", "directory":
		return FormatDir, true
	default:
		return FormatYAML, false
	}
}

// ValidFormats returns the valid format names.
func ValidFormats() []string {
	return []string{"yaml", "json", "dir"}
}
