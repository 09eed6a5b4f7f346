package core

import "regexp"

// The template vocabulary is fixed and narrow: anchor markers occupy a
// whole line, placeholder markers appear inline. Substituted values are
// never re-scanned, so neither marker form can expand recursively.

// anchorMarker matches a line of the form `// [[anchor:NAME]]`, capturing
// the leading whitespace (reused as fragment indentation) and the name.
var anchorMarker = regexp.MustCompile(`(?m)^([ \t]*)// \[\[anchor:([A-Za-z][A-Za-z0-9_-]*)\]\][ \t]*$`)

// placeholderMarker matches an inline `{{NAME}}` placeholder.
var placeholderMarker = regexp.MustCompile(`\{\{([A-Za-z][A-Za-z0-9_]*)\}\}`)

// AnchorMarker returns the compiled anchor marker pattern.
func AnchorMarker() *regexp.Regexp { return anchorMarker }

// PlaceholderMarker returns the compiled placeholder marker pattern.
func PlaceholderMarker() *regexp.Regexp { return placeholderMarker }

// FindAnchors returns the anchor names referenced in template text, in
// order of appearance.
func FindAnchors(text string) []string {
	var names []string
	for _, m := range anchorMarker.FindAllStringSubmatch(text, -1) {
		names = append(names, m[2])
	}
	return names
}

// FindPlaceholders returns the distinct placeholder keys referenced in
// text, in order of first appearance.
func FindPlaceholders(text string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range placeholderMarker.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}
