// Package subst resolves named placeholders across bound modules using a
// merged substitution context.
package subst

import (
	"sort"

	"github.com/unityforge/cli/internal/core"
	oerrors "github.com/unityforge/cli/internal/errors"
)

// MergeContext builds the substitution context in strict precedence
// order, later entries overriding earlier ones: genre defaults, then
// feature overrides in the resolver's deterministic feature order, then
// caller overrides.
func MergeContext(genre *core.GenreProfile, features []*core.FeatureSpec, overrides map[string]string) map[string]string {
	values := make(map[string]string, len(genre.Defaults)+len(overrides))
	for k, v := range genre.Defaults {
		values[k] = v
	}
	for _, f := range features {
		for k, v := range f.Overrides {
			values[k] = v
		}
	}
	for k, v := range overrides {
		values[k] = v
	}
	return values
}

// ApplyText substitutes every placeholder marker in text in a single
// pass. Substituted values are inserted as plain text and never
// re-scanned, so a value containing marker syntax cannot expand further.
// Markers with no entry in values are left in place and their keys
// returned, in order of first appearance.
func ApplyText(text string, values map[string]string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := core.PlaceholderMarker().ReplaceAllStringFunc(text, func(marker string) string {
		key := marker[2 : len(marker)-2]
		if v, ok := values[key]; ok {
			return v
		}
		if !seen[key] {
			seen[key] = true
			missing = append(missing, key)
		}
		return marker
	})
	return out, missing
}

// Apply substitutes placeholders across every bound module. Missing keys
// are collected across the whole set before failing, so the caller gets
// one complete PlaceholderUnresolved report instead of one error per
// retry. On failure no substituted modules are returned.
func Apply(bound []*core.BoundModule, values map[string]string) ([]*core.BoundModule, error) {
	out := make([]*core.BoundModule, 0, len(bound))
	missingModules := make(map[string][]string)

	for _, bm := range bound {
		text, missing := ApplyText(bm.Text, values)
		for _, key := range missing {
			missingModules[key] = append(missingModules[key], bm.Module.ID)
		}
		out = append(out, &core.BoundModule{Module: bm.Module, Text: text})
	}

	if len(missingModules) > 0 {
		return nil, unresolvedError(missingModules)
	}
	return out, nil
}

// unresolvedError builds a PlaceholderUnresolvedError with keys sorted
// for stable reporting.
func unresolvedError(missingModules map[string][]string) error {
	keys := make([]string, 0, len(missingModules))
	for k := range missingModules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := &oerrors.PlaceholderUnresolvedError{}
	for _, k := range keys {
		e.Missing = append(e.Missing, oerrors.MissingPlaceholder{
			Key:     k,
			Modules: missingModules[k],
		})
	}
	return e
}
