// Package errors provides sentinel and typed errors for the unityforge CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions. Typed errors below wrap exactly one
// of these so callers can classify failures with errors.Is.
var (
	// ErrUnknownGenre indicates a genre id not present in the registry.
	ErrUnknownGenre = errors.New("unknown genre")

	// ErrUnknownFeature indicates a feature id not present in the catalog.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrUnknownModule indicates a module id not present in the catalog,
	// or an internal catalog inconsistency (dangling reference).
	ErrUnknownModule = errors.New("unknown module")

	// ErrCyclicDependency indicates a cycle in the feature dependency graph.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrAnchorConflict indicates two fragments competing for an exclusive anchor.
	ErrAnchorConflict = errors.New("anchor conflict")

	// ErrPlaceholderUnresolved indicates placeholders left without a value
	// after context merging.
	ErrPlaceholderUnresolved = errors.New("unresolved placeholder")
)

// UnknownGenreError reports a genre id the registry does not know.
type UnknownGenreError struct {
	// ID is the requested genre identifier.
	ID string

	// Known lists valid genre ids, in catalog declaration order.
	Known []string
}

func (e *UnknownGenreError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown genre %q", e.ID)
	}
	return fmt.Sprintf("unknown genre %q; valid genres: %s", e.ID, strings.Join(e.Known, ", "))
}

func (e *UnknownGenreError) Unwrap() error { return ErrUnknownGenre }

// UnknownFeatureError reports a feature id the catalog does not know.
type UnknownFeatureError struct {
	// ID is the requested feature identifier.
	ID string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("unknown feature %q", e.ID)
}

func (e *UnknownFeatureError) Unwrap() error { return ErrUnknownFeature }

// UnknownModuleError reports a module id the catalog does not know.
// Referrer names the genre or feature that declared the dangling reference.
type UnknownModuleError struct {
	ID       string
	Referrer string
}

func (e *UnknownModuleError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("unknown module %q", e.ID)
	}
	return fmt.Sprintf("unknown module %q (referenced by %q)", e.ID, e.Referrer)
}

func (e *UnknownModuleError) Unwrap() error { return ErrUnknownModule }

// CyclicDependencyError reports a cycle in the feature dependency graph.
// Path holds the ids along the cycle, first and last being the same feature.
type CyclicDependencyError struct {
	Path []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic feature dependency: %s", strings.Join(e.Path, " -> "))
}

func (e *CyclicDependencyError) Unwrap() error { return ErrCyclicDependency }

// AnchorConflictError reports two or more fragments occupying an anchor
// declared exclusive. Features names every competing feature id.
type AnchorConflictError struct {
	Module   string
	Anchor   string
	Features []string
}

func (e *AnchorConflictError) Error() string {
	return fmt.Sprintf("anchor %q in module %q is exclusive but claimed by features %s",
		e.Anchor, e.Module, strings.Join(e.Features, ", "))
}

func (e *AnchorConflictError) Unwrap() error { return ErrAnchorConflict }

// MissingPlaceholder records one unresolved placeholder key and every
// module whose bound text references it.
type MissingPlaceholder struct {
	Key     string
	Modules []string
}

// PlaceholderUnresolvedError reports every placeholder that survived
// context merging, collected across the whole module set in one pass.
type PlaceholderUnresolvedError struct {
	Missing []MissingPlaceholder
}

func (e *PlaceholderUnresolvedError) Error() string {
	var b strings.Builder
	b.WriteString("unresolved placeholders:")
	for _, m := range e.Missing {
		fmt.Fprintf(&b, " %s (in %s)", m.Key, strings.Join(m.Modules, ", "))
	}
	return b.String()
}

func (e *PlaceholderUnresolvedError) Unwrap() error { return ErrPlaceholderUnresolved }
