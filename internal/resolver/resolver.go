// Package resolver computes the transitive closure of modules and
// features required by a genre plus a feature selection.
package resolver

import (
	"sort"

	"github.com/unityforge/cli/internal/catalog"
	"github.com/unityforge/cli/internal/core"
	oerrors "github.com/unityforge/cli/internal/errors"
)

// Resolution is the deterministic output of dependency resolution: the
// module closure and the effective feature set (selected plus implied),
// both in catalog declaration order.
type Resolution struct {
	Modules  []*core.Module
	Features []*core.FeatureSpec
}

// ModuleIDs returns the resolved module ids in order.
func (r *Resolution) ModuleIDs() []string {
	ids := make([]string, len(r.Modules))
	for i, m := range r.Modules {
		ids[i] = m.ID
	}
	return ids
}

// FeatureIDs returns the effective feature ids in order.
func (r *Resolution) FeatureIDs() []string {
	ids := make([]string, len(r.Features))
	for i, f := range r.Features {
		ids[i] = f.ID
	}
	return ids
}

// DFS visit states for cycle detection.
const (
	unvisited = iota
	onStack
	done
)

// Resolve expands the genre's base modules and the selected features into
// the full closure of required modules and implied features.
//
// Unknown identifiers abort the whole resolution with no partial result.
// A feature revisited while still on the DFS stack is a cycle. The output
// order is catalog declaration order, never input iteration order, so the
// result is identical for any enumeration of the same selection.
func Resolve(cat *catalog.Catalog, genre *core.GenreProfile, featureIDs []string) (*Resolution, error) {
	moduleSet := make(map[string]bool)
	featureSet := make(map[string]bool)

	for _, id := range genre.BaseModules {
		if _, err := cat.Module(id); err != nil {
			return nil, err
		}
		moduleSet[id] = true
	}

	state := make(map[string]int)
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case onStack:
			return &oerrors.CyclicDependencyError{Path: cyclePath(stack, id)}
		}

		f, err := cat.Feature(id)
		if err != nil {
			return err
		}

		state[id] = onStack
		stack = append(stack, id)

		for _, mid := range f.RequiresModules {
			if _, err := cat.Module(mid); err != nil {
				return err
			}
			moduleSet[mid] = true
		}
		// Fragments imply their target module even when the feature does
		// not declare it: every fragment must have a home in the closure.
		for _, fr := range f.Fragments {
			if _, err := cat.Module(fr.TargetModule); err != nil {
				return err
			}
			moduleSet[fr.TargetModule] = true
		}
		for _, fid := range f.RequiresFeatures {
			if err := visit(fid); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		featureSet[id] = true
		return nil
	}

	for _, id := range dedupe(featureIDs) {
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	res := &Resolution{}
	for id := range moduleSet {
		m, err := cat.Module(id)
		if err != nil {
			return nil, err
		}
		res.Modules = append(res.Modules, m)
	}
	sort.Slice(res.Modules, func(i, j int) bool {
		return cat.ModuleOrder(res.Modules[i].ID) < cat.ModuleOrder(res.Modules[j].ID)
	})

	for id := range featureSet {
		f, err := cat.Feature(id)
		if err != nil {
			return nil, err
		}
		res.Features = append(res.Features, f)
	}
	sort.Slice(res.Features, func(i, j int) bool {
		return cat.FeatureOrder(res.Features[i].ID) < cat.FeatureOrder(res.Features[j].ID)
	})

	return res, nil
}

// cyclePath returns the portion of the DFS stack from the revisited node
// onward, closed with the node itself.
func cyclePath(stack []string, id string) []string {
	start := 0
	for i, s := range stack {
		if s == id {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	path = append(path, id)
	return path
}

// dedupe removes duplicate ids, preserving first appearance. Output order
// does not matter for determinism: the final sets are re-sorted by
// catalog declaration order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
