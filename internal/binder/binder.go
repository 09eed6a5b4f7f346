// Package binder merges feature fragments into module templates at their
// declared anchors, in a deterministic order.
package binder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/unityforge/cli/internal/catalog"
	"github.com/unityforge/cli/internal/core"
	oerrors "github.com/unityforge/cli/internal/errors"
	"github.com/unityforge/cli/internal/resolver"
)

// Placement is one fragment scheduled for insertion, tagged with the
// contributing feature and its catalog declaration index.
type Placement struct {
	FeatureID string
	Fragment  core.Fragment

	featureOrder int
}

// Plan holds every placement for a resolution, grouped by module and
// anchor, with exclusivity conflicts already rejected. Building the plan
// up front keeps per-module binding free of structural errors, so modules
// can be bound concurrently.
type Plan struct {
	// placements is keyed by module id, then anchor name.
	placements map[string]map[string][]Placement
}

// NewPlan groups the resolution's fragments and validates anchor
// occupancy. Two or more fragments claiming an anchor declared exclusive
// fail with AnchorConflict naming every contributing feature.
func NewPlan(cat *catalog.Catalog, res *resolver.Resolution) (*Plan, error) {
	p := &Plan{placements: make(map[string]map[string][]Placement)}

	for _, f := range res.Features {
		for _, fr := range f.Fragments {
			byAnchor, ok := p.placements[fr.TargetModule]
			if !ok {
				byAnchor = make(map[string][]Placement)
				p.placements[fr.TargetModule] = byAnchor
			}
			byAnchor[fr.Anchor] = append(byAnchor[fr.Anchor], Placement{
				FeatureID:    f.ID,
				Fragment:     fr,
				featureOrder: cat.FeatureOrder(f.ID),
			})
		}
	}

	for moduleID, byAnchor := range p.placements {
		mod, err := cat.Module(moduleID)
		if err != nil {
			return nil, err
		}
		for anchor, pls := range byAnchor {
			decl, ok := mod.Anchor(anchor)
			if !ok {
				return nil, fmt.Errorf("fragment targets undeclared anchor %q in module %q: %w",
					anchor, moduleID, oerrors.ErrUnknownModule)
			}
			if decl.Exclusive && len(pls) > 1 {
				features := make([]string, len(pls))
				for i, pl := range pls {
					features[i] = pl.FeatureID
				}
				sort.Strings(features)
				return nil, &oerrors.AnchorConflictError{
					Module:   moduleID,
					Anchor:   anchor,
					Features: features,
				}
			}
			// Priority descending, catalog declaration order ascending.
			sort.SliceStable(pls, func(i, j int) bool {
				if pls[i].Fragment.Priority != pls[j].Fragment.Priority {
					return pls[i].Fragment.Priority > pls[j].Fragment.Priority
				}
				return pls[i].featureOrder < pls[j].featureOrder
			})
			byAnchor[anchor] = pls
		}
	}

	return p, nil
}

// BindModule merges the plan's fragments for one module into its template
// text. Surrounding text is preserved verbatim; marker lines are replaced
// by the ordered fragment bodies, or removed when no fragment targets
// them. The result owns no shared state and may be produced concurrently
// with other modules.
func (p *Plan) BindModule(mod *core.Module) (*core.BoundModule, error) {
	byAnchor := p.placements[mod.ID]
	bound := make(map[string]bool, len(byAnchor))

	marker := core.AnchorMarker()
	lines := strings.Split(mod.Template, "\n")
	var out []string

	for _, line := range lines {
		sub := marker.FindStringSubmatch(line)
		if sub == nil {
			out = append(out, line)
			continue
		}
		indent, anchor := sub[1], sub[2]
		pls := byAnchor[anchor]
		bound[anchor] = true
		for _, pl := range pls {
			out = append(out, indentBody(pl.Fragment.Body, indent)...)
		}
	}

	for anchor := range byAnchor {
		if !bound[anchor] {
			return nil, fmt.Errorf("anchor %q not found in template of module %q: %w",
				anchor, mod.ID, oerrors.ErrUnknownModule)
		}
	}

	return &core.BoundModule{Module: mod, Text: strings.Join(out, "\n")}, nil
}

// Bind binds every module of the resolution sequentially. The pipeline
// fans BindModule out across goroutines instead; this form serves tests
// and single-module callers.
func Bind(cat *catalog.Catalog, res *resolver.Resolution) ([]*core.BoundModule, error) {
	plan, err := NewPlan(cat, res)
	if err != nil {
		return nil, err
	}
	bound := make([]*core.BoundModule, 0, len(res.Modules))
	for _, mod := range res.Modules {
		bm, err := plan.BindModule(mod)
		if err != nil {
			return nil, err
		}
		bound = append(bound, bm)
	}
	return bound, nil
}

// indentBody splits a fragment body into lines, trims the trailing blank
// line a YAML block scalar leaves behind, and prefixes each non-empty
// line with the anchor marker's indentation.
func indentBody(body, indent string) []string {
	lines := strings.Split(body, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			out[i] = ""
			continue
		}
		out[i] = indent + l
	}
	return out
}
