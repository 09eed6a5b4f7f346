// Package pipeline orchestrates the synthesis phases: dependency
// resolution, template binding, placeholder substitution, and project
// assembly.
package pipeline

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/unityforge/cli/internal/assemble"
	"github.com/unityforge/cli/internal/binder"
	"github.com/unityforge/cli/internal/catalog"
	"github.com/unityforge/cli/internal/core"
	oerrors "github.com/unityforge/cli/internal/errors"
	"github.com/unityforge/cli/internal/output"
	"github.com/unityforge/cli/internal/resolver"
	"github.com/unityforge/cli/internal/subst"
)

// Pipeline turns a GenerationRequest into a ProjectManifest. The catalog
// is immutable and shared; every mutable structure of a run is owned by
// that run, so one Pipeline serves concurrent requests without
// synchronization.
type Pipeline struct {
	cat *catalog.Catalog
}

// New creates a Pipeline over the given catalog.
func New(cat *catalog.Catalog) *Pipeline {
	return &Pipeline{cat: cat}
}

// moduleResult is the outcome of one per-module bind+substitute worker.
type moduleResult struct {
	index   int
	bound   *core.BoundModule
	missing []string
	err     error
}

// Generate executes the pipeline.
//
// Phase sequence:
//  1. RESOLVE:    genre lookup + dependency closure (fail-fast on unknown
//     ids and cycles)
//  2. PLAN:       fragment grouping + exclusive-anchor validation
//  3. BIND+SUBST: per-module merge and substitution, fanned out across
//     goroutines and joined before assembly
//  4. ASSEMBLE:   deterministic file tree + manifest
//
// Either a complete manifest is returned or a typed error is; there is no
// partial result. Unresolved placeholders are accumulated across the
// whole module set and reported in one error.
func (p *Pipeline) Generate(ctx context.Context, req core.GenerationRequest) (*core.ProjectManifest, error) {
	runID := uuid.NewString()

	genre, err := p.cat.Genre(req.GenreID)
	if err != nil {
		return nil, err
	}

	log := output.ScopedLogger(genre.ID)

	res, err := resolver.Resolve(p.cat, genre, req.FeatureIDs)
	if err != nil {
		return nil, err
	}

	log.Debug("selection resolved",
		"run", runID,
		"features", len(res.Features),
		"modules", len(res.Modules),
	)

	plan, err := binder.NewPlan(p.cat, res)
	if err != nil {
		return nil, err
	}

	values := subst.MergeContext(genre, res.Features, req.Overrides)

	results := make(chan moduleResult, len(res.Modules))
	var wg sync.WaitGroup
	for i, mod := range res.Modules {
		wg.Add(1)
		go func(i int, mod *core.Module) {
			defer wg.Done()
			results <- bindAndSubstitute(i, mod, plan, values)
		}(i, mod)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	bound := make([]*core.BoundModule, len(res.Modules))
	missingModules := make(map[string][]string)
	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		bound[r.index] = r.bound
		for _, key := range r.missing {
			missingModules[key] = append(missingModules[key], r.bound.Module.ID)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(missingModules) > 0 {
		return nil, unresolvedError(missingModules)
	}

	manifest, err := assemble.Assemble(bound, assemble.Options{
		Genre:    genre.ID,
		Features: res.FeatureIDs(),
		Modules:  res.ModuleIDs(),
	})
	if err != nil {
		return nil, err
	}

	log.Debug("manifest assembled", "run", runID, "files", len(manifest.Files))
	return manifest, nil
}

// bindAndSubstitute runs in an isolated goroutine: no two modules share
// bound state, so the only synchronization is the final join.
func bindAndSubstitute(i int, mod *core.Module, plan *binder.Plan, values map[string]string) moduleResult {
	bm, err := plan.BindModule(mod)
	if err != nil {
		return moduleResult{index: i, err: err}
	}
	text, missing := subst.ApplyText(bm.Text, values)
	return moduleResult{
		index:   i,
		bound:   &core.BoundModule{Module: mod, Text: text},
		missing: missing,
	}
}

// unresolvedError builds the accumulated PlaceholderUnresolved report,
// keys sorted for stable output, module lists in worker-arrival order
// replaced by a sorted copy so the error text is deterministic.
func unresolvedError(missingModules map[string][]string) error {
	keys := make([]string, 0, len(missingModules))
	for k := range missingModules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := &oerrors.PlaceholderUnresolvedError{}
	for _, k := range keys {
		modules := append([]string(nil), missingModules[k]...)
		sort.Strings(modules)
		e.Missing = append(e.Missing, oerrors.MissingPlaceholder{Key: k, Modules: modules})
	}
	return e
}
