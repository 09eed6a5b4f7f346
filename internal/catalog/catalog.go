// Package catalog provides the genre profile registry, the feature
// catalog, and the module template catalog. All three are immutable after
// load and safe for unsynchronized concurrent reads.
package catalog

import (
	"github.com/unityforge/cli/internal/core"
	oerrors "github.com/unityforge/cli/internal/errors"
)

// Catalog holds the loaded genre, feature, and module definitions.
// Declaration order is preserved from the catalog files; the pipeline
// uses it for deterministic ordering independent of request iteration
// order.
type Catalog struct {
	genres   []*core.GenreProfile
	features []*core.FeatureSpec
	modules  []*core.Module

	genreIndex   map[string]int
	featureIndex map[string]int
	moduleIndex  map[string]int
}

// Genre returns the profile for the given genre id.
func (c *Catalog) Genre(id string) (*core.GenreProfile, error) {
	i, ok := c.genreIndex[id]
	if !ok {
		return nil, &oerrors.UnknownGenreError{ID: id, Known: c.GenreIDs()}
	}
	return c.genres[i], nil
}

// Feature returns the spec for the given feature id.
func (c *Catalog) Feature(id string) (*core.FeatureSpec, error) {
	i, ok := c.featureIndex[id]
	if !ok {
		return nil, &oerrors.UnknownFeatureError{ID: id}
	}
	return c.features[i], nil
}

// Module returns the module for the given module id.
func (c *Catalog) Module(id string) (*core.Module, error) {
	i, ok := c.moduleIndex[id]
	if !ok {
		return nil, &oerrors.UnknownModuleError{ID: id}
	}
	return c.modules[i], nil
}

// DependenciesOf returns the module ids and feature ids the given feature
// requires, as declared in the catalog.
func (c *Catalog) DependenciesOf(id string) (modules, features []string, err error) {
	f, err := c.Feature(id)
	if err != nil {
		return nil, nil, err
	}
	return f.RequiresModules, f.RequiresFeatures, nil
}

// Genres returns all genre profiles in declaration order.
func (c *Catalog) Genres() []*core.GenreProfile { return c.genres }

// Features returns all feature specs in declaration order.
func (c *Catalog) Features() []*core.FeatureSpec { return c.features }

// Modules returns all modules in declaration order.
func (c *Catalog) Modules() []*core.Module { return c.modules }

// GenreIDs returns all genre ids in declaration order.
func (c *Catalog) GenreIDs() []string {
	ids := make([]string, len(c.genres))
	for i, g := range c.genres {
		ids[i] = g.ID
	}
	return ids
}

// FeatureOrder returns the declaration index of a feature id. Unknown ids
// sort last; callers look ids up before relying on the order.
func (c *Catalog) FeatureOrder(id string) int {
	if i, ok := c.featureIndex[id]; ok {
		return i
	}
	return len(c.features)
}

// ModuleOrder returns the declaration index of a module id.
func (c *Catalog) ModuleOrder(id string) int {
	if i, ok := c.moduleIndex[id]; ok {
		return i
	}
	return len(c.modules)
}
