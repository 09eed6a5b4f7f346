package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unityforge/cli/internal/core"
	oerrors "github.com/unityforge/cli/internal/errors"
)

// Catalog file names, relative to the catalog root.
const (
	genresFile   = "genres.yaml"
	featuresFile = "features.yaml"
	modulesFile  = "modules.yaml"
	templateDir  = "templates"
)

// YAML schema types. Entries are lists, not maps, so declaration order
// survives decoding.

type genreDoc struct {
	Genres []genreEntry `yaml:"genres"`
}

type genreEntry struct {
	ID          string            `yaml:"id"`
	Description string            `yaml:"description"`
	Modules     []string          `yaml:"modules"`
	Defaults    map[string]string `yaml:"defaults"`
}

type featureDoc struct {
	Features []featureEntry `yaml:"features"`
}

type featureEntry struct {
	ID          string            `yaml:"id"`
	Description string            `yaml:"description"`
	Requires    requiresEntry     `yaml:"requires"`
	Overrides   map[string]string `yaml:"overrides"`
	Fragments   []fragmentEntry   `yaml:"fragments"`
}

type requiresEntry struct {
	Modules  []string `yaml:"modules"`
	Features []string `yaml:"features"`
}

type fragmentEntry struct {
	Module   string `yaml:"module"`
	Anchor   string `yaml:"anchor"`
	Priority int    `yaml:"priority"`
	Body     string `yaml:"body"`
}

type moduleDoc struct {
	Modules []moduleEntry `yaml:"modules"`
}

type moduleEntry struct {
	ID       string        `yaml:"id"`
	Template string        `yaml:"template"`
	Files    []string      `yaml:"files"`
	Anchors  []anchorEntry `yaml:"anchors"`
}

type anchorEntry struct {
	Name      string `yaml:"name"`
	Exclusive bool   `yaml:"exclusive"`
}

// Load reads a catalog from the given filesystem and validates its
// internal consistency. Validation fails fast: a catalog with dangling
// references never becomes visible to the pipeline.
func Load(fsys fs.FS) (*Catalog, error) {
	var gd genreDoc
	if err := decodeYAML(fsys, genresFile, &gd); err != nil {
		return nil, err
	}
	var fd featureDoc
	if err := decodeYAML(fsys, featuresFile, &fd); err != nil {
		return nil, err
	}
	var md moduleDoc
	if err := decodeYAML(fsys, modulesFile, &md); err != nil {
		return nil, err
	}

	c := &Catalog{
		genreIndex:   make(map[string]int, len(gd.Genres)),
		featureIndex: make(map[string]int, len(fd.Features)),
		moduleIndex:  make(map[string]int, len(md.Modules)),
	}

	for _, m := range md.Modules {
		if _, dup := c.moduleIndex[m.ID]; dup {
			return nil, fmt.Errorf("duplicate module id %q in %s", m.ID, modulesFile)
		}
		tmpl, err := fs.ReadFile(fsys, path.Join(templateDir, m.Template))
		if err != nil {
			return nil, fmt.Errorf("reading template for module %q: %w", m.ID, err)
		}
		if len(m.Files) == 0 {
			return nil, fmt.Errorf("module %q declares no output files", m.ID)
		}
		mod := &core.Module{
			ID:       m.ID,
			Template: string(tmpl),
			Files:    m.Files,
		}
		for _, a := range m.Anchors {
			mod.Anchors = append(mod.Anchors, core.AnchorDecl{Name: a.Name, Exclusive: a.Exclusive})
		}
		c.moduleIndex[m.ID] = len(c.modules)
		c.modules = append(c.modules, mod)
	}

	for _, g := range gd.Genres {
		if _, dup := c.genreIndex[g.ID]; dup {
			return nil, fmt.Errorf("duplicate genre id %q in %s", g.ID, genresFile)
		}
		c.genreIndex[g.ID] = len(c.genres)
		c.genres = append(c.genres, &core.GenreProfile{
			ID:          g.ID,
			Description: g.Description,
			BaseModules: g.Modules,
			Defaults:    g.Defaults,
		})
	}

	for _, f := range fd.Features {
		if _, dup := c.featureIndex[f.ID]; dup {
			return nil, fmt.Errorf("duplicate feature id %q in %s", f.ID, featuresFile)
		}
		spec := &core.FeatureSpec{
			ID:               f.ID,
			Description:      f.Description,
			RequiresModules:  f.Requires.Modules,
			RequiresFeatures: f.Requires.Features,
			Overrides:        f.Overrides,
		}
		for _, fr := range f.Fragments {
			spec.Fragments = append(spec.Fragments, core.Fragment{
				TargetModule: fr.Module,
				Anchor:       fr.Anchor,
				Priority:     fr.Priority,
				Body:         fr.Body,
			})
		}
		c.featureIndex[f.ID] = len(c.features)
		c.features = append(c.features, spec)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadDir reads a catalog from a directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

func decodeYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// validate checks the catalog's structural invariants: every referenced
// module and feature exists, every declared anchor has a marker in its
// template, and every fragment targets a declared anchor.
func (c *Catalog) validate() error {
	for _, g := range c.genres {
		for _, id := range g.BaseModules {
			if _, ok := c.moduleIndex[id]; !ok {
				return &oerrors.UnknownModuleError{ID: id, Referrer: g.ID}
			}
		}
	}

	for _, m := range c.modules {
		present := make(map[string]bool)
		for _, name := range core.FindAnchors(m.Template) {
			present[name] = true
		}
		for _, a := range m.Anchors {
			if !present[a.Name] {
				return fmt.Errorf("module %q declares anchor %q but its template has no marker: %w",
					m.ID, a.Name, oerrors.ErrUnknownModule)
			}
		}
		for name := range present {
			if _, ok := m.Anchor(name); !ok {
				return fmt.Errorf("module %q template marks anchor %q but does not declare it: %w",
					m.ID, name, oerrors.ErrUnknownModule)
			}
		}
	}

	seenPaths := make(map[string]string)
	for _, m := range c.modules {
		for _, p := range m.Files {
			if owner, dup := seenPaths[p]; dup {
				return fmt.Errorf("output path %q declared by both %q and %q", p, owner, m.ID)
			}
			seenPaths[p] = m.ID
		}
	}

	for _, f := range c.features {
		for _, id := range f.RequiresModules {
			if _, ok := c.moduleIndex[id]; !ok {
				return &oerrors.UnknownModuleError{ID: id, Referrer: f.ID}
			}
		}
		for _, id := range f.RequiresFeatures {
			if _, ok := c.featureIndex[id]; !ok {
				return fmt.Errorf("feature %q requires %w", f.ID, &oerrors.UnknownFeatureError{ID: id})
			}
		}
		for _, fr := range f.Fragments {
			mi, ok := c.moduleIndex[fr.TargetModule]
			if !ok {
				return &oerrors.UnknownModuleError{ID: fr.TargetModule, Referrer: f.ID}
			}
			if _, ok := c.modules[mi].Anchor(fr.Anchor); !ok {
				return fmt.Errorf("feature %q targets undeclared anchor %q in module %q: %w",
					f.ID, fr.Anchor, fr.TargetModule, oerrors.ErrUnknownModule)
			}
		}
	}
	return nil
}
