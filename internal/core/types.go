// Package core defines the domain types shared across the synthesis pipeline.
package core

// GenreProfile describes a genre's base module set and default placeholder
// values. Profiles are immutable after catalog load.
type GenreProfile struct {
	// ID is the genre identifier (e.g. "platformer").
	ID string

	// Description is a one-line summary shown in listings.
	Description string

	// BaseModules lists module ids always emitted for this genre,
	// in catalog declaration order.
	BaseModules []string

	// Defaults maps placeholder keys to the genre's default values.
	// Lowest precedence in the merged substitution context.
	Defaults map[string]string
}

// Fragment is a snippet of template text contributed by a feature,
// targeting one named anchor in one module.
type Fragment struct {
	// TargetModule is the module id whose template receives this fragment.
	TargetModule string

	// Anchor is the named insertion point inside the target template.
	Anchor string

	// Priority orders fragments within an anchor; higher runs first.
	Priority int

	// Body is the fragment text inserted at the anchor.
	Body string
}

// FeatureSpec describes one selectable feature: the fragments it
// contributes, the modules and features it requires, and the placeholder
// values it overrides. Immutable after catalog load.
type FeatureSpec struct {
	ID          string
	Description string

	// Fragments lists the code fragments this feature contributes.
	Fragments []Fragment

	// RequiresModules lists module ids this feature depends on.
	RequiresModules []string

	// RequiresFeatures lists feature ids this feature implies. Implied
	// features are pulled into the effective set during resolution.
	RequiresFeatures []string

	// Overrides maps placeholder keys to feature-level values. Applied
	// over genre defaults, under caller overrides.
	Overrides map[string]string
}

// AnchorDecl declares a named anchor of a module template. Exclusivity is
// declared here, on the module, so conflicts are detectable before binding.
type AnchorDecl struct {
	Name      string
	Exclusive bool
}

// Module is a named template source unit corresponding to one logical
// output artifact. Immutable after catalog load.
type Module struct {
	// ID is the module identifier (e.g. "playerController").
	ID string

	// Template is the raw template text, containing zero or more anchor
	// markers and placeholder markers.
	Template string

	// Files lists the relative output paths this module fans out to,
	// in declaration order. Paths are deterministic per module.
	Files []string

	// Anchors declares the named insertion points of Template.
	Anchors []AnchorDecl
}

// Anchor returns the declaration for the named anchor, if present.
func (m *Module) Anchor(name string) (AnchorDecl, bool) {
	for _, a := range m.Anchors {
		if a.Name == name {
			return a, true
		}
	}
	return AnchorDecl{}, false
}

// GenerationRequest is the input contract from the request-handling layer.
// FeatureIDs may contain duplicates and arrive in any order; the pipeline
// treats them as a set.
type GenerationRequest struct {
	GenreID    string
	FeatureIDs []string

	// Overrides are caller-supplied placeholder values, highest precedence.
	Overrides map[string]string
}

// BoundModule is a module after fragment merging. Transient: owned by one
// pipeline run and discarded after substitution.
type BoundModule struct {
	Module *Module

	// Text is the template text with fragments merged at their anchors.
	// Placeholders are not resolved until substitution.
	Text string
}

// GeneratedFile is one output file: relative path plus final content.
// Immutable once produced.
type GeneratedFile struct {
	// Path is the relative output path, using forward slashes.
	Path string `json:"path"`

	// Content is the final file content.
	Content []byte `json:"content"`

	// ContentHash is the hex SHA-256 of Content.
	ContentHash string `json:"contentHash"`
}

// ProjectManifest is the pipeline's externally visible result: the full
// deterministic description of all generated output for one request.
type ProjectManifest struct {
	// Files is sorted by path for stable enumeration.
	Files []GeneratedFile `json:"files"`

	// ResolvedGenre is the genre the manifest was produced from.
	ResolvedGenre string `json:"resolvedGenre"`

	// ResolvedFeatures is the effective feature set, including implied
	// features, in catalog declaration order.
	ResolvedFeatures []string `json:"resolvedFeatures"`

	// ResolvedModules is the module closure, in catalog declaration order.
	ResolvedModules []string `json:"resolvedModules"`
}

// Paths returns the manifest's file paths in manifest order.
func (m *ProjectManifest) Paths() []string {
	paths := make([]string, len(m.Files))
	for i, f := range m.Files {
		paths[i] = f.Path
	}
	return paths
}

// File returns the generated file at path, if present.
func (m *ProjectManifest) File(path string) (GeneratedFile, bool) {
	for _, f := range m.Files {
		if f.Path == path {
			return f, true
		}
	}
	return GeneratedFile{}, false
}
