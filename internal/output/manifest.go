package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/unityforge/cli/internal/core"
)

// ManifestOptions controls manifest output formatting.
type ManifestOptions struct {
	// Format specifies output format: "yaml" or "json"
	Format Format
	// Writer is the output destination
	Writer io.Writer
}

// manifestDoc is the serialized manifest shape. File content is emitted
// as text: every generated artifact is textual (C# sources, scene YAML,
// descriptors).
type manifestDoc struct {
	ResolvedGenre    string            `yaml:"resolvedGenre" json:"resolvedGenre"`
	ResolvedFeatures []string          `yaml:"resolvedFeatures" json:"resolvedFeatures"`
	ResolvedModules  []string          `yaml:"resolvedModules" json:"resolvedModules"`
	Files            []manifestFileDoc `yaml:"files" json:"files"`
}

type manifestFileDoc struct {
	Path        string `yaml:"path" json:"path"`
	ContentHash string `yaml:"contentHash" json:"contentHash"`
	Size        int    `yaml:"size" json:"size"`
	Content     string `yaml:"content" json:"content"`
}

func buildManifestDoc(m *core.ProjectManifest) manifestDoc {
	doc := manifestDoc{
		ResolvedGenre:    m.ResolvedGenre,
		ResolvedFeatures: m.ResolvedFeatures,
		ResolvedModules:  m.ResolvedModules,
	}
	for _, f := range m.Files {
		doc.Files = append(doc.Files, manifestFileDoc{
			Path:        f.Path,
			ContentHash: f.ContentHash,
			Size:        len(f.Content),
			Content:     string(f.Content),
		})
	}
	return doc
}

// WriteManifest writes the manifest to the writer in the given format.
func WriteManifest(m *core.ProjectManifest, opts ManifestOptions) error {
	doc := buildManifestDoc(m)

	switch opts.Format {
	case FormatJSON:
		encoder := json.NewEncoder(opts.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(opts.Writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	case FormatDir:
		return fmt.Errorf("format %s not supported for manifest output", opts.Format)
	}
	return fmt.Errorf("unsupported format %q", opts.Format)
}

// WriteProjectDir writes the manifest's files into a directory tree.
// This is the packaging boundary: the synthesis core itself never
// touches the filesystem.
func WriteProjectDir(m *core.ProjectManifest, outDir string) error {
	for _, f := range m.Files {
		path := filepath.Join(outDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path, err)
		}
		Debug("wrote file", "path", f.Path, "bytes", len(f.Content))
	}
	return nil
}
