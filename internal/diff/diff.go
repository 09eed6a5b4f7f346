// Package diff compares two project manifests and renders YAML-aware
// per-file reports. Its main consumer is the `unityforge diff` command,
// which shows exactly what a feature selection changes — and, just as
// important, what it leaves untouched.
package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"

	"github.com/unityforge/cli/internal/core"
)

// Result represents a diff between two generated manifests.
type Result struct {
	// HasChanges indicates if there are differences.
	HasChanges bool

	// Added files (in target, not in base).
	Added []string

	// Removed files (in base, not in target).
	Removed []string

	// Modified files (present in both with different content).
	Modified []ModifiedFile
}

// ModifiedFile represents a file with changes.
type ModifiedFile struct {
	// Path is the file's relative output path.
	Path string

	// Diff is the rendered diff output.
	Diff string
}

// IsEmpty returns true if there are no changes.
func (r *Result) IsEmpty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Summary returns a summary string of changes.
func (r *Result) Summary() string {
	if r.IsEmpty() {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(r.Removed)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}

	return strings.Join(parts, ", ")
}

// Compare computes the difference between a base and a target manifest.
// File sets are compared by path; files present in both are compared by
// content hash, and modified files get a dyff-rendered report.
func Compare(base, target *core.ProjectManifest, useColor bool) (*Result, error) {
	result := &Result{
		Added:    make([]string, 0),
		Removed:  make([]string, 0),
		Modified: make([]ModifiedFile, 0),
	}

	baseByPath := make(map[string]core.GeneratedFile, len(base.Files))
	for _, f := range base.Files {
		baseByPath[f.Path] = f
	}

	for _, tf := range target.Files {
		bf, ok := baseByPath[tf.Path]
		if !ok {
			result.Added = append(result.Added, tf.Path)
			result.HasChanges = true
			continue
		}
		if bf.ContentHash == tf.ContentHash {
			continue
		}
		rendered, err := diffFiles(bf, tf, useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", tf.Path, err)
		}
		result.Modified = append(result.Modified, ModifiedFile{Path: tf.Path, Diff: rendered})
		result.HasChanges = true
	}

	targetPaths := make(map[string]bool, len(target.Files))
	for _, f := range target.Files {
		targetPaths[f.Path] = true
	}
	for _, bf := range base.Files {
		if !targetPaths[bf.Path] {
			result.Removed = append(result.Removed, bf.Path)
			result.HasChanges = true
		}
	}

	return result, nil
}

// fileDoc is the YAML shape a generated file is compared as. Wrapping the
// content in a document keeps dyff happy for non-YAML artifacts like C#
// sources.
type fileDoc struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// diffFiles renders a YAML-aware diff between two versions of one file.
func diffFiles(base, target core.GeneratedFile, useColor bool) (string, error) {
	baseInput, err := parseYAMLInput("base", base)
	if err != nil {
		return "", fmt.Errorf("parsing base: %w", err)
	}
	targetInput, err := parseYAMLInput("target", target)
	if err != nil {
		return "", fmt.Errorf("parsing target: %w", err)
	}

	report, err := dyff.CompareInputFiles(baseInput, targetInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

// parseYAMLInput wraps a generated file into a dyff input file.
func parseYAMLInput(name string, f core.GeneratedFile) (ytbx.InputFile, error) {
	data, err := yaml.Marshal(fileDoc{Path: f.Path, Content: string(f.Content)})
	if err != nil {
		return ytbx.InputFile{}, err
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	result := buf.String()

	lines := strings.Split(result, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// IndentDiff indents a diff string for display under a file path.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
