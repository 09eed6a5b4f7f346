package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/unityforge/cli/internal/core"
	"github.com/unityforge/cli/internal/output"
)

// NewFeaturesCmd creates the features command.
func NewFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List available features",
		Long:  `List the features available in the catalog, with their module and feature dependencies.`,
		RunE:  runFeatures,
	}
}

func runFeatures(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	table := output.NewTable("FEATURE", "DESCRIPTION", "TARGETS", "REQUIRES")
	for _, f := range cat.Features() {
		table.Row(f.ID, f.Description, formatTargets(f), formatRequires(f.RequiresModules, f.RequiresFeatures))
	}

	output.Println(table.String())
	return nil
}

// formatTargets lists the distinct modules a feature's fragments touch.
func formatTargets(f *core.FeatureSpec) string {
	seen := make(map[string]bool)
	var targets []string
	for _, fr := range f.Fragments {
		if !seen[fr.TargetModule] {
			seen[fr.TargetModule] = true
			targets = append(targets, fr.TargetModule)
		}
	}
	if len(targets) == 0 {
		return "-"
	}
	return strings.Join(targets, ", ")
}

// formatRequires renders a feature's dependencies as a single cell.
func formatRequires(modules, features []string) string {
	parts := make([]string, 0, len(modules)+len(features))
	for _, m := range modules {
		parts = append(parts, "module:"+m)
	}
	for _, f := range features {
		parts = append(parts, "feature:"+f)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
