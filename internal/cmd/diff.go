package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unityforge/cli/internal/core"
	"github.com/unityforge/cli/internal/diff"
	"github.com/unityforge/cli/internal/output"
	"github.com/unityforge/cli/internal/pipeline"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	var (
		genreFlag      string
		baseFlags      []string
		featureFlags   []string
		setFlags       []string
		noColorFlag    bool
		failOnDiffFlag bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two feature selections",
		Long: `Generate the project twice, once with the base feature set and once
with the target feature set, and show which files differ. Files a
feature does not touch are reported as unchanged.

Examples:
  unityforge diff --genre platformer --feature doubleJump
  unityforge diff --genre platformer --base doubleJump --feature doubleJump --feature dash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, diffOptions{
				genre:      genreFlag,
				base:       baseFlags,
				features:   featureFlags,
				sets:       setFlags,
				noColor:    noColorFlag,
				failOnDiff: failOnDiffFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&genreFlag, "genre", "g", "", "Genre profile to generate from (env: UNITYFORGE_GENRE)")
	cmd.Flags().StringArrayVar(&baseFlags, "base", nil, "Feature in the base selection (repeatable)")
	cmd.Flags().StringArrayVarP(&featureFlags, "feature", "f", nil, "Feature in the target selection (repeatable)")
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "Placeholder override applied to both selections (repeatable)")
	cmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored diff output")
	cmd.Flags().BoolVar(&failOnDiffFlag, "fail-on-diff", false, "Exit with code 1 when differences are found")

	return cmd
}

type diffOptions struct {
	genre      string
	base       []string
	features   []string
	sets       []string
	noColor    bool
	failOnDiff bool
}

func runDiff(cmd *cobra.Command, opts diffOptions) error {
	genre := opts.genre
	if genre == "" {
		genre = GetConfig().DefaultGenre
	}
	if genre == "" {
		return NewExitError(fmt.Errorf("no genre specified; use --genre or set defaultGenre in config"), ExitUnknownSelection)
	}

	overrides, err := parseSetFlags(opts.sets)
	if err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	p := pipeline.New(cat)

	base, err := p.Generate(cmd.Context(), core.GenerationRequest{
		GenreID:    genre,
		FeatureIDs: opts.base,
		Overrides:  overrides,
	})
	if err != nil {
		return NewExitError(fmt.Errorf("generating base selection: %w", err), ExitCodeFromError(err))
	}

	target, err := p.Generate(cmd.Context(), core.GenerationRequest{
		GenreID:    genre,
		FeatureIDs: opts.features,
		Overrides:  overrides,
	})
	if err != nil {
		return NewExitError(fmt.Errorf("generating target selection: %w", err), ExitCodeFromError(err))
	}

	useColor := !opts.noColor && output.IsTTY()
	result, err := diff.Compare(base, target, useColor)
	if err != nil {
		return err
	}

	printDiffResult(result, len(base.Files))

	if opts.failOnDiff && result.HasChanges {
		return NewExitError(fmt.Errorf("selections differ: %s", result.Summary()), ExitGeneralError)
	}
	return nil
}

// printDiffResult renders the diff report: added and removed paths first,
// then per-file diffs for modified content.
func printDiffResult(r *diff.Result, baseFileCount int) {
	if r.IsEmpty() {
		output.Println(output.FormatCheckmark("no changes"))
		return
	}

	for _, path := range r.Added {
		output.Println(output.StyleAdded.Render("+ " + path))
	}
	for _, path := range r.Removed {
		output.Println(output.StyleRemoved.Render("- " + path))
	}
	for _, m := range r.Modified {
		output.Println(output.StyleModified.Render("~ " + m.Path))
		if m.Diff != "" {
			output.Print(diff.IndentDiff(m.Diff, "    "))
		}
	}

	unchanged := baseFileCount - len(r.Removed) - len(r.Modified)
	output.Println(output.FormatSummary("%s, %d unchanged", r.Summary(), unchanged))
}
