package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unityforge/cli/internal/core"
	"github.com/unityforge/cli/internal/output"
	"github.com/unityforge/cli/internal/pipeline"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	var (
		genreFlag    string
		featureFlags []string
		setFlags     []string
		formatFlag   string
		outDirFlag   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Unity starter project",
		Long: `Generate a Unity starter project from a genre profile and a set of
gameplay features.

The same genre, features, and overrides always produce byte-identical
output, regardless of the order features are passed in.

Examples:
  unityforge generate --genre platformer
  unityforge generate --genre platformer --feature doubleJump --feature dash
  unityforge generate --genre puzzle --set gameTitle="Gem Hunt" -o dir --out-dir ./gem-hunt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, generateOptions{
				genre:    genreFlag,
				features: featureFlags,
				sets:     setFlags,
				format:   formatFlag,
				outDir:   outDirFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&genreFlag, "genre", "g", "", "Genre profile to generate from (env: UNITYFORGE_GENRE)")
	cmd.Flags().StringArrayVarP(&featureFlags, "feature", "f", nil, "Feature to include (repeatable)")
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "Placeholder override as key=value (repeatable)")
	cmd.Flags().StringVarP(&formatFlag, "output", "o", "yaml", "Output format: yaml, json, dir")
	cmd.Flags().StringVar(&outDirFlag, "out-dir", "", "Directory to write files into with -o dir (env: UNITYFORGE_OUT_DIR)")

	return cmd
}

type generateOptions struct {
	genre    string
	features []string
	sets     []string
	format   string
	outDir   string
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	genre := opts.genre
	if genre == "" {
		genre = GetConfig().DefaultGenre
	}
	if genre == "" {
		return NewExitError(fmt.Errorf("no genre specified; use --genre or set defaultGenre in config"), ExitUnknownSelection)
	}

	format, ok := output.ParseFormat(opts.format)
	if !ok {
		return fmt.Errorf("invalid output format %q; valid formats: %s", opts.format, strings.Join(output.ValidFormats(), ", "))
	}

	overrides, err := parseSetFlags(opts.sets)
	if err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	req := core.GenerationRequest{
		GenreID:    genre,
		FeatureIDs: opts.features,
		Overrides:  overrides,
	}

	var manifest *core.ProjectManifest
	generateErr := output.RunWithSpinner(cmd.Context(), func() error {
		var err error
		manifest, err = pipeline.New(cat).Generate(cmd.Context(), req)
		return err
	},
		output.WithTitle(fmt.Sprintf("Generating %s project...", genre)),
		output.WithTimeout(time.Minute),
	)
	if generateErr != nil {
		return NewExitError(generateErr, ExitCodeFromError(generateErr))
	}

	switch format {
	case output.FormatDir:
		outDir := opts.outDir
		if outDir == "" {
			outDir = GetConfig().OutDir
		}
		if err := output.WriteProjectDir(manifest, outDir); err != nil {
			return err
		}
		printGenerateSummary(manifest, outDir)
	default:
		if err := output.WriteManifest(manifest, output.ManifestOptions{
			Format: format,
			Writer: os.Stdout,
		}); err != nil {
			return err
		}
	}

	return nil
}

// printGenerateSummary renders the per-file listing and completion line
// after a directory write.
func printGenerateSummary(m *core.ProjectManifest, outDir string) {
	for _, f := range m.Files {
		output.Println("  " + output.FormatFileLine(f.Path, f.ContentHash))
	}
	output.Println(output.FormatCheckmark(output.FormatSummary(
		"generated %d files (%s, features: %s) in %s",
		len(m.Files), m.ResolvedGenre, featureList(m.ResolvedFeatures), outDir,
	)))
}

func featureList(features []string) string {
	if len(features) == 0 {
		return "none"
	}
	return strings.Join(features, ", ")
}

// parseSetFlags parses repeated key=value override flags.
func parseSetFlags(sets []string) (map[string]string, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	overrides := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, found := strings.Cut(s, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set value %q; expected key=value", s)
		}
		overrides[key] = value
	}
	return overrides, nil
}
