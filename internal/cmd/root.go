package cmd

import (
	"github.com/spf13/cobra"

	"github.com/unityforge/cli/internal/catalog"
	"github.com/unityforge/cli/internal/config"
	"github.com/unityforge/cli/internal/output"
)

var (
	// Global flags
	configFlag     string
	catalogFlag    string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	forgeConfig *config.Config
)

// NewRootCmd creates the root command for the unityforge CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "unityforge",
		Short:         "Unity project template synthesizer",
		Long:          `unityforge composes Unity starter projects from a genre profile and a set of gameplay features, producing a deterministic file tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: UNITYFORGE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Path to an external catalog directory (env: UNITYFORGE_CATALOG_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewGenresCmd())
	rootCmd.AddCommand(NewFeaturesCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		output.Debug("config load error", "error", err)
		// Don't fail here - commands fall back to defaults
		cfg = config.DefaultConfig()
	}
	forgeConfig = cfg

	// Build LogConfig with precedence: flag > config > default(false)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if forgeConfig.Log.Timestamps != nil {
		logCfg.Timestamps = forgeConfig.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	if verboseFlag {
		output.Debug("initializing CLI",
			"config", configFlag,
			"catalog", resolvedCatalogDir(),
			"defaultGenre", forgeConfig.DefaultGenre,
			"outDir", forgeConfig.OutDir,
		)
	}

	return nil
}

// GetConfig returns the loaded unityforge configuration.
func GetConfig() *config.Config {
	if forgeConfig != nil {
		return forgeConfig
	}
	return config.DefaultConfig()
}

// resolvedCatalogDir returns the catalog directory with precedence:
// flag > config > "" (embedded catalog).
func resolvedCatalogDir() string {
	if catalogFlag != "" {
		return catalogFlag
	}
	if forgeConfig != nil {
		return forgeConfig.CatalogDir
	}
	return ""
}

// loadCatalog returns the catalog to operate on: an external directory
// when one is configured, the embedded catalog otherwise.
func loadCatalog() (*catalog.Catalog, error) {
	dir := resolvedCatalogDir()
	if dir == "" {
		return catalog.Default()
	}

	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return nil, err
	}

	output.Debug("loading external catalog", "dir", expanded)
	return catalog.LoadDir(expanded)
}
