package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/unityforge/cli/internal/output"
)

// NewGenresCmd creates the genres command.
func NewGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List available genre profiles",
		Long:  `List the genre profiles available in the catalog, with their base modules.`,
		RunE:  runGenres,
	}
}

func runGenres(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	table := output.NewTable("GENRE", "DESCRIPTION", "BASE MODULES")
	for _, g := range cat.Genres() {
		table.Row(g.ID, g.Description, strings.Join(g.BaseModules, ", "))
	}

	output.Println(table.String())
	return nil
}
