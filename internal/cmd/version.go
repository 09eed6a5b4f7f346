package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unityforge/cli/internal/output"
	"github.com/unityforge/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show unityforge CLI version information.

Displays the CLI version, commit, build date, and Go version.`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	output.Println(fmt.Sprintf("unityforge version %s", info.Version))
	output.Println(fmt.Sprintf("  Commit:    %s", info.GitCommit))
	output.Println(fmt.Sprintf("  Built:     %s", info.BuildDate))
	output.Println(fmt.Sprintf("  Go:        %s", info.GoVersion))

	return nil
}
