package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityforge/cli/internal/testutil"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestListCommands(t *testing.T) {
	require.NoError(t, execute(t, "genres"))
	require.NoError(t, execute(t, "features"))
	require.NoError(t, execute(t, "version"))
}

func TestGenerateToDirectory(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	err := execute(t,
		"generate",
		"--genre", "platformer",
		"--feature", "doubleJump",
		"--set", "gameTitle=Test Drive",
		"-o", "dir",
		"--out-dir", dir,
	)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Test Drive")
	assert.Contains(t, string(content), "Double jump")

	_, err = os.Stat(filepath.Join(dir, "Assets", "Scripts", "Player", "PlayerController.cs.meta"))
	require.NoError(t, err)
}

func TestGenerateUnknownGenre(t *testing.T) {
	err := execute(t, "generate", "--genre", "rpg")
	require.Error(t, err)
	assert.Equal(t, ExitUnknownSelection, ExitCodeFromError(err))
}

func TestGenerateConflictingFeatures(t *testing.T) {
	err := execute(t, "generate", "--genre", "platformer", "--feature", "dash", "--feature", "sprint")
	require.Error(t, err)
	assert.Equal(t, ExitAnchorConflict, ExitCodeFromError(err))
}

func TestGenerateMissingGenre(t *testing.T) {
	t.Setenv("UNITYFORGE_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))

	err := execute(t, "generate")
	require.Error(t, err)
	assert.Equal(t, ExitUnknownSelection, ExitCodeFromError(err))
}

func TestGenerateInvalidFormat(t *testing.T) {
	err := execute(t, "generate", "--genre", "platformer", "-o", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestDiffFailOnDiff(t *testing.T) {
	err := execute(t,
		"diff",
		"--genre", "platformer",
		"--feature", "doubleJump",
		"--no-color",
		"--fail-on-diff",
	)
	require.Error(t, err)
	assert.Equal(t, ExitGeneralError, ExitCodeFromError(err))
}

func TestDiffNoChanges(t *testing.T) {
	require.NoError(t, execute(t,
		"diff",
		"--genre", "puzzle",
		"--base", "gemCollectible",
		"--feature", "gemCollectible",
		"--no-color",
	))
}
