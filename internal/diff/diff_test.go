package diff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityforge/cli/internal/catalog"
	"github.com/unityforge/cli/internal/core"
	"github.com/unityforge/cli/internal/pipeline"
)

func generate(t *testing.T, genre string, features ...string) *core.ProjectManifest {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	manifest, err := pipeline.New(cat).Generate(context.Background(), core.GenerationRequest{
		GenreID:    genre,
		FeatureIDs: features,
	})
	require.NoError(t, err)
	return manifest
}

func TestCompareIdenticalManifests(t *testing.T) {
	base := generate(t, "platformer", "doubleJump")
	target := generate(t, "platformer", "doubleJump")

	result, err := Compare(base, target, false)
	require.NoError(t, err)

	assert.True(t, result.IsEmpty())
	assert.False(t, result.HasChanges)
	assert.Equal(t, "No changes", result.Summary())
}

func TestCompareAddedFiles(t *testing.T) {
	base := generate(t, "platformer")
	target := generate(t, "platformer", "gemCollectible")

	result, err := Compare(base, target, false)
	require.NoError(t, err)

	assert.True(t, result.HasChanges)
	assert.Contains(t, result.Added, "Assets/Scripts/Collectibles/Collectible.cs")
	assert.Contains(t, result.Added, "Assets/Scripts/Collectibles/Collectible.cs.meta")
	assert.Empty(t, result.Removed)
}

func TestCompareRemovedFiles(t *testing.T) {
	base := generate(t, "platformer", "gemCollectible")
	target := generate(t, "platformer")

	result, err := Compare(base, target, false)
	require.NoError(t, err)

	assert.Contains(t, result.Removed, "Assets/Scripts/Collectibles/Collectible.cs")
	assert.Empty(t, result.Added)
}

func TestCompareModifiedFiles(t *testing.T) {
	base := generate(t, "platformer")
	target := generate(t, "platformer", "doubleJump")

	result, err := Compare(base, target, false)
	require.NoError(t, err)

	modifiedPaths := make([]string, len(result.Modified))
	for i, m := range result.Modified {
		modifiedPaths[i] = m.Path
	}
	assert.Contains(t, modifiedPaths, "Assets/Scripts/Player/PlayerController.cs")
	assert.Contains(t, modifiedPaths, "README.md")

	// Files the feature does not touch are neither modified nor removed.
	assert.NotContains(t, modifiedPaths, "Assets/Scripts/Managers/GameManager.cs")

	for _, m := range result.Modified {
		assert.NotEmpty(t, m.Diff, "modified file %s has no rendered diff", m.Path)
	}
}

func TestCompareSummary(t *testing.T) {
	result := &Result{
		Added:    []string{"a", "b"},
		Removed:  []string{"c"},
		Modified: []ModifiedFile{{Path: "d"}},
	}
	assert.Equal(t, "2 added, 1 removed, 1 modified", result.Summary())

	onlyAdded := &Result{Added: []string{"a"}}
	assert.Equal(t, "1 added", onlyAdded.Summary())
}

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
	assert.Equal(t, "  one\n  two\n", IndentDiff("one\ntwo", "  "))
	// Blank lines are dropped rather than indented.
	assert.Equal(t, "  one\n  two\n", IndentDiff("one\n\ntwo", "  "))
}
