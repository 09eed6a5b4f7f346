package assemble

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityforge/cli/internal/core"
)

func boundModule(id, text string, files ...string) *core.BoundModule {
	return &core.BoundModule{
		Module: &core.Module{ID: id, Files: files},
		Text:   text,
	}
}

func TestAssembleSortsByPath(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("readme", "# Title", "README.md"),
		boundModule("playerController", "class P {}", "Assets/Scripts/Player/PlayerController.cs"),
		boundModule("gameManager", "class G {}", "Assets/Scripts/Managers/GameManager.cs"),
	}

	manifest, err := Assemble(bound, Options{Genre: "platformer"})
	require.NoError(t, err)

	paths := manifest.Paths()
	assert.True(t, sort.StringsAreSorted(paths), "paths not sorted: %v", paths)
}

func TestAssembleMetaFanOut(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("playerController", "class P {}", "Assets/Scripts/Player/PlayerController.cs"),
		boundModule("mainScene", "scene", "Assets/Scenes/Main.unity"),
		boundModule("readme", "# Title", "README.md"),
	}

	manifest, err := Assemble(bound, Options{Genre: "platformer"})
	require.NoError(t, err)

	// Assets get a .meta companion; the README does not.
	_, ok := manifest.File("Assets/Scripts/Player/PlayerController.cs.meta")
	assert.True(t, ok)
	_, ok = manifest.File("Assets/Scenes/Main.unity.meta")
	assert.True(t, ok)
	_, ok = manifest.File("README.md.meta")
	assert.False(t, ok)

	assert.Len(t, manifest.Files, 5)
}

func TestAssembleMetaImporters(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("playerController", "class P {}", "Assets/Scripts/Player/PlayerController.cs"),
		boundModule("mainScene", "scene", "Assets/Scenes/Main.unity"),
	}

	manifest, err := Assemble(bound, Options{})
	require.NoError(t, err)

	csMeta, ok := manifest.File("Assets/Scripts/Player/PlayerController.cs.meta")
	require.True(t, ok)
	assert.Contains(t, string(csMeta.Content), "MonoImporter:")

	sceneMeta, ok := manifest.File("Assets/Scenes/Main.unity.meta")
	require.True(t, ok)
	assert.Contains(t, string(sceneMeta.Content), "DefaultImporter:")
}

func TestAssembleMetaGUIDIsDeterministic(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("playerController", "class P {}", "Assets/Scripts/Player/PlayerController.cs"),
	}

	a, err := Assemble(bound, Options{})
	require.NoError(t, err)
	b, err := Assemble(bound, Options{})
	require.NoError(t, err)

	metaA, _ := a.File("Assets/Scripts/Player/PlayerController.cs.meta")
	metaB, _ := b.File("Assets/Scripts/Player/PlayerController.cs.meta")
	assert.Equal(t, metaA.Content, metaB.Content)

	// The GUID is derived from the path, not the content.
	sum := sha256.Sum256([]byte("Assets/Scripts/Player/PlayerController.cs"))
	wantGUID := hex.EncodeToString(sum[:])[:32]
	assert.Contains(t, string(metaA.Content), "guid: "+wantGUID)
}

func TestAssembleContentHash(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("readme", "# Title", "README.md"),
	}

	manifest, err := Assemble(bound, Options{})
	require.NoError(t, err)

	f, ok := manifest.File("README.md")
	require.True(t, ok)

	sum := sha256.Sum256([]byte("# Title"))
	assert.Equal(t, hex.EncodeToString(sum[:]), f.ContentHash)
}

func TestAssembleDuplicatePath(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("readme", "# A", "README.md"),
		boundModule("notes", "# B", "README.md"),
	}

	_, err := Assemble(bound, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `both produce "README.md"`)
}

func TestAssembleRecordsResolvedSelection(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("readme", "# Title", "README.md"),
	}

	manifest, err := Assemble(bound, Options{
		Genre:    "platformer",
		Features: []string{"doubleJump"},
		Modules:  []string{"readme"},
	})
	require.NoError(t, err)

	assert.Equal(t, "platformer", manifest.ResolvedGenre)
	assert.Equal(t, []string{"doubleJump"}, manifest.ResolvedFeatures)
	assert.Equal(t, []string{"readme"}, manifest.ResolvedModules)
}

func TestAssembleModuleWithMultipleFiles(t *testing.T) {
	bound := []*core.BoundModule{
		boundModule("docs", "same content", "README.md", "Docs/INTRO.md"),
	}

	manifest, err := Assemble(bound, Options{})
	require.NoError(t, err)

	a, ok := manifest.File("README.md")
	require.True(t, ok)
	b, ok := manifest.File("Docs/INTRO.md")
	require.True(t, ok)
	assert.Equal(t, a.ContentHash, b.ContentHash)
}
