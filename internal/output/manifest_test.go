package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/unityforge/cli/internal/core"
	"github.com/unityforge/cli/internal/testutil"
)

func testManifest() *core.ProjectManifest {
	return &core.ProjectManifest{
		ResolvedGenre:    "platformer",
		ResolvedFeatures: []string{"doubleJump"},
		ResolvedModules:  []string{"playerController", "readme"},
		Files: []core.GeneratedFile{
			{
				Path:        "Assets/Scripts/Player/PlayerController.cs",
				Content:     []byte("class P {}"),
				ContentHash: "abc123",
			},
			{
				Path:        "README.md",
				Content:     []byte("# Title"),
				ContentHash: "def456",
			},
		},
	}
}

func TestWriteManifestYAML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteManifest(testManifest(), ManifestOptions{Format: FormatYAML, Writer: &buf})
	require.NoError(t, err)

	var doc struct {
		ResolvedGenre string `yaml:"resolvedGenre"`
		Files         []struct {
			Path    string `yaml:"path"`
			Size    int    `yaml:"size"`
			Content string `yaml:"content"`
		} `yaml:"files"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "platformer", doc.ResolvedGenre)
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "Assets/Scripts/Player/PlayerController.cs", doc.Files[0].Path)
	assert.Equal(t, len("class P {}"), doc.Files[0].Size)
	assert.Equal(t, "# Title", doc.Files[1].Content)
}

func TestWriteManifestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteManifest(testManifest(), ManifestOptions{Format: FormatJSON, Writer: &buf})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "platformer", doc["resolvedGenre"])
}

func TestWriteManifestDirFormatRejected(t *testing.T) {
	var buf bytes.Buffer
	err := WriteManifest(testManifest(), ManifestOptions{Format: FormatDir, Writer: &buf})
	require.Error(t, err)
}

func TestWriteProjectDir(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	require.NoError(t, WriteProjectDir(testManifest(), dir))

	content, err := os.ReadFile(filepath.Join(dir, "Assets", "Scripts", "Player", "PlayerController.cs"))
	require.NoError(t, err)
	assert.Equal(t, "class P {}", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Title", string(content))
}
