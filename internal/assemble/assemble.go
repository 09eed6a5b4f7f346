// Package assemble lays out substituted modules into a deterministic
// file tree and produces the project manifest.
package assemble

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/unityforge/cli/internal/core"
)

// Options carries the resolved identifiers recorded in the manifest.
type Options struct {
	Genre    string
	Features []string
	Modules  []string
}

// Assemble maps each substituted module to its declared output paths and
// builds the manifest. Files under Assets/ additionally fan out into a
// Unity .meta companion descriptor with a GUID derived from the path, so
// repeated runs stay byte-identical. The assembler performs no disk I/O;
// writing the tree is the packaging layer's job.
func Assemble(bound []*core.BoundModule, opts Options) (*core.ProjectManifest, error) {
	manifest := &core.ProjectManifest{
		ResolvedGenre:    opts.Genre,
		ResolvedFeatures: opts.Features,
		ResolvedModules:  opts.Modules,
	}

	seen := make(map[string]string)
	add := func(path string, content []byte, moduleID string) error {
		if owner, dup := seen[path]; dup {
			return fmt.Errorf("modules %q and %q both produce %q", owner, moduleID, path)
		}
		seen[path] = moduleID
		manifest.Files = append(manifest.Files, core.GeneratedFile{
			Path:        path,
			Content:     content,
			ContentHash: hashContent(content),
		})
		return nil
	}

	for _, bm := range bound {
		content := []byte(bm.Text)
		for _, path := range bm.Module.Files {
			if err := add(path, content, bm.Module.ID); err != nil {
				return nil, err
			}
			if strings.HasPrefix(path, "Assets/") {
				if err := add(path+".meta", metaDescriptor(path), bm.Module.ID); err != nil {
					return nil, err
				}
			}
		}
	}

	sort.Slice(manifest.Files, func(i, j int) bool {
		return manifest.Files[i].Path < manifest.Files[j].Path
	})
	return manifest, nil
}

// hashContent returns the hex SHA-256 of content. Two runs with identical
// inputs are verifiably identical outputs by comparing these hashes.
func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// metaDescriptor builds the companion .meta file for an asset path. The
// GUID is the first 32 hex digits of the path's SHA-256, keeping fan-out
// files deterministic with no filesystem timestamps or random ids.
func metaDescriptor(path string) []byte {
	sum := sha256.Sum256([]byte(path))
	guid := hex.EncodeToString(sum[:])[:32]

	importer := "DefaultImporter:\n  externalObjects: {}\n"
	if strings.HasSuffix(path, ".cs") {
		importer = "MonoImporter:\n  externalObjects: {}\n  serializedVersion: 2\n  defaultReferences: []\n"
	}
	return []byte("fileFormatVersion: 2\nguid: " + guid + "\n" + importer)
}
