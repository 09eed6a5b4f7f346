package binder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityforge/cli/internal/catalog"
	oerrors "github.com/unityforge/cli/internal/errors"
	"github.com/unityforge/cli/internal/resolver"
	"github.com/unityforge/cli/internal/testutil"
)

func resolve(t *testing.T, cat *catalog.Catalog, genreID string, features ...string) *resolver.Resolution {
	t.Helper()
	genre, err := cat.Genre(genreID)
	require.NoError(t, err)
	res, err := resolver.Resolve(cat, genre, features)
	require.NoError(t, err)
	return res
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestBindInsertsFragmentWithIndentation(t *testing.T) {
	cat := defaultCatalog(t)
	res := resolve(t, cat, "platformer", "doubleJump")

	bound, err := Bind(cat, res)
	require.NoError(t, err)

	var playerText string
	for _, bm := range bound {
		if bm.Module.ID == "playerController" {
			playerText = bm.Text
		}
	}
	require.NotEmpty(t, playerText)

	// The fields fragment lands at the marker's indentation.
	assert.Contains(t, playerText, "    private int jumpsUsed;")
	// Marker lines never survive binding.
	assert.NotContains(t, playerText, "[[anchor:")
}

func TestBindRemovesUnusedAnchorMarkers(t *testing.T) {
	cat := defaultCatalog(t)
	res := resolve(t, cat, "platformer")

	bound, err := Bind(cat, res)
	require.NoError(t, err)

	for _, bm := range bound {
		assert.NotContains(t, bm.Text, "[[anchor:", "module %s", bm.Module.ID)
	}
}

func TestBindPreservesSurroundingText(t *testing.T) {
	cat := defaultCatalog(t)
	res := resolve(t, cat, "platformer", "doubleJump")

	bound, err := Bind(cat, res)
	require.NoError(t, err)

	for _, bm := range bound {
		if bm.Module.ID != "playerController" {
			continue
		}
		assert.Contains(t, bm.Text, "public float moveSpeed = {{moveSpeed}}f;")
		assert.Contains(t, bm.Text, "void OnCollisionEnter2D(Collision2D collision)")
	}
}

func TestBindExclusiveAnchorConflict(t *testing.T) {
	cat := defaultCatalog(t)
	res := resolve(t, cat, "platformer", "sprint", "dash")

	_, err := NewPlan(cat, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrAnchorConflict)

	var conflictErr *oerrors.AnchorConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "playerController", conflictErr.Module)
	assert.Equal(t, "movement-speed", conflictErr.Anchor)
	assert.Equal(t, []string{"dash", "sprint"}, conflictErr.Features)
}

func TestBindSingleFragmentOnExclusiveAnchor(t *testing.T) {
	cat := defaultCatalog(t)
	res := resolve(t, cat, "platformer", "dash")

	bound, err := Bind(cat, res)
	require.NoError(t, err)

	for _, bm := range bound {
		if bm.Module.ID == "playerController" {
			assert.Contains(t, bm.Text, "moveSpeed * {{dashMultiplier}}f")
		}
	}
}

func TestBindOrderingPriorityThenCatalogOrder(t *testing.T) {
	fsys := testutil.CatalogFS(t,
		"genres:\n  - id: demo\n    modules:\n      - app\n",
		`features:
  - id: first
    fragments:
      - module: app
        anchor: body
        body: |
          low-first
  - id: second
    fragments:
      - module: app
        anchor: body
        priority: 10
        body: |
          high-second
  - id: third
    fragments:
      - module: app
        anchor: body
        body: |
          low-third
`,
		"modules:\n  - id: app\n    template: App.cs.tmpl\n    files:\n      - App.cs\n    anchors:\n      - name: body\n",
		map[string]string{"App.cs.tmpl": "class App\n{\n    // [[anchor:body]]\n}\n"},
	)
	cat, err := catalog.Load(fsys)
	require.NoError(t, err)
	res := resolve(t, cat, "demo", "third", "second", "first")

	bound, err := Bind(cat, res)
	require.NoError(t, err)
	require.Len(t, bound, 1)

	// Priority descending first, then catalog declaration order among
	// equal priorities. Selection order plays no part.
	hi := strings.Index(bound[0].Text, "high-second")
	lo1 := strings.Index(bound[0].Text, "low-first")
	lo3 := strings.Index(bound[0].Text, "low-third")
	require.NotEqual(t, -1, hi)
	require.NotEqual(t, -1, lo1)
	require.NotEqual(t, -1, lo3)
	assert.Less(t, hi, lo1)
	assert.Less(t, lo1, lo3)
}

func TestBindMultilineFragmentIndentation(t *testing.T) {
	cat := defaultCatalog(t)
	res := resolve(t, cat, "platformer", "doubleJump")

	bound, err := Bind(cat, res)
	require.NoError(t, err)

	for _, bm := range bound {
		if bm.Module.ID != "playerController" {
			continue
		}
		// Every line of the multi-line movement fragment carries the
		// marker's indentation.
		assert.Contains(t, bm.Text, "        if (Input.GetButtonDown(\"Jump\") && !isGrounded && jumpsUsed < {{maxJumps}})")
		assert.Contains(t, bm.Text, "            jumpsUsed++;")
		assert.Contains(t, bm.Text, "        }")
	}
}

func TestBindIsDeterministic(t *testing.T) {
	cat := defaultCatalog(t)

	a, err := Bind(cat, resolve(t, cat, "platformer", "doubleJump", "healthSystem", "enemyPatrol"))
	require.NoError(t, err)
	b, err := Bind(cat, resolve(t, cat, "platformer", "enemyPatrol", "doubleJump", "healthSystem"))
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Module.ID, b[i].Module.ID)
		assert.Equal(t, a[i].Text, b[i].Text, "module %s", a[i].Module.ID)
	}
}
