package output

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFileLine(t *testing.T) {
	line := FormatFileLine("README.md", "0123456789abcdef0123456789abcdef")

	assert.Contains(t, line, "README.md")
	// Hash is shortened to 12 characters.
	assert.Contains(t, line, "0123456789ab")
	assert.NotContains(t, line, "0123456789abc")
}

func TestFormatFileLineLongPath(t *testing.T) {
	long := strings.Repeat("a/", 40) + "file.cs"
	line := FormatFileLine(long, "deadbeef")

	// Long paths still get a separator before the hash.
	assert.Contains(t, line, "  deadbeef")
}

func TestFormatSummary(t *testing.T) {
	s := FormatSummary("generated %d files", 12)
	assert.Contains(t, s, "generated 12 files")
}

func TestRunWithSpinnerNonTTY(t *testing.T) {
	// Test processes have no TTY, so the action runs directly.
	ran := false
	err := RunWithSpinner(context.Background(), func() error {
		ran = true
		return nil
	}, WithTitle("Working..."))
	require.NoError(t, err)
	assert.True(t, ran)

	wantErr := errors.New("boom")
	err = RunWithSpinner(context.Background(), func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestTableRendering(t *testing.T) {
	table := NewTable("GENRE", "DESCRIPTION").
		Row("platformer", "Side-scrolling jump-and-run").
		Row("puzzle", "Grid-based puzzle game")

	rendered := table.String()
	assert.Contains(t, rendered, "GENRE")
	assert.Contains(t, rendered, "platformer")
	assert.Contains(t, rendered, "puzzle")
}
