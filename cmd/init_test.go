package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/teq/check"
)

func TestInitExampleDocument(t *testing.T) {
	dir, err := os.MkdirTemp("", "init-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "example"+check.DocExtension)
	require.NoError(t, initExampleDocument(path))

	doc, err := check.LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "example", doc.Name)

	// The example must hold up under its own checker.
	report, err := check.CheckDocument(path)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Equal)
	assert.False(t, report.Results[1].Equal)
	assert.Zero(t, report.Mismatches)
}
