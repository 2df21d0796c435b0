package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnoverse/teq"
	"github.com/gnoverse/teq/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `name: sample
premise:
  facts:
    - left: a
      right: b
  aliases:
    - symbol: pair
      params: [x]
      equivalence: f(x, x)
queries:
  - left: f(a, a)
    right: pair!(b)
    want: true
  - left: a
    right: c
`

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "check-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	path := filepath.Join(tmpDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocument(t *testing.T) {
	path := writeDocument(t, "sample.teq.yaml", sampleDocument)

	doc, err := LoadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, "sample", doc.Name)
	require.Len(t, doc.Premise.Facts, 1)
	assert.Equal(t, "a", doc.Premise.Facts[0].Left)
	assert.Equal(t, "b", doc.Premise.Facts[0].Right)
	require.Len(t, doc.Premise.Aliases, 1)
	assert.Equal(t, "pair", doc.Premise.Aliases[0].Symbol)
	assert.Equal(t, []string{"x"}, doc.Premise.Aliases[0].Params)

	require.Len(t, doc.Queries, 2)
	require.NotNil(t, doc.Queries[0].Want)
	assert.True(t, *doc.Queries[0].Want)
	assert.Nil(t, doc.Queries[1].Want)
}

func TestLoadDocumentDefaultName(t *testing.T) {
	path := writeDocument(t, "widgets.teq.yaml", "queries:\n  - left: a\n    right: a\n")

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "widgets", doc.Name)
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument("no-such-file.teq.yaml")
	assert.Error(t, err)
}

func TestLoadDocumentInvalidYAML(t *testing.T) {
	path := writeDocument(t, "bad.teq.yaml", "queries: [\n")

	_, err := LoadDocument(path)
	assert.Error(t, err)
}

func TestBuildPremise(t *testing.T) {
	spec := PremiseSpec{
		Facts: []FactSpec{
			{Left: "a", Right: "b"},
		},
		Aliases: []AliasSpec{
			{Symbol: "pair", Params: []string{"x"}, Equivalence: "f(x, x)"},
		},
	}

	p, err := BuildPremise(spec)
	require.NoError(t, err)

	left, err := syntax.Parse("f(a, a)")
	require.NoError(t, err)
	right, err := syntax.Parse("pair!(b)")
	require.NoError(t, err)
	assert.True(t, teq.Equals(left, right, p))
}

func TestBuildPremiseDuplicateAlias(t *testing.T) {
	spec := PremiseSpec{
		Aliases: []AliasSpec{
			{Symbol: "pair", Params: []string{"x"}, Equivalence: "f(x, x)"},
			{Symbol: "pair", Params: []string{"y"}, Equivalence: "g(y)"},
		},
	}

	_, err := BuildPremise(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined twice")
}

func TestBuildPremiseInvalidTerm(t *testing.T) {
	spec := PremiseSpec{
		Facts: []FactSpec{
			{Left: "f(", Right: "b"},
		},
	}

	_, err := BuildPremise(spec)
	assert.Error(t, err)
}

func TestBuildQueries(t *testing.T) {
	want := true
	queries, err := BuildQueries([]QuerySpec{
		{Left: "f(a)", Right: "g(b)", Want: &want},
		{Left: "a", Right: "b"},
	})
	require.NoError(t, err)

	require.Len(t, queries, 2)
	assert.Equal(t, "f(a)", queries[0].Left.String())
	assert.Equal(t, "g(b)", queries[0].Right.String())
	require.NotNil(t, queries[0].Want)
	assert.True(t, *queries[0].Want)
	assert.Nil(t, queries[1].Want)
}

func TestBuildQueriesInvalidTerm(t *testing.T) {
	_, err := BuildQueries([]QuerySpec{
		{Left: "a", Right: "f(a,,b)"},
	})
	assert.Error(t, err)
}
