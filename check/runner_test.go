package check

import (
	"context"
	"testing"

	"github.com/gnoverse/teq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func boolPtr(v bool) *bool { return &v }

func testQueries(t *testing.T) (*teq.Premise, []Query) {
	t.Helper()

	p, err := BuildPremise(PremiseSpec{
		Facts: []FactSpec{{Left: "a", Right: "b"}},
	})
	require.NoError(t, err)

	queries, err := BuildQueries([]QuerySpec{
		{Left: "f(a)", Right: "f(b)", Want: boolPtr(true)},
		{Left: "a", Right: "c", Want: boolPtr(true)},
		{Left: "a", Right: "c"},
	})
	require.NoError(t, err)
	return p, queries
}

func TestRun(t *testing.T) {
	p, queries := testQueries(t)

	results := Run(p, queries)
	require.Len(t, results, 3)

	assert.True(t, results[0].Equal)
	assert.False(t, results[0].Mismatch)

	assert.False(t, results[1].Equal)
	assert.True(t, results[1].Mismatch, "want true but unequal must mismatch")

	assert.False(t, results[2].Equal)
	assert.False(t, results[2].Mismatch, "a query without want never mismatches")
}

func TestNewReport(t *testing.T) {
	p, queries := testQueries(t)

	report := NewReport("docs/sample.teq.yaml", "sample", Run(p, queries))
	assert.Equal(t, "docs/sample.teq.yaml", report.Document)
	assert.Equal(t, "sample", report.Name)
	assert.Equal(t, 1, report.Mismatches)
	assert.Len(t, report.Results, 3)
}

func TestRunParallel(t *testing.T) {
	p, err := BuildPremise(PremiseSpec{
		Facts: []FactSpec{{Left: "a", Right: "b"}},
	})
	require.NoError(t, err)

	var specs []QuerySpec
	for i := 0; i < 32; i++ {
		specs = append(specs, QuerySpec{Left: "f(a)", Right: "f(b)", Want: boolPtr(true)})
	}
	queries, err := BuildQueries(specs)
	require.NoError(t, err)

	results, err := RunParallel(context.Background(), zap.NewNop(), p, queries, Options{Workers: 4})
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, result := range results {
		assert.False(t, result.Skipped, "query %d should have been evaluated", i)
		assert.True(t, result.Equal, "query %d should hold", i)
		assert.False(t, result.Mismatch)
	}
}

func TestRunParallelFailFast(t *testing.T) {
	p, err := BuildPremise(PremiseSpec{
		Facts: []FactSpec{{Left: "a", Right: "b"}},
	})
	require.NoError(t, err)

	// every query mismatches, so the first verdict trips the stop
	var specs []QuerySpec
	for i := 0; i < 50; i++ {
		specs = append(specs, QuerySpec{Left: "a", Right: "b", Want: boolPtr(false)})
	}
	queries, err := BuildQueries(specs)
	require.NoError(t, err)

	results, err := RunParallel(context.Background(), zap.NewNop(), p, queries, Options{Workers: 1, FailFast: true})
	require.NoError(t, err, "a tripped FailFast is not a run error")

	mismatches := 0
	skipped := 0
	for _, result := range results {
		if result.Mismatch {
			mismatches++
		}
		if result.Skipped {
			skipped++
		}
	}
	assert.GreaterOrEqual(t, mismatches, 1)
	assert.GreaterOrEqual(t, skipped, len(queries)-2, "scheduling must stop after the first mismatch")
}

func TestRunParallelCanceledContext(t *testing.T) {
	p, queries := testQueries(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunParallel(ctx, zap.NewNop(), p, queries, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	for i, result := range results {
		assert.True(t, result.Skipped, "query %d should have been skipped", i)
	}
}

func TestCheckDocument(t *testing.T) {
	path := writeDocument(t, "sample.teq.yaml", sampleDocument)

	report, err := CheckDocument(path)
	require.NoError(t, err)

	assert.Equal(t, path, report.Document)
	assert.Equal(t, "sample", report.Name)
	require.Len(t, report.Results, 2)

	assert.True(t, report.Results[0].Equal)
	assert.False(t, report.Results[0].Mismatch)
	assert.False(t, report.Results[1].Equal)
	assert.Equal(t, 0, report.Mismatches)
}

func TestCheckDocumentMismatch(t *testing.T) {
	path := writeDocument(t, "mismatch.teq.yaml", `name: mismatch
premise:
  facts:
    - left: a
      right: b
queries:
  - left: a
    right: b
    want: false
`)

	report, err := CheckDocument(path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Mismatches)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Mismatch)
}

func TestCheckDocumentInvalidPremise(t *testing.T) {
	path := writeDocument(t, "broken.teq.yaml", `name: broken
premise:
  facts:
    - left: f(
      right: b
queries:
  - left: a
    right: b
`)

	_, err := CheckDocument(path)
	assert.Error(t, err)
}
