package formatter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/gnoverse/teq/check"
	"github.com/stretchr/testify/assert"
)

// The expected strings below are plain text, so keep the styles from
// emitting escape codes even when stdout looks like a terminal.
func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func boolPtr(b bool) *bool {
	return &b
}

func TestFormat(t *testing.T) {
	t.Parallel()
	report := &check.Report{
		Document: "testdata/sample.teq.yaml",
		Name:     "sample",
		Results: []check.Result{
			{Left: "f(a, a)", Right: "pair!(b)", Equal: true, Want: boolPtr(true)},
			{Left: "a", Right: "c"},
			{Left: "a", Right: "b", Equal: true, Want: boolPtr(false), Mismatch: true},
			{Left: "x", Right: "y", Skipped: true},
		},
		Mismatches: 1,
	}

	expected := `sample (testdata/sample.teq.yaml)
  equal    f(a, a) = pair!(b)
  unequal  a = c
  FAIL     a = b: got true, want false
  skipped  x = y
4 queries, 1 mismatches
`

	result := Format(report)

	assert.Equal(t, expected, result, "Formatted report does not match expected")
}

func TestFormatEmptyReport(t *testing.T) {
	t.Parallel()
	report := &check.Report{
		Document: "empty.teq.yaml",
		Name:     "empty",
	}

	expected := `empty (empty.teq.yaml)
0 queries, 0 mismatches
`

	assert.Equal(t, expected, Format(report), "Empty report should still print header and summary")
}

func TestFormatAll(t *testing.T) {
	t.Parallel()
	reports := []*check.Report{
		{
			Document: "a.teq.yaml",
			Name:     "a",
			Results:  []check.Result{{Left: "a", Right: "a", Equal: true}},
		},
		{
			Document: "b.teq.yaml",
			Name:     "b",
			Results:  []check.Result{{Left: "a", Right: "b"}},
		},
	}

	expected := `a (a.teq.yaml)
  equal    a = a
1 queries, 0 mismatches

b (b.teq.yaml)
  unequal  a = b
1 queries, 0 mismatches
`

	result := FormatAll(reports)

	assert.Equal(t, expected, result, "Reports should be separated by a blank line")
	assert.Empty(t, FormatAll(nil))
}
