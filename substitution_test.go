package teq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteLiteral(t *testing.T) {
	t.Parallel()

	term := Fn("f", Lit("a"), Lit("c"))
	got := Substitute(term, Lit("a"), Lit("b"))

	assert.Equal(t, "f(b, c)", got.String())
}

func TestSubstituteAllOccurrences(t *testing.T) {
	t.Parallel()

	term := Fn("f", Lit("a"), Fn("g", Lit("a")), Norm("p", Lit("a")))
	got := Substitute(term, Lit("a"), Lit("b"))

	assert.Equal(t, "f(b, g(b), p!(b))", got.String())
}

func TestSubstituteSubtree(t *testing.T) {
	t.Parallel()

	term := Fn("f", Fn("g", Lit("a")), Fn("g", Lit("a")))
	got := Substitute(term, Fn("g", Lit("a")), Lit("x"))

	assert.Equal(t, "f(x, x)", got.String())
}

func TestSubstituteWholeTerm(t *testing.T) {
	t.Parallel()

	term := Fn("f", Lit("a"))
	got := Substitute(term, Fn("f", Lit("a")), Lit("b"))

	assert.Equal(t, "b", got.String())
}

func TestSubstituteReplacementWithChildren(t *testing.T) {
	t.Parallel()

	// The replacement is itself traversed after it lands
	term := Fn("f", Lit("x"), Lit("y"))
	got := Substitute(term, Lit("x"), Fn("g", Lit("y")))

	assert.Equal(t, "f(g(y), y)", got.String())
}

func TestSubstituteAbsent(t *testing.T) {
	t.Parallel()

	term := Fn("f", Lit("a"), Lit("b"))
	got := Substitute(term, Lit("z"), Lit("q"))

	assert.True(t, Equal(term, got), "expected %s, got %s", term, got)
}

func TestSubstituteDoesNotMutate(t *testing.T) {
	t.Parallel()

	term := Fn("f", Fn("g", Lit("a")), Lit("a"))
	got := Substitute(term, Lit("a"), Lit("b"))

	assert.Equal(t, "f(g(b), b)", got.String())
	assert.Equal(t, "f(g(a), a)", term.String(), "the input term must stay intact")
}
