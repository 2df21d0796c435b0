package teq

import "fmt"

// Atom is the symbol identity used throughout the term model. Hosts
// map their own symbol representation (interned names, stringified
// ids) onto it; the library only compares, orders, and copies atoms,
// never inspects them.
type Atom string

// Term represents a symbolic term in the equality system.
type Term interface {
	isTerm()
	String() string
}

// Literal represents a constant term, a leaf with no children.
type Literal struct {
	Value Atom
}

func (Literal) isTerm() {}
func (t Literal) String() string {
	return string(t.Value)
}

// Function represents an applied term like f(x, g(y)).
// Argument order is significant.
type Function struct {
	Symbol Atom
	Args   []Term
}

func (*Function) isTerm() {}
func (t *Function) String() string {
	return string(t.Symbol) + "(" + renderArgs(t.Args) + ")"
}

// Normalizable represents an applied term whose symbol may have an
// alias definition registered in a premise. It renders with a '!'
// marker after the symbol so it stays distinguishable from a Function
// with the same symbol.
type Normalizable struct {
	Symbol Atom
	Args   []Term
}

func (*Normalizable) isTerm() {}
func (t *Normalizable) String() string {
	return string(t.Symbol) + "!(" + renderArgs(t.Args) + ")"
}

func renderArgs(args []Term) string {
	result := ""
	for i, arg := range args {
		if i > 0 {
			result += ", "
		}
		result += arg.String()
	}
	return result
}

// Helper functions to construct terms

// Lit creates a literal term.
func Lit(v Atom) Term {
	return Literal{Value: v}
}

// Fn creates an applied term.
func Fn(symbol Atom, args ...Term) Term {
	return &Function{Symbol: symbol, Args: args}
}

// Norm creates an expandable term.
func Norm(symbol Atom, args ...Term) Term {
	return &Normalizable{Symbol: symbol, Args: args}
}

// termOrder fixes an arbitrary but deterministic order between the
// three term shapes.
func termOrder(t Term) int {
	switch t.(type) {
	case Literal:
		return 1
	case *Function:
		return 2
	case *Normalizable:
		return 3
	default:
		panic(fmt.Sprintf("teq.termOrder: unhandled term type %T", t))
	}
}

// Compare defines a total order over terms: shape first, then symbol,
// then arguments pairwise, then arity. The order carries no semantic
// meaning; it exists so terms can key ordered containers and so
// iteration over a premise is deterministic.
func Compare(t1, t2 Term) int {
	if o1, o2 := termOrder(t1), termOrder(t2); o1 != o2 {
		return o1 - o2
	}

	switch u := t1.(type) {
	case Literal:
		return compareAtoms(u.Value, t2.(Literal).Value)
	case *Function:
		v := t2.(*Function)
		if c := compareAtoms(u.Symbol, v.Symbol); c != 0 {
			return c
		}
		return compareArgs(u.Args, v.Args)
	case *Normalizable:
		v := t2.(*Normalizable)
		if c := compareAtoms(u.Symbol, v.Symbol); c != 0 {
			return c
		}
		return compareArgs(u.Args, v.Args)
	default:
		return 0
	}
}

// Equal reports whether two terms are structurally identical.
func Equal(t1, t2 Term) bool {
	return Compare(t1, t2) == 0
}

func compareAtoms(a1, a2 Atom) int {
	switch {
	case a1 < a2:
		return -1
	case a1 > a2:
		return 1
	default:
		return 0
	}
}

// compareArgs compares argument lists lexicographically; a list that
// is a strict prefix of the other orders first.
func compareArgs(args1, args2 []Term) int {
	for i := 0; i < len(args1) && i < len(args2); i++ {
		if c := Compare(args1[i], args2[i]); c != 0 {
			return c
		}
	}
	return len(args1) - len(args2)
}
