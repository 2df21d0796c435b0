package teq

// Substitute returns term with every subterm equal to from replaced by
// to. The input is never mutated; the result is a fresh tree.
//
// Replacement happens before recursion, and recursion descends into
// the just-inserted value as well. The order is contractual: when a
// later substitution argument reuses an atom an earlier pass inserted,
// the rescan picks it up (see Normalization.Expand). A to that
// contains from as a subterm makes the rescan recurse forever; callers
// must not pass one.
func Substitute(term, from, to Term) Term {
	if Equal(term, from) {
		term = to
	}

	switch u := term.(type) {
	case *Function:
		return &Function{Symbol: u.Symbol, Args: substituteArgs(u.Args, from, to)}
	case *Normalizable:
		return &Normalizable{Symbol: u.Symbol, Args: substituteArgs(u.Args, from, to)}
	default:
		return term
	}
}

func substituteArgs(args []Term, from, to Term) []Term {
	if len(args) == 0 {
		return nil
	}
	out := make([]Term, len(args))
	for i, arg := range args {
		out[i] = Substitute(arg, from, to)
	}
	return out
}
