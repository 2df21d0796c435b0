package teq

import (
	"strconv"
	"strings"
)

// Equals reports whether t1 and t2 are equal under premise p. A nil
// premise behaves as an empty one.
//
// The decision is total: every input terminates, including premises
// with self-referential facts such as x = f(x). It is also sound but
// deliberately incomplete: a pair whose proof fails along one search
// path is not retried along another within the same call, so exotic
// premises can yield false even though a proof exists. A true verdict
// is always correct.
//
// The only mutable state is the in-progress pair set created fresh per
// call, so concurrent Equals calls sharing a premise are safe as long
// as the premise is not mutated meanwhile.
func Equals(t1, t2 Term, p *Premise) bool {
	if p == nil {
		p = NewPremise()
	}
	return prove(t1, t2, p, make(inProgress))
}

// prove is the recursive search. It tries, in order: structural
// equality, unification, alias expansion, direct fact lookup, and
// bridging through the fact base. Success unmarks the pair so sibling
// branches may reuse it; failure leaves it marked for the remainder of
// the top-level call.
func prove(t1, t2 Term, p *Premise, visited inProgress) bool {
	if Equal(t1, t2) {
		return true
	}

	pair := pairOf(t1, t2)
	if _, ok := visited[pair]; ok {
		// currently being proven by an ancestor call
		return false
	}
	visited[pair] = struct{}{}

	if proveByUnification(t1, t2, p, visited) {
		delete(visited, pair)
		return true
	}

	if proveByNormalization(t1, t2, p, visited) {
		delete(visited, pair)
		return true
	}

	// direct fact lookup on both sides
	for _, equiv := range p.EqualTo(t1) {
		if prove(equiv, t2, p, visited) {
			delete(visited, pair)
			return true
		}
	}
	for _, equiv := range p.EqualTo(t2) {
		if prove(t1, equiv, p, visited) {
			delete(visited, pair)
			return true
		}
	}

	// Bridging: enter the fact base through any key that t1 or t2 is
	// unification- or expansion-equivalent to, then test the original
	// other side against that key's equivalence set.
	for _, entry := range p.equalities {
		if proveByUnification(t1, entry.key, p, visited) {
			for _, value := range entry.equals {
				if prove(value, t2, p, visited) {
					delete(visited, pair)
					return true
				}
			}
		}

		if proveByUnification(entry.key, t2, p, visited) {
			for _, value := range entry.equals {
				if prove(t1, value, p, visited) {
					delete(visited, pair)
					return true
				}
			}
		}

		if proveByNormalization(t1, entry.key, p, visited) {
			for _, value := range entry.equals {
				if prove(value, t2, p, visited) {
					delete(visited, pair)
					return true
				}
			}
		}

		if proveByNormalization(entry.key, t2, p, visited) {
			for _, value := range entry.equals {
				if prove(t1, value, p, visited) {
					delete(visited, pair)
					return true
				}
			}
		}
	}

	// The pair stays marked: retrying it from a sibling branch of the
	// same top-level call could loop on cyclic facts. The cost is a
	// possible false negative on premises that need the retry, never a
	// false positive.
	return false
}

// proveByUnification decomposes two same-shape terms with equal
// symbols and equal arity into pairwise argument proofs. The
// decomposition is fixed by shape, symbol, and arity; a single failing
// argument pair fails the attempt.
func proveByUnification(t1, t2 Term, p *Premise, visited inProgress) bool {
	var (
		sym1, sym2   Atom
		args1, args2 []Term
	)

	switch u := t1.(type) {
	case *Function:
		v, ok := t2.(*Function)
		if !ok {
			return false
		}
		sym1, args1 = u.Symbol, u.Args
		sym2, args2 = v.Symbol, v.Args
	case *Normalizable:
		v, ok := t2.(*Normalizable)
		if !ok {
			return false
		}
		sym1, args1 = u.Symbol, u.Args
		sym2, args2 = v.Symbol, v.Args
	default:
		return false
	}

	if sym1 != sym2 || len(args1) != len(args2) {
		return false
	}

	for i := range args1 {
		if !prove(args1[i], args2[i], p, visited) {
			return false
		}
	}
	return true
}

// proveByNormalization expands an alias on either side. t1's expansion
// is tried first; when that side does not apply or its proof fails,
// t2's expansion is tried against the original t1.
func proveByNormalization(t1, t2 Term, p *Premise, visited inProgress) bool {
	if n, ok := t1.(*Normalizable); ok {
		if def, found := p.Normalization(n.Symbol); found {
			if expansion, applies := def.Expand(n.Args); applies {
				if prove(expansion, t2, p, visited) {
					return true
				}
			}
		}
	}

	if n, ok := t2.(*Normalizable); ok {
		if def, found := p.Normalization(n.Symbol); found {
			if expansion, applies := def.Expand(n.Args); applies {
				return prove(t1, expansion, p, visited)
			}
		}
	}

	return false
}

// inProgress is the set of ordered term pairs currently being proven
// within one top-level Equals call.
type inProgress map[pairKey]struct{}

// pairKey identifies an ordered pair of terms.
type pairKey struct {
	first  string
	second string
}

func pairOf(t1, t2 Term) pairKey {
	return pairKey{first: termKey(t1), second: termKey(t2)}
}

// termKey builds an injective textual encoding of t for use as a map
// key. Symbols are quoted so a symbol containing delimiter characters
// cannot make two distinct terms encode alike.
func termKey(t Term) string {
	var b strings.Builder
	writeTermKey(&b, t)
	return b.String()
}

func writeTermKey(b *strings.Builder, t Term) {
	switch u := t.(type) {
	case Literal:
		b.WriteString(strconv.Quote(string(u.Value)))
	case *Function:
		b.WriteString(strconv.Quote(string(u.Symbol)))
		writeArgsKey(b, u.Args)
	case *Normalizable:
		b.WriteString(strconv.Quote(string(u.Symbol)))
		b.WriteByte('!')
		writeArgsKey(b, u.Args)
	}
}

func writeArgsKey(b *strings.Builder, args []Term) {
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		writeTermKey(b, arg)
	}
	b.WriteByte(')')
}
