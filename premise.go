package teq

import "sort"

// Fact is one symmetric equality assertion between two terms.
type Fact struct {
	Left  Term
	Right Term
}

// Normalization is a parameterized alias definition. Expanding it
// replaces occurrences of each parameter literal inside Equivalence
// with the corresponding argument.
type Normalization struct {
	Parameters  []Atom
	Equivalence Term
}

// Expand instantiates the alias for the given arguments. It reports
// false when the argument count does not match the parameter count;
// no partial expansion is produced in that case.
//
// Parameters are substituted one at a time, left to right. Each pass
// rescans what earlier passes inserted, so an argument that contains a
// later parameter's atom has that atom substituted too.
func (n Normalization) Expand(args []Term) (Term, bool) {
	if len(n.Parameters) != len(args) {
		return nil, false
	}

	expanded := n.Equivalence
	for i, param := range n.Parameters {
		expanded = Substitute(expanded, Lit(param), args[i])
	}
	return expanded, true
}

// equality is one key term with the ordered set of terms asserted
// equal to it.
type equality struct {
	key    Term
	equals []Term
}

// Premise is the fact base consulted by Equals: symmetric equality
// facts plus alias definitions keyed by symbol.
//
// Facts are stored symmetrically; inserting x = y records y in x's
// equivalence set and x in y's. Keys and the per-key sets iterate in
// term order, so repeated searches over the same premise take
// identical paths.
type Premise struct {
	equalities     []equality
	normalizations map[Atom]Normalization
}

// NewPremise creates an empty premise.
func NewPremise() *Premise {
	return &Premise{normalizations: make(map[Atom]Normalization)}
}

// NewPremiseFromFacts creates a premise holding the given equality
// facts.
func NewPremiseFromFacts(facts ...Fact) *Premise {
	p := NewPremise()
	for _, f := range facts {
		p.Insert(f.Left, f.Right)
	}
	return p
}

// Insert records t1 = t2 as a symmetric fact. Duplicate facts are
// ignored.
func (p *Premise) Insert(t1, t2 Term) {
	p.add(t1, t2)
	p.add(t2, t1)
}

// add records equal in key's equivalence set, keeping both the key
// list and the set sorted.
func (p *Premise) add(key, equal Term) {
	i := sort.Search(len(p.equalities), func(i int) bool {
		return Compare(p.equalities[i].key, key) >= 0
	})
	if i == len(p.equalities) || !Equal(p.equalities[i].key, key) {
		p.equalities = append(p.equalities, equality{})
		copy(p.equalities[i+1:], p.equalities[i:])
		p.equalities[i] = equality{key: key}
	}

	set := p.equalities[i].equals
	j := sort.Search(len(set), func(j int) bool {
		return Compare(set[j], equal) >= 0
	})
	if j < len(set) && Equal(set[j], equal) {
		return
	}
	set = append(set, nil)
	copy(set[j+1:], set[j:])
	set[j] = equal
	p.equalities[i].equals = set
}

// EqualTo returns the equivalence set recorded for t, in term order.
// The returned slice is shared with the premise and must not be
// modified.
func (p *Premise) EqualTo(t Term) []Term {
	i := sort.Search(len(p.equalities), func(i int) bool {
		return Compare(p.equalities[i].key, t) >= 0
	})
	if i == len(p.equalities) || !Equal(p.equalities[i].key, t) {
		return nil
	}
	return p.equalities[i].equals
}

// EachEquality calls fn for every (key, equivalence set) entry in term
// order, stopping early when fn returns false.
func (p *Premise) EachEquality(fn func(key Term, equals []Term) bool) {
	for _, e := range p.equalities {
		if !fn(e.key, e.equals) {
			return
		}
	}
}

// Len returns the number of distinct terms appearing as a key in the
// equalities map.
func (p *Premise) Len() int {
	return len(p.equalities)
}

// InsertNormalization registers an alias definition for symbol.
//
// Returns true if the definition is inserted. Returns false if the
// symbol already has one; the existing definition is kept untouched.
func (p *Premise) InsertNormalization(symbol Atom, parameters []Atom, equivalence Term) bool {
	if p.normalizations == nil {
		p.normalizations = make(map[Atom]Normalization)
	}
	if _, ok := p.normalizations[symbol]; ok {
		return false
	}
	p.normalizations[symbol] = Normalization{
		Parameters:  parameters,
		Equivalence: equivalence,
	}
	return true
}

// Normalization returns the alias definition registered for symbol.
func (p *Premise) Normalization(symbol Atom) (Normalization, bool) {
	n, ok := p.normalizations[symbol]
	return n, ok
}

// EachNormalization calls fn for every (symbol, definition) pair in
// symbol order, stopping early when fn returns false. The engine never
// iterates definitions; this exists for consumers rendering a premise.
func (p *Premise) EachNormalization(fn func(symbol Atom, n Normalization) bool) {
	symbols := make([]Atom, 0, len(p.normalizations))
	for symbol := range p.normalizations {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	for _, symbol := range symbols {
		if !fn(symbol, p.normalizations[symbol]) {
			return
		}
	}
}
