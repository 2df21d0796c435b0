package teq

// Visitor inspects terms during a Walk.
type Visitor interface {
	// Visit is called for every term in pre-order.
	// Returning false stops the walk entirely.
	Visit(t Term) bool
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(Term) bool

func (f VisitorFunc) Visit(t Term) bool { return f(t) }

// Walk traverses t in pre-order: the node itself first, then each
// argument in positional order. It reports false as soon as the
// visitor stops; nothing after the stopping node is visited. The
// engine never walks terms; Walk exists for consumers enumerating
// subterms.
func Walk(t Term, v Visitor) bool {
	if !v.Visit(t) {
		return false
	}

	switch u := t.(type) {
	case *Function:
		return walkArgs(u.Args, v)
	case *Normalizable:
		return walkArgs(u.Args, v)
	default:
		return true
	}
}

func walkArgs(args []Term, v Visitor) bool {
	for _, arg := range args {
		if !Walk(arg, v) {
			return false
		}
	}
	return true
}
