// Package teq implements a decision procedure for equality of
// first-order terms under a premise of equality facts and alias
// definitions.
//
// Terms come in three shapes: Literal (a bare symbol), Function (a
// symbol applied to ordered arguments), and Normalizable (an applied
// term whose symbol may carry an alias definition in the premise).
// A Premise stores symmetric equality facts and per-symbol alias
// definitions; Equals decides whether two terms are equal under it.
//
// The search combines, in order:
//   - structural equality
//   - unification (same shape, same symbol, same arity; arguments pairwise)
//   - alias expansion on either side
//   - direct equality facts
//   - bridging into facts whose key is unification- or expansion-equivalent
//
// Self-referential premises such as x = f(x) are handled by a per-call
// set of in-progress pairs. A pair whose proof fails stays in that set
// for the rest of the call, so the procedure never reports a false
// equality but can miss one that only a retried pair would establish.
//
// Out of scope:
//   - proof objects or unifying substitutions (the verdict is a bare bool)
//   - transitive closure inside the premise container
//   - rewriting or simplifying the premise itself
package teq
