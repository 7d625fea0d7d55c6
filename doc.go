// Package casso implements the Cassowary incremental constraint-solving
// algorithm: an assignment to a set of client-owned decision variables that
// satisfies every required linear equality/inequality exactly and minimizes
// the weighted error of non-required ("soft") ones.
//
// A typical session looks like:
//
//	s := casso.NewSolver()
//	left, width := casso.NewVar("left"), casso.NewVar("width")
//
//	_ = s.AddConstraint(left.GreaterOrEqualTo(0.0))
//	_ = s.AddConstraint(width.EqualTo(left.Plus(100.0)).WithStrength(casso.Strong))
//
//	_ = s.AddEditVar(left)
//	_ = s.BeginEdit()
//	_ = s.SuggestValue(left, 20)
//	_ = s.Resolve()
//	_ = s.EndEdit()
//
//	fmt.Println(s.Value(left), s.Value(width))
//
// The solver is single-owner: it is not safe to call its methods from more
// than one goroutine at a time. There is no wire format, persistence, or
// front-end of any kind — those are the concern of whatever layout engine or
// interactive tool embeds the solver.
package casso
