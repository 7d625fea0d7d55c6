package casso

import (
	"fmt"
	"math"
)

// editInfo is the per-edit-active-variable bookkeeping: the owning edit
// constraint, its two error variables, the last suggested value, and the
// ordinal used to unwind nested edit sessions.
type editInfo struct {
	constraint  *Constraint
	plus, minus Symbol
	prev        float64
	ordinal     int
}

type stayEntry struct {
	constraint  *Constraint
	plus, minus Symbol
}

// Solver incrementally maintains an assignment to a set of decision
// variables that satisfies every required constraint exactly and minimizes
// the weighted error of the rest. It is single-owner and not safe for
// concurrent use.
type Solver struct {
	tab *tableau

	objectiveSym Symbol

	known  map[Symbol]struct{}
	values map[Symbol]float64

	markerVariables map[*Constraint]Symbol
	errorVariables  map[*Constraint][]Symbol

	editVarMap map[Symbol]*editInfo
	editStack  []int

	stays []stayEntry

	// AutoSolve, when true (the default), makes every structural mutation
	// finish by optimizing and writing values back to external variables.
	// Set it false to batch-load constraints and call Solve once at the end.
	AutoSolve bool
}

// NewSolver constructs an empty solver with AutoSolve enabled.
func NewSolver() *Solver {
	s := &Solver{
		tab:             newTableau(),
		known:           make(map[Symbol]struct{}),
		values:          make(map[Symbol]float64),
		markerVariables: make(map[*Constraint]Symbol),
		errorVariables:  make(map[*Constraint][]Symbol),
		editVarMap:      make(map[Symbol]*editInfo),
		AutoSolve:       true,
	}
	s.objectiveSym = newSymbol(KindObjective)
	s.tab.addRow(s.objectiveSym, NewExpr(0))
	return s
}

func (s *Solver) trackExternal(sym Symbol) {
	if sym.External() {
		s.known[sym] = struct{}{}
	}
}

// Value returns v's solution value as of the last write-back (an
// auto-solving mutation, Solve, or Resolve): the constant of its row if it
// was basic then, or 0 if it was parametric or is entirely unknown to this
// solver.
func (s *Solver) Value(v Var) float64 { return s.values[v.sym] }

// ContainsVariable reports whether v has ever been referenced by a
// constraint added to this solver, or explicitly registered via AddVar.
func (s *Solver) ContainsVariable(v Var) bool {
	_, ok := s.known[v.sym]
	return ok
}

// AddVar ensures v is known to the solver and keeps it near 0 with a weak
// stay, so it can be read back even before any constraint references it.
func (s *Solver) AddVar(v Var) error {
	if s.ContainsVariable(v) {
		return nil
	}
	return s.AddStay(v)
}

// addToObjective folds weight*sym into the objective row. The objective is a
// row like any other, so its column entries must stay in lockstep too;
// routing the mutation through removeRow/addRow keeps them so.
func (s *Solver) addToObjective(weight float64, sym Symbol) {
	obj, _ := s.tab.removeRow(s.objectiveSym)
	obj.AddSymbol(weight, sym)
	s.tab.addRow(s.objectiveSym, obj)
}

// AddConstraint incorporates c into the tableau. On RequiredFailure the
// tableau is left exactly as it was before the call.
func (s *Solver) AddConstraint(c *Constraint) error {
	if _, exists := s.markerVariables[c]; exists {
		return fmt.Errorf("casso: constraint already added")
	}

	snap := s.tab.snapshot()

	marker, errVars, err := s.insertConstraint(c)
	if err != nil {
		s.tab.restore(snap)
		return err
	}

	s.markerVariables[c] = marker
	if len(errVars) > 0 {
		s.errorVariables[c] = errVars
	}

	if s.AutoSolve {
		if err := s.optimize(); err != nil {
			return err
		}
		s.writeBack()
	}
	return nil
}

// insertConstraint translates c into a single canonical row asserted equal
// to zero, introducing the slack/error/dummy variables the constraint needs
// and accumulating their penalties into the objective, then inserts the row —
// pivot-free via chooseSubject when possible, through the artificial-variable
// fallback otherwise. It returns the constraint's marker variable and, if
// any, its error variables.
func (s *Solver) insertConstraint(c *Constraint) (Symbol, []Symbol, error) {
	expr := NewExpr(c.expr.Constant)
	for _, term := range c.expr.Terms() {
		s.trackExternal(term.Symbol)
		if row, ok := s.tab.rows[term.Symbol]; ok {
			expr.AddExpr(term.Coefficient, row)
		} else {
			expr.AddSymbol(term.Coefficient, term.Symbol)
		}
	}

	var marker, other Symbol
	var errVars []Symbol

	switch c.op {
	case OpLTE, OpGTE:
		coeff := 1.0
		if c.op == OpGTE {
			coeff = -1.0
		}
		marker = newSymbol(KindSlack)
		expr.AddSymbol(coeff, marker)

		if c.strength < Required {
			other = newSymbol(KindError)
			expr.AddSymbol(-coeff, other)
			s.addToObjective(c.weightValue(), other)
			errVars = []Symbol{other}
		}
	case OpEQ:
		if c.strength < Required {
			plus := newSymbol(KindError)
			minus := newSymbol(KindError)
			marker, other = plus, minus

			expr.AddSymbol(-1, plus)
			expr.AddSymbol(1, minus)

			s.addToObjective(c.weightValue(), plus)
			s.addToObjective(c.weightValue(), minus)
			errVars = []Symbol{plus, minus}
		} else {
			marker = newSymbol(KindDummy)
			expr.AddSymbol(1, marker)
		}
	}

	if expr.Constant < 0 {
		expr.Negate()
	}

	subject, err := s.chooseSubject(expr, marker, other)
	if err != nil {
		return 0, nil, err
	}

	if subject.Zero() {
		if err := s.addWithArtificial(expr); err != nil {
			return 0, nil, err
		}
	} else {
		expr.SolveFor(subject)
		s.substitute(subject, expr)
		s.tab.addRow(subject, expr)
	}

	return marker, errVars, nil
}

// chooseSubject picks the variable to solve the new row for: prefer an
// external variable, then a restricted non-dummy marker/error variable with a
// negative coefficient, then (if every remaining term is dummy) the dummy
// marker — failing if the residual constant is nonzero. Returns the zero
// Symbol if no subject can be chosen, signalling that the artificial-variable
// fallback is needed.
func (s *Solver) chooseSubject(expr Expr, marker, other Symbol) (Symbol, error) {
	for _, term := range expr.Terms() {
		if term.Symbol.External() {
			return term.Symbol, nil
		}
	}

	if marker.Restricted() && !marker.Dummy() {
		if coeff := expr.CoefficientFor(marker); coeff < -epsilon {
			return marker, nil
		}
	}
	if other.Restricted() && !other.Dummy() {
		if coeff := expr.CoefficientFor(other); coeff < -epsilon {
			return other, nil
		}
	}

	for _, term := range expr.Terms() {
		if !term.Symbol.Dummy() {
			return 0, nil
		}
	}

	if !nearZero(expr.Constant) {
		return 0, fmt.Errorf("casso: %w: constraint over dummy variables is unsatisfiable", ErrRequiredFailure)
	}
	return marker, nil
}

// addWithArtificial inserts a row no subject could be chosen for: it drives a
// throwaway objective az = expr to its minimum using an artificial variable
// av = expr, and fails the whole insertion if that minimum isn't ~0.
func (s *Solver) addWithArtificial(expr Expr) error {
	azSym := newSymbol(KindObjective)
	avSym := newSymbol(KindSlack)

	s.tab.addRow(azSym, expr.Clone())
	s.tab.addRow(avSym, expr)

	if err := s.optimizeAgainst(azSym); err != nil {
		return err
	}

	azRow := s.tab.rows[azSym]
	success := nearZero(azRow.Constant)
	s.tab.removeRow(azSym)

	if avRow, ok := s.tab.rows[avSym]; ok {
		s.tab.removeRow(avSym)

		if !avRow.IsConstant() {
			entry, ok := avRow.AnyPivotableVariable()
			if !ok {
				return fmt.Errorf("casso: %w: no pivotable variable to replace artificial variable", ErrRequiredFailure)
			}
			avRow.ChangeSubject(avSym, entry)
			s.substitute(entry, avRow)
			s.tab.addRow(entry, avRow)
		}
	}

	s.tab.removeColumn(avSym)

	if !success {
		return fmt.Errorf("casso: %w", ErrRequiredFailure)
	}
	return nil
}

// substitute replaces every occurrence of v across the tableau (including
// the objective row) with e, re-checking feasibility of every row it
// touches.
func (s *Solver) substitute(v Symbol, e Expr) {
	s.tab.substituteOut(v, e, func(b Symbol) {
		row := s.tab.rows[b]
		if b.Restricted() && row.Constant < -epsilon {
			s.tab.infeasibleRows = append(s.tab.infeasibleRows, b)
		}
	})
}

func (s *Solver) pivot(entry, exit Symbol) {
	row, _ := s.tab.removeRow(exit)
	row.ChangeSubject(exit, entry)
	s.substitute(entry, row)
	s.tab.addRow(entry, row)
}

// optimize drives the objective row to its minimum via the primal simplex.
func (s *Solver) optimize() error { return s.optimizeAgainst(s.objectiveSym) }

func (s *Solver) optimizeAgainst(objSym Symbol) error {
	for {
		obj := s.tab.rows[objSym]

		var entry Symbol
		best := -epsilon
		for _, term := range obj.Terms() {
			if !term.Symbol.Pivotable() {
				continue
			}
			if term.Coefficient < best {
				best, entry = term.Coefficient, term.Symbol
			}
		}
		if entry.Zero() {
			return nil
		}

		var exit Symbol
		ratio := math.MaxFloat64
		for basic := range s.tab.columns[entry] {
			if !basic.Pivotable() {
				continue
			}
			row := s.tab.rows[basic]
			coeff := row.CoefficientFor(entry)
			if coeff >= -epsilon {
				continue
			}
			r := -row.Constant / coeff
			if r < ratio {
				ratio, exit = r, basic
			}
		}
		if exit.Zero() {
			return fmt.Errorf("casso: %w: objective is unbounded", ErrInternalError)
		}

		s.pivot(entry, exit)
	}
}

// Solve primal-optimizes (a no-op if the tableau is already optimal) and
// always writes values back. Needed only when AutoSolve is false.
func (s *Solver) Solve() error {
	if err := s.optimize(); err != nil {
		return err
	}
	s.writeBack()
	return nil
}

// writeBack refreshes the stored solution: every known decision variable
// that is parametric reads as 0; every one that is basic reads its row's
// constant.
func (s *Solver) writeBack() {
	for sym := range s.known {
		if row, ok := s.tab.rows[sym]; ok {
			s.values[sym] = row.Constant
		} else {
			s.values[sym] = 0
		}
	}
}

// RemoveConstraint removes a previously added constraint along with every
// slack/error/dummy variable it introduced, pivoting the constraint's marker
// variable into the basis first if needed so its row can simply be dropped.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	marker, ok := s.markerVariables[c]
	if !ok {
		return fmt.Errorf("casso: %w", ErrConstraintNotFound)
	}

	// Absorb any suggestions still pending from an edit session so removal
	// starts from a feasible, optimal tableau. Stay anchors are left alone:
	// they only move on an edit resolve, so removing a constraint lets the
	// stays pull their variables back toward the last anchored values.
	if err := s.dualOptimize(); err != nil {
		return err
	}

	weight := c.weightValue()
	for _, ev := range s.errorVariables[c] {
		obj, _ := s.tab.removeRow(s.objectiveSym)
		if row, ok := s.tab.rows[ev]; ok {
			obj.AddExpr(-weight, row)
		} else {
			obj.AddSymbol(-weight, ev)
		}
		s.tab.addRow(s.objectiveSym, obj)
	}

	if _, basic := s.tab.rows[marker]; !basic {
		if exit, ok := s.chooseExitForMarker(marker); ok {
			row, _ := s.tab.removeRow(exit)
			row.ChangeSubject(exit, marker)
			s.substitute(marker, row)
			s.tab.addRow(marker, row)
		}
	}

	s.tab.removeRow(marker)
	for _, ev := range s.errorVariables[c] {
		if ev != marker {
			s.tab.removeColumn(ev)
		}
	}

	delete(s.markerVariables, c)
	delete(s.errorVariables, c)

	if c.isStay {
		s.removeStayEntry(c)
	}
	if c.isEdit {
		for vsym, info := range s.editVarMap {
			if info.constraint == c {
				delete(s.editVarMap, vsym)
				break
			}
		}
	}

	if s.AutoSolve {
		if err := s.optimize(); err != nil {
			return err
		}
		s.writeBack()
	}
	return nil
}

// chooseExitForMarker selects the row to pivot a parametric marker into:
// first a restricted basic row with a negative marker coefficient minimizing
// -constant/coefficient, else one with a positive coefficient minimizing the
// raw constant/coefficient quotient, else any non-objective row that
// references the marker. Reports false when no row references the marker at
// all, in which case there is nothing to pivot.
func (s *Solver) chooseExitForMarker(marker Symbol) (Symbol, bool) {
	var first, second, any Symbol
	r1, r2 := math.MaxFloat64, math.MaxFloat64

	for basic := range s.tab.columns[marker] {
		if basic == s.objectiveSym {
			continue
		}
		row := s.tab.rows[basic]
		coeff := row.CoefficientFor(marker)
		if nearZero(coeff) {
			continue
		}
		any = basic

		if !basic.Restricted() {
			continue
		}
		if coeff < 0 {
			if r := -row.Constant / coeff; r < r1 {
				r1, first = r, basic
			}
		} else {
			if r := row.Constant / coeff; r < r2 {
				r2, second = r, basic
			}
		}
	}

	switch {
	case !first.Zero():
		return first, true
	case !second.Zero():
		return second, true
	case !any.Zero():
		return any, true
	}
	return 0, false
}
