package casso

import "fmt"

// AddEditVar registers v as editable at Strong strength. It is sugar for
// AddEditVarWithStrength(v, Strong).
func (s *Solver) AddEditVar(v Var) error { return s.AddEditVarWithStrength(v, Strong) }

// AddEditVarWithStrength creates an edit constraint v = v.currentValue at
// the given strength, so later SuggestValue calls on v can perturb it. The
// strength must not be Required.
func (s *Solver) AddEditVarWithStrength(v Var, strength Strength) error {
	if strength == Required {
		return fmt.Errorf("casso: %w", ErrBadPriority)
	}
	if _, exists := s.editVarMap[v.sym]; exists {
		return nil
	}

	s.trackExternal(v.sym)
	current := s.values[v.sym]

	// The canonical row is current - v - e+ + e- = 0, i.e. v = current - e+ +
	// e-. deltaEditConstant's signs depend on this orientation.
	c := NewConstraint(OpEQ, current, v.T(-1)).WithStrength(strength)
	c.isEdit = true

	if err := s.AddConstraint(c); err != nil {
		return err
	}

	errVars := s.errorVariables[c]
	s.editVarMap[v.sym] = &editInfo{
		constraint: c,
		plus:       errVars[0],
		minus:      errVars[1],
		prev:       current,
		ordinal:    len(s.editVarMap),
	}
	return nil
}

// BeginEdit opens a nested edit session: at least one edit variable must
// already be registered. It clears any stale infeasibility bookkeeping,
// resets stay constants to a clean baseline, and records the current count
// of edit variables; the EndEdit of a session nested inside this one unwinds
// back to that count.
func (s *Solver) BeginEdit() error {
	if len(s.editVarMap) == 0 {
		return fmt.Errorf("casso: %w: no edit variables are registered", ErrInternalError)
	}
	s.tab.infeasibleRows = s.tab.infeasibleRows[:0]
	s.resetStayConstants()
	s.editStack = append(s.editStack, len(s.editVarMap))
	return nil
}

// EndEdit resolves any outstanding suggestions, then pops the edit session
// started by the matching BeginEdit. Every edit variable registered since the
// enclosing session began (or since the solver was created, for the
// outermost session) is removed, so a plain AddEditVar/BeginEdit/EndEdit
// sequence retires its edit constraint.
func (s *Solver) EndEdit() error {
	if err := s.Resolve(); err != nil {
		return err
	}
	if len(s.editStack) == 0 {
		return fmt.Errorf("casso: %w: EndEdit without a matching BeginEdit", ErrInternalError)
	}
	s.editStack = s.editStack[:len(s.editStack)-1]
	saved := 0
	if len(s.editStack) > 0 {
		saved = s.editStack[len(s.editStack)-1]
	}

	var stale []Symbol
	for vsym, info := range s.editVarMap {
		if info.ordinal >= saved {
			stale = append(stale, vsym)
		}
	}
	for _, vsym := range stale {
		info, ok := s.editVarMap[vsym]
		if !ok {
			continue
		}
		delete(s.editVarMap, vsym)
		if err := s.RemoveConstraint(info.constraint); err != nil {
			return err
		}
	}
	return nil
}

// SuggestValue records x as v's new target value. v must already be
// registered via AddEditVar. Call Resolve (or let EndEdit do it) to absorb
// the suggestion into the tableau.
func (s *Solver) SuggestValue(v Var, x float64) error {
	info, ok := s.editVarMap[v.sym]
	if !ok {
		return fmt.Errorf("casso: %w", ErrBadEditVariable)
	}
	delta := x - info.prev
	info.prev = x
	s.deltaEditConstant(delta, info.plus, info.minus)
	return nil
}

// deltaEditConstant perturbs whichever of the edit constraint's two error
// variables currently carries the constant, or every row that references e-
// if both are parametric.
func (s *Solver) deltaEditConstant(delta float64, plus, minus Symbol) {
	if row, ok := s.tab.rows[plus]; ok {
		row.Constant += delta
		s.tab.rows[plus] = row
		if row.Constant < -epsilon {
			s.tab.infeasibleRows = append(s.tab.infeasibleRows, plus)
		}
		return
	}

	if row, ok := s.tab.rows[minus]; ok {
		row.Constant -= delta
		s.tab.rows[minus] = row
		if row.Constant < -epsilon {
			s.tab.infeasibleRows = append(s.tab.infeasibleRows, minus)
		}
		return
	}

	for basic := range s.tab.columns[minus] {
		row := s.tab.rows[basic]
		coeff := row.CoefficientFor(minus)
		row.Constant += coeff * delta
		s.tab.rows[basic] = row
		if basic.Restricted() && row.Constant < -epsilon {
			s.tab.infeasibleRows = append(s.tab.infeasibleRows, basic)
		}
	}
}

// Resolve dual-optimizes to absorb every suggested value recorded since the
// last resolve, writes values back, and resets stay constants.
func (s *Solver) Resolve() error {
	if err := s.dualOptimize(); err != nil {
		return err
	}
	s.writeBack()
	s.tab.infeasibleRows = s.tab.infeasibleRows[:0]
	s.resetStayConstants()
	return nil
}

// dualOptimize restores feasibility after row constants have been perturbed:
// while any restricted row's constant has gone negative, pivot in the
// variable minimizing the objective row's coefficient ratio over the
// infeasible row's positive pivotable coefficients.
func (s *Solver) dualOptimize() error {
	for len(s.tab.infeasibleRows) > 0 {
		x := s.tab.infeasibleRows[len(s.tab.infeasibleRows)-1]
		s.tab.infeasibleRows = s.tab.infeasibleRows[:len(s.tab.infeasibleRows)-1]

		row, ok := s.tab.rows[x]
		if !ok || row.Constant >= -epsilon {
			continue
		}

		objRow := s.tab.rows[s.objectiveSym]

		var entry Symbol
		ratio := 0.0
		found := false
		for _, term := range row.Terms() {
			if term.Coefficient <= epsilon || !term.Symbol.Pivotable() {
				continue
			}
			r := objRow.CoefficientFor(term.Symbol) / term.Coefficient
			if !found || r < ratio {
				ratio, entry, found = r, term.Symbol, true
			}
		}
		if !found {
			return fmt.Errorf("casso: %w: no pivotable variable during dual optimize", ErrInternalError)
		}

		s.pivot(entry, x)
	}
	return nil
}

// SetEditedValue is a one-shot AddEditVar + BeginEdit + SuggestValue +
// EndEdit convenience for clients that only need a single suggestion.
func (s *Solver) SetEditedValue(v Var, x float64) error {
	if err := s.AddEditVarWithStrength(v, Strong); err != nil {
		return err
	}
	if err := s.BeginEdit(); err != nil {
		return err
	}
	if err := s.SuggestValue(v, x); err != nil {
		return err
	}
	return s.EndEdit()
}
