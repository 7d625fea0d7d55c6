package casso

import "fmt"

// AddStay adds a weak, unit-weight stay on v: a soft constraint v =
// v.currentValue that keeps v near its last solved value across edits. It
// is sugar for AddStayWithStrength(v, Weak, 1).
func (s *Solver) AddStay(v Var) error { return s.AddStayWithStrength(v, Weak, 1) }

// AddStayWithStrength adds a stay on v with an explicit strength and
// per-constraint weight multiplier. strength must not be Required.
func (s *Solver) AddStayWithStrength(v Var, strength Strength, weight float64) error {
	if strength == Required {
		return fmt.Errorf("casso: %w", ErrBadPriority)
	}

	s.trackExternal(v.sym)
	current := s.values[v.sym]

	c := NewConstraint(OpEQ, current, v.T(-1)).WithStrength(strength).WithWeight(weight)
	c.isStay = true

	if err := s.AddConstraint(c); err != nil {
		return err
	}

	errVars := s.errorVariables[c]
	s.stays = append(s.stays, stayEntry{constraint: c, plus: errVars[0], minus: errVars[1]})
	return nil
}

// resetStayConstants re-anchors every stay after an edit resolve: whichever
// of each stay's e+/e- pair is currently basic has its row constant zeroed;
// the other, if parametric, already reads as 0.
func (s *Solver) resetStayConstants() {
	for _, stay := range s.stays {
		if row, ok := s.tab.rows[stay.plus]; ok {
			row.Constant = 0
			s.tab.rows[stay.plus] = row
		}
		if row, ok := s.tab.rows[stay.minus]; ok {
			row.Constant = 0
			s.tab.rows[stay.minus] = row
		}
	}
}

func (s *Solver) removeStayEntry(c *Constraint) {
	for i, stay := range s.stays {
		if stay.constraint == c {
			s.stays = append(s.stays[:i], s.stays[i+1:]...)
			return
		}
	}
}
