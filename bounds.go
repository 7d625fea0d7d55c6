package casso

// AddLowerBound adds the required constraint v >= lower.
func (s *Solver) AddLowerBound(v Var, lower float64) error {
	return s.AddConstraint(v.GreaterOrEqualTo(lower))
}

// AddUpperBound adds the required constraint v <= upper.
func (s *Solver) AddUpperBound(v Var, upper float64) error {
	return s.AddConstraint(v.LessOrEqualTo(upper))
}

// AddBounds adds both v >= lower and v <= upper as required constraints.
func (s *Solver) AddBounds(v Var, lower, upper float64) error {
	if err := s.AddLowerBound(v, lower); err != nil {
		return err
	}
	return s.AddUpperBound(v, upper)
}
