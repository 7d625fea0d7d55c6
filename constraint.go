package casso

// Constraint is a canonical relation expr ⚬ 0, where ⚬ is = (OpEQ), <=
// (OpLTE) or >= (OpGTE), carrying the strength/weight that
// determine how badly the solver wants it satisfied. Constraints are
// reference types: identity (pointer equality) is how AddConstraint and
// RemoveConstraint correlate a client's constraint with the marker and error
// variables the solver created for it.
type Constraint struct {
	op       Op
	expr     Expr
	strength Strength
	weight   float64

	isStay bool
	isEdit bool
}

// newConstraint builds the canonical expr = lhs - rhs, op form that every
// comparison builder (Var.EqualTo, Expr.LessOrEqualTo, ...) funnels through.
func newConstraint(op Op, lhs, rhs Expr) *Constraint {
	e := lhs.Clone()
	e.AddExpr(-1, rhs)
	return &Constraint{op: op, expr: e, strength: Required, weight: 1}
}

// NewConstraint builds a constraint directly from a canonical expression
// (read as expr op 0) and zero or more terms, mirroring the lower-level
// constructor layout constraints are often expressed in.
func NewConstraint(op Op, constant float64, terms ...Term) *Constraint {
	return &Constraint{op: op, expr: NewExpr(constant, terms...), strength: Required, weight: 1}
}

// WithStrength sets the constraint's strength and returns it for chaining.
// Required constraints must not also carry IsStay/IsEdit.
func (c *Constraint) WithStrength(s Strength) *Constraint {
	c.strength = s
	return c
}

// WithWeight sets the constraint's per-constraint weight multiplier.
func (c *Constraint) WithWeight(w float64) *Constraint {
	c.weight = w
	return c
}

// Strength returns the constraint's current strength.
func (c *Constraint) Strength() Strength { return c.strength }

// Weight returns the constraint's per-constraint weight multiplier.
func (c *Constraint) Weight() float64 { return c.weight }

// IsInequality reports whether the constraint is a <= or >= relation.
func (c *Constraint) IsInequality() bool { return c.op != OpEQ }

// IsStay reports whether this constraint was created by AddStay.
func (c *Constraint) IsStay() bool { return c.isStay }

// IsEdit reports whether this constraint was created by AddEditVar.
func (c *Constraint) IsEdit() bool { return c.isEdit }

// weightValue is the coefficient this constraint's error variables
// contribute to the objective row.
func (c *Constraint) weightValue() float64 { return c.strength.Weight(c.weight) }
