package casso

// Var is a named, client-owned decision variable. Variables are created
// independently of any particular Solver and may be added to more than one
// solver, or dropped and re-added to the same one; identity is the
// underlying Symbol, not the name, so two variables named "x" are distinct.
type Var struct {
	sym  Symbol
	name string
}

// NewVar creates a fresh decision variable. name is for humans only (read
// back with Name) and never affects identity or equality.
func NewVar(name string) Var {
	return Var{sym: newSymbol(KindDecision), name: name}
}

// Name returns the variable's human-readable name.
func (v Var) Name() string { return v.name }

// Symbol returns the variable's underlying identity. Exported so callers can
// use it as a map key without round-tripping through the solver.
func (v Var) Symbol() Symbol { return v.sym }

// T builds a Term pairing this variable with a coefficient.
func (v Var) T(coeff float64) Term { return Term{Coefficient: coeff, Symbol: v.sym} }

func (v Var) expr() Expr { return NewExpr(0, v.T(1)) }

// asExpr coerces a float64, int, Var, Term, or Expr operand into an Expr.
// It is the building block behind Var/Expr's arithmetic and comparison
// methods, which are part of the solver's external, client-facing API for
// constructing constraints.
func asExpr(x interface{}) Expr {
	switch v := x.(type) {
	case float64:
		return NewExpr(v)
	case int:
		return NewExpr(float64(v))
	case Var:
		return v.expr()
	case Term:
		return NewExpr(0, v)
	case Expr:
		return v
	default:
		panic("casso: unsupported operand for linear expression")
	}
}

// Plus returns v + rhs as an expression.
func (v Var) Plus(rhs interface{}) Expr {
	e := v.expr()
	e.AddExpr(1, asExpr(rhs))
	return e
}

// Minus returns v - rhs as an expression.
func (v Var) Minus(rhs interface{}) Expr {
	e := v.expr()
	e.AddExpr(-1, asExpr(rhs))
	return e
}

// Times returns v scaled by k.
func (v Var) Times(k float64) Expr {
	e := NewExpr(0)
	e.AddExpr(k, v.expr())
	return e
}

// DivideBy returns v scaled by 1/k.
func (v Var) DivideBy(k float64) Expr { return v.Times(1 / k) }

// EqualTo builds the constraint v = rhs.
func (v Var) EqualTo(rhs interface{}) *Constraint { return newConstraint(OpEQ, v.expr(), asExpr(rhs)) }

// LessOrEqualTo builds the constraint v <= rhs.
func (v Var) LessOrEqualTo(rhs interface{}) *Constraint {
	return newConstraint(OpLTE, v.expr(), asExpr(rhs))
}

// GreaterOrEqualTo builds the constraint v >= rhs.
func (v Var) GreaterOrEqualTo(rhs interface{}) *Constraint {
	return newConstraint(OpGTE, v.expr(), asExpr(rhs))
}

// Plus returns e + rhs.
func (e Expr) Plus(rhs interface{}) Expr {
	out := e.Clone()
	out.AddExpr(1, asExpr(rhs))
	return out
}

// Minus returns e - rhs.
func (e Expr) Minus(rhs interface{}) Expr {
	out := e.Clone()
	out.AddExpr(-1, asExpr(rhs))
	return out
}

// Times returns e scaled by k.
func (e Expr) Times(k float64) Expr {
	out := NewExpr(0)
	out.AddExpr(k, e)
	return out
}

// DivideBy returns e scaled by 1/k.
func (e Expr) DivideBy(k float64) Expr { return e.Times(1 / k) }

// EqualTo builds the constraint e = rhs.
func (e Expr) EqualTo(rhs interface{}) *Constraint { return newConstraint(OpEQ, e, asExpr(rhs)) }

// LessOrEqualTo builds the constraint e <= rhs.
func (e Expr) LessOrEqualTo(rhs interface{}) *Constraint {
	return newConstraint(OpLTE, e, asExpr(rhs))
}

// GreaterOrEqualTo builds the constraint e >= rhs.
func (e Expr) GreaterOrEqualTo(rhs interface{}) *Constraint {
	return newConstraint(OpGTE, e, asExpr(rhs))
}
