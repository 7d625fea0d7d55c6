package casso

import (
	"fmt"
	"sync/atomic"
)

// epsilon governs every "close enough to zero" test in the solver: coefficient
// cleanup in Expr, the artificial-objective feasibility check, and the sign
// tests of the simplex ratio and row-feasibility checks.
const epsilon = 1e-8

func nearZero(v float64) bool {
	if v < 0 {
		return -v < epsilon
	}
	return v < epsilon
}

// Kind tags the role a Symbol plays in the tableau. It determines, not
// stores, a symbol's capability flags (external/restricted/pivotable/dummy).
type Kind uint8

const (
	KindDecision Kind = iota
	KindSlack
	KindError
	KindDummy
	KindObjective
)

var kindNames = [...]string{
	KindDecision:  "decision",
	KindSlack:     "slack",
	KindError:     "error",
	KindDummy:     "dummy",
	KindObjective: "objective",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Symbol is an opaque, identity-compared handle for a variable: a decision
// variable the client created, or a slack/error/dummy/objective variable the
// solver created internally. Its Kind is packed into the top bits so every
// capability predicate is a cheap bit test instead of a map lookup.
type Symbol uint64

const symbolKindBits = 3
const symbolKindShift = 64 - symbolKindBits
const symbolIDMask = (uint64(1) << symbolKindShift) - 1

var symbolCounter uint64

func newSymbol(kind Kind) Symbol {
	n := atomic.AddUint64(&symbolCounter, 1)
	return Symbol((n & symbolIDMask) | (uint64(kind) << symbolKindShift))
}

// Kind reports which role this symbol plays.
func (s Symbol) Kind() Kind { return Kind(uint64(s) >> symbolKindShift) }

// Zero reports whether s is the unset symbol value.
func (s Symbol) Zero() bool { return s == 0 }

// External reports whether s is a client-visible decision variable.
func (s Symbol) External() bool { return !s.Zero() && s.Kind() == KindDecision }

// Restricted reports whether s is implicitly constrained to be >= 0.
func (s Symbol) Restricted() bool {
	if s.Zero() {
		return false
	}
	switch s.Kind() {
	case KindSlack, KindError, KindDummy:
		return true
	default:
		return false
	}
}

// Pivotable reports whether s is eligible to enter the basis.
func (s Symbol) Pivotable() bool {
	if s.Zero() {
		return false
	}
	switch s.Kind() {
	case KindSlack, KindError:
		return true
	default:
		return false
	}
}

// Dummy reports whether s is a marker-only variable that is never pivoted.
func (s Symbol) Dummy() bool { return !s.Zero() && s.Kind() == KindDummy }

// T builds a Term pairing this symbol with a coefficient, the building block
// of expressions and constraints.
func (s Symbol) T(coeff float64) Term { return Term{Coefficient: coeff, Symbol: s} }

func (s Symbol) String() string {
	if s.Zero() {
		return "<zero>"
	}
	return fmt.Sprintf("%s#%d", s.Kind(), uint64(s)&symbolIDMask)
}

// Op is the relational operator of a canonical row/constraint expression.
type Op uint8

const (
	OpEQ Op = iota
	OpLTE
	OpGTE
)

var opNames = [...]string{OpEQ: "=", OpLTE: "<=", OpGTE: ">="}

func (o Op) String() string { return opNames[o] }

// Term is one coefficient*symbol addend of a linear expression.
type Term struct {
	Coefficient float64
	Symbol      Symbol
}

// Expr is a symbolic sum: a constant plus a set of nonzero-coefficient
// terms. The methods below with pointer receivers mutate the expression in
// place; the arithmetic builders in variable.go return fresh expressions.
// Every mutating method keeps the invariant that no stored coefficient is
// within epsilon of zero.
type Expr struct {
	Constant float64
	terms    []Term
}

// NewExpr builds an expression from a constant and zero or more terms.
// Each term goes through AddSymbol, so terms on the same symbol are combined
// and terms that cancel to ~0 are dropped.
func NewExpr(constant float64, terms ...Term) Expr {
	e := Expr{Constant: constant}
	for _, t := range terms {
		e.AddSymbol(t.Coefficient, t.Symbol)
	}
	return e
}

// Clone returns an independent copy; expressions are values, never aliased.
func (e Expr) Clone() Expr {
	out := Expr{Constant: e.Constant}
	if len(e.terms) > 0 {
		out.terms = append([]Term(nil), e.terms...)
	}
	return out
}

// Terms returns the expression's nonzero terms. Callers must not mutate the
// returned slice.
func (e Expr) Terms() []Term { return e.terms }

// IsConstant reports whether the expression has no remaining terms.
func (e Expr) IsConstant() bool { return len(e.terms) == 0 }

func (e Expr) find(sym Symbol) int {
	for i := range e.terms {
		if e.terms[i].Symbol == sym {
			return i
		}
	}
	return -1
}

func (e *Expr) deleteAt(i int) {
	copy(e.terms[i:], e.terms[i+1:])
	e.terms = e.terms[:len(e.terms)-1]
}

// CoefficientFor returns sym's coefficient, or 0 if sym does not appear.
func (e Expr) CoefficientFor(sym Symbol) float64 {
	if idx := e.find(sym); idx != -1 {
		return e.terms[idx].Coefficient
	}
	return 0
}

// AddSymbol adds coeff*sym into the expression, combining with any existing
// term for sym and dropping the term entirely if the result is ~0.
func (e *Expr) AddSymbol(coeff float64, sym Symbol) {
	idx := e.find(sym)
	if idx == -1 {
		if !nearZero(coeff) {
			e.terms = append(e.terms, Term{Coefficient: coeff, Symbol: sym})
		}
		return
	}
	e.terms[idx].Coefficient += coeff
	if nearZero(e.terms[idx].Coefficient) {
		e.deleteAt(idx)
	}
}

// AddExpr adds coeff*other into the expression term by term.
func (e *Expr) AddExpr(coeff float64, other Expr) {
	e.Constant += coeff * other.Constant
	for _, t := range other.terms {
		e.AddSymbol(coeff*t.Coefficient, t.Symbol)
	}
}

// SetCoefficient forces sym's coefficient to exactly c, adding or removing
// the term as needed.
func (e *Expr) SetCoefficient(sym Symbol, c float64) {
	if idx := e.find(sym); idx != -1 {
		e.deleteAt(idx)
	}
	if !nearZero(c) {
		e.terms = append(e.terms, Term{Coefficient: c, Symbol: sym})
	}
}

// Negate flips the sign of every term and the constant.
func (e *Expr) Negate() {
	e.Constant = -e.Constant
	for i := range e.terms {
		e.terms[i].Coefficient = -e.terms[i].Coefficient
	}
}

// SolveFor rewrites the expression, read as "0 = e", to isolate sym: sym's
// term is removed and every other coefficient (and the constant) is divided
// by -sym's original coefficient. No-op if sym does not appear.
func (e *Expr) SolveFor(sym Symbol) {
	idx := e.find(sym)
	if idx == -1 {
		return
	}
	coeff := -1.0 / e.terms[idx].Coefficient
	e.deleteAt(idx)
	if coeff == 1.0 {
		return
	}
	e.Constant *= coeff
	for i := range e.terms {
		e.terms[i].Coefficient *= coeff
	}
}

// ChangeSubject rewrites a row currently read as "oldSubject = e" into one
// read as "newSubject = e'", by reintroducing oldSubject as an explicit term
// and then solving for newSubject.
func (e *Expr) ChangeSubject(oldSubject, newSubject Symbol) {
	e.AddSymbol(-1.0, oldSubject)
	e.SolveFor(newSubject)
}

// SubstituteOut replaces every occurrence of sym in the expression with
// other, scaled by sym's coefficient.
func (e *Expr) SubstituteOut(sym Symbol, other Expr) {
	idx := e.find(sym)
	if idx == -1 {
		return
	}
	coeff := e.terms[idx].Coefficient
	e.deleteAt(idx)
	e.AddExpr(coeff, other)
}

// AnyPivotableVariable returns some pivotable symbol referenced by the
// expression, used by the artificial-variable recovery path to find a
// replacement entering variable.
func (e Expr) AnyPivotableVariable() (Symbol, bool) {
	for _, t := range e.terms {
		if t.Symbol.Pivotable() {
			return t.Symbol, true
		}
	}
	return 0, false
}
