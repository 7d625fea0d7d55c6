package casso

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolKind(t *testing.T) {
	v := newSymbol(KindDecision)
	require.False(t, v.Zero())
	require.Equal(t, KindDecision, v.Kind())
	require.True(t, v.External())
	require.False(t, v.Restricted())
	require.False(t, v.Pivotable())
	require.False(t, v.Dummy())

	sl := newSymbol(KindSlack)
	require.Equal(t, KindSlack, sl.Kind())
	require.True(t, sl.Restricted())
	require.True(t, sl.Pivotable())
	require.False(t, sl.Dummy())

	d := newSymbol(KindDummy)
	require.True(t, d.Restricted())
	require.False(t, d.Pivotable())
	require.True(t, d.Dummy())

	obj := newSymbol(KindObjective)
	require.False(t, obj.External())
	require.False(t, obj.Restricted())
	require.False(t, obj.Pivotable())
}

func TestExprAddSymbolCancelsToZero(t *testing.T) {
	a := newSymbol(KindDecision)
	e := NewExpr(1, a.T(2))
	e.AddSymbol(-2, a)
	require.True(t, e.IsConstant())
	require.InDelta(t, 0, e.CoefficientFor(a), epsilon)
}

func TestExprAddExpr(t *testing.T) {
	a := newSymbol(KindDecision)
	b := newSymbol(KindDecision)

	lhs := NewExpr(1, a.T(2))
	rhs := NewExpr(3, a.T(-2), b.T(5))

	lhs.AddExpr(1, rhs)

	require.InDelta(t, 4, lhs.Constant, epsilon)
	require.True(t, lhs.IsConstant() == false)
	require.InDelta(t, 0, lhs.CoefficientFor(a), epsilon)
	require.InDelta(t, 5, lhs.CoefficientFor(b), epsilon)
}

func TestExprSolveFor(t *testing.T) {
	a := newSymbol(KindDecision)
	b := newSymbol(KindDecision)

	// 0 = 10 + 2a - b  =>  a = -5 + b/2
	e := NewExpr(10, a.T(2), b.T(-1))
	e.SolveFor(a)

	require.InDelta(t, -5, e.Constant, epsilon)
	require.InDelta(t, 0.5, e.CoefficientFor(b), epsilon)
	require.Equal(t, -1, e.find(a))
}

func TestExprChangeSubject(t *testing.T) {
	exit := newSymbol(KindSlack)
	entry := newSymbol(KindSlack)
	other := newSymbol(KindDecision)

	// exit = 4 - 2*entry + other
	e := NewExpr(4, entry.T(-2), other.T(1))
	e.ChangeSubject(exit, entry)

	// 0 = 4 - 2*entry + other - exit  =>  entry = 2 + other/2 - exit/2
	require.InDelta(t, 2, e.Constant, epsilon)
	require.InDelta(t, 0.5, e.CoefficientFor(other), epsilon)
	require.InDelta(t, -0.5, e.CoefficientFor(exit), epsilon)
	require.Equal(t, -1, e.find(entry))
}

func TestExprSubstituteOut(t *testing.T) {
	a := newSymbol(KindDecision)
	b := newSymbol(KindDecision)
	c := newSymbol(KindDecision)

	e := NewExpr(1, a.T(2), b.T(3))
	// a = 5 - c
	e.SubstituteOut(a, NewExpr(5, c.T(-1)))

	require.InDelta(t, 11, e.Constant, epsilon)
	require.Equal(t, -1, e.find(a))
	require.InDelta(t, -2, e.CoefficientFor(c), epsilon)
	require.InDelta(t, 3, e.CoefficientFor(b), epsilon)
}

func TestExprSetCoefficient(t *testing.T) {
	a := newSymbol(KindDecision)
	e := NewExpr(0, a.T(1))
	e.SetCoefficient(a, 0)
	require.True(t, e.IsConstant())

	e.SetCoefficient(a, 7)
	require.InDelta(t, 7, e.CoefficientFor(a), epsilon)
}

func TestExprAnyPivotableVariable(t *testing.T) {
	dec := newSymbol(KindDecision)
	slack := newSymbol(KindSlack)

	e := NewExpr(0, dec.T(1))
	_, ok := e.AnyPivotableVariable()
	require.False(t, ok)

	e.AddSymbol(1, slack)
	sym, ok := e.AnyPivotableVariable()
	require.True(t, ok)
	require.Equal(t, slack, sym)
}

func TestStrengthOrdering(t *testing.T) {
	require.Less(t, float64(Weak), float64(Medium))
	require.Less(t, float64(Medium), float64(Strong))
	require.Less(t, float64(Strong), float64(Required))

	// Each level is 1000 times the one below: 999 weak penalties still lose
	// to a single medium one.
	require.Less(t, 999*float64(Weak), float64(Medium))
	require.Less(t, 999*float64(Medium), float64(Strong))
}
