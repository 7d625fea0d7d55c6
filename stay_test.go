package casso_test

import (
	"testing"

	"github.com/simoncowen88/casso"
	"github.com/stretchr/testify/require"
)

func TestAddStayKeepsVariableNearItsLastValue(t *testing.T) {
	s := casso.NewSolver()
	x := casso.NewVar("x")

	require.NoError(t, s.AddStay(x))
	require.InDelta(t, 0, s.Value(x), 1e-8)

	require.NoError(t, s.SetEditedValue(x, 9))
	require.InDelta(t, 9, s.Value(x), 1e-8)

	// Once the edit ends, the weak stay has nothing pulling against it, so x
	// keeps the edited value rather than springing back.
	require.InDelta(t, 9, s.Value(x), 1e-8)
}

func TestAddStayRejectsRequiredStrength(t *testing.T) {
	s := casso.NewSolver()
	x := casso.NewVar("x")

	err := s.AddStayWithStrength(x, casso.Required, 1)
	require.Error(t, err)
}

func TestStayResistsPerturbationAtLowerWeight(t *testing.T) {
	// Both stays are established at their default 0 value before the shared
	// required equality forces a trade-off; the stronger stay on a should
	// win, pushing nearly all of the required deviation onto b.
	s := casso.NewSolver()
	a := casso.NewVar("a")
	b := casso.NewVar("b")

	require.NoError(t, s.AddStayWithStrength(a, casso.Strong, 1))
	require.NoError(t, s.AddStayWithStrength(b, casso.Weak, 1))
	require.NoError(t, s.AddConstraint(a.Plus(b).EqualTo(20.0)))

	require.InDelta(t, 0, s.Value(a), 1e-8)
	require.InDelta(t, 20, s.Value(b), 1e-8)
}
