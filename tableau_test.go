package casso

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// derivedColumns recomputes the reverse column index from rows alone:
// columns[v] == { b : v in rows[b].terms }.
func derivedColumns(t *tableau) map[Symbol]map[Symbol]struct{} {
	out := make(map[Symbol]map[Symbol]struct{})
	for basic, e := range t.rows {
		for _, term := range e.terms {
			set := out[term.Symbol]
			if set == nil {
				set = make(map[Symbol]struct{})
				out[term.Symbol] = set
			}
			set[basic] = struct{}{}
		}
	}
	return out
}

// requireColumnsMatchRows asserts tableau invariant 2 holds exactly: the tableau's
// own column index and the one derived fresh from its rows agree, field for
// field. go-cmp's structural diff pinpoints exactly which symbol's column
// set drifted, which testify's Equal collapses into an unreadable blob for
// maps this large.
func requireColumnsMatchRows(t *testing.T, tab *tableau) {
	t.Helper()
	want := derivedColumns(tab)
	if diff := cmp.Diff(want, tab.columns, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("tableau.columns diverged from rows (-want +got):\n%s", diff)
	}
}

func TestTableauAddRemoveRowKeepsColumnsInLockstep(t *testing.T) {
	tab := newTableau()
	a := newSymbol(KindSlack)
	b := newSymbol(KindSlack)
	basic := newSymbol(KindDecision)

	tab.addRow(basic, NewExpr(1, a.T(2), b.T(-1)))
	requireColumnsMatchRows(t, tab)

	tab.removeRow(basic)
	requireColumnsMatchRows(t, tab)
	require.Empty(t, tab.columns)
}

func TestTableauSubstituteOutKeepsColumnsInLockstep(t *testing.T) {
	tab := newTableau()
	v := newSymbol(KindSlack)
	c := newSymbol(KindSlack)
	r1 := newSymbol(KindDecision)
	r2 := newSymbol(KindDecision)

	tab.addRow(r1, NewExpr(1, v.T(1), c.T(2)))
	tab.addRow(r2, NewExpr(3, v.T(-1)))
	requireColumnsMatchRows(t, tab)

	// v = 5 + 2c
	tab.substituteOut(v, NewExpr(5, c.T(2)), nil)
	requireColumnsMatchRows(t, tab)
	require.NotContains(t, tab.columns, v)
}

func TestTableauRemoveColumnDropsTermEverywhere(t *testing.T) {
	tab := newTableau()
	v := newSymbol(KindSlack)
	r1 := newSymbol(KindDecision)
	r2 := newSymbol(KindDecision)

	tab.addRow(r1, NewExpr(1, v.T(1)))
	tab.addRow(r2, NewExpr(2, v.T(3)))

	tab.removeColumn(v)
	requireColumnsMatchRows(t, tab)
	require.NotContains(t, tab.columns, v)
	require.InDelta(t, 0, tab.rows[r1].CoefficientFor(v), epsilon)
	require.InDelta(t, 0, tab.rows[r2].CoefficientFor(v), epsilon)
}
