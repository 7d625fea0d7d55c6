package casso

import "github.com/davecgh/go-spew/spew"

// Dump renders the solver's internal tableau state for debugging — the
// kind of thing an embedding layout engine reaches for when a constraint
// set isn't behaving as expected. It is not on any solving path and its
// output format carries no stability guarantee.
func (s *Solver) Dump() string {
	snapshot := struct {
		Rows            map[Symbol]Expr
		InfeasibleRows  []Symbol
		MarkerCount     int
		ErrorVarGroups  int
		EditSessions    int
		ActiveEditVars  int
		StayConstraints int
	}{
		Rows:            s.tab.rows,
		InfeasibleRows:  s.tab.infeasibleRows,
		MarkerCount:     len(s.markerVariables),
		ErrorVarGroups:  len(s.errorVariables),
		EditSessions:    len(s.editStack),
		ActiveEditVars:  len(s.editVarMap),
		StayConstraints: len(s.stays),
	}
	return spew.Sdump(snapshot)
}
