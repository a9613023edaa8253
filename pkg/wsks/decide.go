package wsks

// DecideResult is the outcome of a decision run: the aggregate boolean the
// root fixpoint converged to, together with its UNGROUND_ROOT witnesses
// (§6).
type DecideResult struct {
	Accepted  bool
	SatTerm   *Term
	UnsatTerm *Term
}

// NewRootFixpoint builds the top-level FIXPOINT for a root ProjectionAutomaton:
// symbols are trimmed and pumped per InitSymbols from base and the
// automaton's projected variables, and the resulting Fixpoint always uses
// SearchUngroundRoot regardless of what the automaton's own Guide requests,
// matching §6's "root_fixpoint" terminology — only the root automaton's
// fixpoint drives decide().
//
// initBValue is the seed passed through to NewFixpoint's b_value (§4.5
// step 8): pass complement itself unless the caller already knows the
// seed's own epsilon result under base.
func NewRootFixpoint(aut ProjectionAutomaton, base Symbol, seed *Term, allPositionsVar string, varMap VarMap, symWorkshop SymbolWorkshop, initBValue, shortBool, complement bool) *Fixpoint {
	nonOccurring := aut.Base().NonOccurringVars()
	symbols, projected := InitSymbols(base, nonOccurring, aut.ProjectedVars(), varMap, allPositionsVar, symWorkshop)
	guide := aut.Guide()
	return NewFixpoint(seed, symbols, projected, aut.Base(), guide, SearchUngroundRoot, initBValue, shortBool, complement)
}

// Decide drives root, a FIXPOINT term, to quiescence by repeatedly calling
// ComputeNextFixpoint until FullyComputed, then returns the aggregate
// boolean and its witnesses (§6: "decide(root_aut) loops: while
// !root_fixpoint.fully_computed() call compute_next_fixpoint(); return
// root_fixpoint.b_value together with (sat_term, unsat_term)").
func (e *Engine) Decide(root *Term) (DecideResult, error) {
	if root.kind != KindFixpoint {
		precondition("Decide: root term is not a FIXPOINT (kind=%v)", root.kind)
	}
	fp := root.fixpoint
	for !fp.FullyComputed() {
		if err := e.ComputeNextFixpoint(fp); err != nil {
			return DecideResult{}, err
		}
	}
	return DecideResult{
		Accepted:  fp.BValue(),
		SatTerm:   fp.SatTerm(),
		UnsatTerm: fp.UnsatTerm(),
	}, nil
}
