package wsks

// unfold evaluates the postponed intersect_nonempty(symbol, source, complement)
// call on the target automaton, memoizes the result in the CONTINUATION's
// single-assignment unfolded slot, and returns it (§4.4). Unfolding is
// idempotent: calling it twice returns the same handle without
// re-evaluating. reason is carried only for tracing.
func (t *Term) unfold(reason string) (*unfoldResult, error) {
	if t.kind != KindContinuation {
		precondition("unfold: term is not a CONTINUATION (kind=%v)", t.kind)
	}
	if t.contUnfolded != nil {
		return t.contUnfolded, nil
	}

	targetAut := t.contTargetAut
	source := t.contSource
	if t.contLazyInit != nil {
		aut, src, err := t.contLazyInit.Init()
		if err != nil {
			return nil, wrapError(ErrBaseAutomatonFailure, err, "CONTINUATION lazy init failed")
		}
		targetAut = aut
		source = src
	}

	tracef("unfolding continuation (%s): source=%p symbol=%s complement=%t", reason, source, t.contSymbol, t.contComplement)

	result, epsilon, err := targetAut.IntersectNonempty(t.contSymbol, source, t.contComplement)
	if err != nil {
		return nil, wrapError(ErrBaseAutomatonFailure, err, "intersect_nonempty failed during unfold")
	}

	// Single assignment: the first caller to reach here wins, but since the
	// engine is single-threaded (§5) there is no race to arbitrate.
	t.contUnfolded = &unfoldResult{term: result, epsilon: epsilon}
	return t.contUnfolded, nil
}

// Unfold is the public entry point for forcing a CONTINUATION; it is the
// only way a CONTINUATION is ever compared or tested, per §4.3 step 3 and
// §4.4: "CONTINUATION is never tested directly — it is always unfolded
// first."
func (t *Term) Unfold() (*Term, bool, error) {
	res, err := t.unfold("Unfold")
	if err != nil {
		return nil, false, err
	}
	return res.term, res.epsilon, nil
}
