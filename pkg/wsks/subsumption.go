package wsks

import "sort"

// SubsumeResult is the three-valued outcome of a subsumption test (§4.3).
type SubsumeResult int

const (
	// SubsumeNO: disproven.
	SubsumeNO SubsumeResult = iota
	// SubsumeYES: full containment proven.
	SubsumeYES
	// SubsumePARTIAL: a is partially covered; the residual a \ b is
	// returned alongside the verdict.
	SubsumePARTIAL
)

func (r SubsumeResult) String() string {
	switch r {
	case SubsumeNO:
		return "NO"
	case SubsumeYES:
		return "YES"
	case SubsumePARTIAL:
		return "PARTIAL"
	default:
		return "SubsumeResult(?)"
	}
}

// IsSubsumed tests whether the set denoted by a is contained in the set
// denoted by b, per the algorithm in §4.3. limit bounds recursion depth;
// pass 0 to use the Engine's default. unfoldAll forces continuation
// unfolding even where the early-partial shortcut (below) would otherwise
// avoid it.
func (e *Engine) IsSubsumed(a, b *Term, limit int, unfoldAll bool) (SubsumeResult, *Term, error) {
	if limit <= 0 {
		limit = e.MaxDepth
	}
	return e.isSubsumedDepth(a, b, limit, unfoldAll, 0)
}

func (e *Engine) isSubsumedDepth(a, b *Term, limit int, unfoldAll bool, depth int) (SubsumeResult, *Term, error) {
	// Step 1: pointer identity.
	if a == b {
		return SubsumeYES, nil, nil
	}
	// Step 2: depth limit exhausted -> pointer-identity result only.
	if depth >= limit {
		return SubsumeNO, nil, nil
	}
	// Step 3: unfold continuations before anything else.
	if a.kind == KindContinuation {
		res, _, err := a.Unfold()
		if err != nil {
			return SubsumeNO, nil, err
		}
		e.Metrics.IncContinuationUnfolding()
		return e.isSubsumedDepth(res, b, limit, unfoldAll, depth+1)
	}
	if b.kind == KindContinuation {
		res, _, err := b.Unfold()
		if err != nil {
			return SubsumeNO, nil, err
		}
		e.Metrics.IncContinuationUnfolding()
		return e.isSubsumedDepth(a, res, limit, unfoldAll, depth+1)
	}
	// Step 4: complement flags must match.
	if a.complement != b.complement {
		precondition("IsSubsumed: complement flag mismatch between %v and %v", a.kind, b.kind)
	}
	// Step 5: consult the cache.
	if cached, ok := e.Caches.lookupSubsumption(a, b); ok {
		return cached.result, cached.residual, nil
	}

	var result SubsumeResult
	var residual *Term
	var err error
	// Step 6: complemented operands swap roles and recurse on cores.
	if a.complement {
		result, residual, err = e.dispatchCore(b, a, limit, unfoldAll, depth)
	} else {
		result, residual, err = e.dispatchCore(a, b, limit, unfoldAll, depth)
	}
	if err != nil {
		return SubsumeNO, nil, err
	}

	e.Metrics.IncSubsumptionResult(result)
	// Step 7: store YES and PARTIAL; never NO.
	e.Caches.storeSubsumption(a, b, result, residual)
	return result, residual, nil
}

// dispatchCore implements the kind-specific rules of §4.3, operating on the
// logical (non-complemented) reading of x and y — the complement swap has
// already happened in isSubsumedDepth.
func (e *Engine) dispatchCore(x, y *Term, limit int, unfoldAll bool, depth int) (SubsumeResult, *Term, error) {
	switch x.kind {
	case KindEmpty:
		return SubsumeYES, nil, nil
	case KindBase:
		return e.baseDispatch(x, y)
	case KindProduct, KindTernary:
		return e.productDispatch(x, y, limit, unfoldAll, depth)
	case KindNary:
		return e.naryDispatch(x, y, limit, unfoldAll, depth)
	case KindList:
		return e.listDispatch(x, y, limit, unfoldAll, depth)
	case KindFixpoint:
		return e.fixpointDispatch(x, y, limit, unfoldAll, depth)
	default:
		precondition("dispatchCore: unexpected kind %v", x.kind)
		return SubsumeNO, nil, nil
	}
}

// baseDispatch implements BASE ⊆ BASE as an ordered-set subset test,
// computing the residual a \ b on request (§4.3).
func (e *Engine) baseDispatch(x, y *Term) (SubsumeResult, *Term, error) {
	if y.kind != KindBase {
		if y.IsEmpty() {
			if x.IsEmpty() {
				return SubsumeYES, nil, nil
			}
			return SubsumeNO, nil, nil
		}
		precondition("BASE subsumption against incompatible kind %v", y.kind)
	}
	if x.base.IsSubsetOf(y.base) {
		return SubsumeYES, nil, nil
	}
	diff := x.base.Difference(y.base)
	if diff.IsEmpty() {
		return SubsumeYES, nil, nil
	}
	if diff.Equal(x.base) {
		return SubsumeNO, nil, nil
	}
	residual := &Term{aut: x.aut, kind: KindBase, base: diff, approx: diff.Count()}
	return SubsumePARTIAL, residual, nil
}

// childOrder returns indices 0..n-1 ordered cheapest-first by approx, used
// as the short-circuit order for PRODUCT/TERNARY comparisons.
func childOrderByApprox(children []*Term) []int {
	order := make([]int, len(children))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return children[order[i]].approx < children[order[j]].approx
	})
	return order
}

// earlyPartialOnPendingContinuations implements the early-partial rule: if
// the last children of both operands are not-yet-unfolded CONTINUATIONs and
// every other child already subsumes, returning PARTIAL here avoids forcing
// a heavy evaluation just to get a YES/NO we don't strictly need yet.
func (e *Engine) earlyPartialOnPendingContinuations(x, y *Term, limit int, unfoldAll bool, depth int) (bool, SubsumeResult, *Term, error) {
	if unfoldAll {
		return false, SubsumeNO, nil, nil
	}
	n := len(x.children)
	if n == 0 || len(y.children) != n {
		return false, SubsumeNO, nil, nil
	}
	last := n - 1
	if x.children[last].kind != KindContinuation || y.children[last].kind != KindContinuation {
		return false, SubsumeNO, nil, nil
	}
	if x.children[last].contUnfolded != nil || y.children[last].contUnfolded != nil {
		return false, SubsumeNO, nil, nil
	}
	for i := 0; i < last; i++ {
		r, _, err := e.isSubsumedDepth(x.children[i], y.children[i], limit, unfoldAll, depth+1)
		if err != nil {
			return false, SubsumeNO, nil, err
		}
		if r != SubsumeYES {
			return false, SubsumeNO, nil, nil
		}
	}
	residualChildren := make([]*Term, n)
	copy(residualChildren, x.children)
	residualChildren[last] = x.children[last]
	residual := &Term{
		aut:         x.aut,
		kind:        x.kind,
		productKind: x.productKind,
		children:    residualChildren,
		approx:      x.children[last].approx,
	}
	return true, SubsumePARTIAL, residual, nil
}

// productDispatch implements PRODUCT/TERNARY ⊆ PRODUCT/TERNARY: componentwise,
// short-circuited cheapest-child-first, with PARTIAL propagation (§4.3).
func (e *Engine) productDispatch(x, y *Term, limit int, unfoldAll bool, depth int) (SubsumeResult, *Term, error) {
	if y.kind != x.kind || len(y.children) != len(x.children) || y.productKind != x.productKind {
		if y.IsEmpty() {
			if x.IsEmpty() {
				return SubsumeYES, nil, nil
			}
			return SubsumeNO, nil, nil
		}
		precondition("PRODUCT/TERNARY subsumption against incompatible shape")
	}

	if shortcut, result, residual, err := e.earlyPartialOnPendingContinuations(x, y, limit, unfoldAll, depth); shortcut {
		return result, residual, err
	}

	n := len(x.children)
	results := make([]SubsumeResult, n)
	residuals := make([]*Term, n)
	for _, idx := range childOrderByApprox(x.children) {
		r, res, err := e.isSubsumedDepth(x.children[idx], y.children[idx], limit, unfoldAll, depth+1)
		if err != nil {
			return SubsumeNO, nil, err
		}
		results[idx] = r
		residuals[idx] = res
		if r == SubsumeNO {
			return SubsumeNO, nil, nil
		}
	}

	allYES := true
	for _, r := range results {
		if r != SubsumeYES {
			allYES = false
			break
		}
	}
	if allYES {
		return SubsumeYES, nil, nil
	}

	residualChildren := make([]*Term, n)
	sum := 0
	for i, r := range results {
		if r == SubsumePARTIAL {
			residualChildren[i] = residuals[i]
		} else {
			residualChildren[i] = x.children[i]
		}
		sum += residualChildren[i].approx
	}
	residual := &Term{
		aut:         x.aut,
		kind:        x.kind,
		productKind: x.productKind,
		children:    residualChildren,
		approx:      sum + 1,
	}
	return SubsumePARTIAL, residual, nil
}

// naryDispatch generalizes productDispatch to NARY, iterating in
// access_vector order and rotating the failing index to the front on a NO
// — a self-tuning heuristic that never changes the result, only the cost of
// future calls (§4.3, §5).
func (e *Engine) naryDispatch(x, y *Term, limit int, unfoldAll bool, depth int) (SubsumeResult, *Term, error) {
	if y.kind != KindNary || len(y.children) != len(x.children) || y.productKind != x.productKind {
		if y.IsEmpty() {
			if x.IsEmpty() {
				return SubsumeYES, nil, nil
			}
			return SubsumeNO, nil, nil
		}
		precondition("NARY subsumption against incompatible shape")
	}

	n := len(x.children)
	results := make([]SubsumeResult, n)
	residuals := make([]*Term, n)
	for _, idx := range x.accessVector {
		r, res, err := e.isSubsumedDepth(x.children[idx], y.children[idx], limit, unfoldAll, depth+1)
		if err != nil {
			return SubsumeNO, nil, err
		}
		results[idx] = r
		residuals[idx] = res
		if r == SubsumeNO {
			rotateToFront(x.accessVector, idx)
			return SubsumeNO, nil, nil
		}
	}

	allYES := true
	for _, r := range results {
		if r != SubsumeYES {
			allYES = false
			break
		}
	}
	if allYES {
		return SubsumeYES, nil, nil
	}

	residualChildren := make([]*Term, n)
	sum := 0
	for i, r := range results {
		if r == SubsumePARTIAL {
			residualChildren[i] = residuals[i]
		} else {
			residualChildren[i] = x.children[i]
		}
		sum += residualChildren[i].approx
	}
	residual := &Term{
		aut:          x.aut,
		kind:         KindNary,
		productKind:  x.productKind,
		children:     residualChildren,
		accessVector: append([]int(nil), x.accessVector...),
		approx:       sum + 1,
	}
	return SubsumePARTIAL, residual, nil
}

// rotateToFront moves value to the front of vec, preserving the relative
// order of the remaining elements.
func rotateToFront(vec []int, value int) {
	pos := -1
	for i, v := range vec {
		if v == value {
			pos = i
			break
		}
	}
	if pos <= 0 {
		return
	}
	copy(vec[1:pos+1], vec[0:pos])
	vec[0] = value
}

// listDispatch implements LIST ⊆ LIST: every element of x must be subsumed
// by some element of y.
func (e *Engine) listDispatch(x, y *Term, limit int, unfoldAll bool, depth int) (SubsumeResult, *Term, error) {
	if y.kind != KindList {
		precondition("LIST subsumption against incompatible kind %v", y.kind)
	}
	for _, mx := range x.listMembers {
		covered := false
		for _, my := range y.listMembers {
			r, _, err := e.isSubsumedDepth(mx, my, limit, unfoldAll, depth+1)
			if err != nil {
				return SubsumeNO, nil, err
			}
			if r == SubsumeYES {
				covered = true
				break
			}
		}
		if !covered {
			return SubsumeNO, nil, nil
		}
	}
	return SubsumeYES, nil, nil
}

// fixpointDispatch implements FIXPOINT ⊆ FIXPOINT per §4.3's strict
// reading of the open question about non-empty worklists: the result is YES
// only when both worklists are empty, or the source-symbol sets coincide —
// and member coverage always holds.
func (e *Engine) fixpointDispatch(x, y *Term, limit int, unfoldAll bool, depth int) (SubsumeResult, *Term, error) {
	if y.kind != KindFixpoint {
		precondition("FIXPOINT subsumption against incompatible kind %v", y.kind)
	}
	xfp, yfp := x.fixpoint, y.fixpoint

	bothEmpty := len(xfp.worklist) == 0 && len(yfp.worklist) == 0
	if !bothEmpty && !symbolSetsCoincide(xfp.symbols, yfp.symbols) {
		return SubsumeNO, nil, nil
	}

	for _, mx := range xfp.members {
		if mx.term == nil || !mx.alive {
			continue
		}
		covered := false
		for _, my := range yfp.members {
			if my.term == nil || !my.alive {
				continue
			}
			r, _, err := e.isSubsumedDepth(mx.term, my.term, limit, unfoldAll, depth+1)
			if err != nil {
				return SubsumeNO, nil, err
			}
			if r == SubsumeYES {
				covered = true
				break
			}
		}
		if !covered {
			return SubsumeNO, nil, nil
		}
	}
	return SubsumeYES, nil, nil
}

func symbolSetsCoincide(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, sa := range a {
		found := false
		for j, sb := range b {
			if used[j] {
				continue
			}
			if sa.Equal(sb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Subsumes performs the single-point membership check used when comparing a
// term against an enumerator value rather than another term: it reports
// whether the enumerator is covered, never PARTIAL (§4.1).
func (e *Engine) Subsumes(t, enumerator *Term) (bool, error) {
	if cached, ok := e.Caches.lookupEnumeratorSubsumes(t, enumerator); ok {
		return cached, nil
	}
	result, _, err := e.IsSubsumed(enumerator, t, 0, true)
	if err != nil {
		return false, err
	}
	covered := result == SubsumeYES
	e.Caches.storeEnumeratorSubsumes(t, enumerator, covered)
	return covered, nil
}
