package wsks

import "fmt"

// SearchType selects how a Fixpoint's worklist is popped (§4.5).
type SearchType int

const (
	// SearchDFS pops from the front of the worklist.
	SearchDFS SearchType = iota
	// SearchBFS pops from the back of the worklist.
	SearchBFS
	// SearchUngroundRoot is the top-level fixpoint's search: each step
	// records the first accepting and first rejecting successor as the
	// sat_term/unsat_term witnesses, membership tests use pointer identity
	// rather than subsumption, and search order follows DFS popping. The
	// witnesses do not stop saturation; it still runs until the worklist is
	// empty.
	SearchUngroundRoot
)

// fixMember is one slot of a Fixpoint's member sequence: (term, alive_flag).
// The sequence starts with a sentinel {term: nil, alive: true} used as an
// iterator boundary (§4.5).
type fixMember struct {
	term  *Term
	alive bool
}

// worklistItem is one pending (term, symbol) pair awaiting a saturation
// step.
type worklistItem struct {
	term   *Term
	symbol Symbol
}

// Fixpoint is the saturation state of an existential projection ∃X.φ
// (§4.5). It is never hash-consed (§4.2): its members/worklist mutate as
// saturation proceeds, which would invalidate any cache key.
type Fixpoint struct {
	members  []fixMember
	worklist []worklistItem

	sourceTerm     *Term
	sourceSymbol   Symbol
	sourceIterator *FixpointIterator

	baseAut    BaseAutomaton
	symbols    []Symbol
	projected  Symbol
	guide      FixpointGuide
	searchType SearchType
	shortBool  bool
	complement bool

	bValue    bool
	satTerm   *Term
	unsatTerm *Term

	iteratorCount int
}

// NewFixpoint builds a Fixpoint seeded from seed's members (a LIST term),
// with the given symbol alphabet (from InitSymbols), base automaton,
// optional guide (DefaultGuide{} if nil), search strategy, and the
// short-circuit boolean used to decide front-vs-back insertion and the
// aggregation direction (OR when complement is false, AND when true).
//
// initBValue seeds b_value before any saturation step runs (§4.5 step 8):
// it must be the identity element of the aggregation (false for OR,
// true for AND) unless the caller already knows the seed's own epsilon
// result, in which case that value is used directly. Passing the wrong
// identity here makes aggregate() collapse to a constant forever, since
// AND-with-false and OR-with-true are both absorbing.
func NewFixpoint(seed *Term, symbols []Symbol, projected Symbol, baseAut BaseAutomaton, guide FixpointGuide, searchType SearchType, initBValue, shortBool, complement bool) *Fixpoint {
	if guide == nil {
		guide = DefaultGuide{}
	}
	fp := &Fixpoint{
		members:    []fixMember{{term: nil, alive: true}},
		symbols:    symbols,
		projected:  projected,
		baseAut:    baseAut,
		guide:      guide,
		searchType: searchType,
		shortBool:  shortBool,
		complement: complement,
		bValue:     initBValue,
	}
	if seed != nil {
		for _, m := range seed.ListMembers() {
			fp.members = append(fp.members, fixMember{term: m, alive: true})
			fp.scheduleSuccessorWork(m)
		}
	}
	return fp
}

// NewPreFixpoint builds a Fixpoint computing the pre-image of another
// fixpoint: it consumes sourceIterator for new candidates under a single
// sourceSymbol, rather than expanding a symbol alphabet (§4.5 "Pre step").
// b_value starts at complement, the AND/OR identity, for the same reason
// NewFixpoint takes an explicit initBValue.
func NewPreFixpoint(sourceTerm *Term, sourceSymbol Symbol, sourceIterator *FixpointIterator, baseAut BaseAutomaton, shortBool, complement bool) *Fixpoint {
	return &Fixpoint{
		members:        []fixMember{{term: nil, alive: true}},
		sourceTerm:     sourceTerm,
		sourceSymbol:   sourceSymbol,
		sourceIterator: sourceIterator,
		baseAut:        baseAut,
		searchType:     SearchDFS,
		shortBool:      shortBool,
		complement:     complement,
		bValue:         complement,
	}
}

func (fp *Fixpoint) isPreMode() bool { return fp.sourceIterator != nil || fp.sourceSymbol != nil }

// isEmpty reports whether both the member set (excluding the sentinel) and
// the worklist are empty.
func (fp *Fixpoint) isEmpty() bool {
	if len(fp.worklist) != 0 {
		return false
	}
	for _, m := range fp.members {
		if m.term != nil && m.alive {
			return false
		}
	}
	return true
}

// BValue returns the current aggregate boolean.
func (fp *Fixpoint) BValue() bool { return fp.bValue }

// SatTerm / UnsatTerm return the UNGROUND_ROOT witness terms, nil if unset.
func (fp *Fixpoint) SatTerm() *Term   { return fp.satTerm }
func (fp *Fixpoint) UnsatTerm() *Term { return fp.unsatTerm }

// FullyComputed reports whether the fixpoint has reached quiescence: an
// empty worklist (FIXPOINT mode), or an empty worklist and an exhausted
// source iterator (PRE mode).
func (fp *Fixpoint) FullyComputed() bool {
	if len(fp.worklist) != 0 {
		return false
	}
	if fp.isPreMode() {
		return fp.sourceIterator == nil || !fp.sourceIterator.HasNext()
	}
	return true
}

func (fp *Fixpoint) popWorklist() worklistItem {
	var item worklistItem
	switch fp.searchType {
	case SearchBFS:
		last := len(fp.worklist) - 1
		item = fp.worklist[last]
		fp.worklist = fp.worklist[:last]
	default: // DFS, UNGROUND_ROOT
		item = fp.worklist[0]
		fp.worklist = fp.worklist[1:]
	}
	return item
}

func (fp *Fixpoint) pushFront(item worklistItem) {
	fp.worklist = append([]worklistItem{item}, fp.worklist...)
}

func (fp *Fixpoint) pushBack(item worklistItem) {
	fp.worklist = append(fp.worklist, item)
}

// scheduleSuccessorWork implements step 9 of compute_next_fixpoint: for
// every symbol in fp.symbols (or just fp.projected if the guide requests
// PROJECT_ALL), ask the guide where to place the (term, symbol) pair.
func (fp *Fixpoint) scheduleSuccessorWork(term *Term) {
	tip := fp.guide.Tip(term)
	symbolSet := fp.symbols
	if tip == GuideProjectAll {
		symbolSet = []Symbol{fp.projected}
	}
	for _, sym := range symbolSet {
		decision := fp.guide.TipSymbol(term, sym)
		item := worklistItem{term: term, symbol: sym}
		switch decision {
		case GuideThrow:
			continue
		case GuideBack:
			fp.pushBack(item)
		default: // GuideFront, GuideProject, GuideProjectAll
			fp.pushFront(item)
		}
	}
}

// aggregate combines the running b_value with a new step's epsilon result:
// OR when the fixpoint is not complemented, AND when it is.
func (fp *Fixpoint) aggregate(stepResult bool) {
	if fp.complement {
		fp.bValue = fp.bValue && stepResult
	} else {
		fp.bValue = fp.bValue || stepResult
	}
}

// fixpointTest implements fix_result = fixpoint_test(result_term) of step 5:
// UNGROUND_ROOT tests pointer identity against existing members; every
// other search type tests subsumption by an existing member, caching
// positive results in the is_subsumed_by_fixpoint cache.
func (e *Engine) fixpointTest(fp *Fixpoint, candidate *Term) (bool, error) {
	if fp.searchType == SearchUngroundRoot {
		for _, m := range fp.members {
			if m.term == candidate {
				return true, nil
			}
		}
		return false, nil
	}
	if cached, ok := e.Caches.lookupSubsumedBy(candidate, fp); ok {
		return cached == SubsumeYES, nil
	}
	for _, m := range fp.members {
		if m.term == nil || !m.alive {
			continue
		}
		r, _, err := e.IsSubsumed(candidate, m.term, 0, false)
		if err != nil {
			return false, err
		}
		if r == SubsumeYES {
			e.Caches.storeSubsumedBy(candidate, fp, SubsumeYES)
			return true, nil
		}
	}
	return false, nil
}

// ComputeNextFixpoint performs one saturation step (§4.5). It is a no-op if
// the worklist is already empty.
func (e *Engine) ComputeNextFixpoint(fp *Fixpoint) error {
	if len(fp.worklist) == 0 {
		return nil
	}
	item := fp.popWorklist()
	e.Metrics.IncFixpointStep()

	resultTerm, resultBool, err := e.intersectNonempty(fp.baseAut, item.symbol, item.term, fp.complement)
	if err != nil {
		return wrapError(ErrBaseAutomatonFailure, err, "compute_next_fixpoint: intersect_nonempty failed")
	}

	if fp.searchType == SearchUngroundRoot {
		if resultBool && fp.satTerm == nil {
			fp.satTerm = resultTerm
		}
		if !resultBool && fp.unsatTerm == nil {
			fp.unsatTerm = resultTerm
		}
	}

	subsumed, err := e.fixpointTest(fp, resultTerm)
	if err != nil {
		return err
	}
	if subsumed {
		return nil
	}

	fp.insertMember(resultTerm, resultBool == fp.shortBool && fp.iteratorCount == 0)
	fp.aggregate(resultBool)
	fp.scheduleSuccessorWork(resultTerm)
	return nil
}

// insertMember appends a newly discovered member to the sequence. If front
// is true (the step's result matched the fixpoint's short-circuit polarity,
// and no iterator is currently observing the sequence), the member is placed
// immediately after the sentinel so that future fixpoint_test scans and
// member-coverage checks find it first; otherwise it is appended at the
// back. Insertion at the front is withheld whenever an iterator is active,
// since FixpointIterator walks the sequence by index (§5).
func (fp *Fixpoint) insertMember(term *Term, front bool) {
	m := fixMember{term: term, alive: true}
	if !front {
		fp.members = append(fp.members, m)
		return
	}
	fp.members = append(fp.members, fixMember{})
	copy(fp.members[2:], fp.members[1:len(fp.members)-1])
	fp.members[1] = m
}

// ComputeNextPre performs one pre-image saturation step: it consumes
// sourceIterator for new candidates under the single sourceSymbol rather
// than expanding a symbol alphabet, and only aggregates — it never
// schedules further successor work (§4.5 "Pre step").
func (e *Engine) ComputeNextPre(fp *Fixpoint) error {
	if len(fp.worklist) == 0 {
		if fp.sourceIterator == nil || !fp.sourceIterator.HasNext() {
			return nil
		}
		term, err := fp.sourceIterator.Next()
		if err != nil {
			return err
		}
		fp.worklist = append(fp.worklist, worklistItem{term: term, symbol: fp.sourceSymbol})
	}

	item := fp.popWorklist()
	e.Metrics.IncFixpointStep()

	resultTerm, resultBool, err := e.intersectNonempty(fp.baseAut, item.symbol, item.term, fp.complement)
	if err != nil {
		return wrapError(ErrBaseAutomatonFailure, err, "compute_next_pre: intersect_nonempty failed")
	}

	subsumed, err := e.fixpointTest(fp, resultTerm)
	if err != nil {
		return err
	}
	if subsumed {
		return nil
	}

	fp.insertMember(resultTerm, resultBool == fp.shortBool && fp.iteratorCount == 0)
	fp.aggregate(resultBool)
	return nil
}

// RemoveSubsumed performs the destructive prune allowed once a fixpoint is
// fully computed and no external iterator is observing it: dead members are
// dropped from the sequence (§4.5).
func (fp *Fixpoint) RemoveSubsumed() {
	if fp.iteratorCount > 0 || !fp.FullyComputed() {
		return
	}
	kept := make([]fixMember, 0, len(fp.members))
	for _, m := range fp.members {
		if m.term == nil || m.alive {
			kept = append(kept, m)
		}
	}
	fp.members = kept
}

// IsSubsumedBy tests a against the accumulated members of fixpoint. When a
// is found subsumed by a member (YES), the other members subsumed by a are
// pruned — their alive flag set false and their pending worklist pairs
// dropped — unless noPrune forbids it or an iterator is active. On a NO or
// PARTIAL result no member is pruned. On PARTIAL, the residual becomes the
// surviving representative of a for further comparisons in the same sweep
// (§4.3).
func (e *Engine) IsSubsumedBy(a *Term, fp *Fixpoint, noPrune bool) (SubsumeResult, *Term, error) {
	aggregate := SubsumeNO
	var residual *Term = a

	for i := range fp.members {
		m := &fp.members[i]
		if m.term == nil || !m.alive {
			continue
		}
		r, res, err := e.IsSubsumed(residual, m.term, 0, false)
		if err != nil {
			return SubsumeNO, nil, err
		}
		switch r {
		case SubsumeYES:
			if !noPrune && fp.iteratorCount == 0 {
				e.pruneMemberSubsumedBy(fp, m.term, residual)
			}
			return SubsumeYES, nil, nil
		case SubsumePARTIAL:
			aggregate = SubsumePARTIAL
			residual = res
		}
	}
	if aggregate == SubsumePARTIAL {
		return SubsumePARTIAL, residual, nil
	}
	return SubsumeNO, nil, nil
}

// pruneMemberSubsumedBy marks members of fp that are subsumed by a as dead
// and drops their pending worklist entries, implementing the destructive
// pruning side effect of IsSubsumedBy.
func (e *Engine) pruneMemberSubsumedBy(fp *Fixpoint, except *Term, a *Term) {
	for i := range fp.members {
		m := &fp.members[i]
		if m.term == nil || !m.alive || m.term == except {
			continue
		}
		r, _, err := e.IsSubsumed(m.term, a, 0, false)
		if err != nil || r != SubsumeYES {
			continue
		}
		m.alive = false
	}
	kept := fp.worklist[:0:0]
	for _, item := range fp.worklist {
		live := false
		for _, m := range fp.members {
			if m.term == item.term && m.alive {
				live = true
				break
			}
		}
		if live {
			kept = append(kept, item)
		}
	}
	fp.worklist = kept
}

// FixpointIterator supports shared iteration over a fixpoint's members: while
// any iterator is active (iteratorCount > 0), destructive pruning and
// front-insertion of short-circuit terms are disabled to preserve iterator
// stability (§5).
type FixpointIterator struct {
	fp  *Fixpoint
	idx int
}

// NewIterator starts a new shared iterator over fp, incrementing its
// iterator count.
func (fp *Fixpoint) NewIterator() *FixpointIterator {
	fp.iteratorCount++
	return &FixpointIterator{fp: fp, idx: 1} // idx 1 skips the sentinel
}

// HasNext reports whether another member is available without advancing.
func (it *FixpointIterator) HasNext() bool {
	for i := it.idx; i < len(it.fp.members); i++ {
		if it.fp.members[i].alive {
			return true
		}
	}
	return false
}

// Next returns the next alive member's term.
func (it *FixpointIterator) Next() (*Term, error) {
	for it.idx < len(it.fp.members) {
		m := it.fp.members[it.idx]
		it.idx++
		if m.alive {
			return m.term, nil
		}
	}
	return nil, fmt.Errorf("wsks: fixpoint iterator exhausted")
}

// Close ends this iterator's observation of the fixpoint, decrementing its
// iterator count.
func (it *FixpointIterator) Close() {
	if it.fp.iteratorCount > 0 {
		it.fp.iteratorCount--
	}
}

// InitSymbols builds the projection alphabet from a source symbol, per
// §4.5 "Symbol initialization": trim non-occurring variables, force a
// distinguished all-positions variable's track to 1 if present, then for
// each projected variable double the symbol list by pumping a 1 onto that
// variable's track into every existing symbol, while building
// projected_symbol with every projected track set to don't-care.
func InitSymbols(base Symbol, nonOccurring VarSet, projectedVars []string, varMap VarMap, allPositionsVar string, symWorkshop SymbolWorkshop) ([]Symbol, Symbol) {
	trimmed := symWorkshop.CreateTrimmedSymbol(base, nonOccurring)
	if allPositionsVar != "" {
		if track, ok := varMap.Track(allPositionsVar); ok {
			trimmed = trimmed.WithTrack(track, TrackOne)
		}
	}

	symbols := []Symbol{trimmed}
	for _, v := range projectedVars {
		track, ok := varMap.Track(v)
		if !ok {
			continue
		}
		doubled := make([]Symbol, 0, len(symbols)*2)
		for _, s := range symbols {
			doubled = append(doubled, s, s.WithTrack(track, TrackOne))
		}
		symbols = doubled
	}

	projected := trimmed
	for _, v := range projectedVars {
		if track, ok := varMap.Track(v); ok {
			projected = projected.WithTrack(track, TrackDontCare)
		}
	}
	return symbols, projected
}
