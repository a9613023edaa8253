package wsks

import (
	"fmt"

	"github.com/wsks-go/symcore/internal/bitset"
)

// productKey identifies a PRODUCT/TERNARY/NARY cache entry by its children's
// identities and connective, mirroring the teacher's hash-consing pattern of
// keying a cache by a canonicalized structural signature (NewCallPattern in
// tabling.go) rather than by deep comparison.
type productKey string

// continuationKey identifies a CONTINUATION cache entry by
// (automaton_link, source_term, symbol, complement), per §4.2.
type continuationKey struct {
	targetAut  uintptr
	source     *Term
	symbolStr  string
	complement bool
}

// Workshop is the hash-consing factory owned by one automaton node (§4.2).
// Guarantee: for any two Workshop calls with equal keys on the same
// Workshop, the returned handle is identical. Fixpoint and List terms are
// not canonicalized — a LIST seeds exactly one fixpoint and is never shared,
// and a FIXPOINT's internal mutation would invalidate any cache key.
type Workshop struct {
	aut AutomatonNode

	baseCache         map[string]*Term
	productCache      map[productKey]*Term
	continuationCache map[continuationKey]*Term

	empty           *Term
	complementEmpty *Term

	metrics Metrics
}

// NewWorkshop creates a Workshop for the given owning automaton node. metrics
// may be nil, in which case a no-op sink is used.
func NewWorkshop(aut AutomatonNode, metrics Metrics) *Workshop {
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	return &Workshop{
		aut:               aut,
		baseCache:         make(map[string]*Term),
		productCache:      make(map[productKey]*Term),
		continuationCache: make(map[continuationKey]*Term),
		metrics:           metrics,
	}
}

// CreateEmpty returns the unique EMPTY term for this automaton node, or its
// complemented counterpart (the "universe").
func (w *Workshop) CreateEmpty(complement bool) *Term {
	if complement {
		if w.complementEmpty == nil {
			w.complementEmpty = &Term{aut: w.aut, kind: KindEmpty, complement: true}
		}
		return w.complementEmpty
	}
	if w.empty == nil {
		w.empty = &Term{aut: w.aut, kind: KindEmpty}
	}
	return w.empty
}

func baseKeyOf(states *bitset.Set) string {
	key := ""
	for _, v := range states.Values() {
		key += fmt.Sprintf("%d,", v)
	}
	return key
}

// CreateBase returns the unique BASE term for the given (non-empty,
// strictly sorted, de-duplicated by construction of bitset.Set) state-id
// set.
func (w *Workshop) CreateBase(states *bitset.Set) (*Term, error) {
	if states == nil || states.IsEmpty() {
		return nil, newError(ErrPreconditionViolation, "CreateBase: state set must be non-empty")
	}
	key := baseKeyOf(states)
	if existing, ok := w.baseCache[key]; ok {
		w.metrics.IncWorkshopHit()
		return existing, nil
	}
	w.metrics.IncWorkshopMiss()
	t := &Term{aut: w.aut, kind: KindBase, base: states.Clone(), approx: states.Count()}
	w.baseCache[key] = t
	return t, nil
}

func (w *Workshop) lookupOrStoreProduct(key productKey, build func() *Term) *Term {
	if existing, ok := w.productCache[key]; ok {
		w.metrics.IncWorkshopHit()
		return existing
	}
	w.metrics.IncWorkshopMiss()
	t := build()
	w.productCache[key] = t
	return t
}

// CreateProduct returns the unique PRODUCT(kind, left, right) term.
func (w *Workshop) CreateProduct(left, right *Term, kind ProductKind) *Term {
	key := productKey(hashKey(KindProduct, false, []uintptr{ptrID(left), ptrID(right)}, fmt.Sprintf("%d", kind)))
	return w.lookupOrStoreProduct(key, func() *Term {
		return &Term{
			aut:         w.aut,
			kind:        KindProduct,
			productKind: kind,
			children:    []*Term{left, right},
			approx:      left.approx + right.approx + 1,
		}
	})
}

// CreateTernary returns the unique TERNARY(kind, left, middle, right) term.
func (w *Workshop) CreateTernary(left, middle, right *Term, kind ProductKind) *Term {
	key := productKey(hashKey(KindTernary, false, []uintptr{ptrID(left), ptrID(middle), ptrID(right)}, fmt.Sprintf("%d", kind)))
	return w.lookupOrStoreProduct(key, func() *Term {
		return &Term{
			aut:         w.aut,
			kind:        KindTernary,
			productKind: kind,
			children:    []*Term{left, middle, right},
			approx:      left.approx + middle.approx + right.approx + 1,
		}
	})
}

// CreateNary returns the unique NARY(kind, children...) term. arity must be
// at least 2.
func (w *Workshop) CreateNary(children []*Term, kind ProductKind) (*Term, error) {
	if len(children) < 2 {
		return nil, newError(ErrPreconditionViolation, "CreateNary: arity must be >= 2, got %d", len(children))
	}
	childIDs := make([]uintptr, len(children))
	for i, c := range children {
		childIDs[i] = ptrID(c)
	}
	key := productKey(hashKey(KindNary, false, childIDs, fmt.Sprintf("%d|%d", len(children), kind)))
	return w.lookupOrStoreProduct(key, func() *Term {
		sum := 0
		access := make([]int, len(children))
		for i, c := range children {
			sum += c.approx
			access[i] = i
		}
		return &Term{
			aut:          w.aut,
			kind:         KindNary,
			productKind:  kind,
			children:     children,
			accessVector: access,
			approx:       sum + 1,
		}
	}), nil
}

// CreateList returns a fresh LIST term seeding exactly one fixpoint. LIST
// terms are never hash-consed: a LIST seed is never shared across
// fixpoints (§3 invariants).
func (w *Workshop) CreateList(members []*Term) *Term {
	sum := 0
	for _, m := range members {
		sum += m.approx
	}
	return &Term{aut: w.aut, kind: KindList, listMembers: members, approx: sum}
}

// CreateContinuation returns the unique CONTINUATION term for
// (targetAut, source, symbol, complement). lazyInit may be nil when the
// target automaton is already known.
func (w *Workshop) CreateContinuation(targetAut BaseAutomaton, source *Term, symbol Symbol, complement bool, lazyInit LazyInitAutomaton) *Term {
	var targetID uintptr
	if targetAut != nil {
		targetID = targetAut.ID()
	}
	key := continuationKey{
		targetAut:  targetID,
		source:     source,
		symbolStr:  symbol.String(),
		complement: complement,
	}
	if existing, ok := w.continuationCache[key]; ok {
		w.metrics.IncWorkshopHit()
		return existing
	}
	w.metrics.IncWorkshopMiss()
	approx := 0
	if source != nil {
		approx = source.approx
	}
	t := &Term{
		aut:            w.aut,
		kind:           KindContinuation,
		complement:     complement,
		contTargetAut:  targetAut,
		contSource:     source,
		contSymbol:     symbol,
		contComplement: complement,
		contLazyInit:   lazyInit,
		approx:         approx,
	}
	w.continuationCache[key] = t
	return t
}

// CreateFixpoint returns a fresh, non-canonicalized FIXPOINT term wrapping
// the given Fixpoint payload. Fixpoints are never cached: their internal
// mutation (worklist draining, member growth) would invalidate any cache
// key the moment it was computed.
func (w *Workshop) CreateFixpoint(fp *Fixpoint) *Term {
	return &Term{aut: w.aut, kind: KindFixpoint, fixpoint: fp}
}
