package wsks

import (
	"github.com/golang/groupcache/lru"
)

// defaultCacheSize bounds each of the caches below. A bounded cache means a
// long-running decision cannot grow the process's memory without limit;
// evicting a subsumption NO entry is cheap to re-derive (§4.3 step 7 already
// never caches NO for the same reason), and evicting a stale YES/PARTIAL
// entry only costs a re-derivation, never a correctness loss.
const defaultCacheSize = 65536

// subsumeCacheEntry is the value stored by the subsumption cache: a verdict
// plus the PARTIAL residual, when one was computed.
type subsumeCacheEntry struct {
	result   SubsumeResult
	residual *Term
}

// subsumeKey keys the subsumption cache by the pair of term identities
// being compared, per §4.3 step 5: "((a_id, b_id) → (result, residual))".
type subsumeKey struct {
	a, b *Term
}

// intersectKey keys the intersect_nonempty memo by (term, symbol,
// complement) on a given target automaton.
type intersectKey struct {
	aut        uintptr
	term       *Term
	symbolStr  string
	complement bool
}

type intersectCacheEntry struct {
	result  *Term
	epsilon bool
}

// subsumedByKey keys the is_subsumed_by_fixpoint cache by (candidate,
// fixpoint) identity.
type subsumedByKey struct {
	term *Term
	fp   *Fixpoint
}

// enumeratorSubsumesKey keys the enumerator-subsumption query cache by
// (term, enumerator) identity.
type enumeratorSubsumesKey struct {
	term       *Term
	enumerator *Term
}

// Caches bundles the four memoizations required by §2.4: intersect_nonempty,
// is_subsumed, is_subsumed_by_fixpoint, and enumerator-subsumption queries,
// all keyed by term identity. Backed by golang/groupcache's lru.Cache, a
// minimal bounded-size LRU adopted from the retrieval pack rather than a
// hand-rolled map-plus-eviction-list.
type Caches struct {
	subsumption   *lru.Cache
	intersect     *lru.Cache
	subsumedBy    *lru.Cache
	enumeratorSub *lru.Cache
	metrics       Metrics
}

// NewCaches builds the four caches bounded by cfg.CacheSize (DefaultConfig's
// value if cfg is nil or CacheSize is zero). metrics may be nil, in which
// case a no-op sink is used.
func NewCaches(metrics Metrics, cfg *Config) *Caches {
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	cfg = cfg.withDefaults()
	return &Caches{
		subsumption:   lru.New(cfg.CacheSize),
		intersect:     lru.New(cfg.CacheSize),
		subsumedBy:    lru.New(cfg.CacheSize),
		enumeratorSub: lru.New(cfg.CacheSize),
		metrics:       metrics,
	}
}

func (c *Caches) lookupSubsumption(a, b *Term) (subsumeCacheEntry, bool) {
	v, ok := c.subsumption.Get(subsumeKey{a, b})
	if !ok {
		c.metrics.IncSubsumptionCacheMiss()
		return subsumeCacheEntry{}, false
	}
	c.metrics.IncSubsumptionCacheHit()
	return v.(subsumeCacheEntry), true
}

// storeSubsumption records a YES or PARTIAL result. NO is deliberately never
// cached (§4.3 step 7): it is cheap to re-derive and caching it would bloat
// the cache with the common case.
func (c *Caches) storeSubsumption(a, b *Term, result SubsumeResult, residual *Term) {
	if result == SubsumeNO {
		return
	}
	c.subsumption.Add(subsumeKey{a, b}, subsumeCacheEntry{result: result, residual: residual})
}

func (c *Caches) lookupIntersect(aut uintptr, term *Term, symbol Symbol, complement bool) (intersectCacheEntry, bool) {
	key := intersectKey{aut: aut, term: term, symbolStr: symbol.String(), complement: complement}
	v, ok := c.intersect.Get(key)
	if !ok {
		c.metrics.IncIntersectCacheMiss()
		return intersectCacheEntry{}, false
	}
	c.metrics.IncIntersectCacheHit()
	return v.(intersectCacheEntry), true
}

func (c *Caches) storeIntersect(aut uintptr, term *Term, symbol Symbol, complement bool, result *Term, epsilon bool) {
	key := intersectKey{aut: aut, term: term, symbolStr: symbol.String(), complement: complement}
	c.intersect.Add(key, intersectCacheEntry{result: result, epsilon: epsilon})
}

func (c *Caches) lookupSubsumedBy(term *Term, fp *Fixpoint) (SubsumeResult, bool) {
	v, ok := c.subsumedBy.Get(subsumedByKey{term, fp})
	if !ok {
		return SubsumeNO, false
	}
	c.metrics.IncSubsumedByHits()
	return v.(SubsumeResult), true
}

func (c *Caches) storeSubsumedBy(term *Term, fp *Fixpoint, result SubsumeResult) {
	if result == SubsumeNO {
		return
	}
	c.subsumedBy.Add(subsumedByKey{term, fp}, result)
}

func (c *Caches) lookupEnumeratorSubsumes(term, enumerator *Term) (bool, bool) {
	v, ok := c.enumeratorSub.Get(enumeratorSubsumesKey{term, enumerator})
	if !ok {
		return false, false
	}
	return v.(bool), true
}

func (c *Caches) storeEnumeratorSubsumes(term, enumerator *Term, result bool) {
	c.enumeratorSub.Add(enumeratorSubsumesKey{term, enumerator}, result)
}
