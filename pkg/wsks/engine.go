package wsks

// Engine bundles the process-owned, shared resources §5 describes:
// "Workshops and caches are process-owned by the root evaluator; mutated by
// every component; single-writer by virtue of single-threading." A Workshop
// is owned per automaton node (by whatever constructs that node); the
// Caches, Metrics, and default depth limit below are shared across every
// node's subsumption and fixpoint-saturation calls for one decide() run.
type Engine struct {
	Caches   *Caches
	Metrics  Metrics
	MaxDepth int
}

// defaultMaxDepth bounds is_subsumed recursion when no caller-supplied limit
// is given (§4.3 step 2: "Depth limit exhausted -> return the
// pointer-identity result only").
const defaultMaxDepth = 4096

// NewEngine builds an Engine with fresh Caches. metrics may be nil, in which
// case counters are discarded. cfg may be nil, in which case DefaultConfig
// applies; a non-nil cfg with zero-valued fields has those fields filled
// from DefaultConfig too, so a caller can override just one knob.
func NewEngine(metrics Metrics, cfg *Config) *Engine {
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	cfg = cfg.withDefaults()
	return &Engine{
		Caches:   NewCaches(metrics, cfg),
		Metrics:  metrics,
		MaxDepth: cfg.MaxDepth,
	}
}

// intersectNonempty memoizes aut.IntersectNonempty(symbol, term, complement)
// in the Engine's shared intersect_nonempty cache (§2.4), keyed by the
// automaton's identity together with the (term, symbol, complement) triple.
func (e *Engine) intersectNonempty(aut BaseAutomaton, symbol Symbol, term *Term, complement bool) (*Term, bool, error) {
	if cached, ok := e.Caches.lookupIntersect(aut.ID(), term, symbol, complement); ok {
		return cached.result, cached.epsilon, nil
	}
	result, epsilon, err := aut.IntersectNonempty(symbol, term, complement)
	if err != nil {
		return nil, false, err
	}
	e.Caches.storeIntersect(aut.ID(), term, symbol, complement, result, epsilon)
	return result, epsilon, nil
}
