package wsks

// Config holds engine-level configuration, following the teacher's
// SLGConfig / DefaultSLGConfig() pattern (slg_engine.go): a plain option
// struct with a constructor supplying defaults, not a config file or flag
// parser at the core layer (§10 of SPEC_FULL.md — that belongs to the
// driver/CLI layer, e.g. cmd/wsksdemo's cobra flags).
type Config struct {
	// MaxDepth bounds is_subsumed recursion when no caller-supplied limit
	// applies (§4.3 step 2: "Depth limit exhausted -> return the
	// pointer-identity result only").
	MaxDepth int

	// CacheSize bounds the capacity of each of the four Caches (§4 Caches):
	// subsumption, intersect_nonempty, is_subsumed_by_fixpoint, and
	// enumerator-subsumption. A single shared bound keeps the knob simple;
	// nothing in §4 calls for tuning the four caches independently.
	CacheSize int
}

// DefaultConfig returns the engine's default configuration: a 4096-deep
// subsumption recursion bound and a 65536-entry cache size, matching the
// values this module shipped with before configuration existed.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:  defaultMaxDepth,
		CacheSize: defaultCacheSize,
	}
}

// withDefaults fills any zero-valued field of cfg with DefaultConfig's
// value, the same nil-tolerant pattern NewSLGEngine uses for a nil
// *SLGConfig, extended per-field so a caller can override just one knob.
func (cfg *Config) withDefaults() *Config {
	def := DefaultConfig()
	if cfg == nil {
		return def
	}
	out := *cfg
	if out.MaxDepth == 0 {
		out.MaxDepth = def.MaxDepth
	}
	if out.CacheSize == 0 {
		out.CacheSize = def.CacheSize
	}
	return &out
}
