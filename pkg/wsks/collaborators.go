package wsks

// This file defines the boundary between the core (Term Algebra, Workshop,
// Subsumption, Caches, Fixpoint Engine, Guide) and the external collaborators
// spec.md §1 and §6 deliberately keep out of scope: the formula front-end,
// the deterministic base-automaton library, symbol/track construction, and
// the top-level decision driver. The core only ever consumes these through
// the interfaces below; it never parses, determinizes, or persists.

// TrackValue is one position's value within a Symbol: '0', '1', or the
// don't-care marker 'X'.
type TrackValue byte

const (
	TrackZero     TrackValue = '0'
	TrackOne      TrackValue = '1'
	TrackDontCare TrackValue = 'X'
)

// Symbol is a tuple of track values, one transition letter of the fixed
// track alphabet. Symbol construction belongs to the SymbolWorkshop
// collaborator; the core only reads symbols it is handed.
type Symbol interface {
	// NumTracks returns the number of tracks in this symbol.
	NumTracks() int
	// TrackValue returns the value at the given track index.
	TrackValue(track int) TrackValue
	// WithTrack returns a new symbol identical to this one except that the
	// given track is set to value.
	WithTrack(track int, value TrackValue) Symbol
	// Equal reports structural equality of two symbols.
	Equal(other Symbol) bool
	String() string
}

// VarSet is an opaque set of free-variable identifiers, as returned by
// BaseAutomaton.non_occurring_vars().
type VarSet interface {
	Contains(ident string) bool
	Idents() []string
}

// VarMap maps a free-variable identifier to its track index within a Symbol.
type VarMap interface {
	Track(ident string) (int, bool)
}

// AutomatonNode identifies the automaton node that owns a Workshop and a
// set of terms. Terms hold only a weak back-reference to their owning node
// (§3 Data Model); the core never owns a node's lifetime.
type AutomatonNode interface {
	// ID uniquely identifies this node for hash-consing and cache keys.
	ID() uintptr
}

// BaseAutomaton is the deterministic base-automaton collaborator: it
// supplies transitions and the handful of facts the core needs to seed and
// drive saturation, per spec.md §6.
type BaseAutomaton interface {
	AutomatonNode

	// IntersectNonempty computes the successor state set of term under
	// symbol, returning the successor Term and the epsilon-acceptance of
	// the result. complement indicates whether term is to be interpreted
	// complemented while computing the successor.
	IntersectNonempty(symbol Symbol, term *Term, complement bool) (*Term, bool, error)

	// InitialStates returns the term denoting the automaton's initial
	// state set.
	InitialStates() *Term
	// FinalStates returns the term denoting the automaton's accepting
	// state set.
	FinalStates() *Term
	// NonOccurringVars returns the free variables that do not occur in
	// this automaton's formula, so their tracks can be trimmed from
	// symbols before saturation.
	NonOccurringVars() VarSet
	// RemapSymbol adapts a symbol built for one automaton's track layout
	// to this automaton's layout.
	RemapSymbol(symbol Symbol) Symbol
}

// ProjectionAutomaton is the automaton node responsible for one existential
// projection ∃X.φ; it owns the FIXPOINT term that saturates that
// projection.
type ProjectionAutomaton interface {
	AutomatonNode

	// Base returns the quantifier-free automaton the projection's fixpoint
	// steps against.
	Base() BaseAutomaton
	// Guide returns the scheduling oracle for this projection's worklist,
	// or nil if none is configured (in which case DefaultGuide applies).
	Guide() FixpointGuide
	// ProjectedVars returns the variables this automaton projects away.
	ProjectedVars() []string
	// IsRoot reports whether this automaton is the top-level automaton
	// whose fixpoint uses UNGROUND_ROOT search.
	IsRoot() bool
}

// SymbolWorkshop constructs symbols; symbol construction itself is out of
// core scope (spec.md §1), so the core only ever calls through this
// interface.
type SymbolWorkshop interface {
	// CreateTrimmedSymbol returns sym restricted to the tracks named by
	// vars, eliminating the rest.
	CreateTrimmedSymbol(sym Symbol, vars VarSet) Symbol
	// CreateSymbol builds a symbol of numTracks tracks, all don't-care
	// except the given track set to value.
	CreateSymbol(numTracks int, track int, value TrackValue) Symbol
}

// LazyInitAutomaton supplies the (automaton, term) pair a CONTINUATION needs
// before it can evaluate its postponed intersect_nonempty call, per §4.4's
// lazy-initialization step.
type LazyInitAutomaton interface {
	Init() (BaseAutomaton, *Term, error)
}
