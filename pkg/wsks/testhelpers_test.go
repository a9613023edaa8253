package wsks

import (
	"strings"

	"github.com/wsks-go/symcore/internal/bitset"
)

// fakeSymbol is a minimal Symbol used across the test suite: a fixed-width
// slice of track values compared structurally.
type fakeSymbol struct {
	tracks []TrackValue
}

func newFakeSymbol(n int) fakeSymbol {
	tracks := make([]TrackValue, n)
	for i := range tracks {
		tracks[i] = TrackDontCare
	}
	return fakeSymbol{tracks: tracks}
}

func (s fakeSymbol) NumTracks() int { return len(s.tracks) }

func (s fakeSymbol) TrackValue(track int) TrackValue { return s.tracks[track] }

func (s fakeSymbol) WithTrack(track int, value TrackValue) Symbol {
	next := make([]TrackValue, len(s.tracks))
	copy(next, s.tracks)
	next[track] = value
	return fakeSymbol{tracks: next}
}

func (s fakeSymbol) Equal(other Symbol) bool {
	o, ok := other.(fakeSymbol)
	if !ok || len(o.tracks) != len(s.tracks) {
		return false
	}
	for i := range s.tracks {
		if s.tracks[i] != o.tracks[i] {
			return false
		}
	}
	return true
}

func (s fakeSymbol) String() string {
	var b strings.Builder
	for _, v := range s.tracks {
		b.WriteByte(byte(v))
	}
	return b.String()
}

// fakeVarSet/fakeVarMap back a tiny two-variable universe ("x", "y") used by
// the symbol-initialization tests.
type fakeVarSet struct {
	idents []string
}

func (v fakeVarSet) Contains(ident string) bool {
	for _, i := range v.idents {
		if i == ident {
			return true
		}
	}
	return false
}

func (v fakeVarSet) Idents() []string { return v.idents }

type fakeVarMap struct {
	tracks map[string]int
}

func (m fakeVarMap) Track(ident string) (int, bool) {
	t, ok := m.tracks[ident]
	return t, ok
}

// fakeSymbolWorkshop implements SymbolWorkshop over fakeSymbol.
type fakeSymbolWorkshop struct{}

func (fakeSymbolWorkshop) CreateTrimmedSymbol(sym Symbol, vars VarSet) Symbol {
	return sym
}

func (fakeSymbolWorkshop) CreateSymbol(numTracks, track int, value TrackValue) Symbol {
	s := newFakeSymbol(numTracks)
	return s.WithTrack(track, value)
}

// fakeAutomatonNode gives every fake automaton a distinct ID() value.
type fakeAutomatonNode struct {
	id uintptr
}

func (n fakeAutomatonNode) ID() uintptr { return n.id }

// loopBaseAutomaton is a BaseAutomaton with a single state q0 and a single
// symbol looping q0 back to itself, epsilon-accepting depending on accept.
// It mirrors Scenario 5 of the testable-properties table: "Fixpoint seeded
// with BASE({q0}), alphabet {sigma}, base_aut such that delta(q0,sigma)={q0}".
type loopBaseAutomaton struct {
	fakeAutomatonNode
	workshop *Workshop
	accept   bool
	calls    int
}

func newLoopBaseAutomaton(accept bool) *loopBaseAutomaton {
	aut := &loopBaseAutomaton{fakeAutomatonNode: fakeAutomatonNode{id: 1}, accept: accept}
	aut.workshop = NewWorkshop(aut, nil)
	return aut
}

func (a *loopBaseAutomaton) q0() *Term {
	t, err := a.workshop.CreateBase(bitset.FromValues([]int{0}))
	if err != nil {
		panic(err)
	}
	return t
}

func (a *loopBaseAutomaton) IntersectNonempty(symbol Symbol, term *Term, complement bool) (*Term, bool, error) {
	a.calls++
	return a.q0(), a.accept, nil
}

func (a *loopBaseAutomaton) InitialStates() *Term { return a.q0() }
func (a *loopBaseAutomaton) FinalStates() *Term   { return a.q0() }
func (a *loopBaseAutomaton) NonOccurringVars() VarSet {
	return fakeVarSet{}
}
func (a *loopBaseAutomaton) RemapSymbol(symbol Symbol) Symbol { return symbol }

// throwGuide always discards every candidate, matching Scenario 6: "Guide
// returns THROW for every symbol".
type throwGuide struct{}

func (throwGuide) Tip(term *Term) GuideDecision                      { return GuideProject }
func (throwGuide) TipSymbol(term *Term, symbol Symbol) GuideDecision { return GuideThrow }
