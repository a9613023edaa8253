package wsks

import (
	"testing"

	"github.com/wsks-go/symcore/internal/bitset"
)

// rootProjectionAutomaton is a minimal ProjectionAutomaton fixture for
// exercising Decide/NewRootFixpoint.
type rootProjectionAutomaton struct {
	fakeAutomatonNode
	base *loopBaseAutomaton
}

func (r rootProjectionAutomaton) Base() BaseAutomaton       { return r.base }
func (r rootProjectionAutomaton) Guide() FixpointGuide      { return nil }
func (r rootProjectionAutomaton) ProjectedVars() []string   { return nil }
func (r rootProjectionAutomaton) IsRoot() bool              { return true }

func TestDecideConvergesAndReportsAcceptance(t *testing.T) {
	ws := NewWorkshop(fakeAutomatonNode{id: 1}, nil)
	base := newLoopBaseAutomaton(true)
	root := rootProjectionAutomaton{fakeAutomatonNode: fakeAutomatonNode{id: 2}, base: base}

	varMap := fakeVarMap{tracks: map[string]int{}}
	symWS := fakeSymbolWorkshop{}
	seed := ws.CreateList([]*Term{base.q0()})

	// q0 is accepting in the loop automaton, so the seed's epsilon is true.
	fp := NewRootFixpoint(root, newFakeSymbol(1), seed, "", varMap, symWS, true, true, false)
	rootTerm := ws.CreateFixpoint(fp)

	e := NewEngine(nil, nil)
	result, err := e.Decide(rootTerm)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !result.Accepted {
		t.Errorf("expected the root fixpoint to converge to accepted=true")
	}
}

func TestDecideRejectsNonFixpointTerm(t *testing.T) {
	ws := NewWorkshop(fakeAutomatonNode{id: 1}, nil)
	e := NewEngine(nil, nil)
	a, _ := ws.CreateBase(bitset.FromValues([]int{1}))

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Decide on a non-FIXPOINT term to panic with a precondition violation")
		}
	}()
	_, _ = e.Decide(a)
}
