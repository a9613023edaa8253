package wsks

import (
	"testing"

	"github.com/wsks-go/symcore/internal/bitset"
)

func TestUnfoldIsIdempotent(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	target := newLoopBaseAutomaton(true)
	source, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	sym := newFakeSymbol(1)

	cont := ws.CreateContinuation(target, source, sym, false, nil)

	first, firstEps, err := cont.Unfold()
	if err != nil {
		t.Fatalf("Unfold: %v", err)
	}
	callsAfterFirst := target.calls

	second, secondEps, err := cont.Unfold()
	if err != nil {
		t.Fatalf("Unfold: %v", err)
	}

	if first != second || firstEps != secondEps {
		t.Errorf("expected repeated Unfold to return the same handle")
	}
	if target.calls != callsAfterFirst {
		t.Errorf("expected the second Unfold call to not re-evaluate intersect_nonempty")
	}
}

func TestCreateContinuationIsHashConsed(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	target := newLoopBaseAutomaton(true)
	source, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	sym := newFakeSymbol(1)

	c1 := ws.CreateContinuation(target, source, sym, false, nil)
	c2 := ws.CreateContinuation(target, source, sym, false, nil)
	if c1 != c2 {
		t.Errorf("expected two CreateContinuation calls with the same key to return the same object")
	}
}

func TestContinuationIsEmptyUnfoldsFirst(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	target := newLoopBaseAutomaton(true)
	source, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	sym := newFakeSymbol(1)

	cont := ws.CreateContinuation(target, source, sym, false, nil)
	if cont.IsEmpty() {
		t.Errorf("expected the continuation to unfold to a non-empty BASE({0})")
	}
}

// lazyInitOnce supplies (target, source) exactly once and records call count.
type lazyInitOnce struct {
	target *loopBaseAutomaton
	source *Term
	calls  int
}

func (l *lazyInitOnce) Init() (BaseAutomaton, *Term, error) {
	l.calls++
	return l.target, l.source, nil
}

func TestContinuationLazyInitCalledOnce(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	target := newLoopBaseAutomaton(false)
	source, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	lazy := &lazyInitOnce{target: target, source: source}

	cont := ws.CreateContinuation(nil, nil, newFakeSymbol(1), false, lazy)
	if _, _, err := cont.Unfold(); err != nil {
		t.Fatalf("Unfold: %v", err)
	}
	if _, _, err := cont.Unfold(); err != nil {
		t.Fatalf("Unfold: %v", err)
	}
	if lazy.calls != 1 {
		t.Errorf("expected LazyInitAutomaton.Init to be called exactly once, got %d", lazy.calls)
	}
}
