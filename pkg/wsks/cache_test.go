package wsks

import (
	"testing"

	"github.com/wsks-go/symcore/internal/bitset"
)

func TestSubsumptionCacheNeverStoresNO(t *testing.T) {
	c := NewCaches(nil, nil)
	ws := NewWorkshop(fakeAutomatonNode{id: 1}, nil)
	a, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	b, _ := ws.CreateBase(bitset.FromValues([]int{2}))

	c.storeSubsumption(a, b, SubsumeNO, nil)
	if _, ok := c.lookupSubsumption(a, b); ok {
		t.Errorf("expected a NO result to never be cached")
	}

	c.storeSubsumption(a, b, SubsumeYES, nil)
	entry, ok := c.lookupSubsumption(a, b)
	if !ok || entry.result != SubsumeYES {
		t.Errorf("expected a YES result to be cached")
	}
}

func TestSubsumedByCacheNeverStoresNO(t *testing.T) {
	c := NewCaches(nil, nil)
	ws := NewWorkshop(fakeAutomatonNode{id: 1}, nil)
	a, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	base := newLoopBaseAutomaton(true)
	seed := ws.CreateList(nil)
	fp := NewFixpoint(seed, nil, nil, base, nil, SearchDFS, false, true, false)

	c.storeSubsumedBy(a, fp, SubsumeNO)
	if _, ok := c.lookupSubsumedBy(a, fp); ok {
		t.Errorf("expected a NO result to never be cached")
	}

	c.storeSubsumedBy(a, fp, SubsumeYES)
	if r, ok := c.lookupSubsumedBy(a, fp); !ok || r != SubsumeYES {
		t.Errorf("expected a YES result to be cached")
	}
}

func TestIntersectCacheAvoidsRepeatBaseAutomatonCalls(t *testing.T) {
	base := newLoopBaseAutomaton(true)
	e := NewEngine(nil, nil)
	sym := newFakeSymbol(1)

	seed := base.workshop.CreateList([]*Term{base.q0()})
	fp := NewFixpoint(seed, []Symbol{sym}, sym, base, nil, SearchDFS, false, true, false)

	if err := e.ComputeNextFixpoint(fp); err != nil {
		t.Fatalf("first step: %v", err)
	}
	callsAfterFirst := base.calls
	if callsAfterFirst == 0 {
		t.Fatalf("expected the base automaton to be called at least once")
	}

	if _, _, err := e.intersectNonempty(base, sym, base.q0(), false); err != nil {
		t.Fatalf("repeat intersect: %v", err)
	}
	if base.calls != callsAfterFirst {
		t.Errorf("expected the intersect cache to satisfy a repeat (symbol, term, complement) query without calling the base automaton again; calls went from %d to %d", callsAfterFirst, base.calls)
	}
}

func TestEnumeratorSubsumesCacheRoundTrips(t *testing.T) {
	c := NewCaches(nil, nil)
	ws := NewWorkshop(fakeAutomatonNode{id: 1}, nil)
	t1, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	t2, _ := ws.CreateBase(bitset.FromValues([]int{2}))

	if _, ok := c.lookupEnumeratorSubsumes(t1, t2); ok {
		t.Errorf("expected a cache miss before any store")
	}
	c.storeEnumeratorSubsumes(t1, t2, true)
	if got, ok := c.lookupEnumeratorSubsumes(t1, t2); !ok || !got {
		t.Errorf("expected the stored value to round-trip")
	}
}
