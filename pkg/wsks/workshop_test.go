package wsks

import (
	"testing"

	"github.com/wsks-go/symcore/internal/bitset"
)

func TestCreateBaseIsHashConsed(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)

	a, err := ws.CreateBase(bitset.FromValues([]int{1, 2}))
	if err != nil {
		t.Fatalf("CreateBase: %v", err)
	}
	b, err := ws.CreateBase(bitset.FromValues([]int{2, 1}))
	if err != nil {
		t.Fatalf("CreateBase: %v", err)
	}
	if a != b {
		t.Errorf("expected two CreateBase calls with the same state set to return the same pointer")
	}
}

func TestCreateBaseRejectsEmptySet(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)

	if _, err := ws.CreateBase(bitset.Empty()); err == nil {
		t.Errorf("expected CreateBase(empty) to fail")
	}
}

func TestCreateProductIsHashConsed(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	l, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	r, _ := ws.CreateBase(bitset.FromValues([]int{2}))

	p1 := ws.CreateProduct(l, r, ProductIntersection)
	p2 := ws.CreateProduct(l, r, ProductIntersection)
	if p1 != p2 {
		t.Errorf("expected CreateProduct(l, r, k) called twice to return the same object")
	}

	p3 := ws.CreateProduct(l, r, ProductUnion)
	if p1 == p3 {
		t.Errorf("expected a different product kind to produce a distinct term")
	}
}

func TestCreateNaryBuildsSequentialAccessVector(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	a, _ := ws.CreateBase(bitset.FromValues([]int{1}))
	b, _ := ws.CreateBase(bitset.FromValues([]int{2}))
	c, _ := ws.CreateBase(bitset.FromValues([]int{3}))

	n, err := ws.CreateNary([]*Term{a, b, c}, ProductIntersection)
	if err != nil {
		t.Fatalf("CreateNary: %v", err)
	}
	want := []int{0, 1, 2}
	got := n.accessVector
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected initial access_vector %v, got %v", want, got)
		}
	}
}

func TestCreateNaryRejectsLowArity(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	a, _ := ws.CreateBase(bitset.FromValues([]int{1}))

	if _, err := ws.CreateNary([]*Term{a}, ProductIntersection); err == nil {
		t.Errorf("expected CreateNary with arity 1 to fail")
	}
}

func TestCreateListNeverHashConsed(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)
	a, _ := ws.CreateBase(bitset.FromValues([]int{1}))

	l1 := ws.CreateList([]*Term{a})
	l2 := ws.CreateList([]*Term{a})
	if l1 == l2 {
		t.Errorf("expected two CreateList calls to return distinct objects")
	}
}

func TestCreateEmptyReturnsDistinctComplementedHandle(t *testing.T) {
	aut := fakeAutomatonNode{id: 1}
	ws := NewWorkshop(aut, nil)

	plain := ws.CreateEmpty(false)
	universe := ws.CreateEmpty(true)
	if plain == universe {
		t.Errorf("expected CreateEmpty(false) and CreateEmpty(true) to be distinct")
	}
	if ws.CreateEmpty(false) != plain {
		t.Errorf("expected repeated CreateEmpty(false) calls to share one object")
	}
}
