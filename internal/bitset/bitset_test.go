package bitset

import "testing"

func TestFromValuesHasAndCount(t *testing.T) {
	s := FromValues([]int{1, 65, 130})
	for _, v := range []int{1, 65, 130} {
		if !s.Has(v) {
			t.Errorf("expected %d to be a member", v)
		}
	}
	if s.Has(2) {
		t.Errorf("expected 2 to not be a member")
	}
	if got := s.Count(); got != 3 {
		t.Errorf("expected Count()=3, got %d", got)
	}
}

func TestEmptyIsEmpty(t *testing.T) {
	if !Empty().IsEmpty() {
		t.Errorf("expected Empty() to be empty")
	}
	if FromValues([]int{0}).IsEmpty() {
		t.Errorf("expected a non-empty set to report IsEmpty()==false")
	}
}

func TestValuesAscending(t *testing.T) {
	s := FromValues([]int{200, 3, 64})
	got := s.Values()
	want := []int{3, 64, 200}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestUnionIntersectDifference(t *testing.T) {
	a := FromValues([]int{1, 2, 3})
	b := FromValues([]int{2, 3, 4})

	union := a.Union(b)
	for _, v := range []int{1, 2, 3, 4} {
		if !union.Has(v) {
			t.Errorf("expected union to contain %d", v)
		}
	}

	inter := a.Intersect(b)
	if inter.Count() != 2 || !inter.Has(2) || !inter.Has(3) {
		t.Errorf("expected intersection {2,3}, got %v", inter.Values())
	}

	diff := a.Difference(b)
	if diff.Count() != 1 || !diff.Has(1) {
		t.Errorf("expected difference {1}, got %v", diff.Values())
	}
}

func TestIsSubsetOfAndEqual(t *testing.T) {
	a := FromValues([]int{1, 2})
	b := FromValues([]int{1, 2, 3})

	if !a.IsSubsetOf(b) {
		t.Errorf("expected {1,2} to be a subset of {1,2,3}")
	}
	if b.IsSubsetOf(a) {
		t.Errorf("expected {1,2,3} to not be a subset of {1,2}")
	}
	if a.Equal(b) {
		t.Errorf("expected {1,2} != {1,2,3}")
	}
	if !a.Equal(FromValues([]int{2, 1})) {
		t.Errorf("expected set equality to be order-independent")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := FromValues([]int{1, 2})
	clone := a.Clone()
	b := FromValues([]int{3})
	_ = a.Union(b) // does not mutate a
	if !clone.Equal(a) {
		t.Errorf("expected clone to remain equal to the original after unrelated derivations")
	}
}

func TestDifferenceAcrossWordBoundary(t *testing.T) {
	a := FromValues([]int{0, 100})
	b := FromValues([]int{100})
	diff := a.Difference(b)
	if diff.Count() != 1 || !diff.Has(0) || diff.Has(100) {
		t.Errorf("expected difference {0}, got %v", diff.Values())
	}
}
