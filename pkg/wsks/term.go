package wsks

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/wsks-go/symcore/internal/bitset"
)

// Kind tags the eight variants a Term can be. The sum is closed: every
// dispatch on Kind in this package is an exhaustive switch, never an open
// type hierarchy (§9 Design Notes).
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBase
	KindProduct
	KindTernary
	KindNary
	KindList
	KindContinuation
	KindFixpoint
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "EMPTY"
	case KindBase:
		return "BASE"
	case KindProduct:
		return "PRODUCT"
	case KindTernary:
		return "TERNARY"
	case KindNary:
		return "NARY"
	case KindList:
		return "LIST"
	case KindContinuation:
		return "CONTINUATION"
	case KindFixpoint:
		return "FIXPOINT"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ProductKind names the boolean connective a PRODUCT/TERNARY/NARY term
// combines its children with.
type ProductKind uint8

const (
	ProductIntersection ProductKind = iota // ∩
	ProductUnion                           // ∪
	ProductImplication                     // →
	ProductBiconditional                   // ↔
)

func (pk ProductKind) String() string {
	switch pk {
	case ProductIntersection:
		return "∩"
	case ProductUnion:
		return "∪"
	case ProductImplication:
		return "→"
	case ProductBiconditional:
		return "↔"
	default:
		return fmt.Sprintf("ProductKind(%d)", uint8(pk))
	}
}

// Link is the single-assignment witness back-pointer used for
// counter-example reconstruction: term.link.succ is the successor state
// this term transitioned to under symbol, with pathLen the number of
// symbols along the chain from the root. Back-links form a DAG, never a
// cycle, because successor paths strictly decrease in symbol-path length.
type Link struct {
	Succ    *Term
	Symbol  Symbol
	PathLen int
}

// unfoldResult is the single-assignment, idempotent result of unfolding a
// CONTINUATION, written at most once (§4.4).
type unfoldResult struct {
	term    *Term
	epsilon bool
}

// Term denotes a set of states of some symbolic automaton (§3 Data Model).
// Two syntactically equal terms produced by the same Workshop are the same
// object: pointer equality implies value equality for workshop-produced
// terms. The only fields ever mutated after construction are link (§4.1
// SetSuccessor), the CONTINUATION's unfolded result (§4.4), and a FIXPOINT's
// members/worklist (§4.5); all three mutations are monotonic.
type Term struct {
	aut        AutomatonNode
	kind       Kind
	complement bool
	approx     int
	link       *Link

	// KindBase
	base *bitset.Set

	// KindProduct / KindTernary / KindNary
	children    []*Term
	productKind ProductKind
	// accessVector permutes NARY child indices into a self-tuning
	// most-likely-to-fail order; mutated during subsumption (§4.3), never
	// affecting the result, only performance.
	accessVector []int

	// KindList
	listMembers []*Term

	// KindContinuation
	contTargetAut   BaseAutomaton
	contSource      *Term
	contSymbol      Symbol
	contComplement  bool
	contLazyInit    LazyInitAutomaton
	contUnfolded    *unfoldResult

	// KindFixpoint
	fixpoint *Fixpoint
}

// Automaton returns the weak back-reference to the owning automaton node.
func (t *Term) Automaton() AutomatonNode { return t.aut }

// Kind returns the term's tag.
func (t *Term) Kind() Kind { return t.kind }

// IsComplement reports the current state of the complement_flag.
func (t *Term) IsComplement() bool { return t.complement }

// StateSpaceApprox returns the cheap, non-strict upper-bound size estimate
// maintained alongside the term (§3: for PRODUCT/TERNARY/NARY,
// approx = Σ children.approx + 1).
func (t *Term) StateSpaceApprox() int { return t.approx }

// Link returns the witness successor link, or nil if unset.
func (t *Term) Link() *Link { return t.link }

// Children returns the operands of a PRODUCT/TERNARY/NARY term.
func (t *Term) Children() []*Term { return t.children }

// ProductKind returns the connective of a PRODUCT/TERNARY/NARY term.
func (t *Term) ProductKind() ProductKind { return t.productKind }

// BaseStates returns the ordered, de-duplicated state-id set of a BASE term.
func (t *Term) BaseStates() *bitset.Set { return t.base }

// ListMembers returns the members of a LIST term.
func (t *Term) ListMembers() []*Term { return t.listMembers }

// Fixpoint returns the FIXPOINT payload of a FIXPOINT term.
func (t *Term) Fixpoint() *Fixpoint { return t.fixpoint }

// Complement flips the complement_flag in place. complement_flag is
// propagated, never absorbed: callers relying on a particular Kind's
// complemented reading must consult IsComplement explicitly.
func (t *Term) Complement() {
	t.complement = !t.complement
}

// SetSuccessor performs the single-assignment witness-link write. It is a
// no-op if the link is already set, matching §4.1's monotonicity guarantee.
func (t *Term) SetSuccessor(succ *Term, symbol Symbol) {
	if t.link != nil {
		return
	}
	pathLen := 1
	if succ != nil && succ.link != nil {
		pathLen = succ.link.PathLen + 1
	}
	t.link = &Link{Succ: succ, Symbol: symbol, PathLen: pathLen}
}

// SetSameSuccessorAs copies other's link chain onto t if t's link is still
// empty.
func (t *Term) SetSameSuccessorAs(other *Term) {
	if t.link != nil || other.link == nil {
		return
	}
	t.link = other.link
}

// IsEmpty reports structural emptiness, per kind (§4.1):
//   - EMPTY is empty iff not complemented;
//   - PRODUCT/TERNARY/NARY is empty iff every child is empty;
//   - BASE is empty iff its state set is empty;
//   - LIST is empty iff it has no members or every member is empty;
//   - FIXPOINT is empty iff both its member set and worklist are empty;
//   - CONTINUATION unfolds first.
func (t *Term) IsEmpty() bool {
	switch t.kind {
	case KindEmpty:
		return !t.complement
	case KindBase:
		return t.base.IsEmpty()
	case KindProduct, KindTernary, KindNary:
		for _, c := range t.children {
			if !c.IsEmpty() {
				return false
			}
		}
		return true
	case KindList:
		for _, m := range t.listMembers {
			if !m.IsEmpty() {
				return false
			}
		}
		return true
	case KindContinuation:
		res, err := t.unfold("IsEmpty")
		if err != nil {
			precondition("CONTINUATION unfold failed during IsEmpty: %v", err)
		}
		return res.term.IsEmpty()
	case KindFixpoint:
		return t.fixpoint.isEmpty()
	default:
		precondition("IsEmpty: unknown kind %v", t.kind)
		return false
	}
}

// MeasureStateSpace returns the exact size of the denoted state set,
// recomputed bottom-up; unlike StateSpaceApprox this is never an
// approximation, only more expensive. BASE returns its stored approx since
// for a BASE term the approx already is the exact member count.
func (t *Term) MeasureStateSpace() int {
	switch t.kind {
	case KindEmpty:
		return 0
	case KindBase:
		return t.base.Count()
	case KindProduct, KindTernary, KindNary:
		sum := 0
		for _, c := range t.children {
			sum += c.MeasureStateSpace()
		}
		return sum
	case KindList:
		sum := 0
		for _, m := range t.listMembers {
			sum += m.MeasureStateSpace()
		}
		return sum
	case KindContinuation:
		res, err := t.unfold("MeasureStateSpace")
		if err != nil {
			precondition("CONTINUATION unfold failed during MeasureStateSpace: %v", err)
		}
		return res.term.MeasureStateSpace()
	case KindFixpoint:
		sum := 0
		for _, m := range t.fixpoint.members {
			if m.term != nil && m.alive {
				sum += m.term.MeasureStateSpace()
			}
		}
		return sum
	default:
		precondition("MeasureStateSpace: unknown kind %v", t.kind)
		return 0
	}
}

// structuralEqual compares two terms of the same kind field-by-field,
// short-circuited by pointer identity before it is ever called. Two FIXPOINT
// terms compare equal only when they wrap the same Fixpoint payload; their
// members and worklists are not compared.
func structuralEqual(a, b *Term) bool {
	if a == b {
		return true
	}
	if a.kind != b.kind || a.complement != b.complement {
		return false
	}
	switch a.kind {
	case KindEmpty:
		return true
	case KindBase:
		return a.base.Equal(b.base)
	case KindProduct, KindTernary, KindNary:
		if a.productKind != b.productKind || len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if a.children[i] != b.children[i] {
				return false
			}
		}
		return true
	case KindList:
		if len(a.listMembers) != len(b.listMembers) {
			return false
		}
		for i := range a.listMembers {
			if a.listMembers[i] != b.listMembers[i] {
				return false
			}
		}
		return true
	case KindContinuation:
		if a.contUnfolded != nil && b.contUnfolded != nil {
			return a.contUnfolded.term == b.contUnfolded.term
		}
		return a.contSource == b.contSource && a.contSymbol.Equal(b.contSymbol)
	case KindFixpoint:
		return a.fixpoint == b.fixpoint
	default:
		precondition("structuralEqual: unknown kind %v", a.kind)
		return false
	}
}

// hashKey returns a string combining kind, children identities, and the
// complement bit, suitable as a map key for hash-consing caches. FIXPOINT
// terms are never canonicalized (§4.2) so they never reach this function.
func hashKey(kind Kind, complement bool, childIDs []uintptr, extra string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%t|", kind, complement)
	for _, id := range childIDs {
		fmt.Fprintf(&b, "%d,", id)
	}
	b.WriteString(extra)
	return b.String()
}

// ptrID returns a stable numeric identity for a term pointer, used as a
// hash-consing and cache key component. Workshop-produced terms guarantee
// that structurally equal terms share one pointer, so pointer identity here
// doubles as value identity.
func ptrID(t *Term) uintptr {
	return uintptr(unsafe.Pointer(t))
}
