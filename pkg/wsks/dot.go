package wsks

import (
	"fmt"
	"io"
)

// dotColor assigns a product connective an edge color for the rendered
// graph, following the original implementation's per-connective labeling in
// its dump routine.
func (pk ProductKind) dotColor() string {
	switch pk {
	case ProductIntersection:
		return "black"
	case ProductUnion:
		return "blue"
	case ProductImplication:
		return "darkgreen"
	case ProductBiconditional:
		return "purple"
	default:
		return "gray"
	}
}

// ToDot writes a graph dump of term's DAG to w: unlabeled edges for
// products, dashed edges for a fixpoint's pending worklist entries, colored
// by product connective (§6). The dump is purely diagnostic and plays no
// part in correctness.
func ToDot(term *Term, w io.Writer) error {
	fmt.Fprintln(w, "strict graph aut {")
	nodeIDs := make(map[*Term]string)
	counter := 0
	if _, err := dumpDot(term, w, nodeIDs, &counter); err != nil {
		return err
	}
	fmt.Fprintln(w, "}")
	return nil
}

func dumpDot(t *Term, w io.Writer, ids map[*Term]string, counter *int) (string, error) {
	if name, ok := ids[t]; ok {
		return name, nil
	}
	name := fmt.Sprintf("n%d", *counter)
	*counter++
	ids[t] = name

	prefix := ""
	if t.complement {
		prefix = "~"
	}

	switch t.kind {
	case KindEmpty:
		fmt.Fprintf(w, "\t%s [label=\"%s\\u2205\"];\n", name, prefix)

	case KindBase:
		fmt.Fprintf(w, "\t%s [label=\"%s{%v}\"];\n", name, prefix, t.base.Values())

	case KindProduct, KindTernary, KindNary:
		fmt.Fprintf(w, "\t%s [label=\"%s%s\"];\n", name, prefix, t.productKind)
		for _, c := range t.children {
			child, err := dumpDot(c, w, ids, counter)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(w, "\t%s -- %s [color=%s];\n", name, child, t.productKind.dotColor())
		}

	case KindList:
		fmt.Fprintf(w, "\t%s [label=\"%sL\"];\n", name, prefix)
		for _, m := range t.listMembers {
			child, err := dumpDot(m, w, ids, counter)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(w, "\t%s -- %s;\n", name, child)
		}

	case KindContinuation:
		fmt.Fprintf(w, "\t%s [label=\"%sC\" shape=box style=dashed];\n", name, prefix)
		if t.contUnfolded != nil {
			child, err := dumpDot(t.contUnfolded.term, w, ids, counter)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(w, "\t%s -- %s [style=dotted];\n", name, child)
		}

	case KindFixpoint:
		fmt.Fprintf(w, "\t%s [label=\"%sF\"];\n", name, prefix)
		for _, m := range t.fixpoint.members {
			if m.term == nil || !m.alive {
				continue
			}
			child, err := dumpDot(m.term, w, ids, counter)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(w, "\t%s -- %s;\n", name, child)
		}
		for _, item := range t.fixpoint.worklist {
			child, err := dumpDot(item.term, w, ids, counter)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(w, "\t%s -- %s [style=dashed, label=\"%s\"];\n", name, child, item.symbol)
		}

	default:
		precondition("ToDot: unknown kind %v", t.kind)
	}

	return name, nil
}
