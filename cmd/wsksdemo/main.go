// Command wsksdemo is a small CLI wrapping pkg/wsks's Decide driver over
// internal/toyaut's worked example automaton, reporting SAT/UNSAT outcomes
// with colored output in the style of kanso-lang-kanso's
// cmd/kanso-cli.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wsks-go/symcore/internal/toyaut"
	"github.com/wsks-go/symcore/pkg/wsks"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		search   string
		dotOut   string
		trace    bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "wsksdemo",
		Short: "Decide \"exists a position where X holds\" over a toy automaton",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(search, dotOut, trace, maxDepth)
		},
	}

	cmd.Flags().StringVar(&search, "search", "dfs", "worklist search strategy: dfs or bfs (validated only; the root fixpoint always uses UNGROUND_ROOT search)")
	cmd.Flags().StringVar(&dotOut, "dot", "", "write a graph dump of the root fixpoint term to this path")
	cmd.Flags().BoolVar(&trace, "trace", false, "enable saturation-step tracing")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "override the subsumption recursion depth limit (0 = engine default)")

	return cmd
}

func runDecide(search, dotOut string, trace bool, maxDepth int) error {
	searchType, err := parseSearchType(search)
	if err != nil {
		color.Red("%v", err)
		return err
	}
	if trace {
		wsks.EnableTrace()
	}

	metrics := wsks.NewMetrics()
	aut := toyaut.New(metrics)
	proj := toyaut.NewProjection(aut)

	// The root fixpoint always uses SearchUngroundRoot (§6); --search is
	// parsed and validated but has no effect on this single-automaton demo.
	_ = searchType
	seed := aut.Workshop().CreateList([]*wsks.Term{aut.InitialStates()})
	fp := wsks.NewRootFixpoint(proj, toyaut.Symbol{Value: wsks.TrackDontCare}, seed, "", toyaut.VarMap{}, toyaut.SymbolWorkshop{}, false, true, false)
	root := aut.Workshop().CreateFixpoint(fp)

	engine := wsks.NewEngine(metrics, &wsks.Config{MaxDepth: maxDepth})
	result, err := engine.Decide(root)
	if err != nil {
		color.Red("decide failed: %v", err)
		return err
	}

	if result.Accepted {
		color.Green("SAT: exists X such that the formula holds")
	} else {
		color.Red("UNSAT: no assignment of X satisfies the formula")
	}

	if dotOut != "" {
		if err := writeDot(root, dotOut); err != nil {
			color.Red("failed to write dot graph: %v", err)
			return err
		}
		fmt.Printf("wrote graph dump to %s\n", dotOut)
	}

	snap := metrics.Snapshot()
	fmt.Printf("fixpoint steps: %d, workshop hits/misses: %d/%d\n", snap.FixpointSteps, snap.WorkshopHits, snap.WorkshopMisses)
	return nil
}

func parseSearchType(search string) (wsks.SearchType, error) {
	switch search {
	case "dfs":
		return wsks.SearchDFS, nil
	case "bfs":
		return wsks.SearchBFS, nil
	default:
		return 0, fmt.Errorf("unknown --search value %q (want dfs or bfs)", search)
	}
}

func writeDot(root *wsks.Term, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return wsks.ToDot(root, f)
}
