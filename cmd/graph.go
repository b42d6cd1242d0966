package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dxtutor/internal/taxonomy"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Browse the diagnosis taxonomy",
}

var graphTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the diagnosis hierarchy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, root := range g.Roots() {
			printTree(out, g, root, 0)
		}
		fmt.Fprintf(out, "\n%d diagnoses, %d features\n", len(g.Diagnoses()), len(g.Features()))
		return nil
	},
}

func printTree(w io.Writer, g *taxonomy.Graph, n taxonomy.DiagnosisNode, depth int) {
	fmt.Fprintf(w, "%s%s  %s\n", strings.Repeat("  ", depth), n.ID, n.Label)
	for _, c := range g.Children(n.ID) {
		printTree(w, g, c, depth+1)
	}
}

var graphPathCmd = &cobra.Command{
	Use:   "path <diagnosis-id>",
	Short: "Show the ancestor chain of a diagnosis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph()
		if err != nil {
			return err
		}
		n, ok := g.Diagnosis(args[0])
		if !ok {
			return fmt.Errorf("unknown diagnosis %q", args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "L%d  %s  %s\n", n.Level, n.ID, n.Label)
		for _, a := range g.AncestorChain(n.ID) {
			fmt.Fprintf(out, "L%d  %s  %s\n", a.Level, a.ID, a.Label)
		}
		return nil
	},
}

var graphFeaturesCmd = &cobra.Command{
	Use:   "features <diagnosis-id>",
	Short: "List the clinical features attached to a diagnosis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph()
		if err != nil {
			return err
		}
		if _, ok := g.Diagnosis(args[0]); !ok {
			return fmt.Errorf("unknown diagnosis %q", args[0])
		}
		out := cmd.OutOrStdout()
		feats := g.AssociatedFeatures(args[0])
		for _, f := range feats {
			fmt.Fprintf(out, "%-28s  %s\n", f.ID, f.Label)
		}
		if len(feats) == 0 {
			fmt.Fprintln(out, "(no directly attached features)")
		}
		return nil
	},
}

var graphHighlightCmd = &cobra.Command{
	Use:   "highlight <diagnosis-id>",
	Short: "Print the highlight set (nodes and edges) for a diagnosis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		g, err := loadGraph()
		if err != nil {
			return err
		}
		hl := g.Highlight(args[0])
		if hl.Empty() {
			return fmt.Errorf("unknown diagnosis %q", args[0])
		}
		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, hl)
		}
		fmt.Fprintf(out, "Diagnosis: %s  %s\n", hl.Diagnosis.ID, hl.Diagnosis.Label)
		anc := make([]string, len(hl.Ancestors))
		for i, a := range hl.Ancestors {
			anc[i] = a.ID
		}
		feats := make([]string, len(hl.Features))
		for i, f := range hl.Features {
			feats[i] = f.ID
		}
		fmt.Fprintf(out, "Ancestors: %s\n", listOrDash(anc))
		fmt.Fprintf(out, "Features:  %s\n", listOrDash(feats))
		fmt.Fprintf(out, "Nodes:     %s\n", listOrDash(hl.NodeIDs))
		fmt.Fprintf(out, "Edges:     %s\n", listOrDash(hl.EdgeIDs))
		return nil
	},
}

var graphWhichCmd = &cobra.Command{
	Use:   "which <feature-id>",
	Short: "List the diagnoses a feature is attached to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph()
		if err != nil {
			return err
		}
		if _, ok := g.Feature(args[0]); !ok {
			return fmt.Errorf("unknown feature %q", args[0])
		}
		out := cmd.OutOrStdout()
		for _, id := range g.DiagnosesWithFeature(args[0]) {
			n, _ := g.Diagnosis(id)
			fmt.Fprintf(out, "%-22s  %s\n", n.ID, n.Label)
		}
		return nil
	},
}

func loadGraph() (*taxonomy.Graph, error) {
	a, err := openApp(false)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.Dataset.Graph, nil
}

func init() {
	graphHighlightCmd.Flags().Bool("json", false, "Print JSON")

	graphCmd.AddCommand(graphTreeCmd)
	graphCmd.AddCommand(graphPathCmd)
	graphCmd.AddCommand(graphFeaturesCmd)
	graphCmd.AddCommand(graphHighlightCmd)
	graphCmd.AddCommand(graphWhichCmd)
}
