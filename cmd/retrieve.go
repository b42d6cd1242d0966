package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [note...]",
	Short: "Rank reference cases against a clinical note",
	Example: `  dxtutor retrieve "jaw clicks a lot when opening"
  dxtutor retrieve --scenario demo_001 --k 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, _ := cmd.Flags().GetInt("k")
		scenarioID, _ := cmd.Flags().GetString("scenario")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		note := strings.Join(args, " ")
		if scenarioID != "" {
			sc, ok := a.Dataset.Library.Scenario(scenarioID)
			if !ok {
				return fmt.Errorf("unknown scenario %q", scenarioID)
			}
			if note != "" {
				return fmt.Errorf("give a note or --scenario, not both")
			}
			note = sc.Note
		}
		if strings.TrimSpace(note) == "" {
			return fmt.Errorf("a note is required (argument or --scenario)")
		}
		if k == 0 {
			k = a.Config.TopK
		}
		if k < 0 {
			return fmt.Errorf("--k must be positive, got %d", k)
		}

		hits := a.Retriever.Retrieve(note, k)
		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, hits)
		}

		fmt.Fprintf(out, "%-3s  %-10s  %-20s  %10s  %s\n", "#", "Case", "Diagnosis", "Similarity", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, h := range hits {
			fmt.Fprintf(out, "%-3d  %-10s  %-20s  %10s  %s\n",
				h.Rank, h.Case.ID, h.Case.DiagnosisID, percent(h.Similarity), truncate(h.Case.Title, 40))
		}
		if len(hits) > 0 && hits[0].Similarity > 0 {
			top := hits[0].Case.DiagnosisID
			chain := a.Dataset.Graph.AncestorChain(top)
			path := []string{top}
			for _, n := range chain {
				path = append(path, n.ID)
			}
			fmt.Fprintf(out, "\nTop diagnosis path: %s\n", strings.Join(path, " < "))
		}
		return nil
	},
}

func init() {
	retrieveCmd.Flags().Int("k", 0, "Number of cases to return (default from DXTUTOR_TOP_K)")
	retrieveCmd.Flags().String("scenario", "", "Use the note of a practice scenario")
	retrieveCmd.Flags().Bool("json", false, "Print JSON")
}
