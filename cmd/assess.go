package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dxtutor/internal/assessment"
	"github.com/abhisek/dxtutor/internal/taxonomy"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a diagnosis and selected features against the answer key",
	Example: `  dxtutor assess --student s1 --scenario demo_001 --diagnosis icop_l3_disc \
    --feature sx_clicking --feature sx_deviation --feature sx_trauma \
    --justification "Popping with deflection on opening after head trauma."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		student, _ := flags.GetString("student")
		scenario, _ := flags.GetString("scenario")
		note, _ := flags.GetString("note")
		diagnosis, _ := flags.GetString("diagnosis")
		features, _ := flags.GetStringSlice("feature")
		justification, _ := flags.GetString("justification")
		asJSON, _ := flags.GetBool("json")

		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		fb, err := a.Assessor.Assess(cmd.Context(), assessment.Submission{
			StudentID:     student,
			ScenarioID:    scenario,
			Note:          note,
			Diagnosis:     diagnosis,
			Features:      features,
			Justification: justification,
		})
		if err != nil {
			if problems := assessment.ValidationErrors(err); len(problems) > 0 {
				errOut := cmd.ErrOrStderr()
				fmt.Fprintln(errOut, "Submission rejected:")
				for _, p := range problems {
					fmt.Fprintf(errOut, "  - %s\n", p)
				}
				return fmt.Errorf("%d problem(s) with the submission", len(problems))
			}
			if errors.Is(err, assessment.ErrNoGold) {
				return fmt.Errorf("%w: pass --scenario, a case id, or a --note that matches a library case", err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, fb)
		}
		printFeedback(out, a.Dataset.Graph, fb)
		return nil
	},
}

func printFeedback(w io.Writer, g *taxonomy.Graph, fb *assessment.Feedback) {
	r := fb.Record
	verdict := "incorrect"
	if r.DiagnosisCorrect {
		verdict = "correct"
	}

	fmt.Fprintf(w, "Attempt     %s\n", r.ID)
	fmt.Fprintf(w, "Gold        %s (%s %s)\n", r.GoldDiagnosis, r.GoldSource, r.CaseID)
	fmt.Fprintf(w, "Diagnosis   %s: %s\n", verdict, r.StudentDiagnosis)
	fmt.Fprintf(w, "Features    precision %s  recall %s  F1 %s\n",
		percent(r.Precision), percent(r.Recall), percent(r.F1))
	fmt.Fprintf(w, "  missing   %s\n", listOrDash(featureLabels(g, r.MissingFeatures)))
	fmt.Fprintf(w, "  extra     %s\n", listOrDash(featureLabels(g, r.ExtraFeatures)))

	if fb.Alternative.Found() {
		how := fmt.Sprintf("Jaccard %.2f", fb.Alternative.Jaccard)
		if fb.Alternative.Fallback {
			how = "common look-alike"
		}
		fmt.Fprintf(w, "Confusable  %s (%s)\n", fb.Alternative.DiagnosisID, how)
	}

	if !fb.Gold.Empty() {
		path := []string{fb.Gold.Diagnosis.Label}
		for _, a := range fb.Gold.Ancestors {
			path = append(path, a.Label)
		}
		fmt.Fprintf(w, "Reasoning   %s\n", strings.Join(path, " < "))
	}

	if len(fb.Hits) > 0 {
		fmt.Fprintln(w, "Similar cases")
		for _, h := range fb.Hits {
			fmt.Fprintf(w, "  %d. %-9s %-20s %s\n", h.Rank, h.Case.ID, h.Case.DiagnosisID, percent(h.Similarity))
		}
	}
}

func featureLabels(g *taxonomy.Graph, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if f, ok := g.Feature(id); ok {
			out[i] = f.Label
		} else {
			out[i] = id
		}
	}
	return out
}

func init() {
	f := assessCmd.Flags()
	f.String("student", "", "Learner identifier")
	f.String("scenario", "", "Scenario or case id providing the gold diagnosis")
	f.String("note", "", "Clinical note (gold comes from retrieval when no scenario is given)")
	f.String("diagnosis", "", "Selected diagnosis id")
	f.StringSlice("feature", nil, "Selected feature id (repeatable or comma-separated)")
	f.String("justification", "", "Reasoning for the diagnosis")
	f.Bool("json", false, "Print JSON")
}
