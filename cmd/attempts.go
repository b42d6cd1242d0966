package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/dxtutor/internal/store"
)

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "Inspect and export the attempt log",
}

var attemptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded attempts in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := queryOptsFromFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		records, err := queryAttempts(cmd, opts)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, records)
		}

		fmt.Fprintf(out, "%5s  %-20s  %-12s  %-10s  %-20s  %-7s  %6s\n",
			"Seq", "Time", "Student", "Case", "Gold", "Correct", "F1")
		fmt.Fprintln(out, strings.Repeat("─", 92))
		for _, r := range records {
			fmt.Fprintf(out, "%5d  %-20s  %-12s  %-10s  %-20s  %-7t  %6s\n",
				r.Sequence, r.Timestamp.Local().Format("2006-01-02 15:04"), truncate(r.StudentID, 12),
				r.CaseID, r.GoldDiagnosis, r.DiagnosisCorrect, percent(r.F1))
		}
		fmt.Fprintf(out, "\n%d attempts\n", len(records))
		return nil
	},
}

var attemptsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize attempts for a student (or everyone)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()
		repo, err := a.Attempts()
		if err != nil {
			return err
		}

		stats, err := repo.AttemptStats(cmd.Context(), student)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		who := student
		if who == "" {
			who = "all students"
		}
		fmt.Fprintf(out, "Student     %s\n", who)
		fmt.Fprintf(out, "Attempts    %d\n", stats.Attempts)
		if stats.Attempts == 0 {
			return nil
		}
		fmt.Fprintf(out, "Accuracy    %s (%d correct)\n", percent(stats.Accuracy()), stats.Correct)
		fmt.Fprintf(out, "Mean F1     %s\n", percent(stats.MeanF1))
		fmt.Fprintf(out, "Last        %s\n", stats.LastAttempt.Local().Format(time.RFC1123))

		dx := make([]string, 0, len(stats.ByDiagnosis))
		for id := range stats.ByDiagnosis {
			dx = append(dx, id)
		}
		sort.Strings(dx)
		fmt.Fprintln(out, "By gold diagnosis")
		for _, id := range dx {
			fmt.Fprintf(out, "  %-22s  %d\n", id, stats.ByDiagnosis[id])
		}
		return nil
	},
}

var attemptsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attempts as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := queryOptsFromFlags(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		records, err := queryAttempts(cmd, opts)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		if err := store.WriteCSV(w, records); err != nil {
			return err
		}
		if output != "" && output != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d attempts to %s\n", len(records), output)
		}
		return nil
	},
}

func queryOptsFromFlags(cmd *cobra.Command) (store.QueryOpts, error) {
	student, _ := cmd.Flags().GetString("student")
	limit, _ := cmd.Flags().GetInt("limit")
	after, _ := cmd.Flags().GetInt64("after")
	if limit < 0 {
		return store.QueryOpts{}, fmt.Errorf("--limit must not be negative")
	}
	return store.QueryOpts{StudentID: student, Limit: limit, After: after}, nil
}

func queryAttempts(cmd *cobra.Command, opts store.QueryOpts) ([]store.AttemptRecord, error) {
	a, err := openApp(true)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	repo, err := a.Attempts()
	if err != nil {
		return nil, err
	}
	return repo.QueryAttempts(cmd.Context(), opts)
}

func init() {
	for _, c := range []*cobra.Command{attemptsListCmd, attemptsExportCmd} {
		c.Flags().String("student", "", "Only attempts by this student")
		c.Flags().Int("limit", 0, "Maximum number of attempts (0 = all)")
		c.Flags().Int64("after", 0, "Only attempts with a sequence number above this")
	}
	attemptsListCmd.Flags().Bool("json", false, "Print JSON")
	attemptsExportCmd.Flags().StringP("output", "o", "", "Write CSV to a file instead of stdout")
	attemptsStatsCmd.Flags().String("student", "", "Student id (empty = everyone)")

	attemptsCmd.AddCommand(attemptsListCmd)
	attemptsCmd.AddCommand(attemptsStatsCmd)
	attemptsCmd.AddCommand(attemptsExportCmd)
}
