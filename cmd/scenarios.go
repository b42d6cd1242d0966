package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List practice scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showGold, _ := cmd.Flags().GetBool("show-gold")
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		scenarios := a.Dataset.Library.Scenarios()
		for _, sc := range scenarios {
			fmt.Fprintf(out, "%s  %s\n", sc.ID, sc.Title)
			if showGold && sc.GoldDiagnosisID != "" {
				fmt.Fprintf(out, "  gold: %s\n", sc.GoldDiagnosisID)
			}
			for _, line := range strings.Split(strings.TrimSpace(sc.Note), "\n") {
				fmt.Fprintf(out, "  | %s\n", line)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d scenarios\n", len(scenarios))
		return nil
	},
}

func init() {
	scenariosCmd.Flags().Bool("show-gold", false, "Reveal the gold diagnosis of each scenario")
}
