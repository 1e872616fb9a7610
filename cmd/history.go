package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	limit    int
	tractor  string
	operator string
	jsonOut  bool
}

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"logs"},
	Short:   "List recorded work sessions, newest first",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, ""); err != nil {
			return err
		}

		logs := st.Logs()
		filtered := make([]models.WorkLog, 0, len(logs))
		for _, l := range logs {
			if historyFlags.tractor != "" && l.TractorID != historyFlags.tractor {
				continue
			}
			if historyFlags.operator != "" && l.OperatorID != historyFlags.operator {
				continue
			}
			filtered = append(filtered, l)
		}
		if historyFlags.limit > 0 && len(filtered) > historyFlags.limit {
			filtered = filtered[:historyFlags.limit]
		}

		if historyFlags.jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(filtered)
		}

		if len(filtered) == 0 {
			output.Info("No work sessions recorded")
			return nil
		}
		for _, l := range filtered {
			fmt.Println(output.WorkLogLine(l))
		}
		output.Subtle("%d session(s)", len(filtered))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 0, "Show at most N sessions (0 = all)")
	historyCmd.Flags().StringVar(&historyFlags.tractor, "tractor", "", "Only sessions for this tractor id")
	historyCmd.Flags().StringVar(&historyFlags.operator, "operator", "", "Only sessions by this operator id")
	historyCmd.Flags().BoolVar(&historyFlags.jsonOut, "json", false, "Output raw JSON")
	rootCmd.AddCommand(historyCmd)
}
