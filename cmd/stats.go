package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/rafaelq/fieldlog/internal/stats"
	"github.com/spf13/cobra"
)

var statsTractor string

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show usage statistics",
	GroupID: "core",
	Long: `Show aggregated usage statistics: total hours, fuel, average
consumption, per-machine hour comparison and top service distribution.

--tractor narrows the totals and service distribution to one machine;
the machine comparison always covers the whole fleet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		filter := statsTractor
		if filter == "" {
			filter = stats.FilterAll
		}
		s := stats.Compute(st.Logs(), st.Tractors(), filter)

		scope := "all machines"
		if filter != stats.FilterAll {
			if t, ok := st.Tractor(filter); ok {
				scope = t.Name
			} else {
				scope = filter
			}
		}

		output.Title("Usage (%s)", scope)
		fmt.Printf("  Sessions:        %d\n", s.FilteredLogCount)
		fmt.Printf("  Hours worked:    %s\n", output.Hours(s.TotalHours))
		fmt.Printf("  Fuel used:       %s\n", output.Liters(s.TotalFuel))
		fmt.Printf("  Avg consumption: %s/h\n", strconv.FormatFloat(s.AverageConsumption, 'f', 1, 64)+" L")

		if len(s.MachineHours) > 0 {
			fmt.Println()
			output.Title("Hours per machine")
			max := 0.0
			for _, mh := range s.MachineHours {
				if mh.Hours > max {
					max = mh.Hours
				}
			}
			for _, mh := range s.MachineHours {
				fmt.Printf("  %-28s %s %s\n", mh.Name, bar(mh.Hours, max, 24), output.Hours(mh.Hours))
			}
		}

		if len(s.ServiceDistribution) > 0 {
			fmt.Println()
			output.Title("Top services")
			for i, sh := range s.ServiceDistribution {
				fmt.Printf("  %d. %-24s %s\n", i+1, sh.Name, output.Hours(sh.Hours))
			}
		}
		return nil
	},
}

// bar renders a fixed-width text bar proportional to v/max.
func bar(v, max float64, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	n := int(v / max * float64(width))
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func init() {
	statsCmd.Flags().StringVar(&statsTractor, "tractor", "", "Limit totals to one tractor id")
	rootCmd.AddCommand(statsCmd)
}
