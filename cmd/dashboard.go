package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/tui/dashboard"
	"github.com/spf13/cobra"
)

var dashboardInterval time.Duration

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Live statistics dashboard",
	GroupID: "core",
	Long: `Full-screen dashboard with usage totals, per-machine comparison, top
services and recent sessions. Refreshes periodically; press f to cycle the
machine filter, r to refresh now, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		m := dashboard.NewModel(st, dashboardInterval)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardInterval, "interval", 5*time.Second, "Refresh interval")
	rootCmd.AddCommand(dashboardCmd)
}
