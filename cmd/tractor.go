package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/rafaelq/fieldlog/internal/stats"
	"github.com/rafaelq/fieldlog/internal/store"
	"github.com/spf13/cobra"
)

var tractorCmd = &cobra.Command{
	Use:     "tractor",
	Aliases: []string{"tractors"},
	Short:   "Manage the tractor fleet",
	GroupID: "fleet",
}

var tractorListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tractors with lifetime usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, ""); err != nil {
			return err
		}

		summaries := stats.Summarize(st.Logs(), st.Tractors())
		if len(summaries) == 0 {
			output.Info("No tractors registered")
			return nil
		}
		for _, s := range summaries {
			t := s.Tractor
			output.Title("%s  %s (%s)", t.ID, t.Name, t.Model)
			fmt.Printf("   horimeter %s  expected %.1f L/h",
				output.Hours(t.CurrentHorimeter), t.ExpectedConsumption)
			if s.Hours > 0 {
				fmt.Printf("  |  logged %s, %s (%.1f L/h)",
					output.Hours(s.Hours), output.Liters(s.Fuel), s.Consumption)
			}
			fmt.Println()
			if t.LastUpdateDate != "" {
				output.Subtle("   last update %s", t.LastUpdateDate)
			}
		}
		return nil
	},
}

var tractorAddFlags struct {
	id          string
	name        string
	model       string
	horimeter   float64
	consumption float64
}

var tractorAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a tractor",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		id := tractorAddFlags.id
		if id == "" {
			id = strconv.FormatInt(time.Now().UnixMilli(), 10)
		}
		t := models.Tractor{
			ID:                  id,
			Name:                tractorAddFlags.name,
			Model:               tractorAddFlags.model,
			CurrentHorimeter:    tractorAddFlags.horimeter,
			ExpectedConsumption: tractorAddFlags.consumption,
			LastUpdateDate:      time.Now().Format("2006-01-02"),
		}
		if t.Name == "" {
			return fmt.Errorf("--name is required")
		}
		if err := st.AppendTractor(t); err != nil {
			return err
		}
		output.Success("Added tractor %s (%s)", t.Name, t.ID)
		return nil
	},
}

var tractorUpdateFlags struct {
	name        string
	model       string
	horimeter   float64
	consumption float64
}

var tractorUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a tractor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		t, ok := st.Tractor(args[0])
		if !ok {
			return fmt.Errorf("tractor %s not found", args[0])
		}
		if cmd.Flags().Changed("name") {
			t.Name = tractorUpdateFlags.name
		}
		if cmd.Flags().Changed("model") {
			t.Model = tractorUpdateFlags.model
		}
		if cmd.Flags().Changed("horimeter") {
			t.CurrentHorimeter = tractorUpdateFlags.horimeter
			t.LastUpdateDate = time.Now().Format("2006-01-02")
		}
		if cmd.Flags().Changed("consumption") {
			t.ExpectedConsumption = tractorUpdateFlags.consumption
		}
		if err := st.UpdateTractor(t.ID, t); err != nil {
			return err
		}
		output.Success("Updated tractor %s", t.ID)
		return nil
	},
}

var tractorDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a tractor",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		if err := st.RemoveTractor(args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("tractor %s not found", args[0])
			}
			return err
		}
		output.Success("Removed tractor %s", args[0])
		output.Subtle("Existing sessions for it are kept")
		return nil
	},
}

func init() {
	tractorAddCmd.Flags().StringVar(&tractorAddFlags.id, "id", "", "Tractor id (generated if omitted)")
	tractorAddCmd.Flags().StringVar(&tractorAddFlags.name, "name", "", "Display name")
	tractorAddCmd.Flags().StringVar(&tractorAddFlags.model, "model", "", "Model")
	tractorAddCmd.Flags().Float64Var(&tractorAddFlags.horimeter, "horimeter", 0, "Current horimeter reading")
	tractorAddCmd.Flags().Float64Var(&tractorAddFlags.consumption, "consumption", 0, "Expected consumption (L/h)")

	tractorUpdateCmd.Flags().StringVar(&tractorUpdateFlags.name, "name", "", "Display name")
	tractorUpdateCmd.Flags().StringVar(&tractorUpdateFlags.model, "model", "", "Model")
	tractorUpdateCmd.Flags().Float64Var(&tractorUpdateFlags.horimeter, "horimeter", 0, "Current horimeter reading")
	tractorUpdateCmd.Flags().Float64Var(&tractorUpdateFlags.consumption, "consumption", 0, "Expected consumption (L/h)")

	tractorCmd.AddCommand(tractorListCmd, tractorAddCmd, tractorUpdateCmd, tractorDeleteCmd)
	rootCmd.AddCommand(tractorCmd)
}
