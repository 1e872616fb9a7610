package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/rafaelq/fieldlog/internal/store"
	"github.com/spf13/cobra"
)

var serviceCmd = &cobra.Command{
	Use:     "service",
	Aliases: []string{"services"},
	Short:   "Manage the service catalog",
	GroupID: "fleet",
	Long: `Manage the catalog of known services. The catalog feeds the log
form's suggestions; sessions may still record free-typed service names.`,
}

var serviceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List catalog services",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, ""); err != nil {
			return err
		}

		for _, s := range st.Services() {
			fmt.Printf("%-16s %s\n", s.ID, s.Name)
		}
		return nil
	},
}

var serviceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a service to the catalog",
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

		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("service name is required")
		}
		s := models.ServiceType{
			ID:   strings.Join(strings.Fields(strings.ToLower(name)), "-"),
			Name: name,
		}
		if err := st.AppendService(s); err != nil {
			return err
		}
		output.Success("Added service %s (%s)", s.Name, s.ID)
		return nil
	},
}

var serviceDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a service from the catalog",
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

		if err := st.RemoveService(args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("service %s not found", args[0])
			}
			return err
		}
		output.Success("Removed service %s", args[0])
		return nil
	},
}

func init() {
	serviceCmd.AddCommand(serviceListCmd, serviceAddCmd, serviceDeleteCmd)
	rootCmd.AddCommand(serviceCmd)
}
