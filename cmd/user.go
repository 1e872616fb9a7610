package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/rafaelq/fieldlog/internal/store"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Manage operators and administrators",
	GroupID: "fleet",
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		for _, u := range st.Users() {
			fmt.Printf("%-16s %-24s %s\n", u.ID, u.Name, output.Role(u.Role))
		}
		return nil
	},
}

var userAddFlags struct {
	id    string
	name  string
	pin   string
	admin bool
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		if userAddFlags.name == "" || userAddFlags.pin == "" {
			return fmt.Errorf("--name and --pin are required")
		}
		id := userAddFlags.id
		if id == "" {
			id = strconv.FormatInt(time.Now().UnixMilli(), 10)
		}
		role := models.RoleOperator
		if userAddFlags.admin {
			role = models.RoleAdmin
		}
		u := models.User{ID: id, Name: userAddFlags.name, Role: role, PIN: userAddFlags.pin}
		if err := st.AppendUser(u); err != nil {
			return err
		}
		output.Success("Added %s %s (%s)", output.Role(role), u.Name, u.ID)
		return nil
	},
}

var userUpdateFlags struct {
	name string
	pin  string
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user's name or PIN",
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

		var target *models.User
		for _, u := range st.Users() {
			if u.ID == args[0] {
				u := u
				target = &u
				break
			}
		}
		if target == nil {
			return fmt.Errorf("user %s not found", args[0])
		}
		if cmd.Flags().Changed("name") {
			target.Name = userUpdateFlags.name
		}
		if cmd.Flags().Changed("pin") {
			target.PIN = userUpdateFlags.pin
		}
		if err := st.UpdateUser(target.ID, *target); err != nil {
			return err
		}
		output.Success("Updated user %s", target.ID)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a user",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		admin, err := requireUser(st, models.RoleAdmin)
		if err != nil {
			return err
		}
		if admin.ID == args[0] {
			return fmt.Errorf("cannot remove the logged-in user")
		}

		if err := st.RemoveUser(args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("user %s not found", args[0])
			}
			return err
		}
		output.Success("Removed user %s", args[0])
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userAddFlags.id, "id", "", "User id (generated if omitted)")
	userAddCmd.Flags().StringVar(&userAddFlags.name, "name", "", "Full name")
	userAddCmd.Flags().StringVar(&userAddFlags.pin, "pin", "", "Login PIN")
	userAddCmd.Flags().BoolVar(&userAddFlags.admin, "admin", false, "Grant the ADMIN role")

	userUpdateCmd.Flags().StringVar(&userUpdateFlags.name, "name", "", "Full name")
	userUpdateCmd.Flags().StringVar(&userUpdateFlags.pin, "pin", "", "Login PIN")

	userCmd.AddCommand(userListCmd, userAddCmd, userUpdateCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}
