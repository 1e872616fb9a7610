package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/rafaelq/fieldlog/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginPIN string

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in with your PIN",
	GroupID: "core",
	Long: `Log in by PIN. The session is persisted locally and restored on every
subsequent invocation until you log out.

With no --pin flag the PIN is read interactively without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		pin := loginPIN
		if pin == "" {
			fmt.Fprint(os.Stderr, "PIN: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("read PIN: %w", err)
			}
			pin = string(raw)
		}

		mgr, err := session.New(st)
		if err != nil {
			return err
		}
		user, err := mgr.Login(pin)
		if err != nil {
			if errors.Is(err, session.ErrInvalidPIN) {
				output.Error("Invalid PIN")
				os.Exit(1)
			}
			return err
		}

		output.Success("Logged in as %s (%s)", user.Name, output.Role(user.Role))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Log out and clear the persisted session",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		mgr, err := session.New(st)
		if err != nil {
			return err
		}
		if mgr.Current() == nil {
			output.Info("Not logged in")
			return nil
		}
		if err := mgr.Logout(); err != nil {
			return err
		}
		output.Success("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the current session",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		mgr, err := session.New(st)
		if err != nil {
			return err
		}
		cur := mgr.Current()
		if cur == nil {
			output.Info("Not logged in")
			return nil
		}
		fmt.Printf("%s (%s, id %s)\n", cur.Name, output.Role(cur.Role), cur.ID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPIN, "pin", "", "PIN (read interactively if omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
