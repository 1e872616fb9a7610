package cmd

import (
	"errors"
	"fmt"

	"github.com/rafaelq/fieldlog/internal/mirror"
	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Short:   "Mirror data to and from the remote endpoint",
	GroupID: "sync",
	Long: `Mirror the local collections to and from the configured remote
endpoint (see 'fieldlog config set remote.url').

Push is fire-and-forget: the remote's response body and status are
ignored, only transport failures are reported. Pull replaces each local
collection present in the remote document wholesale.`,
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push local collections to the remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		client := mirror.New(st.Config().RemoteEndpointURL)
		snap := mirror.Snapshot{
			Logs:     st.Logs(),
			Tractors: st.Tractors(),
			Users:    st.Users(),
		}
		if err := client.Push(snap); err != nil {
			if errors.Is(err, mirror.ErrNoEndpoint) {
				return fmt.Errorf("no remote endpoint configured: run 'fieldlog config set remote.url <url>'")
			}
			return fmt.Errorf("push failed: %w", err)
		}
		output.Success("Pushed %d log(s), %d tractor(s), %d user(s)",
			len(snap.Logs), len(snap.Tractors), len(snap.Users))
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the remote document and replace local collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		client := mirror.New(st.Config().RemoteEndpointURL)
		res, err := client.Pull()
		if err != nil {
			if errors.Is(err, mirror.ErrNoEndpoint) {
				return fmt.Errorf("no remote endpoint configured: run 'fieldlog config set remote.url <url>'")
			}
			return fmt.Errorf("pull failed: %w", err)
		}
		if err := mirror.Apply(st, res); err != nil {
			return err
		}

		if !res.HasLogs && !res.HasTractors && !res.HasUsers {
			output.Info("Remote document is empty; nothing replaced")
			return nil
		}
		if res.HasLogs {
			output.Success("Replaced logs (%d)", len(res.Logs))
		}
		if res.HasTractors {
			output.Success("Replaced tractors (%d)", len(res.Tractors))
		}
		if res.HasUsers {
			output.Success("Replaced users (%d)", len(res.Users))
		}
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncPushCmd, syncPullCmd)
	rootCmd.AddCommand(syncCmd)
}
