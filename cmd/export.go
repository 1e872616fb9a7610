package cmd

import (
	"fmt"
	"os"

	"github.com/rafaelq/fieldlog/internal/export"
	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export work sessions as CSV",
	GroupID: "core",
	Long: `Export the full work-log history as CSV, newest first. Writes to
stdout unless --out is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		logs := st.Logs()
		if exportOut == "" {
			return export.WriteCSV(os.Stdout, logs)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		if err := export.WriteCSV(f, logs); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		output.Success("Exported %d session(s) to %s", len(logs), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (stdout if omitted)")
	rootCmd.AddCommand(exportCmd)
}
