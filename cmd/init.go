package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/rafaelq/fieldlog/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a fieldlog database in the current directory",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()
		dbPath := filepath.Join(dir, store.DataDirName, store.DBFileName)
		if _, err := os.Stat(dbPath); err == nil {
			output.Warning("fieldlog is already initialized in %s", dir)
			return nil
		}

		st, err := store.Open(dir)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer st.Close()

		output.Success("Initialized fieldlog in %s", dir)
		fmt.Println()
		fmt.Println("Seeded default operators, tractors and service catalog.")
		fmt.Println("Log in with 'fieldlog login' (admin PIN 1234).")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
