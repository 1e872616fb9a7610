package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/spf13/cobra"
)

// validConfigKeys maps settable keys to accessors over the config record.
var validConfigKeys = map[string]struct {
	get func(models.Config) string
	set func(*models.Config, string) error
}{
	"remote.url": {
		get: func(c models.Config) string { return c.RemoteEndpointURL },
		set: func(c *models.Config, v string) error {
			c.RemoteEndpointURL = v
			return nil
		},
	},
	"sync.auto": {
		get: func(c models.Config) string { return strconv.FormatBool(c.AutoSyncEnabled) },
		set: func(c *models.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("sync.auto must be true or false")
			}
			c.AutoSyncEnabled = b
			return nil
		},
	},
}

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Get and set configuration",
	GroupID: "system",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show configuration (all keys, or one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		cfg := st.Config()
		if len(args) == 1 {
			entry, ok := validConfigKeys[args[0]]
			if !ok {
				return unknownConfigKey(args[0])
			}
			fmt.Println(entry.get(cfg))
			return nil
		}

		keys := make([]string, 0, len(validConfigKeys))
		for k := range validConfigKeys {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := validConfigKeys[k].get(cfg)
			if v == "" {
				v = "(unset)"
			}
			fmt.Printf("%-12s %s\n", k, v)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := requireUser(st, models.RoleAdmin); err != nil {
			return err
		}

		entry, ok := validConfigKeys[args[0]]
		if !ok {
			return unknownConfigKey(args[0])
		}
		cfg := st.Config()
		if err := entry.set(&cfg, args[1]); err != nil {
			return err
		}
		if err := st.SetConfig(cfg); err != nil {
			return err
		}
		output.Success("Set %s", args[0])
		return nil
	},
}

func unknownConfigKey(key string) error {
	keys := make([]string, 0, len(validConfigKeys))
	for k := range validConfigKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown config key %q (valid: %v)", key, keys)
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
