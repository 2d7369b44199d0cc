package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/daylog/todo/internal/config"
	"github.com/daylog/todo/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: GroupSetup,
	Short:   "Show or change settings",
	Long: `Show or change settings stored in config.yaml.

Keys:
  lists-dir      Directory holding the day files (default ~/.todo_lists)
  color          auto | always | never
  lock-timeout   How long edits wait for another todo process (default 5s)
  date-format    Go time layout for the list header

Every key can be overridden with TODO_<KEY>, e.g. TODO_LISTS_DIR.

Examples:
  todo config set lists-dir ~/Dropbox/todo
  todo config get color
  todo config list`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		if !config.IsKnownKey(key) {
			FatalError("unknown config key %q", key)
			return
		}
		value := config.Get(key)
		if jsonOutput {
			_ = outputJSON(cmd.OutOrStdout(), map[string]string{"key": key, "value": value})
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a setting to config.yaml",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]

		path, err := config.WritePath()
		if err != nil {
			FatalError("cannot locate config file: %v", err)
			return
		}
		if err := config.SetYamlConfig(path, key, value); err != nil {
			fmt.Fprintf(stderr, "Error setting config: %v\n", err)
			osExit(1)
			return
		}

		if jsonOutput {
			_ = outputJSON(cmd.OutOrStdout(), map[string]string{
				"key":      key,
				"value":    value,
				"location": path,
			})
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (in %s)\n", key, value, path)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting with its source",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Settings()
		if jsonOutput {
			_ = outputJSON(cmd.OutOrStdout(), settings)
			return
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, s := range settings {
			value := s.Value
			if value == "" {
				value = "(unset)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Key, value, ui.RenderMuted(s.Source))
		}
		_ = tw.Flush()
		if used := config.ConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nConfig file: %s\n", ui.RenderAccent(used))
		}
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file that is read and written",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.WritePath()
		if err != nil {
			FatalError("cannot locate config file: %v", err)
			return
		}
		if jsonOutput {
			_, statErr := os.Stat(path)
			_ = outputJSON(cmd.OutOrStdout(), map[string]interface{}{
				"path":   path,
				"exists": statErr == nil,
			})
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
