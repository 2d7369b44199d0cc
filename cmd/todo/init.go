package main

import (
	"fmt"
	"os"

	"github.com/daylog/todo/internal/config"
	"github.com/daylog/todo/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	GroupID: GroupSetup,
	Short:   "Create the lists directory and a starter config file",
	Long: `Create the lists directory (default ~/.todo_lists) and, unless one already
exists, a commented config.yaml at the user config location.

Running init again is harmless.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sess := resolveSession()
		out := cmd.OutOrStdout()

		if err := os.MkdirAll(sess.Dir, 0o750); err != nil {
			FatalError("failed to create lists directory %s: %v", sess.Dir, err)
			return
		}

		configPath, err := config.WritePath()
		if err != nil {
			FatalError("cannot locate config file: %v", err)
			return
		}
		created, err := config.WriteTemplate(configPath)
		if err != nil {
			FatalError("%v", err)
			return
		}

		if jsonOutput {
			_ = outputJSON(out, map[string]interface{}{
				"lists_dir":      sess.Dir,
				"config":         configPath,
				"config_created": created,
			})
			return
		}

		fmt.Fprintf(out, "%s Lists directory: %s\n", ui.RenderPass(ui.IconPass), ui.RenderAccent(sess.Dir))
		if created {
			fmt.Fprintf(out, "%s Wrote config: %s\n", ui.RenderPass(ui.IconPass), ui.RenderAccent(configPath))
		} else {
			fmt.Fprintf(out, "%s Config already exists: %s\n", ui.RenderPass(ui.IconPass), ui.RenderAccent(configPath))
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
