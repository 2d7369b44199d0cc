package main

import (
	"fmt"
	"strings"

	"github.com/daylog/todo/internal/debug"
	"github.com/daylog/todo/internal/tasks"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <task text...>",
	Aliases: []string{"a"},
	GroupID: GroupLists,
	Short:   "Add a task to the end of the pending list",
	Long: `Add a task to the end of the day's pending tasks. All remaining words are
joined with single spaces, so quoting is optional:

  todo add buy milk
  todo add "call the plumber"

The day file is created if it does not exist yet.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errMissingArg("what task do you want to add?")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		sess := resolveSession()
		text := strings.Join(args, " ")

		if err := tasks.Add(getRootContext(), sess.Path(), text, rewriteOptions()); err != nil {
			exitWithError(err)
			return
		}

		if !jsonOutput && !debug.IsQuiet() {
			fmt.Fprintln(cmd.OutOrStdout(), "Task added:")
		}
		if err := renderDay(cmd.OutOrStdout(), sess, &changeJSON{Action: "add", Task: text}); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	// Everything after the command word is task text, including words
	// that look like flags.
	addCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(addCmd)
}
