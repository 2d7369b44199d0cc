package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/daylog/todo/internal/daylist"
	"github.com/daylog/todo/internal/debug"
	"github.com/daylog/todo/internal/session"
	"github.com/daylog/todo/internal/tasks"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <task number>",
	Aliases: []string{"rm"},
	GroupID: GroupLists,
	Short:   "Delete a pending task",
	Long: `Delete pending task N (as numbered by 'todo read'). Later tasks move up.
Completed tasks cannot be removed.`,
	Args: taskNumberArgs("remove"),
	Run: func(cmd *cobra.Command, args []string) {
		runTaskEdit(cmd, args[0], "remove", tasks.Remove)
	},
}

var completeCmd = &cobra.Command{
	Use:     "complete <task number>",
	Aliases: []string{"c"},
	GroupID: GroupLists,
	Short:   "Mark a pending task as completed",
	Long: `Move pending task N (as numbered by 'todo read') to the end of the
completed tasks. Later pending tasks move up.`,
	Args: taskNumberArgs("complete"),
	Run: func(cmd *cobra.Command, args []string) {
		runTaskEdit(cmd, args[0], "complete", tasks.Complete)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(completeCmd)
}

// errMissingArg is returned from Args validators; cobra reports it before
// Run, so main prints it with the usage hint.
func errMissingArg(question string) error {
	return errors.New(question)
}

func taskNumberArgs(verb string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) == 0:
			return errMissingArg(fmt.Sprintf("which task do you want to %s?", verb))
		case len(args) > 1:
			return fmt.Errorf("%s takes a single task number, got %d arguments", verb, len(args))
		}
		return nil
	}
}

// parseTaskNumber accepts a positive decimal integer. Anything else is a
// usage error, reported before the day file is touched.
func parseTaskNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid task number %q", arg)
	}
	return n, nil
}

type taskEdit func(ctx context.Context, path string, n int, opts daylist.Options) (string, error)

// runTaskEdit applies a remove or complete and prints the resulting list.
// An index that names no pending task leaves the file untouched, prints the
// list as it is and exits 1.
func runTaskEdit(cmd *cobra.Command, arg, action string, edit taskEdit) {
	n, err := parseTaskNumber(arg)
	if err != nil {
		if jsonOutput {
			outputJSONError(err, codeUsage)
			return
		}
		FatalErrorWithHint(err.Error(), "Use a number shown by 'todo read', e.g. todo "+action+" 2")
		return
	}

	sess := resolveSession()
	task, err := edit(getRootContext(), sess.Path(), n, rewriteOptions())
	switch {
	case err == nil:
		debug.Logf("%s: %q\n", action, task)
		if !jsonOutput && !debug.IsQuiet() {
			fmt.Fprintln(cmd.OutOrStdout(), "List updated as follows:")
		}
		if err := renderDay(cmd.OutOrStdout(), sess, &changeJSON{Action: action, Task: task}); err != nil {
			exitWithError(err)
		}
	case errors.Is(err, tasks.ErrInvalidIndex), errors.Is(err, daylist.ErrNotFound):
		reportUnchanged(cmd, sess, err)
	default:
		exitWithError(err)
	}
}

// reportUnchanged prints the list as it stands and exits 1. In JSON mode the
// list goes to stdout and the error object to stderr.
func reportUnchanged(cmd *cobra.Command, sess session.Context, cause error) {
	if !jsonOutput {
		fmt.Fprintln(cmd.OutOrStdout(), "the task number was not present, list is unchanged:")
	}
	if err := renderDay(cmd.OutOrStdout(), sess, nil); err != nil {
		WarnError("%v", err)
	}
	if jsonOutput {
		outputJSONError(cause, errorCode(cause))
		return
	}
	osExit(1)
}
