package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/daylog/todo/internal/config"
	"github.com/spf13/cobra"
)

var (
	jsonOutput   bool
	dateExpr     string
	listsDirFlag string
	lockTimeout  string
	noColor      bool
	verboseFlag  bool
	quietFlag    bool

	// Signal-aware context for the whole invocation
	rootCtx    context.Context
	rootCancel context.CancelFunc

	// nowFunc is the only clock the CLI reads
	nowFunc = time.Now
)

const usageHint = "Run 'todo --help' for usage."

const (
	GroupLists = "lists"
	GroupSetup = "setup"
)

func init() {
	if err := config.Initialize(); err != nil {
		WarnError("failed to initialize config: %v", err)
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupLists, Title: "Working With Today's List:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup & Configuration:"},
	)

	rootCmd.PersistentFlags().StringVarP(&dateExpr, "date", "d", "", "Day to operate on: YYYY-MM-DD, -1d, or e.g. \"yesterday\" (default: today)")
	rootCmd.PersistentFlags().StringVar(&listsDirFlag, "dir", "", "Lists directory (default: ~/.todo_lists, config key lists-dir)")
	rootCmd.PersistentFlags().StringVar(&lockTimeout, "lock-timeout", "", "How long to wait for another todo process, e.g. 5s (config key lock-timeout)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	rootCmd.Flags().BoolP("version", "V", false, "Print version information")

	bindConfigFlags()
}

// bindConfigFlags lets --dir and --lock-timeout override their config keys.
// It must run again after config.Initialize.
func bindConfigFlags() {
	for key, flag := range map[string]string{
		config.KeyListsDir:    "dir",
		config.KeyLockTimeout: "lock-timeout",
	} {
		if err := config.BindFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			WarnError("%v", err)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - one task list per day",
	Long: `A personal daily task tracker. Each calendar day has its own list,
stored as a plain text file named YYYY-MM-DD.txt in the lists directory.

Pending tasks are numbered 1..N in the order they were added; completing a
task moves it below the pending ones.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			printVersion(cmd.OutOrStdout())
			return
		}
		// No subcommand is a usage error
		fmt.Fprint(stderr, cmd.UsageString())
		osExit(1)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupSignalContext()
		applyVerbosityFlags()
		applyColorMode()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rootCancel != nil {
			rootCancel()
		}
	},
}

func main() {
	if err := execute(os.Args[1:]...); err != nil {
		FatalErrorWithHint(err.Error(), usageHint)
	}
}

func getRootContext() context.Context {
	if rootCtx == nil {
		return context.Background()
	}
	return rootCtx
}

// execute runs the command tree with args.
func execute(args ...string) error {
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return rootCmd.Execute()
}
