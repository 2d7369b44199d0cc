package main

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of todo (overridden by ldflags at build time)
	Version = "1.0.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
	// Commit is the git revision the binary was built from (optional ldflag)
	Commit = ""
)

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: GroupSetup,
	Short:   "Print version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func printVersion(w io.Writer) {
	commit := resolveCommitHash()

	if jsonOutput {
		result := map[string]string{
			"version": Version,
			"build":   Build,
		}
		if commit != "" {
			result["commit"] = commit
		}
		_ = outputJSON(w, result)
		return
	}
	if commit != "" {
		fmt.Fprintf(w, "todo version %s (%s: %s)\n", Version, Build, shortCommit(commit))
		return
	}
	fmt.Fprintf(w, "todo version %s (%s)\n", Version, Build)
}

func resolveCommitHash() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}
	return ""
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
