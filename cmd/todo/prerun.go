package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daylog/todo/internal/config"
	"github.com/daylog/todo/internal/daylist"
	"github.com/daylog/todo/internal/debug"
	"github.com/daylog/todo/internal/session"
	"github.com/daylog/todo/internal/ui"
)

var colorEnabled bool

// setupSignalContext creates a context that cancels on SIGINT/SIGTERM so a
// rewrite waiting on the lock, or read --watch, stops cleanly.
func setupSignalContext() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCtx, rootCancel = ctx, cancel
}

// applyVerbosityFlags propagates --verbose and --quiet to the debug package.
func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
}

// applyColorMode resolves --no-color, the color setting and the terminal.
func applyColorMode() {
	switch {
	case noColor || jsonOutput:
		colorEnabled = false
	case config.ColorMode() == config.ColorAlways:
		colorEnabled = true
	case config.ColorMode() == config.ColorNever:
		colorEnabled = false
	default:
		colorEnabled = ui.ShouldUseColor()
	}
	ui.SetColorEnabled(colorEnabled)
}

// resolveSession derives the day file for this invocation from --date and
// the lists directory. It exits on an unparseable date.
func resolveSession() session.Context {
	sess, err := session.Resolve(nowFunc(), dateExpr, config.ListsDir())
	if err != nil {
		FatalErrorWithHint(err.Error(), "Try --date 2025-01-31, --date -1d or --date yesterday.")
	}
	debug.Logf("day file: %s\n", sess.Path())
	return sess
}

func rewriteOptions() daylist.Options {
	timeout := config.LockTimeout()
	if timeout < 0 {
		timeout = 0
	}
	debug.Logf("lock timeout: %v\n", timeout.Round(time.Millisecond))
	return daylist.Options{LockTimeout: timeout}
}

func listOptions() ui.ListOptions {
	return ui.ListOptions{
		DateFormat: config.DateFormat(),
		Color:      colorEnabled,
		EmptyHint:  true,
	}
}
