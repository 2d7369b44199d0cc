package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/daylog/todo/internal/daylist"
	"github.com/daylog/todo/internal/debug"
	"github.com/daylog/todo/internal/session"
	"github.com/daylog/todo/internal/ui"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:     "read",
	Aliases: []string{"r"},
	GroupID: GroupLists,
	Short:   "Show the day's tasks",
	Long: `Show the day's list: pending tasks numbered from 1, then completed tasks.

A day without a file shows an empty list. Use --date to look at another day.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sess := resolveSession()
		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			if err := watchDay(getRootContext(), cmd.OutOrStdout(), sess); err != nil {
				exitWithError(err)
			}
			return
		}
		if err := renderDay(cmd.OutOrStdout(), sess, nil); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	readCmd.Flags().BoolP("watch", "w", false, "Keep running and redisplay the list whenever it changes")
	rootCmd.AddCommand(readCmd)
}

// loadDay reads the day list, treating a missing file as an empty list.
func loadDay(sess session.Context) (*daylist.TaskList, error) {
	list, err := daylist.Load(sess.Path())
	if errors.Is(err, daylist.ErrNotFound) {
		debug.Logf("%s does not exist yet\n", sess.Path())
		return &daylist.TaskList{Pending: []string{}, Completed: []string{}}, nil
	}
	return list, err
}

// renderDay prints the day list as text or JSON. change is reported in the
// JSON form only.
func renderDay(w io.Writer, sess session.Context, change *changeJSON) error {
	list, err := loadDay(sess)
	if err != nil {
		return err
	}
	if jsonOutput {
		return outputJSON(w, newDayJSON(sess, list, change))
	}
	return ui.RenderList(w, sess.Date, list, listOptions())
}

const watchDebounce = 200 * time.Millisecond

// watchDay prints the day list and reprints it after every change to the
// day file until ctx is cancelled. Rewrites replace the file by rename, so
// the directory is watched rather than the file.
func watchDay(ctx context.Context, w io.Writer, sess session.Context) error {
	if _, err := os.Stat(sess.Dir); err != nil {
		return &daylist.IOError{Op: "watch", Path: sess.Dir, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }() // Best effort cleanup

	if err := watcher.Add(sess.Dir); err != nil {
		return &daylist.IOError{Op: "watch", Path: sess.Dir, Err: err}
	}

	if err := renderDay(w, sess, nil); err != nil {
		return err
	}
	if !debug.IsQuiet() {
		fmt.Fprintf(stderr, "\nWatching %s for changes... (Press Ctrl+C to exit)\n", sess.FileName())
	}

	// A single timer owned by this goroutine; its channel stays nil until armed.
	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if !debug.IsQuiet() {
				fmt.Fprintf(stderr, "\nStopped watching.\n")
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != sess.FileName() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			debug.Logf("watch event: %s\n", event)
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			fmt.Fprintln(w)
			if err := renderDay(w, sess, nil); err != nil {
				fmt.Fprintf(stderr, "Error refreshing list: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "Watcher error: %v\n", err)
		}
	}
}
