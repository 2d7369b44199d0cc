package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/daylog/todo/internal/daylist"
)

// DefaultDateFormat renders as e.g. "January 15, 2025, Wednesday".
const DefaultDateFormat = "January 02, 2006, Monday"

// ListOptions controls RenderList output.
type ListOptions struct {
	// DateFormat is a time layout for the header; empty means DefaultDateFormat.
	DateFormat string
	// Color enables lipgloss styling. Plain text otherwise.
	Color bool
	// EmptyHint prints a muted note when the list has no tasks.
	EmptyHint bool
}

// RenderList writes a day list for display: a date header, then pending
// tasks numbered from 1, then completed tasks unnumbered. Numbers are
// assigned here on every call and never stored. Empty lines are skipped and
// nothing structural (such as the sentinel) is shown.
func RenderList(w io.Writer, date time.Time, list *daylist.TaskList, opts ListOptions) error {
	style := func(render func(string) string, s string) string {
		if opts.Color {
			return render(s)
		}
		return s
	}

	layout := opts.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}
	if _, err := fmt.Fprintln(w, style(RenderHeader, date.Format(layout))); err != nil {
		return err
	}

	if list == nil {
		list = &daylist.TaskList{}
	}

	n := 1
	for _, task := range list.Pending {
		if task == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, style(RenderFail, fmt.Sprintf("%d. %s", n, task))); err != nil {
			return err
		}
		n++
	}
	for _, task := range list.Completed {
		if task == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, style(RenderPass, task)); err != nil {
			return err
		}
	}

	if opts.EmptyHint && list.IsEmpty() {
		if _, err := fmt.Fprintln(w, style(RenderMuted, "No tasks for this day.")); err != nil {
			return err
		}
	}
	return nil
}
