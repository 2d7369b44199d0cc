package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/daylog/todo/internal/daylist"
	"github.com/daylog/todo/internal/session"
	"github.com/daylog/todo/internal/timeparsing"
)

// outputJSON outputs data as pretty-printed JSON to w.
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// outputJSONError outputs an error as JSON to stderr and exits with code 1.
func outputJSONError(err error, code string) {
	errObj := map[string]string{"error": err.Error()}
	if code != "" {
		errObj["code"] = code
	}
	encoder := json.NewEncoder(stderr)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(errObj) // Best effort
	osExit(1)
}

// dayJSON is the --json form of a day list.
type dayJSON struct {
	Date      string      `json:"date"`
	Path      string      `json:"path"`
	Pending   []taskJSON  `json:"pending"`
	Completed []string    `json:"completed"`
	Changed   *changeJSON `json:"changed,omitempty"`
}

type taskJSON struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// changeJSON describes what an add, remove or complete did.
type changeJSON struct {
	Action string `json:"action"`
	Task   string `json:"task"`
}

func newDayJSON(sess session.Context, list *daylist.TaskList, change *changeJSON) dayJSON {
	out := dayJSON{
		Date:      sess.Date.Format(timeparsing.DateOnlyLayout),
		Path:      sess.Path(),
		Pending:   []taskJSON{},
		Completed: []string{},
		Changed:   change,
	}
	for _, text := range list.Pending {
		out.Pending = append(out.Pending, taskJSON{Number: len(out.Pending) + 1, Text: text})
	}
	out.Completed = append(out.Completed, list.Completed...)
	return out
}
