package daylist

import (
	"bufio"
	"io"
	"strings"
)

// Sentinel separates pending tasks from completed tasks. It must match a
// whole line exactly.
const Sentinel = "____below_are_completed____"

// maxLineSize bounds a single task line.
const maxLineSize = 1 << 20

// TaskList is the parsed content of one day file.
type TaskList struct {
	Pending   []string `json:"pending"`
	Completed []string `json:"completed"`
}

// IsSentinel reports whether line is the section separator.
func IsSentinel(line string) bool {
	return line == Sentinel
}

// IsEmpty reports whether a list has neither pending nor completed tasks.
func (l *TaskList) IsEmpty() bool {
	return len(l.Pending) == 0 && len(l.Completed) == 0
}

// Parse reads a day file. Lines before the first sentinel are pending, the
// rest are completed. Empty lines and any repeated sentinel are skipped; a
// file without a sentinel is all pending.
func Parse(r io.Reader) (*TaskList, error) {
	list := &TaskList{Pending: []string{}, Completed: []string{}}
	completed := false

	scanner := newLineScanner(r)
	for scanner.Scan() {
		line := trimLine(scanner.Text())
		switch {
		case line == "":
			continue
		case IsSentinel(line):
			completed = true
		case completed:
			list.Completed = append(list.Completed, line)
		default:
			list.Pending = append(list.Pending, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// WriteTo writes the list in day-file format. The sentinel is always
// written, even for an empty list.
func (l *TaskList) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	write := func(s string) error {
		m, err := bw.WriteString(s + "\n")
		n += int64(m)
		return err
	}

	for _, task := range l.Pending {
		if err := write(task); err != nil {
			return n, err
		}
	}
	if err := write(Sentinel); err != nil {
		return n, err
	}
	for _, task := range l.Completed {
		if err := write(task); err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return scanner
}

// trimLine drops a trailing carriage return left by files edited on Windows.
func trimLine(line string) string {
	return strings.TrimSuffix(line, "\r")
}
