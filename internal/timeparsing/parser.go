// Package timeparsing resolves the date expressions accepted by --date.
//
// Parsing is layered; the first layer that accepts the input wins:
//  1. Compact day offsets (-1d, +2w, -1m, +1y)
//  2. Date-only (2006-01-02)
//  3. RFC3339 timestamps
//  4. Natural language (yesterday, last friday, 3 days ago)
package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// compactOffsetRe matches compact day offsets: [+-]?(\d+)([dwmy])
var compactOffsetRe = regexp.MustCompile(`^([+-]?)(\d+)([dwmy])$`)

// DateOnlyLayout is the layout used for day-file names and --date input.
const DateOnlyLayout = "2006-01-02"

var nlp = newNLPParser()

func newNLPParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseCompactOffset parses a compact day offset relative to now.
//
// Units: d = days, w = weeks, m = months, y = years. No sign means forward.
// The time of day and location of now are preserved.
func ParseCompactOffset(s string, now time.Time) (time.Time, error) {
	matches := compactOffsetRe.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("not a compact offset: %q", s)
	}

	amount, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid offset amount: %q", matches[2])
	}
	if matches[1] == "-" {
		amount = -amount
	}

	switch matches[3] {
	case "w":
		return now.AddDate(0, 0, amount*7), nil
	case "m":
		return now.AddDate(0, amount, 0), nil
	case "y":
		return now.AddDate(amount, 0, 0), nil
	default:
		return now.AddDate(0, 0, amount), nil
	}
}

// IsCompactOffset returns true if the string matches compact offset syntax.
func IsCompactOffset(s string) bool {
	return compactOffsetRe.MatchString(s)
}

// ParseNaturalLanguage parses an English date expression relative to now.
// The whole input must be consumed by the match; "fix it tomorrow" is
// rejected rather than silently read as "tomorrow".
func ParseNaturalLanguage(s string, now time.Time) (time.Time, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}

	r, err := nlp.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", input, err)
	}
	if r == nil || !strings.EqualFold(strings.TrimSpace(r.Text), input) {
		return time.Time{}, fmt.Errorf("unrecognized date expression: %q", input)
	}
	return r.Time, nil
}

// ParseRelativeTime tries each layer in order and returns the first match.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	input := strings.TrimSpace(s)

	if IsCompactOffset(input) {
		return ParseCompactOffset(input, now)
	}
	if t, err := time.ParseInLocation(DateOnlyLayout, input, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}
	t, err := ParseNaturalLanguage(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, -1d, or e.g. \"yesterday\")", input)
	}
	return t, nil
}
