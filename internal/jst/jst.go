// Package jst converts Slack timestamps and export date ranges to Japan
// Standard Time (UTC+9). The fixed zone keeps output independent of the
// host's tzdata and locale.
package jst

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Location is the fixed UTC+9 offset used for every readable time in an export.
var Location = time.FixedZone("JST", 9*60*60)

const (
	readableLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// InvalidDateError reports a malformed date or an inverted export range.
type InvalidDateError struct {
	Input  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// ToReadable renders a Slack timestamp token ("1700000000.123456") as a
// JST wall-clock string. The fractional part never shifts the displayed
// second, so only the integer part matters for output.
func ToReadable(ts string) (string, error) {
	sec, err := epochSeconds(ts)
	if err != nil {
		return "", err
	}
	return time.Unix(sec, 0).In(Location).Format(readableLayout), nil
}

// Format renders an instant in the fixed JST layout.
func Format(t time.Time) string {
	return t.In(Location).Format(readableLayout)
}

func epochSeconds(ts string) (int64, error) {
	whole, frac, _ := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	if frac != "" {
		if _, err := strconv.ParseUint(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
		}
	}
	return sec, nil
}

// Range bounds one export run. Start and End are inclusive instants in JST.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds the export window from calendar dates. startDate is taken
// as 00:00:00 JST of that day; endDate, when given, as 23:59:59 JST of that
// day, otherwise the upper bound is now. Dates use YYYY-MM-DD form.
func NewRange(startDate, endDate string, now time.Time) (Range, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, Location)
	if err != nil {
		return Range{}, &InvalidDateError{Input: startDate, Reason: "start date must be YYYY-MM-DD"}
	}

	end := now.In(Location)
	if endDate != "" {
		d, err := time.ParseInLocation(dateLayout, endDate, Location)
		if err != nil {
			return Range{}, &InvalidDateError{Input: endDate, Reason: "end date must be YYYY-MM-DD"}
		}
		end = d.Add(24*time.Hour - time.Second)
	}

	if end.Before(start) {
		return Range{}, &InvalidDateError{
			Input:  startDate + " .. " + end.Format(dateLayout),
			Reason: "end date is before start date",
		}
	}

	return Range{Start: start, End: end}, nil
}

// Oldest returns the lower bound as a Slack timestamp parameter.
func (r Range) Oldest() string {
	return fmt.Sprintf("%d.000000", r.Start.Unix())
}

// Latest returns the upper bound as a Slack timestamp parameter.
func (r Range) Latest() string {
	return fmt.Sprintf("%d.000000", r.End.Unix())
}

// StartReadable renders the lower bound for the export document.
func (r Range) StartReadable() string {
	return Format(r.Start)
}

// EndReadable renders the upper bound for the export document.
func (r Range) EndReadable() string {
	return Format(r.End)
}
