// Package timecmd resolves "/time [today|yesterday|weekday] <H am/pm>"
// into an absolute instant.
//
// The date word and the hour are read in a reference timezone (the user's
// local time); the result is reported in a fixed output timezone. Only
// instants within the last 6 days 23:59 and not in the future are accepted.
package timecmd

import (
	"fmt"
	"strings"
	"time"

	// Zone data is embedded so LoadLocation works on minimal images.
	_ "time/tzdata"
)

const (
	DefaultZone       = "Europe/Helsinki"
	DefaultOutputName = "Helsinki"

	maxPast   = 6*24*time.Hour + 23*time.Hour + 59*time.Minute
	maxFuture = 59 * time.Second

	confirmLayout = "Mon 2006-01-02 03 PM (UTC-0700)"
)

var weekdays = map[string]time.Weekday{
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "weds": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
	"sun": time.Sunday, "sunday": time.Sunday,
}

// Resolver turns time commands into instants.
type Resolver struct {
	Now        func() time.Time
	Output     *time.Location
	OutputName string
}

// NewResolver builds a resolver reporting in the named IANA zone. An empty
// outputName is DefaultOutputName for DefaultZone and the zone id otherwise.
func NewResolver(outputZone, outputName string) (*Resolver, error) {
	if outputZone == "" {
		outputZone = DefaultZone
	}
	loc, err := time.LoadLocation(outputZone)
	if err != nil {
		return nil, fmt.Errorf("load output timezone %q: %w", outputZone, err)
	}
	if outputName == "" {
		outputName = outputZone
		if outputZone == DefaultZone {
			outputName = DefaultOutputName
		}
	}
	return &Resolver{Now: time.Now, Output: loc, OutputName: outputName}, nil
}

// Resolve parses cmd, interprets it in ref and returns the instant in the
// output zone together with a confirmation line such as
//
//	Set to Helsinki time: Tue 2024-01-09 08 PM (UTC+0200)
//
// Errors are *Error values of kind ErrFormat, ErrValidation or ErrRange.
func (r *Resolver) Resolve(cmd string, ref *time.Location) (time.Time, string, error) {
	parsed, ok := parse(cmd)
	if !ok {
		return time.Time{}, "", formatError()
	}

	dw := strings.ToLower(parsed.dateWord)
	if dw == "" {
		dw = "today"
	}

	if parsed.hour < 1 || parsed.hour > 12 {
		return time.Time{}, "", validationError(msgHour)
	}

	if ref == nil {
		ref = r.Output
	}
	now := r.now().In(ref)

	target, err := targetDate(now, dw)
	if err != nil {
		return time.Time{}, "", err
	}

	hr24 := parsed.hour % 12
	if parsed.pm {
		hr24 += 12
	}

	local := time.Date(target.Year(), target.Month(), target.Day(), hr24, 0, 0, 0, ref)
	out := local.In(r.Output)

	if err := checkWindow(now, local); err != nil {
		return time.Time{}, "", err
	}

	conf := fmt.Sprintf("Set to %s time: %s", r.OutputName, out.Format(confirmLayout))
	return out, conf, nil
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// targetDate returns midnight of the day dw refers to, relative to now.
func targetDate(now time.Time, dw string) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch dw {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	wd, ok := weekdays[dw]
	if !ok {
		return time.Time{}, validationError(msgDateWord)
	}

	// Most recent occurrence, today included.
	delta := (int(now.Weekday()) - int(wd) + 7) % 7
	if delta > 6 {
		return time.Time{}, validationError(msgWeekdayRange)
	}
	return today.AddDate(0, 0, -delta), nil
}

// checkWindow compares wall clocks in the reference zone, so a DST switch
// inside the window does not shift its bounds by an hour.
func checkWindow(now, t time.Time) error {
	n, w := wallClock(now), wallClock(t.In(now.Location()))
	if n.Sub(w) > maxPast || w.After(n.Add(maxFuture)) {
		return rangeError()
	}
	return nil
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
