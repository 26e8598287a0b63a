package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
)

// ReadStats describes one pass over the journal.
type ReadStats struct {
	Valid   int
	Skipped int // lines that are not a valid record
	Partial int // trailing line without a newline
}

// Reader reads the journal file.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Entries returns every valid record in file order. A missing file reads as
// an empty journal.
func (r *Reader) Entries(ctx context.Context) ([]LoggedEntry, ReadStats, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ReadStats{}, nil
		}
		return nil, ReadStats{}, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	return Decode(ctx, f)
}

// Decode parses JSON lines from src. Blank lines are ignored; undecodable
// lines and records with an unparseable "sent" are counted as skipped; a
// final line without '\n' is counted as partial and never returned.
func Decode(ctx context.Context, src io.Reader) ([]LoggedEntry, ReadStats, error) {
	var (
		out   []LoggedEntry
		stats ReadStats
	)

	br := bufio.NewReader(src)
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		line, err := br.ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			if len(line) > 0 {
				stats.Partial++
			}
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read journal: %w", err)
		}

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var e LoggedEntry
		if err := json.Unmarshal(line, &e); err != nil {
			stats.Skipped++
			continue
		}
		if _, err := e.SentAt(); err != nil {
			stats.Skipped++
			continue
		}

		out = append(out, e)
		stats.Valid++
	}

	return out, stats, nil
}

// DayTotal is the calorie sum of one UTC calendar day.
type DayTotal struct {
	Date     time.Time // midnight UTC
	Calories int
	Entries  int
}

// Day formats Date as YYYY-MM-DD.
func (d DayTotal) Day() string {
	return d.Date.Format("2006-01-02")
}

// DailyTotals sums calories per UTC date and returns the windowDays most
// recent dates that have entries, newest first. Days without entries are not
// filled in. A non-positive window means common.DefaultReportWindow.
// It returns common.ErrNoData when there is nothing to report.
func DailyTotals(entries []LoggedEntry, windowDays int) ([]DayTotal, error) {
	if windowDays <= 0 {
		windowDays = common.DefaultReportWindow
	}

	byDay := make(map[time.Time]*DayTotal)
	for _, e := range entries {
		at, err := e.SentAt()
		if err != nil {
			continue
		}
		day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
		t, ok := byDay[day]
		if !ok {
			t = &DayTotal{Date: day}
			byDay[day] = t
		}
		t.Calories += e.Calories
		t.Entries++
	}

	if len(byDay) == 0 {
		return nil, common.ErrNoData
	}

	totals := make([]DayTotal, 0, len(byDay))
	for _, t := range byDay {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.After(totals[j].Date) })

	if len(totals) > windowDays {
		totals = totals[:windowDays]
	}
	return totals, nil
}

// DailyTotals reads the journal and aggregates it, see DailyTotals.
func (r *Reader) DailyTotals(ctx context.Context, windowDays int) ([]DayTotal, error) {
	entries, _, err := r.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return DailyTotals(entries, windowDays)
}
