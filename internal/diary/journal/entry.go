// Package journal persists closed diary entries to an append-only JSON Lines
// file and aggregates them into daily calorie totals.
package journal

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
)

// LoggedEntry is one closed entry, one line of the journal.
type LoggedEntry struct {
	Sent        string   `json:"sent"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Calories    int      `json:"calories"`
}

// NewLoggedEntry builds a record from the start time of a pending entry.
func NewLoggedEntry(startedAt time.Time, description string, images []string, calories int) LoggedEntry {
	imgs := append([]string{}, images...)
	return LoggedEntry{
		Sent:        FormatSent(startedAt),
		Description: description,
		Images:      imgs,
		Calories:    calories,
	}
}

// FormatSent renders t in UTC with minute precision, e.g. "2024-01-09 18:00 UTC".
func FormatSent(t time.Time) string {
	return t.UTC().Format(common.SentLayout)
}

// SentAt parses Sent back into a UTC instant.
func (e LoggedEntry) SentAt() (time.Time, error) {
	t, err := time.ParseInLocation(common.SentLayout, e.Sent, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid sent %q: %w", e.Sent, err)
	}
	return t, nil
}
