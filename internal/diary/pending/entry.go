// Package pending keeps the in-progress diary entry of every user.
//
// At most one Entry exists per user. It is created lazily by the first text
// or photo, grows while the user keeps sending messages and disappears when
// the entry is closed with a calorie count or discarded.
package pending

import (
	"strings"
	"time"
)

// UserID identifies the owner of a pending entry.
type UserID int64

// Entry is a pending entry. It is owned by the Store; code outside the
// package only sees it inside Store callbacks or through a Snapshot.
type Entry struct {
	Owner     UserID
	StartedAt time.Time
	TextLines []string
	ImageRefs []string
}

// AddText appends the trimmed text. Empty lines are stored but do not
// contribute to Description.
func (e *Entry) AddText(text string) {
	e.TextLines = append(e.TextLines, strings.TrimSpace(text))
}

// AddImage appends a storage reference of an already downloaded photo.
func (e *Entry) AddImage(ref string) {
	e.ImageRefs = append(e.ImageRefs, ref)
}

// Description joins non-empty text lines with newlines.
func (e *Entry) Description() string {
	return description(e.TextLines)
}

// IsEmpty reports whether neither text nor photos were added.
func (e *Entry) IsEmpty() bool {
	return len(e.TextLines) == 0 && len(e.ImageRefs) == 0
}

func (e *Entry) snapshot() Snapshot {
	return Snapshot{
		Owner:     e.Owner,
		StartedAt: e.StartedAt,
		TextLines: append([]string(nil), e.TextLines...),
		ImageRefs: append([]string(nil), e.ImageRefs...),
	}
}

// Snapshot is an immutable copy of an Entry.
type Snapshot struct {
	Owner     UserID
	StartedAt time.Time
	TextLines []string
	ImageRefs []string
}

func (s Snapshot) Description() string {
	return description(s.TextLines)
}

func (s Snapshot) IsEmpty() bool {
	return len(s.TextLines) == 0 && len(s.ImageRefs) == 0
}

func description(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
