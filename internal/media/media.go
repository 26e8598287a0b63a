// Package media stores downloaded photos and hands back opaque references
// that are kept in pending entries and in the journal.
package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Store saves photo bytes and opens them again by reference.
type Store interface {
	// Save consumes r and returns a reference to the stored object. ext is
	// the file extension including the dot, e.g. ".jpg".
	Save(ctx context.Context, r io.Reader, ext string) (string, error)
	// Open returns the content behind a reference produced by Save.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

var newID = func() string { return uuid.New().String() }

func objectName(ext string) string {
	if ext == "" {
		ext = ".jpg"
	}
	return newID() + ext
}

// datedKey places an object under prefix/yyyy/mm/dd.
func datedKey(prefix string, now time.Time, name string) string {
	return fmt.Sprintf("%s/%d/%02d/%02d/%s", prefix, now.Year(), now.Month(), now.Day(), name)
}
