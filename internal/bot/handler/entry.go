package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/diary/closing"
	"github.com/dmitrijs2005/fooddiary/internal/diary/journal"
	"github.com/dmitrijs2005/fooddiary/internal/diary/pending"
)

const (
	msgNoPending  = "No pending entry. Start by sending a message or a photo."
	msgNoted      = "Noted."
	msgPhotoAdded = "Photo added."
)

// HandleText closes the pending entry when text is a calorie count and
// otherwise adds it to the entry.
func (h *Handler) HandleText(ctx context.Context, conv Conversation, user pending.UserID, text string) error {
	text = strings.TrimSpace(text)

	if kcal, ok := closing.Detect(text); ok {
		return h.closeEntry(ctx, conv, user, kcal)
	}

	snap := h.store.Update(user, func(e *pending.Entry) { e.AddText(text) })
	h.logger.Debug(ctx, "text added", "user", user, "texts", len(snap.TextLines))

	return h.reply(ctx, conv, msgNoted)
}

func (h *Handler) closeEntry(ctx context.Context, conv Conversation, user pending.UserID, kcal int) error {
	var logged journal.LoggedEntry

	snap, err := h.store.Close(user, func(s pending.Snapshot) error {
		logged = journal.NewLoggedEntry(s.StartedAt, s.Description(), s.ImageRefs, kcal)
		return h.journal.Append(ctx, logged)
	})

	switch {
	case errors.Is(err, common.ErrNoPendingEntry):
		h.logger.Info(ctx, "close without pending entry", "user", user, "calories", kcal)
		return h.reply(ctx, conv, msgNoPending)
	case err != nil:
		h.logger.Error(ctx, "persist entry failed", "user", user, "error", err)
		return h.reply(ctx, conv, fmt.Sprintf("Could not save the entry: %v. It is still pending.", err))
	}

	lines := 0
	if logged.Description != "" {
		lines = len(strings.Split(logged.Description, "\n"))
	}

	h.logger.Info(ctx, "entry saved", "user", user, "sent", logged.Sent, "calories", kcal, "photos", len(snap.ImageRefs))

	return h.reply(ctx, conv, fmt.Sprintf("Saved: %s, %d kcal, %d text line(s), %d photo(s).",
		logged.Sent, kcal, lines, len(logged.Images)))
}

// HandlePhoto downloads the photo into the media store and adds its
// reference to the pending entry. The download happens before the entry is
// touched, so a failed download leaves the entry unchanged.
func (h *Handler) HandlePhoto(ctx context.Context, conv Conversation, user pending.UserID, fetch Fetch, ext string) error {
	ref, err := h.savePhoto(ctx, fetch, ext)
	if err != nil {
		h.logger.Error(ctx, "photo download failed", "user", user, "error", err)
		return h.reply(ctx, conv, "Could not download the photo, please send it again.")
	}

	snap := h.store.Update(user, func(e *pending.Entry) { e.AddImage(ref) })
	h.logger.Debug(ctx, "photo added", "user", user, "ref", ref, "photos", len(snap.ImageRefs))

	return h.reply(ctx, conv, msgPhotoAdded)
}

func (h *Handler) savePhoto(ctx context.Context, fetch Fetch, ext string) (string, error) {
	rc, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return h.media.Save(ctx, rc, ext)
}
