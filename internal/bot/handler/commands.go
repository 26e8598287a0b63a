package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/diary/journal"
	"github.com/dmitrijs2005/fooddiary/internal/diary/pending"
	"github.com/dmitrijs2005/fooddiary/internal/estimator"
)

const startText = "Food diary ready.\n" +
	"- Send text and/or photos.\n" +
	"- Close with '850 cal'.\n" +
	"Commands: /status, /discard, /cal, /report, /time, /help"

const helpText = "Usage:\n" +
	"• Text/photo starts or updates the current entry.\n" +
	"• Send '850 cal' (any 2–5 digits + optional kcal) to save & reset.\n" +
	"• /status shows pending text/photo count.\n" +
	"• /cal estimates calories using AI.\n" +
	"• /report (or /stats) shows totals for the last logged days.\n" +
	"• /time [today|yesterday|weekday] <H am/pm> sets when you ate.\n" +
	"• /discard drops the pending entry."

// HandleCommand runs a slash command. name has no leading slash.
func (h *Handler) HandleCommand(ctx context.Context, conv Conversation, user pending.UserID, name, args string) error {
	switch strings.ToLower(name) {
	case "start":
		return h.reply(ctx, conv, startText)
	case "help":
		return h.reply(ctx, conv, helpText)
	case "status":
		return h.status(ctx, conv, user)
	case "discard":
		return h.discard(ctx, conv, user)
	case "report", "stats":
		return h.report(ctx, conv)
	case "cal":
		return h.estimate(ctx, conv, user)
	case "time":
		return h.setTime(ctx, conv, user, args)
	default:
		return h.reply(ctx, conv, "Unknown command. Send /help for the list of commands.")
	}
}

func (h *Handler) status(ctx context.Context, conv Conversation, user pending.UserID) error {
	snap, ok := h.store.Get(user)
	if !ok {
		return h.reply(ctx, conv, "No pending entry.")
	}

	return h.reply(ctx, conv, fmt.Sprintf("Pending since %s\nTexts: %d\nPhotos: %d\nSend “### cal” to save.",
		journal.FormatSent(snap.StartedAt), len(snap.TextLines), len(snap.ImageRefs)))
}

func (h *Handler) discard(ctx context.Context, conv Conversation, user pending.UserID) error {
	snap, err := h.store.Discard(user)
	if errors.Is(err, common.ErrNothingToDiscard) {
		h.logger.Debug(ctx, "discard without pending entry", "user", user)
		return h.reply(ctx, conv, "Nothing to discard.")
	}

	h.logger.Info(ctx, "entry discarded", "user", user, "texts", len(snap.TextLines), "photos", len(snap.ImageRefs))
	return h.reply(ctx, conv, "Pending entry discarded.")
}

func (h *Handler) report(ctx context.Context, conv Conversation) error {
	totals, err := h.reporter.DailyTotals(ctx, h.window)
	if errors.Is(err, common.ErrNoData) {
		return h.reply(ctx, conv, "No entries found.")
	}
	if err != nil {
		h.logger.Error(ctx, "report failed", "error", err)
		return h.reply(ctx, conv, fmt.Sprintf("Could not read the diary: %v", err))
	}

	return h.reply(ctx, conv, FormatReport(totals, h.window))
}

// FormatReport renders daily totals, newest first.
func FormatReport(totals []journal.DayTotal, window int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total calories for the last %d logged days:", window)
	for _, t := range totals {
		fmt.Fprintf(&b, "\n%s: %d kcal", t.Day(), t.Calories)
	}
	return b.String()
}

func (h *Handler) estimate(ctx context.Context, conv Conversation, user pending.UserID) error {
	snap, err := h.estimateInput(user)
	switch {
	case errors.Is(err, common.ErrNoPendingEntry):
		return h.reply(ctx, conv, msgNoPending)
	case errors.Is(err, common.ErrEmptyEntry):
		return h.reply(ctx, conv, "Your entry is empty. Add text or photos first.")
	}

	if !estimator.Enabled(h.estimator) {
		return h.reply(ctx, conv, "GEMINI_API_KEY is not set. Cannot estimate calories.")
	}

	if err := h.reply(ctx, conv, "Analyzing your meal with Google Gemini..."); err != nil {
		return err
	}

	// Runs on a snapshot; the store is not locked while the model works.
	kcal, err := h.estimator.Estimate(ctx, snap.Description(), snap.ImageRefs)
	if err != nil {
		h.logger.Warn(ctx, "estimate failed", "user", user, "error", err)
		return h.reply(ctx, conv, fmt.Sprintf("Error estimating calories: %v", err))
	}

	h.logger.Info(ctx, "estimate", "user", user, "calories", kcal)
	return h.reply(ctx, conv, fmt.Sprintf("Estimated calories: %d kcal\nSend '%d cal' to save this entry.", kcal, kcal))
}

// estimateInput returns the pending entry when it has something to estimate.
func (h *Handler) estimateInput(user pending.UserID) (pending.Snapshot, error) {
	snap, ok := h.store.Get(user)
	if !ok {
		return pending.Snapshot{}, common.ErrNoPendingEntry
	}
	if snap.IsEmpty() {
		return snap, common.ErrEmptyEntry
	}
	return snap, nil
}

func (h *Handler) setTime(ctx context.Context, conv Conversation, user pending.UserID, args string) error {
	at, conf, err := h.resolver.Resolve("/time "+args, h.reference)
	if err != nil {
		return h.reply(ctx, conv, err.Error())
	}

	if snap, ok := h.store.SetStartedAt(user, at); ok {
		h.logger.Info(ctx, "entry backdated", "user", user, "started_at", snap.StartedAt)
		conf += "\nPending entry time updated."
	}

	return h.reply(ctx, conv, conf)
}
