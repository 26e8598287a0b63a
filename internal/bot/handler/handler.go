// Package handler turns inbound chat messages into diary operations and
// user-facing replies. It is independent of the chat transport: transports
// build a Message, supply a Conversation to reply on and call Dispatch.
package handler

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/diary/journal"
	"github.com/dmitrijs2005/fooddiary/internal/diary/pending"
	"github.com/dmitrijs2005/fooddiary/internal/estimator"
	"github.com/dmitrijs2005/fooddiary/internal/logging"
	"github.com/dmitrijs2005/fooddiary/internal/media"
)

// Conversation is where replies to one message go.
type Conversation interface {
	Send(ctx context.Context, text string) error
}

// Fetch downloads the bytes of a photo from the transport.
type Fetch func(ctx context.Context) (io.ReadCloser, error)

// Message is one inbound chat message. Exactly one of Command, Photo or
// Text is meaningful: Command wins, then Photo.
type Message struct {
	User     pending.UserID
	Text     string
	Command  string // without the leading slash, e.g. "status"
	Args     string
	Photo    Fetch
	PhotoExt string
}

// Journal persists closed entries.
type Journal interface {
	Append(ctx context.Context, e journal.LoggedEntry) error
}

// Reporter aggregates the persisted journal.
type Reporter interface {
	DailyTotals(ctx context.Context, windowDays int) ([]journal.DayTotal, error)
}

// TimeResolver resolves /time commands.
type TimeResolver interface {
	Resolve(cmd string, ref *time.Location) (time.Time, string, error)
}

// Deps are the collaborators of a Handler.
type Deps struct {
	Store        *pending.Store
	Journal      Journal
	Reporter     Reporter
	Media        media.Store
	Estimator    estimator.Estimator
	Resolver     TimeResolver
	Reference    *time.Location
	ReportWindow int
	Logger       logging.Logger
}

type Handler struct {
	store     *pending.Store
	journal   Journal
	reporter  Reporter
	media     media.Store
	estimator estimator.Estimator
	resolver  TimeResolver
	reference *time.Location
	window    int
	logger    logging.Logger
}

func New(d Deps) *Handler {
	est := d.Estimator
	if est == nil {
		est = estimator.Disabled{}
	}
	window := d.ReportWindow
	if window <= 0 {
		window = common.DefaultReportWindow
	}
	ref := d.Reference
	if ref == nil {
		ref = time.UTC
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Handler{
		store:     d.Store,
		journal:   d.Journal,
		reporter:  d.Reporter,
		media:     d.Media,
		estimator: est,
		resolver:  d.Resolver,
		reference: ref,
		window:    window,
		logger:    logger.With("module", "handler"),
	}
}

// Dispatch routes m to the matching operation. The returned error is only
// about delivering replies; diary errors are turned into replies.
func (h *Handler) Dispatch(ctx context.Context, conv Conversation, m Message) error {
	switch {
	case m.Command != "":
		return h.HandleCommand(ctx, conv, m.User, m.Command, m.Args)
	case m.Photo != nil:
		return h.HandlePhoto(ctx, conv, m.User, m.Photo, m.PhotoExt)
	case m.Text != "":
		return h.HandleText(ctx, conv, m.User, m.Text)
	default:
		return nil
	}
}

func (h *Handler) reply(ctx context.Context, conv Conversation, text string) error {
	if err := conv.Send(ctx, text); err != nil {
		h.logger.Error(ctx, "send reply failed", "error", err)
		return err
	}
	return nil
}
