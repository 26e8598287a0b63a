// Package telegram connects the diary handler to the Telegram Bot API using
// long polling.
//
// Updates are spread over a fixed number of worker shards by user id, so the
// messages of one user are handled strictly in arrival order while different
// users are served in parallel.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/bot/handler"
	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/diary/pending"
	"github.com/dmitrijs2005/fooddiary/internal/logging"
	"github.com/dmitrijs2005/fooddiary/internal/netx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botAPI is the part of *tgbotapi.BotAPI the transport needs.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	StopReceivingUpdates()
}

// Dispatcher handles one inbound message.
type Dispatcher interface {
	Dispatch(ctx context.Context, conv handler.Conversation, m handler.Message) error
}

// newBotAPI is a test seam for tgbotapi.NewBotAPI.
var newBotAPI = func(token string) (botAPI, error) {
	return tgbotapi.NewBotAPI(token)
}

// DrainTimeout bounds how long queued messages are still handled after
// shutdown starts.
const DrainTimeout = 30 * time.Second

type Transport struct {
	api          botAPI
	dispatcher   Dispatcher
	workers      int
	pollTimeout  time.Duration
	drainTimeout time.Duration
	client       *http.Client
	logger       logging.Logger
}

func New(token string, d Dispatcher, workers int, pollTimeout time.Duration, l logging.Logger) (*Transport, error) {
	if token == "" {
		return nil, common.ErrMissingToken
	}
	api, err := newBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	return newTransport(api, d, workers, pollTimeout, l), nil
}

func newTransport(api botAPI, d Dispatcher, workers int, pollTimeout time.Duration, l logging.Logger) *Transport {
	if workers <= 0 {
		workers = 1
	}
	if pollTimeout <= 0 {
		pollTimeout = 60 * time.Second
	}
	return &Transport{
		api:          api,
		dispatcher:   d,
		workers:      workers,
		pollTimeout:  pollTimeout,
		drainTimeout: DrainTimeout,
		client:       &http.Client{Timeout: 2 * time.Minute},
		logger:       l.With("module", "telegram"),
	}
}

// Run polls for updates until ctx is canceled. Messages already queued are
// then handled on a context that outlives ctx by at most drainTimeout, so a
// close message received just before shutdown is still saved and answered.
func (t *Transport) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(t.pollTimeout / time.Second)
	updates := t.api.GetUpdatesChan(cfg)

	workCtx, stopWork := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWork()

	shards := make([]chan *tgbotapi.Message, t.workers)
	var wg sync.WaitGroup
	for i := range shards {
		shards[i] = make(chan *tgbotapi.Message, 16)
		wg.Add(1)
		go func(in <-chan *tgbotapi.Message) {
			defer wg.Done()
			for m := range in {
				t.handle(workCtx, m)
			}
		}(shards[i])
	}

	t.logger.Info(ctx, "polling updates", "workers", t.workers)

	defer func() {
		for _, s := range shards {
			close(s)
		}
		timer := time.AfterFunc(t.drainTimeout, stopWork)
		defer timer.Stop()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			t.logger.Info(ctx, "polling stopped")
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			m := u.Message
			if m == nil || m.From == nil || m.Chat == nil {
				continue
			}
			select {
			case shards[shardOf(m.From.ID, t.workers)] <- m:
			case <-ctx.Done():
			}
		}
	}
}

func shardOf(user int64, workers int) int {
	s := user % int64(workers)
	if s < 0 {
		s = -s
	}
	return int(s)
}

func (t *Transport) handle(ctx context.Context, m *tgbotapi.Message) {
	msg, ok := t.toMessage(m)
	if !ok {
		return
	}
	conv := &chat{api: t.api, id: m.Chat.ID}
	if err := t.dispatcher.Dispatch(ctx, conv, msg); err != nil {
		t.logger.Warn(ctx, "dispatch failed", "user", m.From.ID, "error", err)
	}
}

// toMessage converts an update message. Messages that are neither commands,
// photos nor text (stickers, locations, ...) are dropped.
func (t *Transport) toMessage(m *tgbotapi.Message) (handler.Message, bool) {
	msg := handler.Message{User: pending.UserID(m.From.ID)}

	switch {
	case m.IsCommand():
		msg.Command = m.Command()
		msg.Args = m.CommandArguments()
	case len(m.Photo) > 0:
		msg.Photo = t.photoFetch(largest(m.Photo).FileID)
		msg.PhotoExt = ".jpg"
	case m.Text != "":
		msg.Text = m.Text
	default:
		return msg, false
	}
	return msg, true
}

func (t *Transport) photoFetch(fileID string) handler.Fetch {
	return func(ctx context.Context) (io.ReadCloser, error) {
		url, err := t.api.GetFileDirectURL(fileID)
		if err != nil {
			return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
		}
		return netx.Download(ctx, t.client, url)
	}
}

// largest picks the biggest rendition; Telegram lists them smallest first.
func largest(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[len(sizes)-1]
	for _, s := range sizes {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

type chat struct {
	api botAPI
	id  int64
}

func (c *chat) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.Send(tgbotapi.NewMessage(c.id, text))
	return err
}
