// Package bot wires the diary together: storage, media, estimator, time
// resolver, the chat transport and the health endpoint, and runs them until
// the process is told to stop.
package bot

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/bot/config"
	"github.com/dmitrijs2005/fooddiary/internal/bot/console"
	"github.com/dmitrijs2005/fooddiary/internal/bot/handler"
	"github.com/dmitrijs2005/fooddiary/internal/bot/telegram"
	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/diary/journal"
	"github.com/dmitrijs2005/fooddiary/internal/diary/pending"
	"github.com/dmitrijs2005/fooddiary/internal/estimator"
	"github.com/dmitrijs2005/fooddiary/internal/filex"
	"github.com/dmitrijs2005/fooddiary/internal/logging"
	"github.com/dmitrijs2005/fooddiary/internal/media"
	"github.com/dmitrijs2005/fooddiary/internal/timecmd"

	gs "github.com/dmitrijs2005/fooddiary/internal/bot/grpc"
)

// Console I/O; replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	journal   *journal.Writer
	handler   *handler.Handler
	transport runner
	health    *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logOut := stdout
	if c.Transport == config.TransportConsole {
		logOut = stderr
	}
	logger := logging.NewJSON(logOut, c.LogLevel)

	if _, err := filex.EnsureDir(c.DataDir, ""); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	ms, err := newMediaStore(ctx, c)
	if err != nil {
		return nil, err
	}

	if err := filex.Touch(c.JournalPath()); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	w, err := journal.OpenWriter(c.JournalPath())
	if err != nil {
		return nil, err
	}

	est, err := estimator.New(ctx, c.GeminiAPIKey, c.GeminiModel, ms)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("estimator init error: %w", err)
	}

	resolver, err := timecmd.NewResolver(c.OutputTimezone, c.OutputTimezoneName)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	ref, err := time.LoadLocation(c.ReferenceTimezone)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("load reference timezone %q: %w", c.ReferenceTimezone, err)
	}

	h := handler.New(handler.Deps{
		Store:        pending.NewStore(time.Now),
		Journal:      w,
		Reporter:     journal.NewReader(c.JournalPath()),
		Media:        ms,
		Estimator:    est,
		Resolver:     resolver,
		Reference:    ref,
		ReportWindow: c.ReportWindow,
		Logger:       logger,
	})

	app := &App{config: c, logger: logger, journal: w, handler: h}

	app.transport, err = app.newTransport()
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	if c.HealthAddr != "" {
		app.health = gs.NewHealthServer(c.HealthAddr, logger)
	}

	logger.Info(ctx, "app configured",
		"transport", c.Transport,
		"data_dir", c.DataDir,
		"media", c.MediaBackend,
		"estimator", estimator.Enabled(est))

	return app, nil
}

func newMediaStore(ctx context.Context, c *config.Config) (media.Store, error) {
	if c.MediaBackend == config.MediaS3 {
		s, err := media.NewS3(ctx, media.S3Config{
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		return s, nil
	}

	dir, err := filex.EnsureDir(c.DataDir, common.MediaDirName)
	if err != nil {
		return nil, fmt.Errorf("media dir: %w", err)
	}
	return media.NewLocal(dir), nil
}

func (app *App) newTransport() (runner, error) {
	if app.config.Transport == config.TransportConsole {
		return console.New(stdin, stdout, console.DefaultUser, app.handler, app.logger), nil
	}
	return telegram.New(app.config.TelegramToken, app.handler, app.config.Workers, app.config.PollTimeout, app.logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startTransport(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.transport.Run(ctx); err != nil {
		app.logger.Error(ctx, "transport stopped", "error", err)
	}
	// The console ends on EOF; take the health endpoint down with it.
	cancelFunc()
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.health.SetServing(true)
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is canceled, a termination signal arrives or the
// transport ends, then closes the journal.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startTransport(ctx, cancelFunc)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.journal.Close(); err != nil {
		app.logger.Error(ctx, "close journal", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
