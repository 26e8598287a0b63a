package bot

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/bot/config"
	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/diary/journal"
	"github.com/dmitrijs2005/fooddiary/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consoleConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.Transport = config.TransportConsole
	c.DataDir = filepath.Join(t.TempDir(), "data")
	c.HealthAddr = ""
	c.OutputTimezone = "UTC"
	c.ReferenceTimezone = "UTC"
	return c
}

func withConsole(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	origIn, origOut, origErr := stdin, stdout, stderr
	t.Cleanup(func() { stdin, stdout, stderr = origIn, origOut, origErr })

	var out bytes.Buffer
	stdin = strings.NewReader(input)
	stdout = &out
	stderr = io.Discard
	return &out
}

func TestApp_ConsoleSession(t *testing.T) {
	out := withConsole(t, "chicken salad\n650 kcal\n/report\n")
	c := consoleConfig(t)

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(c.DataDir, common.MediaDirName))
	require.NoError(t, err, "media dir is created at startup")

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop at end of input")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Noted.", lines[0])
	assert.Contains(t, lines[1], "650 kcal, 1 text line(s), 0 photo(s).")
	assert.Equal(t, "Total calories for the last 7 logged days:", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], ": 650 kcal"))

	entries, stats, err := journal.NewReader(c.JournalPath()).Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Valid)
	require.Len(t, entries, 1)
	assert.Equal(t, "chicken salad", entries[0].Description)
}

func TestApp_ContextCancelStops(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	origIn, origOut := stdin, stdout
	t.Cleanup(func() { stdin, stdout = origIn, origOut })
	stdin, stdout = pr, io.Discard

	c := consoleConfig(t)
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.Run(ctx)
}

func TestNewApp_Errors(t *testing.T) {
	withConsole(t, "")

	t.Run("bad reference zone", func(t *testing.T) {
		c := consoleConfig(t)
		c.ReferenceTimezone = "Mars/Olympus"
		_, err := NewApp(context.Background(), c)
		require.ErrorContains(t, err, "reference timezone")
	})

	t.Run("bad output zone", func(t *testing.T) {
		c := consoleConfig(t)
		c.OutputTimezone = "Mars/Olympus"
		_, err := NewApp(context.Background(), c)
		require.ErrorContains(t, err, "output timezone")
	})

	t.Run("telegram without token", func(t *testing.T) {
		c := consoleConfig(t)
		c.Transport = config.TransportTelegram
		_, err := NewApp(context.Background(), c)
		require.ErrorIs(t, err, common.ErrMissingToken)
	})
}

func TestNewMediaStore_Local(t *testing.T) {
	c := consoleConfig(t)

	ms, err := newMediaStore(context.Background(), c)
	require.NoError(t, err)
	assert.IsType(t, &media.Local{}, ms)
}
