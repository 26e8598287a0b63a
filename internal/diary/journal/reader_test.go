package journal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(sent string, kcal int) LoggedEntry {
	return LoggedEntry{Sent: sent, Images: []string{}, Calories: kcal}
}

func TestDecode(t *testing.T) {
	src := strings.Join([]string{
		`{"sent": "2024-01-08 12:00 UTC", "description": "a", "images": [], "calories": 500}`,
		``,
		`not json`,
		`{"sent": "yesterday", "description": "", "images": [], "calories": 10}`,
		`{"sent":"2024-01-09 08:30 UTC","description":"b","images":["p.jpg"],"calories":300}`,
		`{"sent":"2024-01-09 09:00 UTC","calo`,
	}, "\n")

	entries, stats, err := Decode(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, ReadStats{Valid: 2, Skipped: 2, Partial: 1}, stats)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Description)
	assert.Equal(t, []string{"p.jpg"}, entries[1].Images)
}

func TestReader_MissingFileIsEmpty(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "entries.jsonl"))

	entries, stats, err := r.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, stats)

	_, err = r.DailyTotals(context.Background(), 7)
	require.ErrorIs(t, err, common.ErrNoData)
}

func TestDailyTotals_FiveDatesOverTenDays(t *testing.T) {
	entries := []LoggedEntry{
		entryAt("2024-01-01 08:00 UTC", 400),
		entryAt("2024-01-01 19:00 UTC", 700),
		entryAt("2024-01-03 12:00 UTC", 900),
		entryAt("2024-01-06 23:59 UTC", 250),
		entryAt("2024-01-07 00:00 UTC", 1000),
		entryAt("2024-01-10 13:00 UTC", 1200),
		entryAt("2024-01-10 20:00 UTC", 300),
	}

	got, err := DailyTotals(entries, 7)
	require.NoError(t, err)

	want := []struct {
		day  string
		kcal int
		n    int
	}{
		{"2024-01-10", 1500, 2},
		{"2024-01-07", 1000, 1},
		{"2024-01-06", 250, 1},
		{"2024-01-03", 900, 1},
		{"2024-01-01", 1100, 2},
	}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.day, got[i].Day())
		assert.Equal(t, w.kcal, got[i].Calories)
		assert.Equal(t, w.n, got[i].Entries)
		assert.Equal(t, time.UTC, got[i].Date.Location())
	}
}

func TestDailyTotals_KeepsMostRecentWindow(t *testing.T) {
	var entries []LoggedEntry
	for d := 1; d <= 10; d++ {
		entries = append(entries, entryAt(time.Date(2024, 2, d, 12, 0, 0, 0, time.UTC).Format(common.SentLayout), d*100))
	}

	got, err := DailyTotals(entries, 7)
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, "2024-02-10", got[0].Day())
	assert.Equal(t, "2024-02-04", got[6].Day())

	got, err = DailyTotals(entries, 0)
	require.NoError(t, err)
	assert.Len(t, got, common.DefaultReportWindow)

	got, err = DailyTotals(entries, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDailyTotals_NoData(t *testing.T) {
	_, err := DailyTotals(nil, 7)
	require.ErrorIs(t, err, common.ErrNoData)

	_, err = DailyTotals([]LoggedEntry{{Sent: "garbage", Calories: 10}}, 7)
	require.ErrorIs(t, err, common.ErrNoData)
}

func TestLoggedEntry_SentRoundTrip(t *testing.T) {
	helsinki := time.FixedZone("EET", 2*3600)
	started := time.Date(2024, 1, 10, 1, 30, 59, 0, helsinki)

	e := NewLoggedEntry(started, "", nil, 50)
	assert.Equal(t, "2024-01-09 23:30 UTC", e.Sent)
	assert.NotNil(t, e.Images)

	at, err := e.SentAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 9, 23, 30, 0, 0, time.UTC), at)
}
