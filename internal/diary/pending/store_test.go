package pending

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStore_GetOrCreate_Idempotent(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.FixedZone("EET", 2*3600))
	s := NewStore(fixedClock(now))

	first := s.GetOrCreate(1)
	second := s.GetOrCreate(1)

	assert.Same(t, first, second)
	assert.Equal(t, UserID(1), first.Owner)
	assert.Equal(t, time.UTC, first.StartedAt.Location())
	assert.True(t, now.Equal(first.StartedAt))
	assert.True(t, first.IsEmpty())
	assert.Equal(t, 1, s.Len())
}

func TestStore_Get_NoSideEffects(t *testing.T) {
	s := NewStore(nil)

	_, ok := s.Get(7)
	assert.False(t, ok)
	assert.Zero(t, s.Len())

	s.Update(7, func(e *Entry) { e.AddText("toast") })

	snap, ok := s.Get(7)
	require.True(t, ok)
	assert.Equal(t, []string{"toast"}, snap.TextLines)
}

func TestStore_Remove(t *testing.T) {
	s := NewStore(nil)

	_, ok := s.Remove(3)
	assert.False(t, ok, "remove of absent entry is a no-op")

	s.Update(3, func(e *Entry) { e.AddImage("p1.jpg") })
	snap, ok := s.Remove(3)
	require.True(t, ok)
	assert.Equal(t, []string{"p1.jpg"}, snap.ImageRefs)

	_, ok = s.Get(3)
	assert.False(t, ok)
}

func TestStore_Close(t *testing.T) {
	t.Run("no pending entry", func(t *testing.T) {
		s := NewStore(nil)
		called := false

		_, err := s.Close(1, func(Snapshot) error { called = true; return nil })

		require.ErrorIs(t, err, common.ErrNoPendingEntry)
		assert.False(t, called)
	})

	t.Run("persists snapshot and removes entry", func(t *testing.T) {
		s := NewStore(nil)
		s.Update(1, func(e *Entry) {
			e.AddText("chicken salad")
			e.AddImage("p1.jpg")
		})

		var persisted Snapshot
		snap, err := s.Close(1, func(sn Snapshot) error { persisted = sn; return nil })

		require.NoError(t, err)
		assert.Equal(t, "chicken salad", snap.Description())
		assert.Equal(t, snap, persisted)
		_, ok := s.Get(1)
		assert.False(t, ok)
	})

	t.Run("failed persist keeps entry", func(t *testing.T) {
		s := NewStore(nil)
		s.Update(1, func(e *Entry) { e.AddText("soup") })
		boom := errors.New("disk full")

		_, err := s.Close(1, func(Snapshot) error { return boom })

		require.ErrorIs(t, err, boom)
		snap, ok := s.Get(1)
		require.True(t, ok)
		assert.Equal(t, "soup", snap.Description())
	})
}

func TestSnapshot_IsIsolatedFromLaterMutations(t *testing.T) {
	s := NewStore(nil)
	snap := s.Update(1, func(e *Entry) { e.AddText("a") })

	s.Update(1, func(e *Entry) {
		e.AddText("b")
		e.TextLines[0] = "changed"
	})

	assert.Equal(t, []string{"a"}, snap.TextLines)
}

func TestStore_SetStartedAt(t *testing.T) {
	s := NewStore(nil)
	at := time.Date(2024, 1, 9, 18, 0, 0, 0, time.FixedZone("EET", 2*3600))

	_, ok := s.SetStartedAt(1, at)
	assert.False(t, ok)

	s.GetOrCreate(1)
	snap, ok := s.SetStartedAt(1, at)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 9, 16, 0, 0, 0, time.UTC), snap.StartedAt)
}

func TestStore_ConcurrentUpdatesSameUser(t *testing.T) {
	s := NewStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(1, func(e *Entry) { e.AddText("x") })
		}()
	}
	wg.Wait()

	snap, ok := s.Get(1)
	require.True(t, ok)
	assert.Len(t, snap.TextLines, 50)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	s := NewStore(nil)
	s.Update(1, func(e *Entry) { e.AddText("one") })
	s.Update(2, func(e *Entry) { e.AddText("two") })

	_, err := s.Close(1, func(Snapshot) error { return nil })
	require.NoError(t, err)

	snap, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "two", snap.Description())
}

func TestStore_Discard(t *testing.T) {
	s := NewStore(fixedClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)))

	_, err := s.Discard(4)
	require.ErrorIs(t, err, common.ErrNothingToDiscard)

	s.Update(4, func(e *Entry) { e.AddText("toast") })
	snap, err := s.Discard(4)
	require.NoError(t, err)
	assert.Equal(t, []string{"toast"}, snap.TextLines)
	assert.Zero(t, s.Len())
}
