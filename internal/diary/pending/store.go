package pending

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
)

// Store maps users to their pending entry.
//
// Operations on the same user are serialized by a per-user mutex; different
// users never wait for each other except for the short map access.
type Store struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[UserID]*Entry
	locks   map[UserID]*sync.Mutex
}

// NewStore creates an empty store. now defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:     now,
		entries: make(map[UserID]*Entry),
		locks:   make(map[UserID]*sync.Mutex),
	}
}

func (s *Store) userLock(user UserID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[user]
	if !ok {
		l = &sync.Mutex{}
		s.locks[user] = l
	}
	return l
}

func (s *Store) lookup(user UserID) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[user]
	return e, ok
}

func (s *Store) getOrCreate(user UserID) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[user]
	if !ok {
		e = &Entry{Owner: user, StartedAt: s.now().UTC()}
		s.entries[user] = e
	}
	return e
}

func (s *Store) delete(user UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, user)
}

// GetOrCreate returns the user's entry, creating it with StartedAt set to
// the current UTC time when absent. Repeated calls return the same *Entry
// until the entry is removed. Callers that mutate the result must go through
// Update to be safe against concurrent messages of the same user.
func (s *Store) GetOrCreate(user UserID) *Entry {
	l := s.userLock(user)
	l.Lock()
	defer l.Unlock()

	return s.getOrCreate(user)
}

// Get returns a copy of the user's entry.
func (s *Store) Get(user UserID) (Snapshot, bool) {
	l := s.userLock(user)
	l.Lock()
	defer l.Unlock()

	e, ok := s.lookup(user)
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), true
}

// Remove deletes the user's entry and returns what it contained.
func (s *Store) Remove(user UserID) (Snapshot, bool) {
	l := s.userLock(user)
	l.Lock()
	defer l.Unlock()

	e, ok := s.lookup(user)
	if !ok {
		return Snapshot{}, false
	}
	s.delete(user)
	return e.snapshot(), true
}

// Discard is Remove for callers that report the missing entry as an error.
func (s *Store) Discard(user UserID) (Snapshot, error) {
	snap, ok := s.Remove(user)
	if !ok {
		return Snapshot{}, common.ErrNothingToDiscard
	}
	return snap, nil
}

// Update runs fn on the user's entry, creating it first when needed. The
// per-user lock is held for the whole call.
func (s *Store) Update(user UserID, fn func(e *Entry)) Snapshot {
	l := s.userLock(user)
	l.Lock()
	defer l.Unlock()

	e := s.getOrCreate(user)
	fn(e)
	return e.snapshot()
}

// Close hands a snapshot of the user's entry to persist and removes the
// entry once persist succeeds. Without an entry it returns
// common.ErrNoPendingEntry. When persist fails the entry stays pending.
func (s *Store) Close(user UserID, persist func(Snapshot) error) (Snapshot, error) {
	l := s.userLock(user)
	l.Lock()
	defer l.Unlock()

	e, ok := s.lookup(user)
	if !ok {
		return Snapshot{}, common.ErrNoPendingEntry
	}

	snap := e.snapshot()
	if err := persist(snap); err != nil {
		return snap, err
	}

	s.delete(user)
	return snap, nil
}

// SetStartedAt moves the start time of an existing entry.
func (s *Store) SetStartedAt(user UserID, t time.Time) (Snapshot, bool) {
	l := s.userLock(user)
	l.Lock()
	defer l.Unlock()

	e, ok := s.lookup(user)
	if !ok {
		return Snapshot{}, false
	}
	e.StartedAt = t.UTC()
	return e.snapshot(), true
}

// Len returns the number of pending entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
