// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contests

import (
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/kv"
)

// slugAttempts bounds the retries when a generated slug is already taken.
const slugAttempts = 5

// Options configures a Repository. The zero value has no contestant cap,
// no vote serialization and uses the real clock, UUIDs and random slugs.
type Options struct {
	// MaxContestants caps contestants per contest. 0 means no cap.
	MaxContestants int

	// SerializeVotes holds a per-contest lock across every read-modify-write
	// of that contest's keys. Without it concurrent votes can overwrite each
	// other and lose increments.
	SerializeVotes bool

	// Test hooks
	Now     func() time.Time
	NewID   func() string
	NewSlug func(title string) (string, error)
}

// Repository stores contests, their contestants and vote logs in a kv.Store.
type Repository struct {
	store kv.Store
	opts  Options
	locks *lockset
}

// New returns a Repository over store, filling unset hooks in opts with
// their defaults.
func New(store kv.Store, opts Options) *Repository {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = auth.NewID
	}
	if opts.NewSlug == nil {
		opts.NewSlug = auth.GenerateSlug
	}

	r := &Repository{store: store, opts: opts}
	if opts.SerializeVotes {
		r.locks = newLockset()
	}
	return r
}

func (r *Repository) now() time.Time {
	return r.opts.Now().UTC()
}

// lock acquires the contest's lock and returns its release function.
// It is a no-op when serialization is off.
func (r *Repository) lock(contestID string) func() {
	if r.locks == nil {
		return func() {}
	}
	return r.locks.lock(contestID)
}

// lockset is a set of mutexes keyed by contest ID. Entries are dropped once
// no goroutine holds or waits for them.
type lockset struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newLockset() *lockset {
	return &lockset{locks: make(map[string]*keyLock)}
}

func (l *lockset) lock(key string) func() {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()

	return func() {
		kl.mu.Unlock()

		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
