// Package store implements the record store: six JSON collections of
// id-addressed records plus a couple of singleton values, persisted in a
// pluggable key-value backend (memory, file, redis).
package store

import (
	"context"
	"sync"
)

// Fixed keys for the persisted collections and singleton values.
const (
	KeyIssues        = "civicpulse:issues"
	KeyComments      = "civicpulse:comments"
	KeyUsers         = "civicpulse:users"
	KeyUpvotes       = "civicpulse:upvotes"
	KeyNotifications = "civicpulse:notifications"
	KeyReports       = "civicpulse:reports"
	KeyCurrentUser   = "civicpulse:auth"
	KeyDigest        = "civicpulse:digest"
)

// KV is the storage contract. Collections are mappings from record id to
// a serialized record, so mutations of different records never collide.
// Singleton values are addressed by a plain key.
//
// Backends provide durability only within a single device; there is no
// cross-process synchronization.
type KV interface {
	GetRecord(ctx context.Context, collection, id string) ([]byte, bool, error)
	PutRecord(ctx context.Context, collection, id string, value []byte) error
	DeleteRecord(ctx context.Context, collection, id string) error
	GetAll(ctx context.Context, collection string) (map[string][]byte, error)

	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Locker hands out named mutexes. Mutations that must change two
// collections together (an upvote record and the issue's denormalized
// counter) run inside one critical section keyed by the issue id.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocker creates an empty lock registry.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
