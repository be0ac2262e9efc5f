package service

import "sync"

// DateLocker serializes booking mutations per calendar date. The store-level
// unique index on (date, heure) covers the slot invariant across processes;
// this lock closes the in-process window on the per-date capacity count,
// which is a COUNT predicate no row lock can guard.
type DateLocker struct {
	locks sync.Map // date string -> *sync.Mutex
}

// NewDateLocker creates an empty locker.
func NewDateLocker() *DateLocker {
	return &DateLocker{}
}

// Lock acquires the mutex for date and returns it for unlocking.
func (l *DateLocker) Lock(date string) *sync.Mutex {
	v, _ := l.locks.LoadOrStore(date, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}
