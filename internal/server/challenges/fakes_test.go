package challenges

import (
	"context"
	"sync"
)

type fakeStore struct {
	mu        sync.Mutex
	solved    map[string]bool
	solveErr  error
	lookupErr error
	lookups   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{solved: map[string]bool{}}
}

func (f *fakeStore) Solve(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.solveErr != nil {
		return false, f.solveErr
	}
	if f.solved[key] {
		return false, nil
	}
	f.solved[key] = true
	return true, nil
}

func (f *fakeStore) IsSolved(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.solved[key], nil
}

func (f *fakeStore) isSolved(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.solved[key]
}

type fakeCounter struct {
	n     int64
	err   error
	calls int
}

func (f *fakeCounter) CountActiveByEmail(context.Context, string) (int64, error) {
	f.calls++
	return f.n, f.err
}
