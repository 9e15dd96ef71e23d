package challenges

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
)

func always(ok bool) func(context.Context, string) (bool, error) {
	return func(context.Context, string) (bool, error) { return ok, nil }
}

func TestEvaluator_SolvesMatchingRules(t *testing.T) {
	store := newFakeStore()
	e := NewEvaluator(store, []Rule[string]{
		{Challenge: "a", Predicate: always(true)},
		{Challenge: "b", Predicate: always(false)},
	}, logging.Nop{})

	e.Evaluate(context.Background(), "x")

	assert.True(t, store.isSolved("a"))
	assert.False(t, store.isSolved("b"))
}

func TestEvaluator_IsolatesFailures(t *testing.T) {
	store := newFakeStore()
	e := NewEvaluator(store, []Rule[string]{
		{Challenge: "panics", Predicate: func(context.Context, string) (bool, error) { panic("boom") }},
		{Challenge: "errors", Predicate: func(context.Context, string) (bool, error) { return true, errors.New("lookup failed") }},
		{Challenge: "after", Predicate: always(true)},
	}, logging.Nop{})

	assert.NotPanics(t, func() { e.Evaluate(context.Background(), "x") })
	assert.False(t, store.isSolved("panics"))
	assert.False(t, store.isSolved("errors"))
	assert.True(t, store.isSolved("after"))
}

func TestEvaluator_StoreErrorsAreSwallowed(t *testing.T) {
	store := newFakeStore()
	store.solveErr = errors.New("db down")
	e := NewEvaluator(store, []Rule[string]{{Challenge: "a", Predicate: always(true)}}, logging.Nop{})

	assert.NotPanics(t, func() { e.Evaluate(context.Background(), "x") })
	assert.False(t, store.isSolved("a"))
}

func TestEvaluator_OnlyUnsolved(t *testing.T) {
	store := newFakeStore()
	calls := 0
	rule := Rule[string]{
		Challenge:    "once",
		OnlyUnsolved: true,
		Predicate: func(context.Context, string) (bool, error) {
			calls++
			return true, nil
		},
	}
	e := NewEvaluator(store, []Rule[string]{rule}, logging.Nop{})

	e.Evaluate(context.Background(), "x")
	e.Evaluate(context.Background(), "x")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, store.lookups)
}

func TestEvaluator_OnlyUnsolvedLookupError(t *testing.T) {
	store := newFakeStore()
	store.lookupErr = errors.New("db down")
	called := false
	e := NewEvaluator(store, []Rule[string]{{
		Challenge:    "once",
		OnlyUnsolved: true,
		Predicate: func(context.Context, string) (bool, error) {
			called = true
			return true, nil
		},
	}}, logging.Nop{})

	e.Evaluate(context.Background(), "x")
	assert.False(t, called)
}
