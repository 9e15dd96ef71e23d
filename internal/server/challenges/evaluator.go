// Package challenges evaluates declarative rules against login attempts and
// authenticated identities, marking matching challenges as solved. Nothing
// here can influence the outcome of a login: rule failures are logged and
// dropped.
package challenges

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
)

// Store records solved challenges idempotently.
type Store interface {
	Solve(ctx context.Context, key string) (bool, error)
	IsSolved(ctx context.Context, key string) (bool, error)
}

// Rule pairs a challenge key with the predicate that solves it.
type Rule[T any] struct {
	Challenge string
	// OnlyUnsolved consults the store before running Predicate. Set it for
	// predicates that do their own I/O.
	OnlyUnsolved bool
	Predicate    func(ctx context.Context, subject T) (bool, error)
}

// Evaluator runs an ordered rule list against a subject.
type Evaluator[T any] struct {
	store  Store
	rules  []Rule[T]
	logger logging.Logger
}

func NewEvaluator[T any](store Store, rules []Rule[T], logger logging.Logger) *Evaluator[T] {
	return &Evaluator[T]{store: store, rules: rules, logger: logger}
}

// Evaluate applies every rule in order. Each rule is isolated from the
// others and from the caller.
func (e *Evaluator[T]) Evaluate(ctx context.Context, subject T) {
	for _, r := range e.rules {
		e.apply(ctx, r, subject)
	}
}

func (e *Evaluator[T]) apply(ctx context.Context, r Rule[T], subject T) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error(ctx, "challenge rule panicked", "challenge", r.Challenge, "panic", p)
		}
	}()

	if r.OnlyUnsolved {
		solved, err := e.store.IsSolved(ctx, r.Challenge)
		if err != nil {
			e.logger.Warn(ctx, "challenge lookup failed", "challenge", r.Challenge, "error", err)
			return
		}
		if solved {
			return
		}
	}

	ok, err := r.Predicate(ctx, subject)
	if err != nil {
		e.logger.Warn(ctx, "challenge predicate failed", "challenge", r.Challenge, "error", err)
		return
	}
	if !ok {
		return
	}

	first, err := e.store.Solve(ctx, r.Challenge)
	if err != nil {
		e.logger.Warn(ctx, "challenge solve failed", "challenge", r.Challenge, "error", err)
		return
	}
	if first {
		e.logger.Info(ctx, "challenge solved", "challenge", r.Challenge)
	}
}
