package challenges

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// Tracker is the login observer wired into the login service.
type Tracker struct {
	pre  *Evaluator[Attempt]
	post *Evaluator[*models.User]
}

func NewTracker(pre *Evaluator[Attempt], post *Evaluator[*models.User]) *Tracker {
	return &Tracker{pre: pre, post: post}
}

// NewDefaultTracker builds a Tracker over the stock rule catalog.
func NewDefaultTracker(store Store, counter UserCounter, domain string, logger logging.Logger) *Tracker {
	logger = logger.With("module", "challenges")
	return NewTracker(
		NewEvaluator(store, PreLoginRules(domain), logger),
		NewEvaluator(store, PostLoginRules(domain, counter), logger),
	)
}

func (t *Tracker) ObserveAttempt(ctx context.Context, email, password string) {
	t.pre.Evaluate(ctx, Attempt{Email: email, Password: password})
}

func (t *Tracker) ObserveLogin(ctx context.Context, user *models.User) {
	t.post.Evaluate(ctx, user)
}
