package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/auth"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	basketsrepo "github.com/dmitrijs2005/shopkeeper/internal/server/repositories/baskets"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/memory"
	usersrepo "github.com/dmitrijs2005/shopkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/shopkeeper/internal/server/sessions"
)

// fakeManager serves the in-memory stores unless a failing repo is set.
type fakeManager struct {
	*memory.RepositoryManager
	users   usersrepo.Repository
	baskets basketsrepo.Repository
}

func (m *fakeManager) Users(db dbx.DBTX) usersrepo.Repository {
	if m.users != nil {
		return m.users
	}
	return m.RepositoryManager.Users(db)
}

func (m *fakeManager) Baskets(db dbx.DBTX) basketsrepo.Repository {
	if m.baskets != nil {
		return m.baskets
	}
	return m.RepositoryManager.Baskets(db)
}

type failingUsers struct{ err error }

func (f failingUsers) FindActive(context.Context, string, string) (*models.User, error) {
	return nil, f.err
}

func (f failingUsers) CountActiveByEmail(context.Context, string) (int64, error) {
	return 0, f.err
}

type failingBaskets struct{ err error }

func (f failingBaskets) FindOrCreate(context.Context, string) (*models.Basket, bool, error) {
	return nil, false, f.err
}

type failingRegistry struct {
	sessions.Registry
	putErr error
}

func (f failingRegistry) Put(context.Context, *models.Session) error {
	return f.putErr
}

type failingIssuer struct {
	*auth.Issuer
	sessionErr error
	ticketErr  error
}

func (f failingIssuer) IssueSession(id auth.SessionIdentity) (string, *auth.Claims, error) {
	if f.sessionErr != nil {
		return "", nil, f.sessionErr
	}
	return f.Issuer.IssueSession(id)
}

func (f failingIssuer) IssueSecondFactorTicket(userID string) (string, *auth.Claims, error) {
	if f.ticketErr != nil {
		return "", nil, f.ticketErr
	}
	return f.Issuer.IssueSecondFactorTicket(userID)
}

type recordingObserver struct {
	mu       sync.Mutex
	attempts []string
	logins   []string
	// basketsAtLogin is the basket count seen when ObserveLogin ran.
	basketsAtLogin []int
	baskets        *memory.BasketRepository
	panicOnAttempt bool
	panicOnLogin   bool
}

func (o *recordingObserver) ObserveAttempt(_ context.Context, email, _ string) {
	o.mu.Lock()
	o.attempts = append(o.attempts, email)
	o.mu.Unlock()
	if o.panicOnAttempt {
		panic("attempt observer exploded")
	}
}

func (o *recordingObserver) ObserveLogin(_ context.Context, user *models.User) {
	o.mu.Lock()
	o.logins = append(o.logins, user.Email)
	if o.baskets != nil {
		o.basketsAtLogin = append(o.basketsAtLogin, o.baskets.Len())
	}
	o.mu.Unlock()
	if o.panicOnLogin {
		panic("login observer exploded")
	}
}
