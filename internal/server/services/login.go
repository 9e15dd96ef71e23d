// Package services contains server-side business logic. This file implements
// LoginService, which verifies credentials, provisions the user's basket and
// establishes a session.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/auth"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopkeeper/internal/server/sessions"
)

// Login outcomes that are not errors.
const (
	StatusAuthenticated        = "authenticated"
	StatusSecondFactorRequired = "totp_token_required"
)

// LoginResult is a successful outcome of Login. Exactly one of Token or
// Ticket is set, depending on Status.
type LoginResult struct {
	Status   string
	Token    string
	BasketID string
	Email    string
	Ticket   string
}

// PasswordHasher turns a plaintext password into the stored digest form.
type PasswordHasher interface {
	Hash(plaintext string) string
}

// TokenIssuer mints and verifies purpose-bound tokens.
type TokenIssuer interface {
	IssueSession(id auth.SessionIdentity) (string, *auth.Claims, error)
	IssueSecondFactorTicket(userID string) (string, *auth.Claims, error)
	Parse(token string, want auth.Purpose) (*auth.Claims, error)
}

// LoginObserver receives side observations. It must not affect the result;
// LoginService recovers from its panics regardless.
type LoginObserver interface {
	ObserveAttempt(ctx context.Context, email, password string)
	ObserveLogin(ctx context.Context, user *models.User)
}

type LoginService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	issuer      TokenIssuer
	registry    sessions.Registry
	observer    LoginObserver
	logger      logging.Logger
}

// NewLoginService wires the login flow. observer may be nil.
func NewLoginService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, issuer TokenIssuer,
	registry sessions.Registry, observer LoginObserver, logger logging.Logger) *LoginService {
	return &LoginService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		registry:    registry,
		observer:    observer,
		logger:      logger.With("module", "login"),
	}
}

// Login checks email and password and either establishes a session, asks
// for a second factor, or fails with common.ErrorUnauthorized or
// common.ErrorInternal. Unknown email, wrong password and deleted account
// are indistinguishable to the caller.
func (s *LoginService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	s.observe(ctx, func(o LoginObserver) { o.ObserveAttempt(ctx, email, password) })

	digest := s.hasher.Hash(password)

	user, err := s.repomanager.Users(s.db).FindActive(ctx, email, digest)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "credential lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if user.HasSecondFactor() {
		ticket, _, err := s.issuer.IssueSecondFactorTicket(user.ID)
		if err != nil {
			s.logger.Error(ctx, "issuing second factor ticket failed", "user_id", user.ID, "error", err)
			return nil, common.ErrorInternal
		}
		return &LoginResult{Status: StatusSecondFactorRequired, Ticket: ticket}, nil
	}

	s.observe(ctx, func(o LoginObserver) { o.ObserveLogin(ctx, user) })

	basket, created, err := s.repomanager.Baskets(s.db).FindOrCreate(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "basket provisioning failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	token, claims, err := s.issuer.IssueSession(auth.SessionIdentity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		BasketID: basket.ID,
	})
	if err != nil {
		s.logger.Error(ctx, "issuing session token failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	session := &models.Session{
		ID:        claims.ID,
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		BasketID:  basket.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.registry.Put(ctx, session); err != nil {
		s.logger.Error(ctx, "registering session failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "login succeeded", "user_id", user.ID, "basket_id", basket.ID, "basket_created", created)

	return &LoginResult{
		Status:   StatusAuthenticated,
		Token:    token,
		BasketID: basket.ID,
		Email:    user.Email,
	}, nil
}

// Authenticate resolves a session token presented on a later request.
// Second-factor tickets are rejected with common.ErrWrongTokenPurpose.
func (s *LoginService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.issuer.Parse(token, auth.PurposeSession)
	if err != nil {
		return nil, err
	}

	session, err := s.registry.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.UserID != claims.UserID {
		return nil, common.ErrInvalidToken
	}

	return session, nil
}

// Logout invalidates a live session token.
func (s *LoginService) Logout(ctx context.Context, token string) error {
	session, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	if err := s.registry.Delete(ctx, token); err != nil {
		s.logger.Error(ctx, "deleting session failed", "user_id", session.UserID, "error", err)
		return common.ErrorInternal
	}
	return nil
}

func (s *LoginService) observe(ctx context.Context, fn func(LoginObserver)) {
	if s.observer == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "login observer panicked", "panic", p)
		}
	}()
	fn(s.observer)
}
