package client

import "context"

// LoginOutcome is a successful Login reply. Token is set when Status is
// "authenticated"; Ticket when a second factor is still required.
type LoginOutcome struct {
	Status   string
	Token    string
	BasketID string
	Email    string
	Ticket   string
}

// Identity describes the session the client is logged in with.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	BasketID  string
	ExpiresAt string
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, email string, password []byte) (*LoginOutcome, error)
	WhoAmI(ctx context.Context) (*Identity, error)
	Logout(ctx context.Context) error
}
