package grpc

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/services"
)

type fakeLogins struct {
	loginResp *services.LoginResult
	loginErr  error

	session *models.Session
	authErr error

	logoutErr   error
	loggedOut   string
	gotEmail    string
	gotPassword string
}

func (f *fakeLogins) Login(_ context.Context, email, password string) (*services.LoginResult, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.loginResp, f.loginErr
}

func (f *fakeLogins) Authenticate(context.Context, string) (*models.Session, error) {
	return f.session, f.authErr
}

func (f *fakeLogins) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return f.logoutErr
}
