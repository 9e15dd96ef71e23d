package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/shopkeeper/internal/client/client"
	"github.com/dmitrijs2005/shopkeeper/internal/client/config"
	"github.com/dmitrijs2005/shopkeeper/internal/common"
)

const statusSecondFactorRequired = "totp_token_required"

// App drives a single interactive login against the shopkeeper server.
type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		client: cl,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.client.Ping(ctx)
}

// Run pings the server, prompts for credentials and logs in. An
// unauthorized login is reported to the user and is not an error.
func (a *App) Run(ctx context.Context) error {
	defer a.client.Close()

	if err := a.ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Server %s is not reachable: %v\n", a.config.ServerEndpointAddr, err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	outcome, err := a.login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, common.InvalidCredentialsMessage)
			return nil
		}
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	if outcome.Status == statusSecondFactorRequired {
		fmt.Fprintln(a.out, "Second factor required.")
		fmt.Fprintf(a.out, "Ticket: %s\n", outcome.Ticket)
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", outcome.Email)
	fmt.Fprintf(a.out, "Basket: %s\n", outcome.BasketID)
	fmt.Fprintf(a.out, "Token: %s\n", outcome.Token)

	if err := a.whoAmI(ctx); err != nil {
		return err
	}

	if a.config.LogoutOnExit {
		return a.logout(ctx)
	}
	return nil
}

func (a *App) login(ctx context.Context, email string, password []byte) (*client.LoginOutcome, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.client.Login(ctx, email, password)
}

func (a *App) whoAmI(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	id, err := a.client.WhoAmI(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Session check failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Session: user=%s role=%s expires=%s\n", id.UserID, id.Role, id.ExpiresAt)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
