package challenges

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

const (
	WeakPassword         = "weakPasswordChallenge"
	LoginSupport         = "loginSupportChallenge"
	LoginRapper          = "loginRapperChallenge"
	LoginAmy             = "loginAmyChallenge"
	PasswordSpraying     = "dlpPasswordSprayingChallenge"
	OAuthUserPassword    = "oauthUserPasswordChallenge"
	LoginAdmin           = "loginAdminChallenge"
	LoginJim             = "loginJimChallenge"
	LoginBender          = "loginBenderChallenge"
	GhostLogin           = "ghostLoginChallenge"
	EphemeralAccountant  = "ephemeralAccountantChallenge"
	accountantRole       = "accounting"
	oauthUserEmail       = "bjoern.kimminich@gmail.com"
	oauthUserPasswordB64 = "bW9jLmxpYW1nQGhjaW5pbW1pay5ucmVvamI="
)

// Attempt is the raw login input as submitted.
type Attempt struct {
	Email    string
	Password string
}

// UserCounter answers whether an account with a given email exists.
type UserCounter interface {
	CountActiveByEmail(ctx context.Context, email string) (int64, error)
}

func credentialsRule(key, email, password string) Rule[Attempt] {
	return Rule[Attempt]{
		Challenge: key,
		Predicate: func(_ context.Context, a Attempt) (bool, error) {
			return a.Email == email && a.Password == password, nil
		},
	}
}

func emailRule(key, email string) Rule[*models.User] {
	return Rule[*models.User]{
		Challenge: key,
		Predicate: func(_ context.Context, u *models.User) (bool, error) {
			return u.Email == email, nil
		},
	}
}

// PreLoginRules match well-known credential pairs before the store is
// consulted, so they fire whether or not the login succeeds.
func PreLoginRules(domain string) []Rule[Attempt] {
	at := "@" + domain
	return []Rule[Attempt]{
		credentialsRule(WeakPassword, "admin"+at, "admin123"),
		credentialsRule(LoginSupport, "support"+at, "J6aVjTgOpRs@?5l!Zkq2AYnCE@RF$P"),
		credentialsRule(LoginRapper, "mc.safesearch"+at, "Mr. N00dles"),
		credentialsRule(LoginAmy, "amy"+at, "K1f"+strings.Repeat(".", 21)),
		credentialsRule(PasswordSpraying, "J12934"+at, "0Y8rMnww$*9VFYE§59-!Fg1L6t&6lB"),
		credentialsRule(OAuthUserPassword, oauthUserEmail, oauthUserPasswordB64),
	}
}

// PostLoginRules run once credentials have been verified.
func PostLoginRules(domain string, counter UserCounter) []Rule[*models.User] {
	at := "@" + domain
	accountant := "acc0unt4nt" + at
	return []Rule[*models.User]{
		emailRule(LoginAdmin, "admin"+at),
		emailRule(LoginJim, "jim"+at),
		emailRule(LoginBender, "bender"+at),
		emailRule(GhostLogin, "chris.pike"+at),
		{
			// A session for an accountant that no stored row backs.
			Challenge:    EphemeralAccountant,
			OnlyUnsolved: true,
			Predicate: func(ctx context.Context, u *models.User) (bool, error) {
				if u.Email != accountant || u.Role != accountantRole {
					return false, nil
				}
				n, err := counter.CountActiveByEmail(ctx, accountant)
				if err != nil {
					return false, err
				}
				return n == 0, nil
			},
		},
	}
}
