// Package auth mints and verifies the tokens handed out by the login flow.
//
// Every token carries an explicit purpose in its "type" claim. A full
// session token and a second-factor ticket are signed with the same key but
// are never interchangeable: Parse rejects a token whose purpose differs
// from the one the caller expects.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose discriminates token kinds.
type Purpose string

const (
	PurposeSession      Purpose = "session"
	PurposeSecondFactor Purpose = "password_valid_needs_second_factor_token"
)

// Claims are the registered claims plus the login-specific payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string  `json:"uid"`
	Purpose  Purpose `json:"type"`
	Email    string  `json:"email,omitempty"`
	Role     string  `json:"role,omitempty"`
	BasketID string  `json:"bid,omitempty"`
}

// Issuer signs tokens with HS256.
type Issuer struct {
	secret            []byte
	sessionValidity   time.Duration
	secondFactorValid time.Duration
	now               func() time.Time
}

func NewIssuer(secretKey []byte, sessionValidity, secondFactorValidity time.Duration) *Issuer {
	return &Issuer{
		secret:            secretKey,
		sessionValidity:   sessionValidity,
		secondFactorValid: secondFactorValidity,
		now:               time.Now,
	}
}

// SessionIdentity is what goes into a session token.
type SessionIdentity struct {
	UserID   string
	Email    string
	Role     string
	BasketID string
}

// IssueSession mints a full session token. Each call gets a fresh jti, so two
// logins by the same user never produce the same token.
func (i *Issuer) IssueSession(id SessionIdentity) (string, *Claims, error) {
	claims := i.newClaims(id.UserID, PurposeSession, i.sessionValidity)
	claims.Email = id.Email
	claims.Role = id.Role
	claims.BasketID = id.BasketID
	return i.sign(claims)
}

// IssueSecondFactorTicket mints the short-lived ticket returned when the
// password was right but a one-time code is still missing.
func (i *Issuer) IssueSecondFactorTicket(userID string) (string, *Claims, error) {
	return i.sign(i.newClaims(userID, PurposeSecondFactor, i.secondFactorValid))
}

// Parse verifies signature and expiry and checks that the token was minted
// for want.
func (i *Issuer) Parse(tokenString string, want Purpose) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	if claims.Purpose != want {
		return nil, common.ErrWrongTokenPurpose
	}

	return claims, nil
}

func (i *Issuer) newClaims(userID string, purpose Purpose, validity time.Duration) *Claims {
	now := i.now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID:  userID,
		Purpose: purpose,
	}
}

func (i *Issuer) sign(claims *Claims) (string, *Claims, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}
