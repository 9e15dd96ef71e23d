// Package models defines server-side records shared by repositories,
// services and the transport layer.
package models

import "time"

// User is a row of the users table as seen by the login core. It is
// read-only here; registration lives elsewhere.
type User struct {
	ID             string
	Email          string
	PasswordDigest string
	// TOTPSecret is empty when the user has no second factor enrolled.
	TOTPSecret string
	Role       string
	DeletedAt  *time.Time
}

// HasSecondFactor reports whether a one-time code is required after the
// password check.
func (u *User) HasSecondFactor() bool {
	return u.TOTPSecret != ""
}

// Active reports whether the user may log in at all.
func (u *User) Active() bool {
	return u.DeletedAt == nil
}
