package main

import (
	"context"
	"errors"
	"strings"

	"authkit/models"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password
// so a login response never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	errUsernameRequired = errors.New("username required")
	errPasswordTooShort = errors.New("password too short (min 6)")
)

// registerUser creates a new account with a hashed password. The directory's
// unique constraint is the source of truth for duplicates; the pre-check only
// gives a friendlier fast path.
func (a *app) registerUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errUsernameRequired
	}
	if len(password) < 6 { // basic password policy
		return nil, errPasswordTooShort
	}
	if _, err := a.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUser
	}
	hashed, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: hashed}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// authenticate verifies a username/password pair against the stored hash.
func (a *app) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !a.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
