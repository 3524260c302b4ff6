package domain

import (
	"strings"
	"time"
)

// User is the authentication aggregate. Invariants are enforced through
// NewUser and the mutation methods, never by direct field assignment from
// callers.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser validates and trims inputs and returns an active user. The ID is
// empty until the store assigns one on first save. When roles is empty the
// default role set applies.
func NewUser(username, email, passwordHash string, roles []Role) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, NewValidation("username cannot be empty")
	}
	if email == "" {
		return nil, NewValidation("email cannot be empty")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, NewValidation("password cannot be empty")
	}
	if len(roles) == 0 {
		roles = DefaultRoles()
	}

	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       true,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(newHash string) error {
	if strings.TrimSpace(newHash) == "" {
		return NewValidation("password cannot be empty")
	}
	u.PasswordHash = newHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now().UTC()
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
