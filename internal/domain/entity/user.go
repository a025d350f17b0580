package entity

import (
	"strings"
	"time"

	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/google/uuid"
)

// MaxNameLength is the upper bound for a user's display name
const MaxNameLength = 100

// User represents a registered account
type User struct {
	ID           string     // Unique identifier (uuid)
	Email        string     // Email address, unique across users
	Name         string     // Display name
	PasswordHash string     // bcrypt hash of the password
	Avatar       string     // URL or path to the avatar image, may be empty
	CreatedAt    time.Time  // When the account was created
	UpdatedAt    time.Time  // When the account was last updated
	LastLogin    *time.Time // Last successful login, nil until the first one
	IsActive     bool       // Whether the account is currently active
}

// NewUser creates a new active user with a generated ID
func NewUser(email, name, passwordHash string, timeProvider coreport.TimeProvider) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	}, nil
}

// ValidateEmail performs a minimal sanity check on an email address.
// Full RFC validation is the transport layer's job (gin binding).
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return errs.ErrInvalidEmail
	}
	return nil
}

// ValidateName checks the display name constraints
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return errs.ErrInvalidName
	}
	return nil
}

// Rename updates the display name
func (u *User) Rename(name string, timeProvider coreport.TimeProvider) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(name)
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// SetAvatar updates the avatar reference
func (u *User) SetAvatar(avatar string, timeProvider coreport.TimeProvider) {
	u.Avatar = avatar
	u.UpdatedAt = timeProvider.Now()
}

// RecordLogin stamps a successful login
func (u *User) RecordLogin(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	u.LastLogin = &now
	u.UpdatedAt = now
}

// Deactivate disables the account; deactivation is idempotent
func (u *User) Deactivate(timeProvider coreport.TimeProvider) {
	if !u.IsActive {
		return
	}
	u.IsActive = false
	u.UpdatedAt = timeProvider.Now()
}

// Activate re-enables the account
func (u *User) Activate(timeProvider coreport.TimeProvider) {
	if u.IsActive {
		return
	}
	u.IsActive = true
	u.UpdatedAt = timeProvider.Now()
}
