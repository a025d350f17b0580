package user

import (
	"time"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	cacheport "github.com/avesta-dev/backend-template/internal/domain/port/cache"
	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
	"github.com/avesta-dev/backend-template/internal/domain/port/persistence"
)

// Event types published by user operations
const (
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
	EventUserDeleted     = "user.deleted"
	EventUserDeactivated = "user.deactivated"
)

// resetTokenKeyPrefix namespaces password-reset tokens in the cache
const resetTokenKeyPrefix = "password_reset:"

// DefaultResetTokenTTL is how long a password-reset token stays valid
const DefaultResetTokenTTL = 24 * time.Hour

// UserUseCase orchestrates user operations. Writes run inside a unit-of-work
// scope; reads go through the plain repository. Expected business failures
// come back as Err results, infrastructure faults as panics recovered at the
// API boundary.
type UserUseCase struct {
	uow           persistence.UnitOfWorkManager
	userRepo      persistence.UserRepository
	cache         cacheport.Store
	publisher     messaging.EventPublisher
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	resetTokenTTL time.Duration
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	uow persistence.UnitOfWorkManager,
	userRepo persistence.UserRepository,
	cache cacheport.Store,
	publisher messaging.EventPublisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		uow:           uow,
		userRepo:      userRepo,
		cache:         cache,
		publisher:     publisher,
		timeProvider:  timeProvider,
		logger:        logger,
		resetTokenTTL: DefaultResetTokenTTL,
	}
}

// UserResult is the outward-facing shape of a user
type UserResult struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Avatar    string  `json:"avatar,omitempty"`
	CreatedAt string  `json:"created_at"`
	LastLogin *string `json:"last_login,omitempty"`
	IsActive  bool    `json:"is_active"`
}

// UserListResult is a page of users
type UserListResult struct {
	Users  []UserResult `json:"users"`
	Total  int64        `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
}

// toUserResult maps a user entity to its outward-facing shape
func toUserResult(u *entity.User) UserResult {
	res := UserResult{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		IsActive:  u.IsActive,
	}
	if u.LastLogin != nil {
		lastLogin := u.LastLogin.Format(time.RFC3339)
		res.LastLogin = &lastLogin
	}
	return res
}
