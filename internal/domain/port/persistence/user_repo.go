package persistence

import (
	"context"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
)

// UserRepository defines persistence operations for users.
// Implementations never own the session they run on; the unit of work (or
// the connection manager, for reads outside a transaction) hands it to them
// at construction time.
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *entity.User) error

	// Update persists changes to an existing user
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a user by ID, returns ErrUserNotFound if absent
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail retrieves a user by email, returns ErrUserNotFound if absent
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns users ordered by creation time, newest first
	List(ctx context.Context, offset, limit int) ([]*entity.User, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}
