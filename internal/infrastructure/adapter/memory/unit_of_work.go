package memory

import (
	"context"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	"github.com/avesta-dev/backend-template/internal/domain/port/persistence"
)

// UnitOfWorkManager opens transactional scopes over an in-memory store.
// Each scope works on a private copy of the store; Commit swaps the copy
// into the shared store, anything else leaves the store untouched. It has
// the same scope contract as the database-backed manager.
type UnitOfWorkManager struct {
	store *UserStore
}

// NewUnitOfWorkManager creates a new UnitOfWorkManager instance
func NewUnitOfWorkManager(store *UserStore) *UnitOfWorkManager {
	return &UnitOfWorkManager{store: store}
}

// Do runs fn inside a scope over a snapshot of the store. However fn exits,
// uncommitted changes are discarded; a panic is rethrown after cleanup.
func (m *UnitOfWorkManager) Do(ctx context.Context, fn func(ctx context.Context, uow persistence.UnitOfWork) error) error {
	scope := &unitOfWork{
		store:  m.store,
		users:  newScopedRepository(m.store.snapshot()),
		active: true,
	}

	defer func() {
		r := recover()
		scope.close()
		if r != nil {
			panic(r)
		}
	}()

	return fn(ctx, scope)
}

type unitOfWork struct {
	store     *UserStore
	users     *UserRepository
	active    bool
	finalized bool
}

// Users returns the user repository bound to this scope's snapshot
func (u *unitOfWork) Users() persistence.UserRepository {
	if !u.active {
		panic(&errs.UnitOfWorkStateError{
			Op:     "users",
			Reason: "repository accessed outside the unit of work scope",
		})
	}
	return u.users
}

// Commit publishes the scope's snapshot as the new store contents
func (u *unitOfWork) Commit() error {
	if !u.active {
		return &errs.UnitOfWorkStateError{
			Op:     "commit",
			Reason: "unit of work scope has already exited",
		}
	}
	if u.finalized {
		return &errs.UnitOfWorkStateError{
			Op:     "commit",
			Reason: "transaction already finalized",
		}
	}

	u.finalized = true

	// Hand the store its own copy so later writes through this scope's
	// repository cannot leak into committed state
	committed := make(map[string]entity.User, len(u.users.staged))
	for id, user := range u.users.staged {
		committed[id] = user
	}
	u.store.replace(committed)
	return nil
}

// Rollback discards the scope's snapshot. Calling it after the scope has
// already been finalized is a no-op.
func (u *unitOfWork) Rollback() error {
	if !u.active {
		return &errs.UnitOfWorkStateError{
			Op:     "rollback",
			Reason: "unit of work scope has already exited",
		}
	}
	u.finalized = true
	return nil
}

func (u *unitOfWork) close() {
	u.finalized = true
	u.active = false
}
