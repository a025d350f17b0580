package database

import (
	"context"
	"fmt"

	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/avesta-dev/backend-template/internal/domain/port/persistence"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// UnitOfWorkManager opens transactional scopes over a GORM connection.
// Each scope runs in its own database transaction; repositories handed out
// by the scope are bound to that transaction.
type UnitOfWorkManager struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

// NewUnitOfWorkManager creates a new UnitOfWorkManager instance
func NewUnitOfWorkManager(db *gorm.DB, logger coreport.Logger) *UnitOfWorkManager {
	return &UnitOfWorkManager{
		db:          db,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

// Do begins a transaction, runs fn inside the scope, and guarantees exactly
// one terminal action on the transaction. When fn returns without having
// called Commit, the transaction is rolled back. When fn panics, the
// transaction is rolled back and the panic is rethrown.
func (m *UnitOfWorkManager) Do(ctx context.Context, fn func(ctx context.Context, uow persistence.UnitOfWork) error) error {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		m.logger.Error("Failed to begin transaction", map[string]any{
			"error": tx.Error.Error(),
		})
		return m.errorMapper.MapError(tx.Error, "begin transaction")
	}

	scope := &unitOfWork{
		tx:     tx,
		users:  repository.NewUserRepository(tx, m.logger),
		logger: m.logger,
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

// unitOfWork is the live scope handed to fn. It owns one transaction and
// tracks whether that transaction has already been committed or rolled back.
type unitOfWork struct {
	tx        *gorm.DB
	users     *repository.UserRepository
	logger    coreport.Logger
	active    bool
	finalized bool
}

// Users returns the user repository bound to this scope's transaction
func (u *unitOfWork) Users() persistence.UserRepository {
	if !u.active {
		panic(&errs.UnitOfWorkStateError{
			Op:     "users",
			Reason: "repository accessed outside the unit of work scope",
		})
	}
	return u.users
}

// Commit persists all writes made in this scope
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
	if err := u.tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{
			"error": err.Error(),
		})
		// The commit did not take; make sure the transaction is released.
		u.tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards all writes made in this scope. Calling it after the
// transaction has already been finalized is a no-op.
func (u *unitOfWork) Rollback() error {
	if !u.active {
		return &errs.UnitOfWorkStateError{
			Op:     "rollback",
			Reason: "unit of work scope has already exited",
		}
	}
	if u.finalized {
		return nil
	}

	u.finalized = true
	if err := u.tx.Rollback().Error; err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// close ends the scope. Any transaction not explicitly committed or rolled
// back is rolled back here.
func (u *unitOfWork) close() {
	if !u.finalized {
		u.finalized = true
		if err := u.tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
			u.logger.Warn("Implicit rollback failed", map[string]any{
				"error": err.Error(),
			})
		}
	}
	u.active = false
}
