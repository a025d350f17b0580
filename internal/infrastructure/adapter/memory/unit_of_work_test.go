package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	"github.com/avesta-dev/backend-template/internal/domain/port/persistence"
	timeadapter "github.com/avesta-dev/backend-template/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, email string) *entity.User {
	t.Helper()
	user, err := entity.NewUser(email, "Test User", "hashed-password", timeadapter.NewRealTimeProvider())
	require.NoError(t, err)
	return user
}

func storedCount(t *testing.T, store *UserStore) int64 {
	t.Helper()
	count, err := NewUserRepository(store).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestDoCommitMakesWritesVisible(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)
	user := newTestUser(t, "alice@example.com")

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.Users().Create(ctx, user); err != nil {
			return err
		}
		return uow.Commit()
	})
	require.NoError(t, err)

	stored, err := NewUserRepository(store).GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, stored.Email)
}

func TestDoWithoutCommitRollsBack(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		return uow.Users().Create(ctx, newTestUser(t, "bob@example.com"))
	})
	require.NoError(t, err)

	assert.EqualValues(t, 0, storedCount(t, store))
}

func TestDoErrorRollsBackAndPropagates(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)
	boom := errors.New("boom")

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.Users().Create(ctx, newTestUser(t, "carol@example.com")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.EqualValues(t, 0, storedCount(t, store))
}

func TestDoPanicRollsBackAndRethrows(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)

	assert.PanicsWithValue(t, "exploded", func() {
		_ = manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
			if err := uow.Users().Create(ctx, newTestUser(t, "dave@example.com")); err != nil {
				return err
			}
			panic("exploded")
		})
	})

	assert.EqualValues(t, 0, storedCount(t, store))
}

func TestCommitTwiceReturnsStateError(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)
	user := newTestUser(t, "erin@example.com")

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.Users().Create(ctx, user); err != nil {
			return err
		}
		require.NoError(t, uow.Commit())
		return uow.Commit()
	})
	assert.ErrorIs(t, err, errs.ErrUnitOfWorkState)

	// The first commit stands
	_, getErr := NewUserRepository(store).GetByID(context.Background(), user.ID)
	assert.NoError(t, getErr)
}

func TestRollbackDiscardsWrites(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.Users().Create(ctx, newTestUser(t, "frank@example.com")); err != nil {
			return err
		}
		return uow.Rollback()
	})
	require.NoError(t, err)

	assert.EqualValues(t, 0, storedCount(t, store))
}

func TestRollbackIsIdempotent(t *testing.T) {
	manager := NewUnitOfWorkManager(NewUserStore())

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		require.NoError(t, uow.Rollback())
		return uow.Rollback()
	})
	assert.NoError(t, err)
}

func TestRollbackAfterCommitIsNoOp(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)
	user := newTestUser(t, "grace@example.com")

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.Users().Create(ctx, user); err != nil {
			return err
		}
		require.NoError(t, uow.Commit())
		return uow.Rollback()
	})
	require.NoError(t, err)

	_, getErr := NewUserRepository(store).GetByID(context.Background(), user.ID)
	assert.NoError(t, getErr)
}

func TestScopeUnusableAfterExit(t *testing.T) {
	manager := NewUnitOfWorkManager(NewUserStore())

	var leaked persistence.UnitOfWork
	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		leaked = uow
		return nil
	})
	require.NoError(t, err)

	commitErr := leaked.Commit()
	assert.ErrorIs(t, commitErr, errs.ErrUnitOfWorkState)

	rollbackErr := leaked.Rollback()
	assert.ErrorIs(t, rollbackErr, errs.ErrUnitOfWorkState)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		stateErr, ok := r.(*errs.UnitOfWorkStateError)
		require.True(t, ok)
		assert.Equal(t, "users", stateErr.Op)
	}()
	leaked.Users()
}

func TestScopeIsolatedFromConcurrentReads(t *testing.T) {
	store := NewUserStore()
	manager := NewUnitOfWorkManager(store)

	err := manager.Do(context.Background(), func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.Users().Create(ctx, newTestUser(t, "heidi@example.com")); err != nil {
			return err
		}

		// Not yet committed, so not yet visible outside the scope
		assert.EqualValues(t, 0, storedCount(t, store))
		return uow.Commit()
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, storedCount(t, store))
}
