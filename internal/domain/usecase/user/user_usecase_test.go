package user_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	cacheport "github.com/avesta-dev/backend-template/internal/domain/port/cache"
	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
	userUseCase "github.com/avesta-dev/backend-template/internal/domain/usecase/user"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/logger"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/memory"
	timeadapter "github.com/avesta-dev/backend-template/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPublisher records published events
type mockPublisher struct {
	PublishFunc     func(ctx context.Context, key string, event messaging.Event) error
	PublishedEvents []messaging.Event
}

func (m *mockPublisher) Publish(ctx context.Context, key string, event messaging.Event) error {
	m.PublishedEvents = append(m.PublishedEvents, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, key, event)
	}
	return nil
}

func (m *mockPublisher) Close() error { return nil }

// mockCache is a map-backed cache.Store
type mockCache struct {
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	data    map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, cacheport.ErrCacheMiss
	}
	return value, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type testEnv struct {
	useCase   *userUseCase.UserUseCase
	store     *memory.UserStore
	cache     *mockCache
	publisher *mockPublisher
}

func newTestEnv() *testEnv {
	store := memory.NewUserStore()
	cache := newMockCache()
	publisher := &mockPublisher{}
	useCase := userUseCase.NewUserUseCase(
		memory.NewUnitOfWorkManager(store),
		memory.NewUserRepository(store),
		cache,
		publisher,
		timeadapter.NewRealTimeProvider(),
		logger.NewNoopLogger(),
	)
	return &testEnv{
		useCase:   useCase,
		store:     store,
		cache:     cache,
		publisher: publisher,
	}
}

func (e *testEnv) createUser(t *testing.T, email string) userUseCase.UserResult {
	t.Helper()
	res := e.useCase.CreateUser(context.Background(), userUseCase.CreateUserCommand{
		Email: email,
		Name:  "Test User",
	})
	require.True(t, res.IsOk())
	return res.Unwrap()
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv()

	res := env.useCase.CreateUser(context.Background(), userUseCase.CreateUserCommand{
		Email: "Alice@Example.com",
		Name:  "Alice",
	})
	require.True(t, res.IsOk())

	created := res.Unwrap()
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "Alice", created.Name)
	assert.True(t, created.IsActive)

	// The committed user is visible through reads
	got := env.useCase.GetUser(context.Background(), created.ID)
	require.True(t, got.IsOk())

	// A user.created event went out
	require.Len(t, env.publisher.PublishedEvents, 1)
	assert.Equal(t, userUseCase.EventUserCreated, env.publisher.PublishedEvents[0].EventType)
	assert.Equal(t, created.ID, env.publisher.PublishedEvents[0].Payload["user_id"])

	// A password-reset token was stored against the user
	require.Len(t, env.cache.data, 1)
	for key, value := range env.cache.data {
		assert.True(t, strings.HasPrefix(key, "password_reset:"))
		assert.Equal(t, []byte(created.ID), value)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "alice@example.com")

	res := env.useCase.CreateUser(context.Background(), userUseCase.CreateUserCommand{
		Email: "alice@example.com",
		Name:  "Alice Again",
	})
	require.True(t, res.IsErr())
	assert.Equal(t, errs.CodeUserAlreadyExists, res.UnwrapErr().Code)

	// Only the first registration got an event
	assert.Len(t, env.publisher.PublishedEvents, 1)
}

func TestCreateUserInvalidInput(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name  string
		email string
		user  string
	}{
		{"missing at sign", "aliceexample.com", "Alice"},
		{"missing domain dot", "alice@examplecom", "Alice"},
		{"empty name", "alice@example.com", ""},
		{"name too long", "alice@example.com", strings.Repeat("a", entity.MaxNameLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.useCase.CreateUser(context.Background(), userUseCase.CreateUserCommand{
				Email: tt.email,
				Name:  tt.user,
			})
			require.True(t, res.IsErr())
			assert.Equal(t, errs.CodeValidation, res.UnwrapErr().Code)
		})
	}

	assert.Empty(t, env.publisher.PublishedEvents)
}

func TestCreateUserSurvivesCacheFailure(t *testing.T) {
	env := newTestEnv()
	env.cache.SetFunc = func(context.Context, string, []byte, time.Duration) error {
		return context.DeadlineExceeded
	}

	res := env.useCase.CreateUser(context.Background(), userUseCase.CreateUserCommand{
		Email: "alice@example.com",
		Name:  "Alice",
	})
	assert.True(t, res.IsOk())
}

func TestGetUserNotFound(t *testing.T) {
	env := newTestEnv()

	res := env.useCase.GetUser(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.True(t, res.IsErr())
	assert.Equal(t, errs.CodeUserNotFound, res.UnwrapErr().Code)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "a@example.com")
	env.createUser(t, "b@example.com")
	env.createUser(t, "c@example.com")

	res := env.useCase.ListUsers(context.Background(), userUseCase.ListUsersQuery{Limit: 2})
	require.True(t, res.IsOk())

	page := res.Unwrap()
	assert.Len(t, page.Users, 2)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.Limit)
}

func TestListUsersValidation(t *testing.T) {
	env := newTestEnv()

	res := env.useCase.ListUsers(context.Background(), userUseCase.ListUsersQuery{Offset: -1})
	require.True(t, res.IsErr())
	assert.Equal(t, errs.CodeValidation, res.UnwrapErr().Code)
}

func TestListUsersClampsLimit(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "a@example.com")

	res := env.useCase.ListUsers(context.Background(), userUseCase.ListUsersQuery{Limit: 10_000})
	require.True(t, res.IsOk())
	assert.Equal(t, userUseCase.MaxPageSize, res.Unwrap().Limit)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv()
	created := env.createUser(t, "alice@example.com")

	name := "Alice Cooper"
	avatar := "https://cdn.example.com/alice.png"
	res := env.useCase.UpdateUser(context.Background(), userUseCase.UpdateUserCommand{
		ID:     created.ID,
		Name:   &name,
		Avatar: &avatar,
	})
	require.True(t, res.IsOk())

	updated := res.Unwrap()
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, avatar, updated.Avatar)

	// The change is committed
	got := env.useCase.GetUser(context.Background(), created.ID)
	require.True(t, got.IsOk())
	assert.Equal(t, name, got.Unwrap().Name)

	events := env.publisher.PublishedEvents
	assert.Equal(t, userUseCase.EventUserUpdated, events[len(events)-1].EventType)
}

func TestUpdateUserNothingToUpdate(t *testing.T) {
	env := newTestEnv()
	created := env.createUser(t, "alice@example.com")

	res := env.useCase.UpdateUser(context.Background(), userUseCase.UpdateUserCommand{ID: created.ID})
	require.True(t, res.IsErr())
	assert.Equal(t, errs.CodeValidation, res.UnwrapErr().Code)
}

func TestUpdateUserNotFound(t *testing.T) {
	env := newTestEnv()

	name := "Nobody"
	res := env.useCase.UpdateUser(context.Background(), userUseCase.UpdateUserCommand{
		ID:   "00000000-0000-0000-0000-000000000000",
		Name: &name,
	})
	require.True(t, res.IsErr())
	assert.Equal(t, errs.CodeUserNotFound, res.UnwrapErr().Code)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv()
	created := env.createUser(t, "alice@example.com")

	res := env.useCase.DeleteUser(context.Background(), created.ID)
	require.True(t, res.IsOk())

	got := env.useCase.GetUser(context.Background(), created.ID)
	require.True(t, got.IsErr())
	assert.Equal(t, errs.CodeUserNotFound, got.UnwrapErr().Code)

	events := env.publisher.PublishedEvents
	assert.Equal(t, userUseCase.EventUserDeleted, events[len(events)-1].EventType)
}

func TestDeleteUserNotFound(t *testing.T) {
	env := newTestEnv()

	res := env.useCase.DeleteUser(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.True(t, res.IsErr())
	assert.Equal(t, errs.CodeUserNotFound, res.UnwrapErr().Code)
}

func TestDeactivateUser(t *testing.T) {
	env := newTestEnv()
	created := env.createUser(t, "alice@example.com")

	res := env.useCase.DeactivateUser(context.Background(), created.ID)
	require.True(t, res.IsOk())
	assert.False(t, res.Unwrap().IsActive)

	// Deactivating again is idempotent
	again := env.useCase.DeactivateUser(context.Background(), created.ID)
	require.True(t, again.IsOk())
	assert.False(t, again.Unwrap().IsActive)

	events := env.publisher.PublishedEvents
	assert.Equal(t, userUseCase.EventUserDeactivated, events[len(events)-1].EventType)
}
