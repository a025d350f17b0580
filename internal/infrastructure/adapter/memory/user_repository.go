package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
)

// UserStore holds users in memory. It backs the in-memory repository and
// unit of work, which are used in tests and local development when no
// database is available.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

// NewUserStore creates an empty in-memory user store
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]entity.User),
	}
}

// snapshot returns a copy of the stored users
func (s *UserStore) snapshot() map[string]entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[string]entity.User, len(s.users))
	for id, u := range s.users {
		users[id] = u
	}
	return users
}

// replace swaps the store contents with the given users
func (s *UserStore) replace(users map[string]entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
}

// mutate applies fn to the store contents under the write lock
func (s *UserStore) mutate(fn func(users map[string]entity.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.users)
}

// UserRepository implements persistence.UserRepository over a plain map.
// A repository created with NewUserRepository reads and writes the shared
// store directly; one bound to a unit-of-work scope works on the scope's
// staged copy instead.
type UserRepository struct {
	store  *UserStore
	staged map[string]entity.User
}

// NewUserRepository creates a repository that works on the store directly
func NewUserRepository(store *UserStore) *UserRepository {
	return &UserRepository{store: store}
}

// newScopedRepository creates a repository over a scope-local copy
func newScopedRepository(staged map[string]entity.User) *UserRepository {
	return &UserRepository{staged: staged}
}

// view returns the users visible to this repository
func (r *UserRepository) view() map[string]entity.User {
	if r.staged != nil {
		return r.staged
	}
	return r.store.snapshot()
}

// mutate applies fn to the users this repository writes to
func (r *UserRepository) mutate(fn func(users map[string]entity.User) error) error {
	if r.staged != nil {
		return fn(r.staged)
	}
	return r.store.mutate(fn)
}

// Create stores a new user
func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	return r.mutate(func(users map[string]entity.User) error {
		if _, exists := users[user.ID]; exists {
			return errs.ErrDuplicateUser
		}
		for _, existing := range users {
			if existing.Email == user.Email {
				return errs.ErrDuplicateUser
			}
		}
		users[user.ID] = *user
		return nil
	})
}

// Update replaces the stored user with the given one
func (r *UserRepository) Update(_ context.Context, user *entity.User) error {
	return r.mutate(func(users map[string]entity.User) error {
		if _, exists := users[user.ID]; !exists {
			return errs.ErrUserNotFound
		}
		users[user.ID] = *user
		return nil
	})
}

// Delete removes a user by ID
func (r *UserRepository) Delete(_ context.Context, id string) error {
	return r.mutate(func(users map[string]entity.User) error {
		if _, exists := users[id]; !exists {
			return errs.ErrUserNotFound
		}
		delete(users, id)
		return nil
	})
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	user, exists := r.view()[id]
	if !exists {
		return nil, errs.ErrUserNotFound
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(email)
	for _, user := range r.view() {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

// List returns users ordered by creation time, newest first
func (r *UserRepository) List(_ context.Context, offset, limit int) ([]*entity.User, error) {
	view := r.view()
	all := make([]entity.User, 0, len(view))
	for _, user := range view {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]*entity.User, 0, end-offset)
	for i := offset; i < end; i++ {
		u := all[i]
		page = append(page, &u)
	}
	return page, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.view())), nil
}
