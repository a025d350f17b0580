package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements persistence.UserRepository using GORM.
// The *gorm.DB handed to the constructor may be a plain connection or a
// running transaction; the repository never begins or ends transactions
// itself.
type UserRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint") {
		return errs.ErrDuplicateUser
	}
	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "timeout") {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating user", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})

	userModel := model.FromEntity(user)
	if result := r.db.WithContext(ctx).Create(userModel); result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error)
	}
	return nil
}

// Update persists changes to an existing user
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Updating user", map[string]any{
		"user_id": user.ID,
	})

	userModel := model.FromEntity(user)
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Select("email", "name", "password_hash", "avatar", "updated_at", "last_login", "is_active").
		Updates(userModel)
	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debug("Deleting user", map[string]any{
		"user_id": id,
	})

	result := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error)
	}
	return userModel.ToEntity(), nil
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "email = ?", strings.ToLower(email))
	if result.Error != nil {
		return nil, r.handleDatabaseError("finding user by email", result.Error)
	}
	return userModel.ToEntity(), nil
}

// List returns users ordered by creation time, newest first
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	var userModels []model.User
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&userModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing users", result.Error)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].ToEntity())
	}
	return users, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.User{}).Count(&count)
	if result.Error != nil {
		return 0, r.handleDatabaseError("counting users", result.Error)
	}
	return count, nil
}
