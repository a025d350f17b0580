package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
	"github.com/avesta-dev/backend-template/internal/domain/port/persistence"
	"github.com/avesta-dev/backend-template/internal/domain/result"
	"golang.org/x/crypto/bcrypt"
)

const tempPasswordLength = 12

const tempPasswordCharset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!#$%&*+-=?@_"

// CreateUserCommand carries the input for CreateUser
type CreateUserCommand struct {
	Email string
	Name  string
}

// CreateUser registers a new account.
//
// Flow:
//  1. Check that no user with the email exists
//  2. Generate and hash a temporary password
//  3. Persist the user and commit the scope
//  4. Store a password-reset token in the cache
//  5. Publish a user.created event
func (u *UserUseCase) CreateUser(ctx context.Context, cmd CreateUserCommand) result.Result[UserResult] {
	u.logger.Info("Received CreateUserCommand", map[string]any{
		"email": cmd.Email,
		"name":  cmd.Name,
	})

	if err := entity.ValidateEmail(cmd.Email); err != nil {
		return result.Err[UserResult](errs.New(errs.CodeValidation, "invalid email address"))
	}
	if err := entity.ValidateName(cmd.Name); err != nil {
		return result.Err[UserResult](errs.New(errs.CodeValidation, "invalid user name"))
	}

	var created *entity.User
	err := u.uow.Do(ctx, func(ctx context.Context, uow persistence.UnitOfWork) error {
		repo := uow.Users()

		_, err := repo.FindByEmail(ctx, cmd.Email)
		if err == nil {
			return errs.ErrDuplicateUser
		}
		if !errors.Is(err, errs.ErrUserNotFound) {
			return err
		}

		tempPassword, err := generateTempPassword()
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		created, err = entity.NewUser(cmd.Email, cmd.Name, string(hash), u.timeProvider)
		if err != nil {
			return err
		}

		if err := repo.Create(ctx, created); err != nil {
			return err
		}

		return uow.Commit()
	})
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			u.logger.Warn("User already exists", map[string]any{"email": cmd.Email})
			return result.Err[UserResult](
				errs.New(errs.CodeUserAlreadyExists,
					fmt.Sprintf("User with email %s already exists", cmd.Email)).
					WithReason("this email address is already registered"),
			)
		}
		u.logger.Error("Failed to create user", map[string]any{
			"email": cmd.Email,
			"error": err.Error(),
		})
		return result.Err[UserResult](errs.New(errs.CodeInternal, "failed to create user"))
	}

	// The transaction is committed; token storage and event publishing are
	// best effort from here on.
	if token, err := generateResetToken(); err == nil {
		key := resetTokenKeyPrefix + token
		if err := u.cache.Set(ctx, key, []byte(created.ID), u.resetTokenTTL); err != nil {
			u.logger.Warn("Failed to store password reset token", map[string]any{
				"userId": created.ID,
				"error":  err.Error(),
			})
		}
	}

	u.publish(ctx, created.ID, messaging.Event{
		EventType: EventUserCreated,
		Payload: map[string]any{
			"user_id": created.ID,
			"email":   created.Email,
		},
		IssuedAt: u.timeProvider.Now(),
	})

	u.logger.Info("User created", map[string]any{
		"userId": created.ID,
		"email":  created.Email,
	})
	return result.Ok(toUserResult(created))
}

// publish sends a domain event, logging instead of failing the use case
func (u *UserUseCase) publish(ctx context.Context, key string, event messaging.Event) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, key, event); err != nil {
		u.logger.Warn("Failed to publish event", map[string]any{
			"event_type": event.EventType,
			"error":      err.Error(),
		})
	}
}

// generateTempPassword produces a random initial password the user is
// expected to replace through the reset flow
func generateTempPassword() (string, error) {
	password := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordCharset)))
	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		password[i] = tempPasswordCharset[n.Int64()]
	}
	return string(password), nil
}

// generateResetToken produces a URL-safe opaque token
func generateResetToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
