package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
	"github.com/avesta-dev/backend-template/internal/domain/port/persistence"
	"github.com/avesta-dev/backend-template/internal/domain/result"
)

// UpdateUserCommand carries the input for UpdateUser. Nil fields are left
// unchanged.
type UpdateUserCommand struct {
	ID     string
	Name   *string
	Avatar *string
}

// UpdateUser changes a user's profile fields inside one transactional scope
func (u *UserUseCase) UpdateUser(ctx context.Context, cmd UpdateUserCommand) result.Result[UserResult] {
	if cmd.Name == nil && cmd.Avatar == nil {
		return result.Err[UserResult](errs.New(errs.CodeValidation, "nothing to update"))
	}

	var updated *entity.User
	err := u.uow.Do(ctx, func(ctx context.Context, uow persistence.UnitOfWork) error {
		repo := uow.Users()

		user, err := repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		if cmd.Name != nil {
			if err := user.Rename(*cmd.Name, u.timeProvider); err != nil {
				return err
			}
		}
		if cmd.Avatar != nil {
			user.SetAvatar(*cmd.Avatar, u.timeProvider)
		}

		if err := repo.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return uow.Commit()
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			return result.Err[UserResult](
				errs.New(errs.CodeUserNotFound, fmt.Sprintf("User %s not found", cmd.ID)),
			)
		case errors.Is(err, errs.ErrInvalidName):
			return result.Err[UserResult](errs.New(errs.CodeValidation, "invalid user name"))
		default:
			u.logger.Error("Failed to update user", map[string]any{
				"userId": cmd.ID,
				"error":  err.Error(),
			})
			return result.Err[UserResult](errs.New(errs.CodeInternal, "failed to update user"))
		}
	}

	u.publish(ctx, updated.ID, messaging.Event{
		EventType: EventUserUpdated,
		Payload:   map[string]any{"user_id": updated.ID},
		IssuedAt:  u.timeProvider.Now(),
	})

	u.logger.Info("User updated", map[string]any{"userId": updated.ID})
	return result.Ok(toUserResult(updated))
}
