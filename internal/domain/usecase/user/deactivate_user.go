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

// DeactivateUser disables an account without removing it
func (u *UserUseCase) DeactivateUser(ctx context.Context, id string) result.Result[UserResult] {
	var deactivated *entity.User
	err := u.uow.Do(ctx, func(ctx context.Context, uow persistence.UnitOfWork) error {
		repo := uow.Users()

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Deactivate(u.timeProvider)
		if err := repo.Update(ctx, user); err != nil {
			return err
		}

		deactivated = user
		return uow.Commit()
	})
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return result.Err[UserResult](
				errs.New(errs.CodeUserNotFound, fmt.Sprintf("User %s not found", id)),
			)
		}
		u.logger.Error("Failed to deactivate user", map[string]any{
			"userId": id,
			"error":  err.Error(),
		})
		return result.Err[UserResult](errs.New(errs.CodeInternal, "failed to deactivate user"))
	}

	u.publish(ctx, deactivated.ID, messaging.Event{
		EventType: EventUserDeactivated,
		Payload:   map[string]any{"user_id": deactivated.ID},
		IssuedAt:  u.timeProvider.Now(),
	})

	u.logger.Info("User deactivated", map[string]any{"userId": id})
	return result.Ok(toUserResult(deactivated))
}
