package user

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
	"github.com/avesta-dev/backend-template/internal/domain/port/persistence"
	"github.com/avesta-dev/backend-template/internal/domain/result"
)

// DeleteUser permanently removes a user
func (u *UserUseCase) DeleteUser(ctx context.Context, id string) result.Result[struct{}] {
	err := u.uow.Do(ctx, func(ctx context.Context, uow persistence.UnitOfWork) error {
		repo := uow.Users()

		// Look the user up first so deleting an absent user is reported as
		// not found rather than silently succeeding
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}

		if err := repo.Delete(ctx, id); err != nil {
			return err
		}

		return uow.Commit()
	})
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return result.Err[struct{}](
				errs.New(errs.CodeUserNotFound, fmt.Sprintf("User %s not found", id)),
			)
		}
		u.logger.Error("Failed to delete user", map[string]any{
			"userId": id,
			"error":  err.Error(),
		})
		return result.Err[struct{}](errs.New(errs.CodeInternal, "failed to delete user"))
	}

	u.publish(ctx, id, messaging.Event{
		EventType: EventUserDeleted,
		Payload:   map[string]any{"user_id": id},
		IssuedAt:  u.timeProvider.Now(),
	})

	u.logger.Info("User deleted", map[string]any{"userId": id})
	return result.Ok(struct{}{})
}
