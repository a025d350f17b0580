package user

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	"github.com/avesta-dev/backend-template/internal/domain/result"
)

// GetUser returns a user by ID
func (u *UserUseCase) GetUser(ctx context.Context, id string) result.Result[UserResult] {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return result.Err[UserResult](
				errs.New(errs.CodeUserNotFound, fmt.Sprintf("User %s not found", id)),
			)
		}
		u.logger.Error("Failed to get user", map[string]any{
			"userId": id,
			"error":  err.Error(),
		})
		return result.Err[UserResult](errs.New(errs.CodeInternal, "failed to get user"))
	}

	return result.Ok(toUserResult(user))
}
