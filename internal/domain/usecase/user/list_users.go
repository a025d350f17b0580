package user

import (
	"context"

	errs "github.com/avesta-dev/backend-template/internal/domain/error"
	"github.com/avesta-dev/backend-template/internal/domain/result"
)

// Pagination bounds for ListUsers
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListUsersQuery carries the paging parameters for ListUsers
type ListUsersQuery struct {
	Offset int
	Limit  int
}

// ListUsers returns a page of users, newest first
func (u *UserUseCase) ListUsers(ctx context.Context, query ListUsersQuery) result.Result[UserListResult] {
	if query.Offset < 0 {
		return result.Err[UserListResult](errs.New(errs.CodeValidation, "offset must not be negative"))
	}
	if query.Limit <= 0 {
		query.Limit = DefaultPageSize
	}
	if query.Limit > MaxPageSize {
		query.Limit = MaxPageSize
	}

	users, err := u.userRepo.List(ctx, query.Offset, query.Limit)
	if err != nil {
		u.logger.Error("Failed to list users", map[string]any{"error": err.Error()})
		return result.Err[UserListResult](errs.New(errs.CodeInternal, "failed to list users"))
	}

	total, err := u.userRepo.Count(ctx)
	if err != nil {
		u.logger.Error("Failed to count users", map[string]any{"error": err.Error()})
		return result.Err[UserListResult](errs.New(errs.CodeInternal, "failed to list users"))
	}

	results := make([]UserResult, 0, len(users))
	for _, user := range users {
		results = append(results, toUserResult(user))
	}

	return result.Ok(UserListResult{
		Users:  results,
		Total:  total,
		Offset: query.Offset,
		Limit:  query.Limit,
	})
}
