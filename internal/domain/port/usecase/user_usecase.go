package usecase

import (
	"context"

	userUseCase "github.com/avesta-dev/backend-template/internal/domain/usecase/user"
	"github.com/avesta-dev/backend-template/internal/domain/result"
)

// UserUseCase defines the user-facing application operations. Every
// operation returns a Result: expected business failures travel as Err
// values, infrastructure faults as error panics handled by the API layer's
// recovery middleware.
type UserUseCase interface {
	CreateUser(ctx context.Context, cmd userUseCase.CreateUserCommand) result.Result[userUseCase.UserResult]
	GetUser(ctx context.Context, id string) result.Result[userUseCase.UserResult]
	ListUsers(ctx context.Context, query userUseCase.ListUsersQuery) result.Result[userUseCase.UserListResult]
	UpdateUser(ctx context.Context, cmd userUseCase.UpdateUserCommand) result.Result[userUseCase.UserResult]
	DeleteUser(ctx context.Context, id string) result.Result[struct{}]
	DeactivateUser(ctx context.Context, id string) result.Result[userUseCase.UserResult]
}
