package persistence

import (
	"context"
)

// UnitOfWork is the transactional scope handed to a use case body. All
// repositories obtained from it share one underlying session, so writes
// through any of them commit or roll back together.
//
// Contract:
//   - Commit may be called at most once per scope. A second call, or a call
//     after the scope has exited, returns a *UnitOfWorkStateError.
//   - Rollback discards all changes made in the scope; it is idempotent
//     within the scope and is the implicit outcome when Commit is never
//     called.
//   - Repository accessors panic with a *UnitOfWorkStateError when invoked
//     outside the live scope. That is a caller bug, not a runtime condition.
//
// Nested scopes are not supported: opening a second unit of work inside a
// running one is caller error and is not guarded internally.
type UnitOfWork interface {
	// Users returns the user repository bound to this scope's session
	Users() UserRepository

	// Commit flushes and durably persists all writes made in this scope
	Commit() error

	// Rollback discards all writes made in this scope
	Rollback() error
}

// UnitOfWorkManager opens unit-of-work scopes. Do opens a session, builds
// the session-bound repositories, and runs fn inside the scope. However fn
// exits (return or panic), exactly one cleanup action runs: a commit
// requested via uow.Commit() stands, otherwise the session is rolled back.
// The session is always released afterwards. An error returned by fn
// propagates to the caller after cleanup.
type UnitOfWorkManager interface {
	Do(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
