package ports

import "context"

// LoginLimiter throttles repeated failed logins per username. Implementations
// count failures inside a fixed window; Allow reports whether another attempt
// may proceed.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
