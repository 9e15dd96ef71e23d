// Package challenges persists which side-observation challenges have been
// solved.
package challenges

import "context"

// Repository records solved challenges. Solve is idempotent and reports
// whether the call flipped the flag.
type Repository interface {
	Solve(ctx context.Context, key string) (bool, error)
	IsSolved(ctx context.Context, key string) (bool, error)
}
