package round

import "context"

// Repository exposes round persistence operations. Update leaves the
// finished flag alone.
type Repository interface {
	List(ctx context.Context) ([]Round, error)
	GetByID(ctx context.Context, roundID string) (Round, bool, error)
	Create(ctx context.Context, r Round) error
	Update(ctx context.Context, r Round) error
}
