package admission

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Admission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admission, error)
	List(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error)
	// Update writes the row only when version_id still matches and bumps
	// it by one; a stale version returns ErrVersionConflict.
	Update(ctx context.Context, a *Admission) error
}
