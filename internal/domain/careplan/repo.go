package careplan

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type PlanRepository interface {
	Create(ctx context.Context, cp *CarePlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*CarePlan, error)
	GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*CarePlan, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *CarePlanItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*CarePlanItem, error)
	ListByPlan(ctx context.Context, carePlanID uuid.UUID) ([]*CarePlanItem, error)
	// UpdateProgress persists details and the resume pointer and forces
	// status to IN_PROGRESS in a single statement.
	UpdateProgress(ctx context.Context, id uuid.UUID, details json.RawMessage, currentQuestionID string) error
	// Complete persists the terminal snapshot: COMPLETED status, cleared
	// resume pointer, composed instructions and final details, atomically.
	Complete(ctx context.Context, id uuid.UUID, details json.RawMessage, instructions string) error
	// UpdateStatus is the generic status override; it clears the resume
	// pointer whenever the new status is not IN_PROGRESS.
	UpdateStatus(ctx context.Context, id uuid.UUID, status ItemStatus) error
}
