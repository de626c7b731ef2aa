package reference

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoData is returned when no observation exists for the requested key.
// Callers treat it as an ordinary, non-fatal outcome.
var ErrNoData = errors.New("no reference data")

type LabResultRepository interface {
	Create(ctx context.Context, lr *LabResult) error
	// LatestByItem returns the most recent result for the admission and
	// item code, or ErrNoData.
	LatestByItem(ctx context.Context, admissionID uuid.UUID, itemCode string) (*LabResult, error)
	ListByAdmission(ctx context.Context, admissionID uuid.UUID, limit, offset int) ([]*LabResult, int, error)
}

type VitalSignsRepository interface {
	Create(ctx context.Context, vs *VitalSigns) error
	// Latest returns the most recent recording for the admission, or
	// ErrNoData.
	Latest(ctx context.Context, admissionID uuid.UUID) (*VitalSigns, error)
	ListByAdmission(ctx context.Context, admissionID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error)
}
