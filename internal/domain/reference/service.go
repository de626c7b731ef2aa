package reference

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service ingests and serves the observations the assessment flows read:
// lab results with their reference ranges and vital-sign recordings.
type Service struct {
	labs   LabResultRepository
	vitals VitalSignsRepository
}

func NewService(labs LabResultRepository, vitals VitalSignsRepository) *Service {
	return &Service{labs: labs, vitals: vitals}
}

func (s *Service) RecordLabResult(ctx context.Context, lr *LabResult) error {
	if lr.AdmissionID == uuid.Nil {
		return fmt.Errorf("admission_id is required")
	}
	if lr.ItemCode == "" {
		return fmt.Errorf("item_code is required")
	}
	if lr.LowerLimit != nil && lr.UpperLimit != nil && *lr.LowerLimit > *lr.UpperLimit {
		return fmt.Errorf("lower_limit exceeds upper_limit")
	}
	if lr.ObservedAt.IsZero() {
		lr.ObservedAt = time.Now().UTC()
	}
	return s.labs.Create(ctx, lr)
}

func (s *Service) RecordVitalSigns(ctx context.Context, vs *VitalSigns) error {
	if vs.AdmissionID == uuid.Nil {
		return fmt.Errorf("admission_id is required")
	}
	if vs.Pulse == nil && vs.SystolicBP == nil && vs.DiastolicBP == nil {
		return fmt.Errorf("at least one measurement is required")
	}
	if vs.ObservedAt.IsZero() {
		vs.ObservedAt = time.Now().UTC()
	}
	return s.vitals.Create(ctx, vs)
}

func (s *Service) ListLabResults(ctx context.Context, admissionID uuid.UUID, limit, offset int) ([]*LabResult, int, error) {
	return s.labs.ListByAdmission(ctx, admissionID, limit, offset)
}

func (s *Service) ListVitalSigns(ctx context.Context, admissionID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error) {
	return s.vitals.ListByAdmission(ctx, admissionID, limit, offset)
}
