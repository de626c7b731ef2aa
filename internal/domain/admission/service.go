package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caremesh/careplan/internal/domain/careplan"
	"github.com/caremesh/careplan/internal/platform/db"
)

type Service struct {
	repo  Repository
	plans *careplan.Service
	pool  *pgxpool.Pool
}

func NewService(repo Repository, plans *careplan.Service, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, plans: plans, pool: pool}
}

var validStatuses = map[string]bool{
	StatusActive:     true,
	StatusDischarged: true,
}

// CreateAdmission registers the stay and creates its care plan in the
// same transaction, so an admission never exists without its ten
// category items.
func (s *Service) CreateAdmission(ctx context.Context, a *Admission) error {
	if a.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if a.PatientNumber == "" {
		return fmt.Errorf("patient_number is required")
	}
	if a.Status == "" {
		a.Status = StatusActive
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if a.AdmittedAt.IsZero() {
		a.AdmittedAt = time.Now().UTC()
	}

	return db.WithTx(ctx, s.pool, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, a); err != nil {
			return err
		}
		_, err := s.plans.CreateForAdmission(ctx, a.ID)
		return err
	})
}

func (s *Service) GetAdmission(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAdmissions(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.List(ctx, status, limit, offset)
}

func (s *Service) UpdateAdmission(ctx context.Context, a *Admission) error {
	if a.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.repo.Update(ctx, a)
}

// Discharge closes the stay. The care plan stays readable afterwards.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID) (*Admission, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("admission not found: %w", err)
	}
	if a.Status == StatusDischarged {
		return nil, fmt.Errorf("admission is already discharged")
	}
	now := time.Now().UTC()
	a.Status = StatusDischarged
	a.DischargedAt = &now
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
