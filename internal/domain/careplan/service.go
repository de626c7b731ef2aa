package careplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PlanView is the read shape for a full care plan: the plan row, its ten
// items, and the overall status projected from them at read time. The
// overall status is never stored.
type PlanView struct {
	CarePlan
	OverallStatus ItemStatus      `json:"overall_status"`
	Items         []*CarePlanItem `json:"items"`
}

// Service manages care plans and the generic per-item status override.
// The wizard owns everything that touches answers.
type Service struct {
	plans PlanRepository
	items ItemRepository
}

func NewService(plans PlanRepository, items ItemRepository) *Service {
	return &Service{plans: plans, items: items}
}

// CreateForAdmission creates the admission's care plan and one NOT_STARTED
// item per category. Callers run it inside the admission-creation
// transaction so a plan never exists partially populated.
func (s *Service) CreateForAdmission(ctx context.Context, admissionID uuid.UUID) (*CarePlan, error) {
	plan := &CarePlan{AdmissionID: admissionID}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, persistenceErr("create care plan", err)
	}
	for _, c := range AllCategories {
		item := &CarePlanItem{
			CarePlanID: plan.ID,
			Category:   c,
			Status:     StatusNotStarted,
		}
		if err := s.items.Create(ctx, item); err != nil {
			return nil, persistenceErr(fmt.Sprintf("create %s care plan item", c), err)
		}
	}
	return plan, nil
}

// GetByAdmission loads the admission's plan with its items and the
// projected overall status.
func (s *Service) GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*PlanView, error) {
	plan, err := s.plans.GetByAdmission(ctx, admissionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundErr("care plan")
		}
		return nil, persistenceErr("load care plan", err)
	}
	return s.view(ctx, plan)
}

// GetPlan loads a plan by its own id with items and projected status.
func (s *Service) GetPlan(ctx context.Context, planID uuid.UUID) (*PlanView, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundErr("care plan")
		}
		return nil, persistenceErr("load care plan", err)
	}
	return s.view(ctx, plan)
}

func (s *Service) view(ctx context.Context, plan *CarePlan) (*PlanView, error) {
	items, err := s.items.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, persistenceErr("list care plan items", err)
	}
	statuses := make([]ItemStatus, len(items))
	for i, it := range items {
		statuses[i] = it.Status
	}
	return &PlanView{
		CarePlan:      *plan,
		OverallStatus: DeriveOverallStatus(statuses),
		Items:         items,
	}, nil
}

// OverrideItemStatus sets an item's status directly, outside the wizard.
// This is the only way an item becomes NOT_APPLICABLE. Moving away from
// IN_PROGRESS clears the resume pointer.
func (s *Service) OverrideItemStatus(ctx context.Context, itemID uuid.UUID, status ItemStatus) (*CarePlanItem, error) {
	if !validItemStatuses[status] {
		return nil, invalidInputErr([]FieldError{{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", status),
		}})
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundErr("care plan item")
		}
		return nil, persistenceErr("load care plan item", err)
	}
	if err := s.items.UpdateStatus(ctx, itemID, status); err != nil {
		return nil, persistenceErr("update item status", err)
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, persistenceErr("reload care plan item", err)
	}
	return item, nil
}
