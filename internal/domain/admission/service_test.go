package admission

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	admissions map[uuid.UUID]*Admission
	order      []uuid.UUID
	updateErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{admissions: make(map[uuid.UUID]*Admission)}
}

func (m *mockRepo) Create(ctx context.Context, a *Admission) error {
	a.ID = uuid.New()
	a.VersionID = 1
	m.admissions[a.ID] = a
	m.order = append(m.order, a.ID)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	a, ok := m.admissions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) List(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error) {
	var all []*Admission
	for _, id := range m.order {
		a := m.admissions[id]
		if status == "" || a.Status == status {
			all = append(all, a)
		}
	}
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockRepo) Update(ctx context.Context, a *Admission) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.admissions[a.ID]
	if !ok || stored.VersionID != a.VersionID {
		return ErrVersionConflict
	}
	a.VersionID++
	cp := *a
	m.admissions[a.ID] = &cp
	return nil
}

func seedAdmission(t *testing.T, repo *mockRepo, status string) *Admission {
	t.Helper()
	a := &Admission{
		PatientName:   "Tanaka Ichiro",
		PatientNumber: "P-1001",
		Status:        status,
		AdmittedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed admission: %v", err)
	}
	return a
}

func TestService_CreateAdmission_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), nil, nil)

	tests := []struct {
		name string
		a    *Admission
		want string
	}{
		{"missing name", &Admission{PatientNumber: "P-1"}, "patient_name is required"},
		{"missing number", &Admission{PatientName: "Tanaka Ichiro"}, "patient_number is required"},
		{"bad status", &Admission{PatientName: "Tanaka Ichiro", PatientNumber: "P-1", Status: "archived"}, "invalid status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateAdmission(context.Background(), tt.a)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestService_GetAdmission(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil)
	seeded := seedAdmission(t, repo, StatusActive)

	a, err := svc.GetAdmission(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetAdmission: %v", err)
	}
	if a.PatientName != "Tanaka Ichiro" {
		t.Errorf("unexpected admission %+v", a)
	}

	if _, err := svc.GetAdmission(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestService_ListAdmissions(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil)
	seedAdmission(t, repo, StatusActive)
	seedAdmission(t, repo, StatusDischarged)

	items, total, err := svc.ListAdmissions(context.Background(), "", 10, 0)
	if err != nil {
		t.Fatalf("ListAdmissions: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 admissions, got %d (total %d)", len(items), total)
	}

	items, total, err = svc.ListAdmissions(context.Background(), StatusActive, 10, 0)
	if err != nil {
		t.Fatalf("ListAdmissions: %v", err)
	}
	if total != 1 || items[0].Status != StatusActive {
		t.Errorf("status filter not applied: %d results", total)
	}

	if _, _, err := svc.ListAdmissions(context.Background(), "archived", 10, 0); err == nil {
		t.Error("expected error for invalid status filter")
	}
}

func TestService_UpdateAdmission_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), nil, nil)

	err := svc.UpdateAdmission(context.Background(), &Admission{Status: StatusActive})
	if err == nil || !strings.Contains(err.Error(), "patient_name is required") {
		t.Errorf("expected name validation error, got %v", err)
	}

	err = svc.UpdateAdmission(context.Background(), &Admission{PatientName: "Tanaka Ichiro", Status: "archived"})
	if err == nil || !strings.Contains(err.Error(), "invalid status") {
		t.Errorf("expected status validation error, got %v", err)
	}
}

func TestService_UpdateAdmission_VersionConflict(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil)
	seeded := seedAdmission(t, repo, StatusActive)

	stale := *seeded
	stale.VersionID = seeded.VersionID - 1
	err := svc.UpdateAdmission(context.Background(), &stale)
	if err != ErrVersionConflict {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
}

func TestService_Discharge(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil)
	seeded := seedAdmission(t, repo, StatusActive)

	a, err := svc.Discharge(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("Discharge: %v", err)
	}
	if a.Status != StatusDischarged {
		t.Errorf("status = %s, want discharged", a.Status)
	}
	if a.DischargedAt == nil {
		t.Error("discharged_at not set")
	}

	stored, _ := repo.GetByID(context.Background(), seeded.ID)
	if stored.Status != StatusDischarged {
		t.Error("discharge not persisted")
	}
}

func TestService_Discharge_AlreadyDischarged(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil)
	seeded := seedAdmission(t, repo, StatusDischarged)

	_, err := svc.Discharge(context.Background(), seeded.ID)
	if err == nil || !strings.Contains(err.Error(), "already discharged") {
		t.Errorf("expected already-discharged error, got %v", err)
	}
}

func TestService_Discharge_NotFound(t *testing.T) {
	svc := NewService(newMockRepo(), nil, nil)
	_, err := svc.Discharge(context.Background(), uuid.New())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}
