package admission

import (
	"time"

	"github.com/google/uuid"
)

// Admission maps to the admission table: one inpatient stay. A care plan
// is created together with the admission and lives for the whole stay.
type Admission struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientName   string     `db:"patient_name" json:"patient_name"`
	PatientNumber string     `db:"patient_number" json:"patient_number"`
	DateOfBirth   *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Sex           *string    `db:"sex" json:"sex,omitempty"`
	Ward          *string    `db:"ward" json:"ward,omitempty"`
	Room          *string    `db:"room" json:"room,omitempty"`
	Status        string     `db:"status" json:"status"`
	AdmittedAt    time.Time  `db:"admitted_at" json:"admitted_at"`
	DischargedAt  *time.Time `db:"discharged_at" json:"discharged_at,omitempty"`
	VersionID     int        `db:"version_id" json:"version_id"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// GetVersionID returns the current version.
func (a *Admission) GetVersionID() int { return a.VersionID }

// SetVersionID sets the current version.
func (a *Admission) SetVersionID(v int) { a.VersionID = v }

const (
	StatusActive     = "active"
	StatusDischarged = "discharged"
)
