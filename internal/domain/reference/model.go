package reference

import (
	"time"

	"github.com/google/uuid"
)

// LabResult maps to the lab_result table: one observed lab value with its
// reference range as reported by the laboratory system. Limits and unit
// are nullable; not every item carries a range.
type LabResult struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AdmissionID uuid.UUID `db:"admission_id" json:"admission_id"`
	ItemCode    string    `db:"item_code" json:"item_code"`
	Value       float64   `db:"value" json:"value"`
	Unit        *string   `db:"unit" json:"unit,omitempty"`
	LowerLimit  *float64  `db:"lower_limit" json:"lower_limit,omitempty"`
	UpperLimit  *float64  `db:"upper_limit" json:"upper_limit,omitempty"`
	ObservedAt  time.Time `db:"observed_at" json:"observed_at"`
}

// VitalSigns maps to the vital_signs table: one recorded set of vitals.
// Individual measurements are nullable; a recording may be partial.
type VitalSigns struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AdmissionID uuid.UUID `db:"admission_id" json:"admission_id"`
	Pulse       *int      `db:"pulse" json:"pulse,omitempty"`
	SystolicBP  *int      `db:"systolic_bp" json:"systolic_bp,omitempty"`
	DiastolicBP *int      `db:"diastolic_bp" json:"diastolic_bp,omitempty"`
	ObservedAt  time.Time `db:"observed_at" json:"observed_at"`
}

// Lab item codes the assessment flows read.
const (
	ItemCodeHematocrit = "Ht"
	ItemCodeHemoglobin = "Hb"
)
