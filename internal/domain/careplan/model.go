package careplan

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Category identifies one of the ten clinical care-plan categories tracked
// per admission. The set is closed: a plan always owns exactly one item per
// category, created atomically with the plan and never added to or removed.
type Category string

const (
	CategoryDehydration Category = "dehydration"
	CategoryPain        Category = "pain"
	CategoryNutrition   Category = "nutrition"
	CategorySleep       Category = "sleep"
	CategoryMedication  Category = "medication"
	CategoryEnvironment Category = "environment"
	CategoryMobility    Category = "mobility"
	CategoryExcretion   Category = "excretion"
	CategoryCognition   Category = "cognition"
	CategoryInfection   Category = "infection"
)

// AllCategories lists every category in the order items are created and
// displayed. The order is part of the product contract.
var AllCategories = []Category{
	CategoryDehydration,
	CategoryPain,
	CategoryNutrition,
	CategorySleep,
	CategoryMedication,
	CategoryEnvironment,
	CategoryMobility,
	CategoryExcretion,
	CategoryCognition,
	CategoryInfection,
}

// ItemStatus is the per-category assessment status. The wizard drives
// NOT_STARTED → IN_PROGRESS → COMPLETED; NOT_APPLICABLE is reachable only
// through the generic status override, never through wizard save/complete.
type ItemStatus string

const (
	StatusNotStarted    ItemStatus = "NOT_STARTED"
	StatusInProgress    ItemStatus = "IN_PROGRESS"
	StatusCompleted     ItemStatus = "COMPLETED"
	StatusNotApplicable ItemStatus = "NOT_APPLICABLE"
)

var validItemStatuses = map[ItemStatus]bool{
	StatusNotStarted:    true,
	StatusInProgress:    true,
	StatusCompleted:     true,
	StatusNotApplicable: true,
}

// CarePlan maps to the care_plan table. One per admission.
type CarePlan struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AdmissionID uuid.UUID `db:"admission_id" json:"admission_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CarePlanItem maps to the care_plan_item table: one category's tracked
// assessment unit. Details is the category-specific answer blob; it is
// parse-validated against the category's schema on every read and write,
// never trusted implicitly.
type CarePlanItem struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	CarePlanID        uuid.UUID       `db:"care_plan_id" json:"care_plan_id"`
	Category          Category        `db:"category" json:"category"`
	Status            ItemStatus      `db:"status" json:"status"`
	Details           json.RawMessage `db:"details" json:"details,omitempty"`
	Instructions      *string         `db:"instructions" json:"instructions,omitempty"`
	CurrentQuestionID *string         `db:"current_question_id" json:"current_question_id,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// DeviationStatus classifies a lab value relative to its reference range.
type DeviationStatus string

const (
	DeviationNormal DeviationStatus = "NORMAL"
	DeviationHigh   DeviationStatus = "HIGH"
	DeviationLow    DeviationStatus = "LOW"
	DeviationNoData DeviationStatus = "NO_DATA"
)

// VisualCondition grades a visually observed finding.
type VisualCondition string

const (
	ConditionNormal VisualCondition = "NORMAL"
	ConditionMild   VisualCondition = "MILD"
	ConditionSevere VisualCondition = "SEVERE"
)

// IntakeFrequency grades how often the patient drinks.
type IntakeFrequency string

const (
	IntakeFrequent IntakeFrequency = "FREQUENT"
	IntakeModerate IntakeFrequency = "MODERATE"
	IntakeRare     IntakeFrequency = "RARE"
)

// LabValueAnswer is one lab-value answer with its reference range. Value and
// both limits are independently nullable because reference data is
// best-effort.
type LabValueAnswer struct {
	Value           *float64        `json:"value"`
	LowerLimit      *float64        `json:"lower_limit"`
	UpperLimit      *float64        `json:"upper_limit"`
	Unit            *string         `json:"unit"`
	DeviationStatus DeviationStatus `json:"deviation_status,omitempty"`
}

// DehydrationDetails holds the progressive answers of the dehydration
// assessment. Every field is independently nullable; any subset may be
// filled at any point of the wizard.
type DehydrationDetails struct {
	LabHt           *LabValueAnswer  `json:"lab_ht"`
	LabHb           *LabValueAnswer  `json:"lab_hb"`
	Pulse           *int             `json:"pulse"`
	SystolicBP      *int             `json:"systolic_bp"`
	DiastolicBP     *int             `json:"diastolic_bp"`
	SkinCondition   *VisualCondition `json:"skin_condition"`
	OralCondition   *VisualCondition `json:"oral_condition"`
	Dizziness       *VisualCondition `json:"dizziness"`
	UrineVolume     *VisualCondition `json:"urine_volume"`
	IntakeFrequency *IntakeFrequency `json:"intake_frequency"`
	IntakeAmount    *int             `json:"intake_amount"`
}

// PainSiteDetail records the findings for one selected anatomical site.
type PainSiteDetail struct {
	TouchPain    *bool `json:"touch_pain"`
	MovementPain *bool `json:"movement_pain"`
	Numbness     *bool `json:"numbness"`
}

// PainDetails holds the progressive answers of the pain assessment.
type PainDetails struct {
	DaytimePain        *bool                  `json:"daytime_pain"`
	NighttimeAwakening *bool                  `json:"nighttime_awakening"`
	SelectedSiteIDs    []int                  `json:"selected_site_ids"`
	SiteDetails        map[int]PainSiteDetail `json:"site_details,omitempty"`
	AffectsSleep       *bool                  `json:"affects_sleep"`
	AffectsAppetite    *bool                  `json:"affects_appetite"`
	AffectsMobility    *bool                  `json:"affects_mobility"`
}

// RiskLevel is the dehydration risk classification derived from the score.
type RiskLevel string

const (
	RiskNone     RiskLevel = "NONE"
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

var riskLevelLabels = map[RiskLevel]string{
	RiskNone:     "Dehydration risk: none",
	RiskLow:      "Dehydration risk: low",
	RiskModerate: "Dehydration risk: moderate",
	RiskHigh:     "Dehydration risk: high",
}

// Label returns the human-readable header for the risk level.
func (r RiskLevel) Label() string { return riskLevelLabels[r] }

// Proposal is an actionable clinical suggestion produced by the proposal
// rules. Priority is a small positive integer used purely for display
// ordering; lower is more urgent. Ties keep generation order.
type Proposal struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Priority int      `json:"priority"`
}

// AssessmentResult is derived on the fly from a completed item's details.
// It is never persisted as structured data; only the composed instructions
// text is stored on the item.
type AssessmentResult struct {
	RiskLevel      RiskLevel  `json:"risk_level,omitempty"`
	RiskLevelLabel string     `json:"risk_level_label,omitempty"`
	Proposals      []Proposal `json:"proposals"`
	Instructions   string     `json:"instructions"`
}

// AssessmentData is the wire shape returned by every wizard operation.
type AssessmentData struct {
	ItemID            uuid.UUID         `json:"item_id"`
	Category          Category          `json:"category"`
	Status            ItemStatus        `json:"status"`
	CurrentQuestionID *string           `json:"current_question_id"`
	Details           json.RawMessage   `json:"details"`
	AssessmentResult  *AssessmentResult `json:"assessment_result"`
}
