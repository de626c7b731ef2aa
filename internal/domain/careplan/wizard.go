package careplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/caremesh/careplan/internal/domain/reference"
)

// Wizard is the assessment engine: it drives the one-question-at-a-time
// flow for assessable categories, validating details on every read and
// write and deriving results only from completed items.
type Wizard struct {
	registry *Registry
	plans    PlanRepository
	items    ItemRepository
	labs     reference.LabResultRepository
	vitals   reference.VitalSignsRepository
	logger   zerolog.Logger
}

func NewWizard(
	registry *Registry,
	plans PlanRepository,
	items ItemRepository,
	labs reference.LabResultRepository,
	vitals reference.VitalSignsRepository,
	logger zerolog.Logger,
) *Wizard {
	return &Wizard{
		registry: registry,
		plans:    plans,
		items:    items,
		labs:     labs,
		vitals:   vitals,
		logger:   logger,
	}
}

// loadItem fetches the item and resolves its definition, enforcing that
// the item belongs to the requested category and that the category has an
// assessment flow at all.
func (w *Wizard) loadItem(ctx context.Context, itemID uuid.UUID, category Category) (*CarePlanItem, *Definition, error) {
	def := w.registry.Lookup(category)
	if def == nil {
		return nil, nil, &Error{Kind: KindInvalidCategory, Message: fmt.Sprintf("unknown category %s", category)}
	}
	if !def.Assessable() {
		return nil, nil, &Error{Kind: KindInvalidCategory, Message: fmt.Sprintf("category %s has no assessment flow", category)}
	}

	item, err := w.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, notFoundErr("care plan item")
		}
		return nil, nil, persistenceErr("load care plan item", err)
	}
	if item.Category != category {
		return nil, nil, invalidCategoryErr(item.Category, category)
	}
	return item, def, nil
}

func (w *Wizard) parseStored(def *Definition, item *CarePlanItem) (any, error) {
	parsed, fields := def.parse(item.Details)
	if fields != nil {
		return nil, persistenceErr("decode stored details",
			fmt.Errorf("item %s: %s: %s", item.ID, fields[0].Field, fields[0].Message))
	}
	return parsed, nil
}

// GetAssessmentData returns the current wizard state for an item. For the
// dehydration category the answers are overlaid with the latest reference
// data first: fresh lab results always replace the stored lab answers,
// while fresh vitals fill only answers that are still empty, so a value a
// clinician typed in is never silently replaced. The assessment result is
// derived on the fly, and only for a COMPLETED item.
func (w *Wizard) GetAssessmentData(ctx context.Context, itemID uuid.UUID, category Category) (*AssessmentData, error) {
	item, def, err := w.loadItem(ctx, itemID, category)
	if err != nil {
		return nil, err
	}
	parsed, err := w.parseStored(def, item)
	if err != nil {
		return nil, err
	}

	if d, ok := parsed.(*DehydrationDetails); ok {
		plan, err := w.plans.GetByID(ctx, item.CarePlanID)
		if err != nil {
			return nil, persistenceErr("load care plan", err)
		}
		w.mergeReferenceData(ctx, plan.AdmissionID, d)
	}

	details, err := normalizeDetails(parsed)
	if err != nil {
		return nil, persistenceErr("encode details", err)
	}

	data := &AssessmentData{
		ItemID:            item.ID,
		Category:          item.Category,
		Status:            item.Status,
		CurrentQuestionID: item.CurrentQuestionID,
		Details:           details,
	}
	if item.Status == StatusCompleted {
		data.AssessmentResult = def.assess(parsed)
	}
	return data, nil
}

// SaveProgress persists a partial answer set and the resume pointer. The
// item is forced to IN_PROGRESS regardless of its current status, so
// saving over a COMPLETED item reopens it.
func (w *Wizard) SaveProgress(ctx context.Context, itemID uuid.UUID, category Category, questionID string, raw json.RawMessage) (*AssessmentData, error) {
	item, def, err := w.loadItem(ctx, itemID, category)
	if err != nil {
		return nil, err
	}
	if !def.HasQuestion(questionID) {
		return nil, invalidInputErr([]FieldError{{
			Field:   "current_question_id",
			Message: fmt.Sprintf("unknown question %q for category %s", questionID, category),
		}})
	}
	parsed, fields := def.parse(raw)
	if fields != nil {
		return nil, invalidInputErr(fields)
	}
	details, err := normalizeDetails(parsed)
	if err != nil {
		return nil, persistenceErr("encode details", err)
	}

	if err := w.items.UpdateProgress(ctx, item.ID, details, questionID); err != nil {
		return nil, persistenceErr("save assessment progress", err)
	}

	return &AssessmentData{
		ItemID:            item.ID,
		Category:          item.Category,
		Status:            StatusInProgress,
		CurrentQuestionID: &questionID,
		Details:           details,
	}, nil
}

// Complete validates the final answer set, derives the assessment result
// and persists the terminal snapshot in one statement: COMPLETED status,
// cleared resume pointer, composed instructions.
func (w *Wizard) Complete(ctx context.Context, itemID uuid.UUID, category Category, raw json.RawMessage) (*AssessmentData, error) {
	item, def, err := w.loadItem(ctx, itemID, category)
	if err != nil {
		return nil, err
	}
	parsed, fields := def.parse(raw)
	if fields != nil {
		return nil, invalidInputErr(fields)
	}
	details, err := normalizeDetails(parsed)
	if err != nil {
		return nil, persistenceErr("encode details", err)
	}

	result := def.assess(parsed)
	if err := w.items.Complete(ctx, item.ID, details, result.Instructions); err != nil {
		return nil, persistenceErr("complete assessment", err)
	}

	return &AssessmentData{
		ItemID:           item.ID,
		Category:         item.Category,
		Status:           StatusCompleted,
		Details:          details,
		AssessmentResult: result,
	}, nil
}

// mergeReferenceData overlays the latest observations onto the answers.
// Labs always win: a fresh result replaces whatever was stored. Vitals
// only fill gaps: a recorded answer is kept even when a newer measurement
// exists. Reference data is best-effort; fetch failures are logged and
// the stored answers stand.
func (w *Wizard) mergeReferenceData(ctx context.Context, admissionID uuid.UUID, d *DehydrationDetails) {
	if lr := w.latestLab(ctx, admissionID, reference.ItemCodeHematocrit); lr != nil {
		d.LabHt = labValueAnswer(lr)
	}
	if lr := w.latestLab(ctx, admissionID, reference.ItemCodeHemoglobin); lr != nil {
		d.LabHb = labValueAnswer(lr)
	}

	vs, err := w.vitals.Latest(ctx, admissionID)
	if err != nil {
		if !errors.Is(err, reference.ErrNoData) {
			w.logger.Warn().Err(err).Str("admission_id", admissionID.String()).
				Msg("failed to fetch latest vital signs")
		}
		return
	}
	if d.Pulse == nil {
		d.Pulse = vs.Pulse
	}
	if d.SystolicBP == nil {
		d.SystolicBP = vs.SystolicBP
	}
	if d.DiastolicBP == nil {
		d.DiastolicBP = vs.DiastolicBP
	}
}

func (w *Wizard) latestLab(ctx context.Context, admissionID uuid.UUID, itemCode string) *reference.LabResult {
	lr, err := w.labs.LatestByItem(ctx, admissionID, itemCode)
	if err != nil {
		if !errors.Is(err, reference.ErrNoData) {
			w.logger.Warn().Err(err).Str("admission_id", admissionID.String()).
				Str("item_code", itemCode).Msg("failed to fetch latest lab result")
		}
		return nil
	}
	return lr
}

func labValueAnswer(lr *reference.LabResult) *LabValueAnswer {
	v := lr.Value
	ans := &LabValueAnswer{
		Value:      &v,
		LowerLimit: lr.LowerLimit,
		UpperLimit: lr.UpperLimit,
		Unit:       lr.Unit,
	}
	ans.DeviationStatus = EvaluateLabDeviation(ans)
	return ans
}

// normalizeDetails re-encodes parsed details for persistence and response,
// stamping the deviation status onto every present lab answer so the
// stored blob is self-describing.
func normalizeDetails(parsed any) (json.RawMessage, error) {
	if d, ok := parsed.(*DehydrationDetails); ok {
		if d.LabHt != nil {
			d.LabHt.DeviationStatus = EvaluateLabDeviation(d.LabHt)
		}
		if d.LabHb != nil {
			d.LabHb.DeviationStatus = EvaluateLabDeviation(d.LabHb)
		}
	}
	return json.Marshal(parsed)
}
