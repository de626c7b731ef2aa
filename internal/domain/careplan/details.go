package careplan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Input bounds enforced before anything reaches persistence.
const (
	maxPulse        = 300
	maxPressure     = 300
	maxIntakeAmount = 10000
)

// strictDecode unmarshals raw into v, rejecting unknown fields. The stored
// blob shape is never trusted implicitly; every read and write goes
// through this.
func strictDecode(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parseDehydrationDetails(raw json.RawMessage) (any, []FieldError) {
	d := &DehydrationDetails{}
	if len(raw) == 0 {
		return d, nil
	}
	if err := strictDecode(raw, d); err != nil {
		return nil, []FieldError{{Field: "details", Message: err.Error()}}
	}

	var fields []FieldError
	addRange := func(field string, v *int, max int) {
		if v != nil && (*v < 0 || *v > max) {
			fields = append(fields, FieldError{
				Field:   field,
				Message: fmt.Sprintf("must be between 0 and %d", max),
			})
		}
	}
	addRange("pulse", d.Pulse, maxPulse)
	addRange("systolic_bp", d.SystolicBP, maxPressure)
	addRange("diastolic_bp", d.DiastolicBP, maxPressure)
	addRange("intake_amount", d.IntakeAmount, maxIntakeAmount)

	checkCondition := func(field string, v *VisualCondition) {
		if v == nil {
			return
		}
		switch *v {
		case ConditionNormal, ConditionMild, ConditionSevere:
		default:
			fields = append(fields, FieldError{Field: field, Message: "invalid condition value"})
		}
	}
	checkCondition("skin_condition", d.SkinCondition)
	checkCondition("oral_condition", d.OralCondition)
	checkCondition("dizziness", d.Dizziness)
	checkCondition("urine_volume", d.UrineVolume)

	if d.IntakeFrequency != nil {
		switch *d.IntakeFrequency {
		case IntakeFrequent, IntakeModerate, IntakeRare:
		default:
			fields = append(fields, FieldError{Field: "intake_frequency", Message: "invalid frequency value"})
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return d, nil
}

func parsePainDetails(raw json.RawMessage) (any, []FieldError) {
	d := &PainDetails{}
	if len(raw) == 0 {
		return d, nil
	}
	if err := strictDecode(raw, d); err != nil {
		return nil, []FieldError{{Field: "details", Message: err.Error()}}
	}

	var fields []FieldError
	selected := make(map[int]bool, len(d.SelectedSiteIDs))
	for i, id := range d.SelectedSiteIDs {
		if _, ok := painSiteLabels[id]; !ok {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("selected_site_ids[%d]", i),
				Message: fmt.Sprintf("unknown site id %d", id),
			})
			continue
		}
		if selected[id] {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("selected_site_ids[%d]", i),
				Message: fmt.Sprintf("duplicate site id %d", id),
			})
		}
		selected[id] = true
	}
	for id := range d.SiteDetails {
		if !selected[id] {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("site_details.%d", id),
				Message: "detail recorded for a site that is not selected",
			})
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return d, nil
}
