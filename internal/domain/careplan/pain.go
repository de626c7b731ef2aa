package careplan

import (
	"fmt"
	"strings"
)

// Question ids for the pain flow, in step order. The per-site detail step
// is skipped, in both directions, while no sites are selected.
const (
	QuestionPainTiming  = "pain_timing"
	QuestionPainSites   = "pain_sites"
	QuestionSiteDetails = "site_details"
	QuestionPainImpact  = "pain_impact"
)

var painQuestionOrder = []string{
	QuestionPainTiming,
	QuestionPainSites,
	QuestionSiteDetails,
	QuestionPainImpact,
}

// painSiteLabels maps the 23 selectable anatomical site ids to their
// display names. Site ids are stable and referenced from stored details.
var painSiteLabels = map[int]string{
	1:  "Head",
	2:  "Neck",
	3:  "Right shoulder",
	4:  "Left shoulder",
	5:  "Chest",
	6:  "Abdomen",
	7:  "Upper back",
	8:  "Lower back",
	9:  "Right upper arm",
	10: "Left upper arm",
	11: "Right elbow",
	12: "Left elbow",
	13: "Right forearm",
	14: "Left forearm",
	15: "Right hand",
	16: "Left hand",
	17: "Right hip",
	18: "Left hip",
	19: "Right thigh",
	20: "Left thigh",
	21: "Right knee",
	22: "Left knee",
	23: "Lower legs and feet",
}

// PainSiteLabel returns the display name for a site id, or empty when the
// id is not in the catalog.
func PainSiteLabel(id int) string { return painSiteLabels[id] }

// noPainSentence is the sentinel emitted when nothing was reported.
const noPainSentence = "No pain reported."

// ComposePainInstructions renders the persisted clinical note for the pain
// category. Pain has no score or risk level by design: the note is one
// line per true finding, labeled with the site or impact name. When every
// boolean is nil or false and no sites are selected, the fixed no-pain
// sentinel is returned instead of an empty body.
func ComposePainInstructions(d *PainDetails) string {
	var lines []string

	if d.DaytimePain != nil && *d.DaytimePain {
		lines = append(lines, "Pain present during the day.")
	}
	if d.NighttimeAwakening != nil && *d.NighttimeAwakening {
		lines = append(lines, "Wakes at night because of pain.")
	}

	for _, id := range d.SelectedSiteIDs {
		detail, ok := d.SiteDetails[id]
		if !ok {
			continue
		}
		label := PainSiteLabel(id)
		if detail.TouchPain != nil && *detail.TouchPain {
			lines = append(lines, fmt.Sprintf("%s: pain on touch.", label))
		}
		if detail.MovementPain != nil && *detail.MovementPain {
			lines = append(lines, fmt.Sprintf("%s: pain on movement.", label))
		}
		if detail.Numbness != nil && *detail.Numbness {
			lines = append(lines, fmt.Sprintf("%s: numbness.", label))
		}
	}

	if d.AffectsSleep != nil && *d.AffectsSleep {
		lines = append(lines, "Pain interferes with sleep.")
	}
	if d.AffectsAppetite != nil && *d.AffectsAppetite {
		lines = append(lines, "Pain interferes with appetite.")
	}
	if d.AffectsMobility != nil && *d.AffectsMobility {
		lines = append(lines, "Pain interferes with mobility.")
	}

	if len(lines) == 0 && len(d.SelectedSiteIDs) == 0 {
		return noPainSentence
	}
	return strings.Join(lines, "\n")
}

// NextPainQuestionID returns the step after current, skipping the per-site
// detail step when no sites are selected. Returns empty at the end.
func NextPainQuestionID(current string, d *PainDetails) string {
	return stepPainQuestion(current, d, +1)
}

// PrevPainQuestionID returns the step before current with the same skip
// rule. Returns empty at the start.
func PrevPainQuestionID(current string, d *PainDetails) string {
	return stepPainQuestion(current, d, -1)
}

func stepPainQuestion(current string, d *PainDetails, dir int) string {
	idx := -1
	for i, q := range painQuestionOrder {
		if q == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}
	for i := idx + dir; i >= 0 && i < len(painQuestionOrder); i += dir {
		q := painQuestionOrder[i]
		if q == QuestionSiteDetails && len(d.SelectedSiteIDs) == 0 {
			continue
		}
		return q
	}
	return ""
}

// assessPain composes the pain result. No score or level exists for this
// category; only the instructions carry information.
func assessPain(d *PainDetails) *AssessmentResult {
	return &AssessmentResult{
		Proposals:    []Proposal{},
		Instructions: ComposePainInstructions(d),
	}
}
