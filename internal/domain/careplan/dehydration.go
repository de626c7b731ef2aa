package careplan

import (
	"fmt"
	"sort"
	"strings"
)

// Question ids for the dehydration flow, in step order.
const (
	QuestionLabHt           = "lab_ht"
	QuestionLabHb           = "lab_hb"
	QuestionVitalPulse      = "vital_pulse"
	QuestionVitalBP         = "vital_bp"
	QuestionVisualSkin      = "visual_skin"
	QuestionVisualOral      = "visual_oral"
	QuestionVisualDizziness = "visual_dizziness"
	QuestionVisualUrine     = "visual_urine"
	QuestionIntakeFrequency = "intake_frequency"
	QuestionIntakeAmount    = "intake_amount"
)

var dehydrationQuestionOrder = []string{
	QuestionLabHt,
	QuestionLabHb,
	QuestionVitalPulse,
	QuestionVitalBP,
	QuestionVisualSkin,
	QuestionVisualOral,
	QuestionVisualDizziness,
	QuestionVisualUrine,
	QuestionIntakeFrequency,
	QuestionIntakeAmount,
}

// EvaluateLabDeviation classifies a lab-value answer against its reference
// range. The four outcomes are mutually exclusive and exhaustive: NO_DATA
// when the answer or its value is absent, HIGH only when an upper limit
// exists and is exceeded, LOW only when a lower limit exists and is
// undershot, NORMAL otherwise. A missing limit never forces HIGH or LOW.
func EvaluateLabDeviation(ans *LabValueAnswer) DeviationStatus {
	if ans == nil || ans.Value == nil {
		return DeviationNoData
	}
	if ans.UpperLimit != nil && *ans.Value > *ans.UpperLimit {
		return DeviationHigh
	}
	if ans.LowerLimit != nil && *ans.Value < *ans.LowerLimit {
		return DeviationLow
	}
	return DeviationNormal
}

// ScoreDehydration computes the additive dehydration risk score. Every
// field contributes independently; a nil field contributes 0. The score
// has no upper clamp.
func ScoreDehydration(d *DehydrationDetails) int {
	score := 0

	for _, lab := range []*LabValueAnswer{d.LabHt, d.LabHb} {
		switch EvaluateLabDeviation(lab) {
		case DeviationHigh:
			score += 3
		case DeviationLow:
			score++
		}
	}

	if d.Pulse != nil {
		switch p := *d.Pulse; {
		case p > 100:
			score += 2
		case p >= 90:
			score++
		}
	}

	if d.SystolicBP != nil {
		switch bp := *d.SystolicBP; {
		case bp < 90:
			score += 3
		case bp < 100:
			score += 2
		}
	}

	for _, v := range []*VisualCondition{d.SkinCondition, d.OralCondition, d.Dizziness, d.UrineVolume} {
		if v == nil {
			continue
		}
		switch *v {
		case ConditionSevere:
			score += 2
		case ConditionMild:
			score++
		}
	}

	if d.IntakeFrequency != nil {
		switch *d.IntakeFrequency {
		case IntakeRare:
			score += 3
		case IntakeModerate:
			score++
		}
	}

	if d.IntakeAmount != nil {
		switch a := *d.IntakeAmount; {
		case a < 500:
			score += 3
		case a < 1000:
			score += 2
		case a < 1500:
			score++
		}
	}

	return score
}

// DetermineRiskLevel maps a score to its risk level. Boundaries are
// inclusive: 0 NONE, 1–4 LOW, 5–9 MODERATE, 10 and above HIGH.
func DetermineRiskLevel(score int) RiskLevel {
	switch {
	case score <= 0:
		return RiskNone
	case score <= 4:
		return RiskLow
	case score <= 9:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// GenerateDehydrationProposals evaluates the proposal rule table. The
// rules are independent of the scoring table and intentionally do not
// mirror its thresholds: scoring distinguishes systolic BP below 90 from
// below 100, but a single low-BP proposal fires for anything below 100.
// Each rule appends at most one proposal; the result is stable-sorted
// ascending by priority so equal priorities keep generation order.
func GenerateDehydrationProposals(d *DehydrationDetails) []Proposal {
	proposals := []Proposal{}
	add := func(id, message string, priority int) {
		proposals = append(proposals, Proposal{
			ID:       id,
			Category: CategoryDehydration,
			Message:  message,
			Priority: priority,
		})
	}

	if EvaluateLabDeviation(d.LabHt) == DeviationHigh || EvaluateLabDeviation(d.LabHb) == DeviationHigh {
		add("dehydration-lab-high",
			"Hemoconcentration markers are above the reference range; consider fluid replacement and notify the attending physician.", 1)
	}

	if d.SystolicBP != nil && *d.SystolicBP < 100 {
		add("dehydration-bp-low",
			"Systolic blood pressure is low; monitor vitals closely and assess circulating volume.", 1)
	}

	if d.Pulse != nil && *d.Pulse > 100 {
		add("dehydration-pulse-high",
			"Pulse is elevated; re-check vitals and watch for signs of hypovolemia.", 2)
	}

	skinSevere := d.SkinCondition != nil && *d.SkinCondition == ConditionSevere
	oralSevere := d.OralCondition != nil && *d.OralCondition == ConditionSevere
	if skinSevere || oralSevere {
		add("dehydration-visual-severe",
			"Severe skin or oral mucosa findings; start active hydration support and document skin care.", 1)
	}

	skinMild := d.SkinCondition != nil && *d.SkinCondition == ConditionMild && !skinSevere
	oralMild := d.OralCondition != nil && *d.OralCondition == ConditionMild && !oralSevere
	if skinMild || oralMild {
		add("dehydration-visual-mild",
			"Mild skin or oral mucosa findings; encourage oral fluids and re-assess next shift.", 3)
	}

	if d.Dizziness != nil {
		switch *d.Dizziness {
		case ConditionSevere:
			add("dehydration-dizziness-severe",
				"Severe dizziness reported; restrict unassisted mobilization and assess orthostatic vitals.", 2)
		case ConditionMild:
			add("dehydration-dizziness-mild",
				"Mild dizziness reported; supervise transfers and encourage fluids.", 3)
		}
	}

	if d.UrineVolume != nil && *d.UrineVolume == ConditionSevere {
		add("dehydration-urine-severe",
			"Urine output is markedly reduced; start strict intake/output recording.", 2)
	}

	if d.IntakeFrequency != nil {
		switch *d.IntakeFrequency {
		case IntakeRare:
			add("dehydration-intake-freq-rare",
				"Patient rarely drinks; schedule regular drinking prompts every round.", 2)
		case IntakeModerate:
			add("dehydration-intake-freq-moderate",
				"Drinking frequency is reduced; offer fluids with every care contact.", 3)
		}
	}

	if d.IntakeAmount != nil {
		switch a := *d.IntakeAmount; {
		case a < 500:
			add("dehydration-intake-very-low",
				"Daily intake is below 500 ml; consider supplemental or parenteral hydration.", 1)
		case a < 1000:
			add("dehydration-intake-low",
				"Daily intake is below 1000 ml; set an intake target and track it.", 2)
		case a < 1500:
			add("dehydration-intake-moderate",
				"Daily intake is below 1500 ml; encourage additional fluids between meals.", 3)
		}
	}

	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].Priority < proposals[j].Priority
	})
	return proposals
}

// noActionSentence is emitted when no proposal rule fired.
const noActionSentence = "No additional action is needed at this time."

// ComposeDehydrationInstructions renders the persisted clinical note:
// the risk-level label, a blank line, then either the no-action sentence
// or one bullet per proposal in sorted order.
func ComposeDehydrationInstructions(level RiskLevel, proposals []Proposal) string {
	var b strings.Builder
	b.WriteString(level.Label())
	b.WriteString("\n\n")
	if len(proposals) == 0 {
		b.WriteString(noActionSentence)
		return b.String()
	}
	for i, p := range proposals {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s", p.Message)
	}
	return b.String()
}

// assessDehydration runs the full pipeline: score, risk level, proposals,
// composed instructions.
func assessDehydration(d *DehydrationDetails) *AssessmentResult {
	level := DetermineRiskLevel(ScoreDehydration(d))
	proposals := GenerateDehydrationProposals(d)
	return &AssessmentResult{
		RiskLevel:      level,
		RiskLevelLabel: level.Label(),
		Proposals:      proposals,
		Instructions:   ComposeDehydrationInstructions(level, proposals),
	}
}
