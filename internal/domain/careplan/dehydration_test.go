package careplan

import (
	"strings"
	"testing"
)

func fptr(v float64) *float64                 { return &v }
func iptr(v int) *int                         { return &v }
func bptr(v bool) *bool                       { return &v }
func cond(v VisualCondition) *VisualCondition { return &v }
func freq(v IntakeFrequency) *IntakeFrequency { return &v }

func TestEvaluateLabDeviation(t *testing.T) {
	tests := []struct {
		name string
		ans  *LabValueAnswer
		want DeviationStatus
	}{
		{"nil answer", nil, DeviationNoData},
		{"nil value", &LabValueAnswer{UpperLimit: fptr(50)}, DeviationNoData},
		{"above upper", &LabValueAnswer{Value: fptr(55), LowerLimit: fptr(40), UpperLimit: fptr(50)}, DeviationHigh},
		{"below lower", &LabValueAnswer{Value: fptr(35), LowerLimit: fptr(40), UpperLimit: fptr(50)}, DeviationLow},
		{"within range", &LabValueAnswer{Value: fptr(45), LowerLimit: fptr(40), UpperLimit: fptr(50)}, DeviationNormal},
		{"at upper limit", &LabValueAnswer{Value: fptr(50), LowerLimit: fptr(40), UpperLimit: fptr(50)}, DeviationNormal},
		{"at lower limit", &LabValueAnswer{Value: fptr(40), LowerLimit: fptr(40), UpperLimit: fptr(50)}, DeviationNormal},
		{"no limits", &LabValueAnswer{Value: fptr(999)}, DeviationNormal},
		{"only lower, above it", &LabValueAnswer{Value: fptr(45), LowerLimit: fptr(40)}, DeviationNormal},
		{"only upper, below it", &LabValueAnswer{Value: fptr(45), UpperLimit: fptr(50)}, DeviationNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateLabDeviation(tt.ans); got != tt.want {
				t.Errorf("EvaluateLabDeviation() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScoreDehydration_EmptyDetails(t *testing.T) {
	if got := ScoreDehydration(&DehydrationDetails{}); got != 0 {
		t.Errorf("expected score 0 for empty details, got %d", got)
	}
}

func TestScoreDehydration_SingleContributors(t *testing.T) {
	high := &LabValueAnswer{Value: fptr(55), UpperLimit: fptr(50)}
	low := &LabValueAnswer{Value: fptr(35), LowerLimit: fptr(40)}

	tests := []struct {
		name string
		d    *DehydrationDetails
		want int
	}{
		{"lab ht high", &DehydrationDetails{LabHt: high}, 3},
		{"lab ht low", &DehydrationDetails{LabHt: low}, 1},
		{"lab hb high", &DehydrationDetails{LabHb: high}, 3},
		{"both labs high", &DehydrationDetails{LabHt: high, LabHb: high}, 6},
		{"pulse 89", &DehydrationDetails{Pulse: iptr(89)}, 0},
		{"pulse 90", &DehydrationDetails{Pulse: iptr(90)}, 1},
		{"pulse 100", &DehydrationDetails{Pulse: iptr(100)}, 1},
		{"pulse 101", &DehydrationDetails{Pulse: iptr(101)}, 2},
		{"sbp 89", &DehydrationDetails{SystolicBP: iptr(89)}, 3},
		{"sbp 90", &DehydrationDetails{SystolicBP: iptr(90)}, 2},
		{"sbp 99", &DehydrationDetails{SystolicBP: iptr(99)}, 2},
		{"sbp 100", &DehydrationDetails{SystolicBP: iptr(100)}, 0},
		{"skin mild", &DehydrationDetails{SkinCondition: cond(ConditionMild)}, 1},
		{"skin severe", &DehydrationDetails{SkinCondition: cond(ConditionSevere)}, 2},
		{"skin normal", &DehydrationDetails{SkinCondition: cond(ConditionNormal)}, 0},
		{"all visuals severe", &DehydrationDetails{
			SkinCondition: cond(ConditionSevere), OralCondition: cond(ConditionSevere),
			Dizziness: cond(ConditionSevere), UrineVolume: cond(ConditionSevere)}, 8},
		{"intake rare", &DehydrationDetails{IntakeFrequency: freq(IntakeRare)}, 3},
		{"intake moderate", &DehydrationDetails{IntakeFrequency: freq(IntakeModerate)}, 1},
		{"intake frequent", &DehydrationDetails{IntakeFrequency: freq(IntakeFrequent)}, 0},
		{"amount 499", &DehydrationDetails{IntakeAmount: iptr(499)}, 3},
		{"amount 500", &DehydrationDetails{IntakeAmount: iptr(500)}, 2},
		{"amount 999", &DehydrationDetails{IntakeAmount: iptr(999)}, 2},
		{"amount 1000", &DehydrationDetails{IntakeAmount: iptr(1000)}, 1},
		{"amount 1499", &DehydrationDetails{IntakeAmount: iptr(1499)}, 1},
		{"amount 1500", &DehydrationDetails{IntakeAmount: iptr(1500)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreDehydration(tt.d); got != tt.want {
				t.Errorf("ScoreDehydration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreDehydration_Additive(t *testing.T) {
	d := &DehydrationDetails{
		LabHt:           &LabValueAnswer{Value: fptr(55), UpperLimit: fptr(50)}, // +3
		Pulse:           iptr(105),                                             // +2
		SystolicBP:      iptr(85),                                              // +3
		SkinCondition:   cond(ConditionMild),                                   // +1
		IntakeFrequency: freq(IntakeRare),                                      // +3
		IntakeAmount:    iptr(400),                                             // +3
	}
	if got := ScoreDehydration(d); got != 15 {
		t.Errorf("ScoreDehydration() = %d, want 15", got)
	}
}

func TestDetermineRiskLevel(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskNone},
		{1, RiskLow},
		{4, RiskLow},
		{5, RiskModerate},
		{9, RiskModerate},
		{10, RiskHigh},
		{25, RiskHigh},
	}
	for _, tt := range tests {
		if got := DetermineRiskLevel(tt.score); got != tt.want {
			t.Errorf("DetermineRiskLevel(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRiskLevel_Label(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  string
	}{
		{RiskNone, "Dehydration risk: none"},
		{RiskLow, "Dehydration risk: low"},
		{RiskModerate, "Dehydration risk: moderate"},
		{RiskHigh, "Dehydration risk: high"},
	}
	for _, tt := range tests {
		if got := tt.level.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestGenerateDehydrationProposals_Empty(t *testing.T) {
	proposals := GenerateDehydrationProposals(&DehydrationDetails{})
	if len(proposals) != 0 {
		t.Errorf("expected no proposals, got %d", len(proposals))
	}
}

func TestGenerateDehydrationProposals_LabHighFiresOnce(t *testing.T) {
	high := &LabValueAnswer{Value: fptr(55), UpperLimit: fptr(50)}
	proposals := GenerateDehydrationProposals(&DehydrationDetails{LabHt: high, LabHb: high})
	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}
	if proposals[0].ID != "dehydration-lab-high" {
		t.Errorf("expected dehydration-lab-high, got %s", proposals[0].ID)
	}
	if proposals[0].Category != CategoryDehydration {
		t.Errorf("expected category dehydration, got %s", proposals[0].Category)
	}
}

func TestGenerateDehydrationProposals_SingleBPRule(t *testing.T) {
	// Scoring distinguishes <90 from <100 but the proposal table has a
	// single rule for anything below 100.
	for _, sbp := range []int{85, 95} {
		proposals := GenerateDehydrationProposals(&DehydrationDetails{SystolicBP: iptr(sbp)})
		if len(proposals) != 1 || proposals[0].ID != "dehydration-bp-low" {
			t.Errorf("sbp %d: expected single dehydration-bp-low proposal, got %+v", sbp, proposals)
		}
	}
	proposals := GenerateDehydrationProposals(&DehydrationDetails{SystolicBP: iptr(100)})
	if len(proposals) != 0 {
		t.Errorf("sbp 100: expected no proposals, got %d", len(proposals))
	}
}

func TestGenerateDehydrationProposals_VisualRules(t *testing.T) {
	tests := []struct {
		name string
		d    *DehydrationDetails
		want []string
	}{
		{"skin severe only", &DehydrationDetails{SkinCondition: cond(ConditionSevere)},
			[]string{"dehydration-visual-severe"}},
		{"skin mild only", &DehydrationDetails{SkinCondition: cond(ConditionMild)},
			[]string{"dehydration-visual-mild"}},
		{"severe and mild on different findings", &DehydrationDetails{
			SkinCondition: cond(ConditionSevere), OralCondition: cond(ConditionMild)},
			[]string{"dehydration-visual-severe", "dehydration-visual-mild"}},
		{"both severe fires once", &DehydrationDetails{
			SkinCondition: cond(ConditionSevere), OralCondition: cond(ConditionSevere)},
			[]string{"dehydration-visual-severe"}},
		{"normal", &DehydrationDetails{SkinCondition: cond(ConditionNormal)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposals := GenerateDehydrationProposals(tt.d)
			got := make([]string, 0, len(proposals))
			for _, p := range proposals {
				got = append(got, p.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got proposals %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("proposal %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerateDehydrationProposals_SortedByPriority(t *testing.T) {
	d := &DehydrationDetails{
		Pulse:           iptr(110),            // priority 2
		IntakeAmount:    iptr(400),            // priority 1
		IntakeFrequency: freq(IntakeModerate), // priority 3
	}
	proposals := GenerateDehydrationProposals(d)
	if len(proposals) != 3 {
		t.Fatalf("expected 3 proposals, got %d", len(proposals))
	}
	for i := 1; i < len(proposals); i++ {
		if proposals[i-1].Priority > proposals[i].Priority {
			t.Errorf("proposals not sorted by priority: %d before %d",
				proposals[i-1].Priority, proposals[i].Priority)
		}
	}
	if proposals[0].ID != "dehydration-intake-very-low" {
		t.Errorf("expected dehydration-intake-very-low first, got %s", proposals[0].ID)
	}
}

func TestGenerateDehydrationProposals_StableOnTies(t *testing.T) {
	// Pulse-high and urine-severe both carry priority 2; generation order
	// (pulse before urine) must survive the sort.
	d := &DehydrationDetails{
		Pulse:       iptr(110),
		UrineVolume: cond(ConditionSevere),
	}
	proposals := GenerateDehydrationProposals(d)
	if len(proposals) != 2 {
		t.Fatalf("expected 2 proposals, got %d", len(proposals))
	}
	if proposals[0].ID != "dehydration-pulse-high" || proposals[1].ID != "dehydration-urine-severe" {
		t.Errorf("tie order not preserved: got %s, %s", proposals[0].ID, proposals[1].ID)
	}
}

func TestComposeDehydrationInstructions_NoProposals(t *testing.T) {
	got := ComposeDehydrationInstructions(RiskNone, nil)
	want := "Dehydration risk: none\n\nNo additional action is needed at this time."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestComposeDehydrationInstructions_Bullets(t *testing.T) {
	proposals := []Proposal{
		{Message: "First action.", Priority: 1},
		{Message: "Second action.", Priority: 2},
	}
	got := ComposeDehydrationInstructions(RiskHigh, proposals)
	if !strings.HasPrefix(got, "Dehydration risk: high\n\n") {
		t.Errorf("missing risk label header: %q", got)
	}
	if !strings.Contains(got, "- First action.\n- Second action.") {
		t.Errorf("missing proposal bullets: %q", got)
	}
}

func TestAssessDehydration_FullPipeline(t *testing.T) {
	d := &DehydrationDetails{
		SystolicBP:   iptr(85),  // score +3, proposal
		IntakeAmount: iptr(400), // score +3, proposal
	}
	result := assessDehydration(d)
	if result.RiskLevel != RiskModerate {
		t.Errorf("expected MODERATE risk, got %s", result.RiskLevel)
	}
	if result.RiskLevelLabel != "Dehydration risk: moderate" {
		t.Errorf("unexpected label %q", result.RiskLevelLabel)
	}
	if len(result.Proposals) != 2 {
		t.Errorf("expected 2 proposals, got %d", len(result.Proposals))
	}
	if !strings.HasPrefix(result.Instructions, "Dehydration risk: moderate") {
		t.Errorf("instructions missing label: %q", result.Instructions)
	}
}
