package careplan

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseDehydrationDetails_Empty(t *testing.T) {
	got, fields := parseDehydrationDetails(nil)
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %+v", fields)
	}
	d, ok := got.(*DehydrationDetails)
	if !ok || d == nil {
		t.Fatalf("expected zero-value details, got %T", got)
	}
	if d.Pulse != nil || d.LabHt != nil {
		t.Error("expected all fields nil")
	}
}

func TestParseDehydrationDetails_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"lab_ht": {"value": 52.1, "lower_limit": 40, "upper_limit": 50, "unit": "%"},
		"pulse": 95,
		"systolic_bp": 110,
		"skin_condition": "MILD",
		"intake_frequency": "RARE",
		"intake_amount": 800
	}`)
	got, fields := parseDehydrationDetails(raw)
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %+v", fields)
	}
	d := got.(*DehydrationDetails)
	if d.Pulse == nil || *d.Pulse != 95 {
		t.Error("pulse not decoded")
	}
	if d.LabHt == nil || d.LabHt.Value == nil || *d.LabHt.Value != 52.1 {
		t.Error("lab_ht not decoded")
	}
}

func TestParseDehydrationDetails_UnknownField(t *testing.T) {
	raw := json.RawMessage(`{"pulse": 80, "bogus": 1}`)
	got, fields := parseDehydrationDetails(raw)
	if got != nil {
		t.Error("expected nil details on decode failure")
	}
	if len(fields) != 1 || fields[0].Field != "details" {
		t.Fatalf("expected single details field error, got %+v", fields)
	}
}

func TestParseDehydrationDetails_MalformedJSON(t *testing.T) {
	_, fields := parseDehydrationDetails(json.RawMessage(`{not json`))
	if len(fields) != 1 || fields[0].Field != "details" {
		t.Fatalf("expected details field error, got %+v", fields)
	}
}

func TestParseDehydrationDetails_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"pulse negative", `{"pulse": -1}`, "pulse"},
		{"pulse above max", `{"pulse": 301}`, "pulse"},
		{"systolic above max", `{"systolic_bp": 400}`, "systolic_bp"},
		{"diastolic negative", `{"diastolic_bp": -5}`, "diastolic_bp"},
		{"intake above max", `{"intake_amount": 10001}`, "intake_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fields := parseDehydrationDetails(json.RawMessage(tt.raw))
			if got != nil {
				t.Error("expected nil details")
			}
			if len(fields) != 1 || fields[0].Field != tt.field {
				t.Fatalf("expected error on %s, got %+v", tt.field, fields)
			}
		})
	}
}

func TestParseDehydrationDetails_BoundaryValuesAccepted(t *testing.T) {
	raw := json.RawMessage(`{"pulse": 300, "systolic_bp": 0, "intake_amount": 10000}`)
	_, fields := parseDehydrationDetails(raw)
	if len(fields) != 0 {
		t.Errorf("boundary values should pass, got %+v", fields)
	}
}

func TestParseDehydrationDetails_InvalidEnums(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"bad condition", `{"skin_condition": "TERRIBLE"}`, "skin_condition"},
		{"bad dizziness", `{"dizziness": "mild"}`, "dizziness"},
		{"bad frequency", `{"intake_frequency": "NEVER"}`, "intake_frequency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fields := parseDehydrationDetails(json.RawMessage(tt.raw))
			if len(fields) != 1 || fields[0].Field != tt.field {
				t.Fatalf("expected error on %s, got %+v", tt.field, fields)
			}
		})
	}
}

func TestParseDehydrationDetails_CollectsMultipleErrors(t *testing.T) {
	raw := json.RawMessage(`{"pulse": -1, "skin_condition": "BAD", "intake_frequency": "NEVER"}`)
	_, fields := parseDehydrationDetails(raw)
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", fields)
	}
}

func TestParsePainDetails_Empty(t *testing.T) {
	got, fields := parsePainDetails(nil)
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %+v", fields)
	}
	d := got.(*PainDetails)
	if d.SelectedSiteIDs != nil || d.SiteDetails != nil {
		t.Error("expected zero-value details")
	}
}

func TestParsePainDetails_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"daytime_pain": true,
		"selected_site_ids": [8, 21],
		"site_details": {"8": {"touch_pain": true}}
	}`)
	got, fields := parsePainDetails(raw)
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %+v", fields)
	}
	d := got.(*PainDetails)
	if len(d.SelectedSiteIDs) != 2 {
		t.Error("selected_site_ids not decoded")
	}
	if _, ok := d.SiteDetails[8]; !ok {
		t.Error("site_details not decoded")
	}
}

func TestParsePainDetails_UnknownSiteID(t *testing.T) {
	raw := json.RawMessage(`{"selected_site_ids": [99]}`)
	_, fields := parsePainDetails(raw)
	if len(fields) != 1 {
		t.Fatalf("expected 1 field error, got %+v", fields)
	}
	if fields[0].Field != "selected_site_ids[0]" {
		t.Errorf("unexpected field %q", fields[0].Field)
	}
	if !strings.Contains(fields[0].Message, "unknown site id 99") {
		t.Errorf("unexpected message %q", fields[0].Message)
	}
}

func TestParsePainDetails_DuplicateSiteID(t *testing.T) {
	raw := json.RawMessage(`{"selected_site_ids": [3, 3]}`)
	_, fields := parsePainDetails(raw)
	if len(fields) != 1 {
		t.Fatalf("expected 1 field error, got %+v", fields)
	}
	if fields[0].Field != "selected_site_ids[1]" {
		t.Errorf("unexpected field %q", fields[0].Field)
	}
}

func TestParsePainDetails_DetailForUnselectedSite(t *testing.T) {
	raw := json.RawMessage(`{
		"selected_site_ids": [3],
		"site_details": {"5": {"touch_pain": true}}
	}`)
	_, fields := parsePainDetails(raw)
	if len(fields) != 1 {
		t.Fatalf("expected 1 field error, got %+v", fields)
	}
	if fields[0].Field != "site_details.5" {
		t.Errorf("unexpected field %q", fields[0].Field)
	}
}

func TestParsePainDetails_UnknownField(t *testing.T) {
	_, fields := parsePainDetails(json.RawMessage(`{"pain_score": 7}`))
	if len(fields) != 1 || fields[0].Field != "details" {
		t.Fatalf("expected details field error, got %+v", fields)
	}
}
