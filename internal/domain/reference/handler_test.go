package reference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_RecordLabResult(t *testing.T) {
	labs := &mockLabRepo{}
	h := NewHandler(NewService(labs, &mockVitalsRepo{}))

	admissionID := uuid.New()
	body := `{"item_code": "Ht", "value": 52.3, "lower_limit": 40, "upper_limit": 50, "unit": "%"}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/admissions/x/lab-results", body)
	c.SetParamNames("id")
	c.SetParamValues(admissionID.String())

	if err := h.RecordLabResult(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(labs.created) != 1 {
		t.Fatal("lab result not persisted")
	}
	if labs.created[0].AdmissionID != admissionID {
		t.Error("admission id must come from the path, not the body")
	}
}

func TestHandler_RecordLabResult_ValidationError(t *testing.T) {
	h := NewHandler(NewService(&mockLabRepo{}, &mockVitalsRepo{}))

	c, _ := newTestContext(http.MethodPost, "/api/v1/admissions/x/lab-results", `{"value": 52.3}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.RecordLabResult(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandler_RecordVitalSigns(t *testing.T) {
	vitals := &mockVitalsRepo{}
	h := NewHandler(NewService(&mockLabRepo{}, vitals))

	c, rec := newTestContext(http.MethodPost, "/api/v1/admissions/x/vital-signs",
		`{"pulse": 92, "systolic_bp": 104}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := h.RecordVitalSigns(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(vitals.created) != 1 {
		t.Fatal("vital signs not persisted")
	}
	if vitals.created[0].Pulse == nil || *vitals.created[0].Pulse != 92 {
		t.Errorf("pulse not recorded: %+v", vitals.created[0])
	}
}

func TestHandler_RecordVitalSigns_InvalidID(t *testing.T) {
	h := NewHandler(NewService(&mockLabRepo{}, &mockVitalsRepo{}))

	c, _ := newTestContext(http.MethodPost, "/api/v1/admissions/x/vital-signs", `{"pulse": 92}`)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.RecordVitalSigns(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandler_ListLabResults(t *testing.T) {
	labs := &mockLabRepo{}
	svc := NewService(labs, &mockVitalsRepo{})
	h := NewHandler(svc)

	admissionID := uuid.New()
	for i := 0; i < 3; i++ {
		lr := &LabResult{AdmissionID: admissionID, ItemCode: ItemCodeHemoglobin, Value: 12 + float64(i)}
		if err := svc.RecordLabResult(context.Background(), lr); err != nil {
			t.Fatalf("seed lab result: %v", err)
		}
	}

	c, rec := newTestContext(http.MethodGet, "/api/v1/admissions/x/lab-results?limit=2", "")
	c.SetParamNames("id")
	c.SetParamValues(admissionID.String())

	if err := h.ListLabResults(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Total   int             `json:"total"`
		Data    json.RawMessage `json:"data"`
		HasMore bool            `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 || !resp.HasMore {
		t.Errorf("total = %d has_more = %v, want 3/true", resp.Total, resp.HasMore)
	}
}

func TestHandler_ListVitalSigns(t *testing.T) {
	vitals := &mockVitalsRepo{}
	svc := NewService(&mockLabRepo{}, vitals)
	h := NewHandler(svc)

	admissionID := uuid.New()
	if err := svc.RecordVitalSigns(context.Background(), &VitalSigns{AdmissionID: admissionID, Pulse: iptr(80)}); err != nil {
		t.Fatalf("seed vitals: %v", err)
	}

	c, rec := newTestContext(http.MethodGet, "/api/v1/admissions/x/vital-signs", "")
	c.SetParamNames("id")
	c.SetParamValues(admissionID.String())

	if err := h.ListVitalSigns(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
