package careplan

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/caremesh/careplan/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	wizard *Wizard
	logger zerolog.Logger
}

func NewHandler(svc *Service, wizard *Wizard, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, wizard: wizard, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "physician", "nurse")
	g := api.Group("", role)

	g.GET("/admissions/:id/care-plan", h.GetCarePlanByAdmission)
	g.GET("/care-plans/:id", h.GetCarePlan)
	g.PATCH("/care-plan-items/:id/status", h.OverrideItemStatus)
	g.GET("/care-plan-items/:id/assessment", h.GetAssessment)
	g.PUT("/care-plan-items/:id/assessment", h.SaveAssessmentProgress)
	g.POST("/care-plan-items/:id/assessment/complete", h.CompleteAssessment)
}

func (h *Handler) GetCarePlanByAdmission(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	view, err := h.svc.GetByAdmission(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) GetCarePlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	view, err := h.svc.GetPlan(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

type statusOverrideRequest struct {
	Status ItemStatus `json:"status"`
}

func (h *Handler) OverrideItemStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusOverrideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.svc.OverrideItemStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) GetAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	category := Category(c.QueryParam("category"))
	if category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category is required")
	}
	data, err := h.wizard.GetAssessmentData(c.Request().Context(), id, category)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

type saveProgressRequest struct {
	Category          Category        `json:"category"`
	CurrentQuestionID string          `json:"current_question_id"`
	Details           json.RawMessage `json:"details"`
}

func (h *Handler) SaveAssessmentProgress(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req saveProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	data, err := h.wizard.SaveProgress(c.Request().Context(), id, req.Category, req.CurrentQuestionID, req.Details)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

type completeRequest struct {
	Category Category        `json:"category"`
	Details  json.RawMessage `json:"details"`
}

func (h *Handler) CompleteAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	data, err := h.wizard.Complete(c.Request().Context(), id, req.Category, req.Details)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// mapError translates engine error kinds to HTTP responses. Persistence
// failures are logged with the underlying cause and answered with a
// generic message; store errors never reach clients.
func (h *Handler) mapError(c echo.Context, err error) error {
	e := AsError(err)
	switch e.Kind {
	case KindInvalidInput:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: e.Message, Fields: e.Fields})
	case KindUnauthorized:
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: e.Message})
	case KindNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{Error: e.Message})
	case KindInvalidCategory:
		return c.JSON(http.StatusConflict, errorResponse{Error: e.Message})
	default:
		h.logger.Error().Err(e).Str("path", c.Request().URL.Path).Msg("care plan operation failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
