package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/synchromap/synchromap-go/internal/app"
	"github.com/synchromap/synchromap-go/internal/domain"
	"github.com/synchromap/synchromap-go/internal/ports"
)

type Handler struct {
	svc *app.SessionService
}

func NewHandler(svc *app.SessionService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/session", h.GetSession)
	e.POST("/v1/onboarding", h.CompleteOnboarding)
	e.POST("/v1/upgrade", h.Upgrade)
	e.POST("/v1/logs", h.AddLog)
	e.GET("/v1/logs", h.GetJournal)
	e.GET("/v1/facets/:facet", h.GetFacet)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetSession(c echo.Context) error {
	resp := SessionResponse{Plan: h.svc.Plan().String()}
	if bp, ok := h.svc.Blueprint(); ok {
		resp.Onboarded = true
		out := toBlueprintResponse(bp)
		resp.Blueprint = &out
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CompleteOnboarding(c echo.Context) error {
	var req OnboardingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	bp, err := h.svc.CompleteOnboarding(c.Request().Context(), ports.BlueprintRequest{
		FullName:     req.FullName,
		DateOfBirth:  req.DateOfBirth,
		TimeOfBirth:  req.TimeOfBirth,
		PlaceOfBirth: req.PlaceOfBirth,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, toBlueprintResponse(bp))
}

func (h *Handler) Upgrade(c echo.Context) error {
	plan := h.svc.Upgrade(c.Request().Context())
	return c.JSON(http.StatusOK, PlanResponse{Plan: plan.String()})
}

func (h *Handler) AddLog(c echo.Context) error {
	var req AddLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	entry, err := h.svc.AddLog(c.Request().Context(), domain.LogKind(req.Kind), req.Description)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, toLogEntryResponse(entry, h.svc.Plan()))
}

func (h *Handler) GetJournal(c echo.Context) error {
	kind := c.QueryParam("kind")
	if kind == "" {
		kind = string(domain.LogSynchronicity)
	}

	entries, err := h.svc.Journal(domain.LogKind(kind))
	if err != nil {
		return mapError(c, err)
	}

	plan := h.svc.Plan()
	resp := JournalResponse{Kind: kind, Entries: make([]LogEntryResponse, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = toLogEntryResponse(e, plan)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetFacet(c echo.Context) error {
	facet := c.Param("facet")

	interp, err := h.svc.FacetReading(c.Request().Context(), domain.Facet(facet))
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, FacetResponse{
		Facet:          facet,
		Interpretation: toInterpretationResponse(interp, h.svc.Plan()),
	})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrMissingBirthDetail),
		errors.Is(err, domain.ErrEmptyDescription),
		errors.Is(err, domain.ErrUnknownLogKind),
		errors.Is(err, domain.ErrUnknownFacet):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoBlueprint):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpgradeRequired):
		return c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrOracle):
		slog.Error("oracle failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Could not generate your reading right now. The cosmic energies might be misaligned - please try again.",
		})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
