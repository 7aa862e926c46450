package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/addisco/consulting-api/internal/api/metrics"
	"github.com/addisco/consulting-api/internal/core/domain"
	"github.com/addisco/consulting-api/internal/core/ports"
)

type ConsultationHandler struct {
	consultations ports.ConsultationService
}

func NewConsultationHandler(consultations ports.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultations: consultations}
}

// Submit accepts a public consultation request. No authentication is
// required; request metadata (IP, user agent, referrer) is captured for the
// record, plus the user id when a valid token was presented.
//
// @Summary      Submit a consultation request
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        body  body      submitConsultationRequest  true  "Consultation request"
// @Success      201   {object}  domain.Consultation
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/consultations [post]
func (h *ConsultationHandler) Submit(c echo.Context) error {
	var req submitConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meta := domain.Metadata{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Referrer:  c.Request().Referer(),
	}
	if identity, ok := optionalIdentity(c); ok {
		meta.SubmittedBy = identity.UserID
	}

	consultation, err := h.consultations.Submit(c.Request().Context(), ports.SubmitConsultationInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		Service:      req.Service,
		Message:      req.Message,
		Metadata:     meta,
	})
	if err != nil {
		return err
	}

	metrics.SubmissionsTotal.WithLabelValues(string(consultation.Service)).Inc()
	return respondMessage(c, http.StatusCreated, consultation,
		"consultation request received, our team will contact you within 24 hours")
}

// List returns the staff listing with filters, search, sorting and paging.
//
// @Summary      List consultations
// @Tags         consultations
// @Produce      json
// @Security     BearerAuth
// @Param        status     query  string  false  "Filter by status"
// @Param        service    query  string  false  "Filter by service"
// @Param        priority   query  string  false  "Filter by priority"
// @Param        search     query  string  false  "Search name, email or message"
// @Param        overdue    query  bool    false  "Only pending requests older than 48h"
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        limit      query  int     false  "Page size"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Success      200  {object}  consultationPageResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/consultations [get]
func (h *ConsultationHandler) List(c echo.Context) error {
	var q listConsultationsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.consultations.List(c.Request().Context(), ports.ListConsultationsInput{
		Status:    q.Status,
		Service:   q.Service,
		Priority:  q.Priority,
		Search:    q.Search,
		Overdue:   q.Overdue,
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toConsultationPageResponse(page))
}

// ListMine returns the caller's own consultations, newest first, with
// internal notes stripped.
//
// @Summary      List own consultations
// @Tags         consultations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Consultation
// @Failure      401  {object}  map[string]string
// @Router       /api/consultations/my/requests [get]
func (h *ConsultationHandler) ListMine(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.consultations.ListMine(c.Request().Context(), identity.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, items)
}

// Get returns a single consultation. Staff read anything; a client only
// consultations submitted with their own email.
//
// @Summary      Get a consultation
// @Tags         consultations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Consultation ID"
// @Success      200  {object}  domain.Consultation
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/consultations/{id} [get]
func (h *ConsultationHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	consultation, err := h.consultations.Get(c.Request().Context(), c.Param("id"), identity)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, consultation)
}

// UpdateStatus applies a partial triage update: status, assignee, priority.
//
// @Summary      Update consultation status
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "Consultation ID"
// @Param        body  body  updateStatusRequest  true  "Fields to update"
// @Success      200   {object}  domain.Consultation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/consultations/{id}/status [patch]
func (h *ConsultationHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	consultation, err := h.consultations.UpdateStatus(c.Request().Context(), c.Param("id"), ports.StatusUpdateInput{
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		Priority:   req.Priority,
	})
	if err != nil {
		return err
	}

	if req.Status != nil {
		metrics.StatusUpdatesTotal.WithLabelValues(*req.Status).Inc()
	}
	return respondMessage(c, http.StatusOK, consultation, "consultation updated")
}

// AddNote appends an internal note to a consultation.
//
// @Summary      Add an internal note
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Consultation ID"
// @Param        body  body  addNoteRequest  true  "Note text"
// @Success      200   {object}  domain.Consultation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/consultations/{id}/notes [post]
func (h *ConsultationHandler) AddNote(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	consultation, err := h.consultations.AddNote(c.Request().Context(), c.Param("id"), req.Text, identity.UserID)
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, consultation, "note added")
}

// Delete removes a consultation permanently.
//
// @Summary      Delete a consultation
// @Tags         consultations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Consultation ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/consultations/{id} [delete]
func (h *ConsultationHandler) Delete(c echo.Context) error {
	if err := h.consultations.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, nil, "consultation deleted")
}
