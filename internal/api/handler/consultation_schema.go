package handler

import (
	"github.com/addisco/consulting-api/internal/core/ports"
)

type submitConsultationRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,max=30"`
	Organization string `json:"organization" validate:"omitempty,max=200"`
	Service      string `json:"service" validate:"required,oneof=strategic digital market organizational other"`
	Message      string `json:"message" validate:"required,min=10,max=2000"`
}

type updateStatusRequest struct {
	Status     *string `json:"status" validate:"omitempty,oneof=pending contacted in-progress completed cancelled"`
	AssignedTo *string `json:"assignedTo" validate:"omitempty,max=100"`
	Priority   *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type addNoteRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

type listConsultationsQuery struct {
	Status    string `query:"status"`
	Service   string `query:"service"`
	Priority  string `query:"priority"`
	Search    string `query:"search"`
	Overdue   bool   `query:"overdue"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// consultationPageResponse flattens the service page into the wire shape.
type consultationPageResponse struct {
	Consultations any   `json:"consultations"`
	Total         int64 `json:"total"`
	Page          int   `json:"page"`
	Limit         int   `json:"limit"`
	Pages         int   `json:"pages"`
	HasMore       bool  `json:"hasMore"`
}

func toConsultationPageResponse(page *ports.ConsultationPage) consultationPageResponse {
	return consultationPageResponse{
		Consultations: page.Items,
		Total:         page.Total,
		Page:          page.Page,
		Limit:         page.Limit,
		Pages:         page.Pages,
		HasMore:       page.HasMore,
	}
}
