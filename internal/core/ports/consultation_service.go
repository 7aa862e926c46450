package ports

import (
	"context"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// SubmitConsultationInput carries a public submission. Status, priority and
// source are not caller-settable: submission always produces a pending,
// medium-priority, website-sourced consultation.
type SubmitConsultationInput struct {
	Name         string
	Email        string
	Phone        string
	Organization string
	Service      string
	Message      string
	Metadata     domain.Metadata
}

// StatusUpdateInput is the staff triage update; any subset of the three
// fields may be supplied.
type StatusUpdateInput struct {
	Status     *string
	AssignedTo *string
	Priority   *string
}

// ListConsultationsInput carries the staff listing parameters.
type ListConsultationsInput struct {
	Status    string
	Service   string
	Priority  string
	Search    string
	Overdue   bool
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // "asc" or "desc" (default)
}

// ConsultationPage is a paginated listing result.
type ConsultationPage struct {
	Items   []*domain.Consultation
	Total   int64
	Page    int
	Limit   int
	Pages   int
	HasMore bool
}

// ConsultationService is the lifecycle engine: it owns submissions, triage
// mutations and reads, enforces ownership rules, and triggers notification
// side effects that are never awaited by the caller.
type ConsultationService interface {
	Submit(ctx context.Context, input SubmitConsultationInput) (*domain.Consultation, error)
	// Get enforces ownership: staff read anything, a client only their own.
	Get(ctx context.Context, id string, identity Identity) (*domain.Consultation, error)
	List(ctx context.Context, input ListConsultationsInput) (*ConsultationPage, error)
	// ListMine returns the caller's own consultations, newest first, with
	// internal notes stripped.
	ListMine(ctx context.Context, email string) ([]*domain.Consultation, error)
	// UpdateStatus applies a partial triage update. A non-empty status change
	// triggers an asynchronous status notification to the requester.
	UpdateStatus(ctx context.Context, id string, input StatusUpdateInput) (*domain.Consultation, error)
	AddNote(ctx context.Context, id, text, authorID string) (*domain.Consultation, error)
	Delete(ctx context.Context, id string) error
}
