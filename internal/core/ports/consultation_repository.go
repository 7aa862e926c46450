package ports

import (
	"context"
	"time"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// ListConsultationsFilter carries query parameters for the staff listing.
// Exact-match filters combine with AND; the search term matches any of
// name/email/organization/message (case-insensitive substring, OR).
type ListConsultationsFilter struct {
	Status   string
	Service  string
	Priority string
	Search   string
	Page     int // 1-based
	Limit    int
	SortBy   string // field name, default "createdAt"
	SortDesc bool
	// OnlyOverdue restricts to pending consultations older than the overdue
	// cutoff; combined with ascending creation sort it yields oldest-first.
	OnlyOverdue bool
}

// ConsultationUpdate is the partial triage update; nil fields are untouched.
type ConsultationUpdate struct {
	Status     *domain.Status
	AssignedTo *string
	Priority   *domain.Priority
}

// MonthCount is one bucket of the monthly submission trend.
type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// ConsultationRepository defines persistence operations for consultations.
type ConsultationRepository interface {
	Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error)
	FindByID(ctx context.Context, id string) (*domain.Consultation, error)
	// List returns a page matching filter plus the total match count.
	List(ctx context.Context, filter ListConsultationsFilter) ([]*domain.Consultation, int64, error)
	// FindByEmail returns all consultations for one requester email, newest first.
	FindByEmail(ctx context.Context, email string) ([]*domain.Consultation, error)
	// UpdateFields applies a partial update and returns the updated document.
	UpdateFields(ctx context.Context, id string, update ConsultationUpdate) (*domain.Consultation, error)
	// AddNote appends a note and returns the updated document.
	AddNote(ctx context.Context, id string, note domain.Note) (*domain.Consultation, error)
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
	CountByService(ctx context.Context) (map[domain.Service]int64, error)
	CountByPriority(ctx context.Context) (map[domain.Priority]int64, error)
	// CountOverdue counts pending consultations created before cutoff.
	CountOverdue(ctx context.Context, cutoff time.Time) (int64, error)
	// Recent returns the n most recently created consultations.
	Recent(ctx context.Context, n int) ([]*domain.Consultation, error)
	// MonthlyTrend groups submissions since the given time by (year, month),
	// ascending.
	MonthlyTrend(ctx context.Context, since time.Time) ([]MonthCount, error)
}
