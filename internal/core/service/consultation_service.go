package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/addisco/consulting-api/internal/core/domain"
	"github.com/addisco/consulting-api/internal/core/ports"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// ConsultationService is the lifecycle engine. Every mutation commits to the
// store first; notification intents are handed to the dispatcher afterwards
// and their outcome never reaches the caller.
type ConsultationService struct {
	repo       ports.ConsultationRepository
	dispatcher ports.NotificationDispatcher
	logger     zerolog.Logger
}

func NewConsultationService(repo ports.ConsultationRepository, dispatcher ports.NotificationDispatcher, logger zerolog.Logger) *ConsultationService {
	return &ConsultationService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// Submit records a public consultation request. Status, priority and source
// are forced regardless of input; request metadata is captured as given.
func (s *ConsultationService) Submit(ctx context.Context, input ports.SubmitConsultationInput) (*domain.Consultation, error) {
	svc := domain.Service(input.Service)
	if !svc.Valid() {
		return nil, domain.NewValidationError("service", "is not a valid service type")
	}

	now := time.Now().UTC()
	consultation := &domain.Consultation{
		Name:         strings.TrimSpace(input.Name),
		Email:        domain.NormalizeEmail(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Organization: strings.TrimSpace(input.Organization),
		Service:      svc,
		Message:      strings.TrimSpace(input.Message),
		Status:       domain.StatusPending,
		Priority:     domain.PriorityMedium,
		Notes:        []domain.Note{},
		Source:       domain.SourceWebsite,
		Metadata:     input.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, consultation)
	if err != nil {
		s.logger.Error().Err(err).Str("email", consultation.Email).Msg("failed to create consultation")
		return nil, err
	}

	s.logger.Info().
		Str("id", created.ID).
		Str("email", created.Email).
		Str("service", string(created.Service)).
		Msg("new consultation request")

	s.dispatcher.Dispatch(ports.Notification{
		Kind:         ports.NotifyConsultationSubmitted,
		Consultation: *created,
	})

	return created, nil
}

// Get returns one consultation, enforcing ownership: staff read anything, a
// client only consultations submitted under their own email.
func (s *ConsultationService) Get(ctx context.Context, id string, identity ports.Identity) (*domain.Consultation, error) {
	consultation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !consultation.VisibleTo(identity.Role, identity.Email) {
		return nil, domain.ErrForbidden
	}
	return consultation, nil
}

func (s *ConsultationService) List(ctx context.Context, input ports.ListConsultationsInput) (*ports.ConsultationPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	// Overdue listings default to oldest-first so the longest-waiting
	// requests surface on top.
	sortDesc := input.SortOrder != "asc"
	if input.Overdue && input.SortOrder == "" {
		sortDesc = false
	}

	items, total, err := s.repo.List(ctx, ports.ListConsultationsFilter{
		Status:      input.Status,
		Service:     input.Service,
		Priority:    input.Priority,
		Search:      input.Search,
		OnlyOverdue: input.Overdue,
		Page:        page,
		Limit:       limit,
		SortBy:      sortBy,
		SortDesc:    sortDesc,
	})
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ConsultationPage{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasMore: int64((page-1)*limit+len(items)) < total,
	}, nil
}

// ListMine returns the caller's consultations with internal notes stripped.
func (s *ConsultationService) ListMine(ctx context.Context, email string) ([]*domain.Consultation, error) {
	items, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		c.Notes = nil
	}
	return items, nil
}

// UpdateStatus applies a partial triage update. A supplied status triggers an
// asynchronous notification to the requester after the write commits.
func (s *ConsultationService) UpdateStatus(ctx context.Context, id string, input ports.StatusUpdateInput) (*domain.Consultation, error) {
	update := ports.ConsultationUpdate{}

	if input.Status != nil {
		status := domain.Status(*input.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "is not a valid status")
		}
		update.Status = &status
	}
	if input.Priority != nil {
		priority := domain.Priority(*input.Priority)
		if !priority.Valid() {
			return nil, domain.NewValidationError("priority", "is not a valid priority")
		}
		update.Priority = &priority
	}
	if input.AssignedTo != nil {
		update.AssignedTo = input.AssignedTo
	}

	updated, err := s.repo.UpdateFields(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		s.logger.Info().Str("id", updated.ID).Str("status", string(updated.Status)).Msg("status updated")
		s.dispatcher.Dispatch(ports.Notification{
			Kind:         ports.NotifyStatusChanged,
			Consultation: *updated,
		})
	}

	return updated, nil
}

// AddNote appends a staff note with a server-assigned timestamp. Notes do not
// trigger notifications.
func (s *ConsultationService) AddNote(ctx context.Context, id, text, authorID string) (*domain.Consultation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "note text is required")
	}

	updated, err := s.repo.AddNote(ctx, id, domain.Note{
		Text:      text,
		AddedBy:   authorID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", updated.ID).Msg("note added to consultation")
	return updated, nil
}

// Delete removes a consultation permanently.
func (s *ConsultationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("consultation deleted")
	return nil
}
