package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/addisco/consulting-api/internal/core/domain"
	"github.com/addisco/consulting-api/internal/core/ports"
)

type stubConsultationRepo struct {
	items  map[string]*domain.Consultation
	nextID int
}

func newStubConsultationRepo() *stubConsultationRepo {
	return &stubConsultationRepo{items: make(map[string]*domain.Consultation)}
}

func cloneConsultation(c *domain.Consultation) *domain.Consultation {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Notes != nil {
		clone.Notes = append([]domain.Note{}, c.Notes...)
	}
	return &clone
}

func (r *stubConsultationRepo) Create(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	copy := cloneConsultation(c)
	r.nextID++
	copy.ID = fmt.Sprintf("consultation-%d", r.nextID)
	r.items[copy.ID] = cloneConsultation(copy)
	return cloneConsultation(copy), nil
}

func (r *stubConsultationRepo) FindByID(_ context.Context, id string) (*domain.Consultation, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrConsultationNotFound
	}
	return cloneConsultation(c), nil
}

func (r *stubConsultationRepo) List(_ context.Context, filter ports.ListConsultationsFilter) ([]*domain.Consultation, int64, error) {
	matched := make([]*domain.Consultation, 0, len(r.items))
	cutoff := time.Now().UTC().Add(-domain.OverdueAfter)
	for _, c := range r.items {
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		if filter.Service != "" && string(c.Service) != filter.Service {
			continue
		}
		if filter.Priority != "" && string(c.Priority) != filter.Priority {
			continue
		}
		if filter.OnlyOverdue && !(c.Status == domain.StatusPending && c.CreatedAt.Before(cutoff)) {
			continue
		}
		if filter.Search != "" {
			term := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.Name), term) &&
				!strings.Contains(c.Email, term) &&
				!strings.Contains(strings.ToLower(c.Message), term) {
				continue
			}
		}
		matched = append(matched, cloneConsultation(c))
	}

	sort.Slice(matched, func(i, j int) bool {
		if filter.SortDesc {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubConsultationRepo) FindByEmail(_ context.Context, email string) ([]*domain.Consultation, error) {
	result := make([]*domain.Consultation, 0)
	for _, c := range r.items {
		if c.Email == email {
			result = append(result, cloneConsultation(c))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *stubConsultationRepo) UpdateFields(_ context.Context, id string, update ports.ConsultationUpdate) (*domain.Consultation, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrConsultationNotFound
	}
	if update.Status != nil {
		c.Status = *update.Status
	}
	if update.AssignedTo != nil {
		c.AssignedTo = *update.AssignedTo
	}
	if update.Priority != nil {
		c.Priority = *update.Priority
	}
	c.UpdatedAt = time.Now().UTC()
	return cloneConsultation(c), nil
}

func (r *stubConsultationRepo) AddNote(_ context.Context, id string, note domain.Note) (*domain.Consultation, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrConsultationNotFound
	}
	c.Notes = append(c.Notes, note)
	c.UpdatedAt = time.Now().UTC()
	return cloneConsultation(c), nil
}

func (r *stubConsultationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrConsultationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubConsultationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubConsultationRepo) CountByStatus(_ context.Context) (map[domain.Status]int64, error) {
	counts := make(map[domain.Status]int64)
	for _, c := range r.items {
		counts[c.Status]++
	}
	return counts, nil
}

func (r *stubConsultationRepo) CountByService(_ context.Context) (map[domain.Service]int64, error) {
	counts := make(map[domain.Service]int64)
	for _, c := range r.items {
		counts[c.Service]++
	}
	return counts, nil
}

func (r *stubConsultationRepo) CountByPriority(_ context.Context) (map[domain.Priority]int64, error) {
	counts := make(map[domain.Priority]int64)
	for _, c := range r.items {
		counts[c.Priority]++
	}
	return counts, nil
}

func (r *stubConsultationRepo) CountOverdue(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, c := range r.items {
		if c.Status == domain.StatusPending && c.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func (r *stubConsultationRepo) Recent(_ context.Context, n int) ([]*domain.Consultation, error) {
	all := make([]*domain.Consultation, 0, len(r.items))
	for _, c := range r.items {
		all = append(all, cloneConsultation(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *stubConsultationRepo) MonthlyTrend(_ context.Context, since time.Time) ([]ports.MonthCount, error) {
	buckets := make(map[[2]int]int64)
	for _, c := range r.items {
		if c.CreatedAt.Before(since) {
			continue
		}
		key := [2]int{c.CreatedAt.Year(), int(c.CreatedAt.Month())}
		buckets[key]++
	}
	trend := make([]ports.MonthCount, 0, len(buckets))
	for key, count := range buckets {
		trend = append(trend, ports.MonthCount{Year: key[0], Month: key[1], Count: count})
	}
	sort.Slice(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year < trend[j].Year
		}
		return trend[i].Month < trend[j].Month
	})
	return trend, nil
}

// recordingDispatcher captures dispatched notifications for assertions.
type recordingDispatcher struct {
	notifications []ports.Notification
}

func (d *recordingDispatcher) Dispatch(n ports.Notification) {
	d.notifications = append(d.notifications, n)
}

func newConsultationService(repo ports.ConsultationRepository, dispatcher ports.NotificationDispatcher) *ConsultationService {
	return NewConsultationService(repo, dispatcher, zerolog.Nop())
}

func submitInput() ports.SubmitConsultationInput {
	return ports.SubmitConsultationInput{
		Name:    "  Jane Doe  ",
		Email:   "Jane@Example.COM",
		Phone:   "+15550100",
		Service: "strategic",
		Message: "We need help restructuring our operations team.",
	}
}

func TestConsultationService_Submit_Defaults(t *testing.T) {
	repo := newStubConsultationRepo()
	dispatcher := &recordingDispatcher{}
	svc := newConsultationService(repo, dispatcher)

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if created.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.Priority != domain.PriorityMedium {
		t.Fatalf("expected medium priority, got %s", created.Priority)
	}
	if created.Source != domain.SourceWebsite {
		t.Fatalf("expected website source, got %s", created.Source)
	}
	if created.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.Notes == nil || len(created.Notes) != 0 {
		t.Fatalf("expected empty notes slice, got %v", created.Notes)
	}
}

func TestConsultationService_Submit_DispatchesNotification(t *testing.T) {
	repo := newStubConsultationRepo()
	dispatcher := &recordingDispatcher{}
	svc := newConsultationService(repo, dispatcher)

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if len(dispatcher.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(dispatcher.notifications))
	}
	n := dispatcher.notifications[0]
	if n.Kind != ports.NotifyConsultationSubmitted {
		t.Fatalf("unexpected kind: %s", n.Kind)
	}
	if n.Consultation.ID != created.ID {
		t.Fatalf("notification carries wrong consultation: %s", n.Consultation.ID)
	}
}

func TestConsultationService_Submit_InvalidService(t *testing.T) {
	repo := newStubConsultationRepo()
	dispatcher := &recordingDispatcher{}
	svc := newConsultationService(repo, dispatcher)

	input := submitInput()
	input.Service = "astrology"
	_, err := svc.Submit(context.Background(), input)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(dispatcher.notifications) != 0 {
		t.Fatalf("no notification should be dispatched on failure")
	}
}

func TestConsultationService_Get_Ownership(t *testing.T) {
	repo := newStubConsultationRepo()
	svc := newConsultationService(repo, &recordingDispatcher{})

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	cases := []struct {
		name     string
		identity ports.Identity
		wantErr  error
	}{
		{"owner client", ports.Identity{UserID: "u1", Email: "jane@example.com", Role: domain.RoleClient}, nil},
		{"other client", ports.Identity{UserID: "u2", Email: "other@example.com", Role: domain.RoleClient}, domain.ErrForbidden},
		{"partner", ports.Identity{UserID: "u3", Email: "partner@example.com", Role: domain.RolePartner}, nil},
		{"admin", ports.Identity{UserID: "u4", Email: "admin@example.com", Role: domain.RoleAdmin}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Get(context.Background(), created.ID, tc.identity)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestConsultationService_UpdateStatus_Partial(t *testing.T) {
	repo := newStubConsultationRepo()
	dispatcher := &recordingDispatcher{}
	svc := newConsultationService(repo, dispatcher)

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	dispatcher.notifications = nil

	status := "contacted"
	updated, err := svc.UpdateStatus(context.Background(), created.ID, ports.StatusUpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.StatusContacted {
		t.Fatalf("expected contacted, got %s", updated.Status)
	}
	// Untouched fields survive a partial update.
	if updated.Priority != domain.PriorityMedium {
		t.Fatalf("priority should be unchanged, got %s", updated.Priority)
	}
	if len(dispatcher.notifications) != 1 || dispatcher.notifications[0].Kind != ports.NotifyStatusChanged {
		t.Fatalf("expected one status-changed notification, got %+v", dispatcher.notifications)
	}
}

func TestConsultationService_UpdateStatus_AssigneeOnlyDoesNotNotify(t *testing.T) {
	repo := newStubConsultationRepo()
	dispatcher := &recordingDispatcher{}
	svc := newConsultationService(repo, dispatcher)

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	dispatcher.notifications = nil

	assignee := "partner-1"
	updated, err := svc.UpdateStatus(context.Background(), created.ID, ports.StatusUpdateInput{AssignedTo: &assignee})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.AssignedTo != "partner-1" {
		t.Fatalf("unexpected assignee: %s", updated.AssignedTo)
	}
	if len(dispatcher.notifications) != 0 {
		t.Fatalf("assignee-only update must not notify, got %+v", dispatcher.notifications)
	}
}

func TestConsultationService_UpdateStatus_InvalidValues(t *testing.T) {
	repo := newStubConsultationRepo()
	svc := newConsultationService(repo, &recordingDispatcher{})

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	bad := "archived"
	var ve *domain.ValidationError
	if _, err := svc.UpdateStatus(context.Background(), created.ID, ports.StatusUpdateInput{Status: &bad}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad status, got %v", err)
	}
	badPriority := "extreme"
	if _, err := svc.UpdateStatus(context.Background(), created.ID, ports.StatusUpdateInput{Priority: &badPriority}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad priority, got %v", err)
	}
}

func TestConsultationService_AddNote(t *testing.T) {
	repo := newStubConsultationRepo()
	svc := newConsultationService(repo, &recordingDispatcher{})

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	var ve *domain.ValidationError
	if _, err := svc.AddNote(context.Background(), created.ID, "   ", "staff-1"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for blank note, got %v", err)
	}

	updated, err := svc.AddNote(context.Background(), created.ID, "  called, left voicemail  ", "staff-1")
	if err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}
	if len(updated.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(updated.Notes))
	}
	note := updated.Notes[0]
	if note.Text != "called, left voicemail" {
		t.Fatalf("expected trimmed note text, got %q", note.Text)
	}
	if note.AddedBy != "staff-1" {
		t.Fatalf("unexpected author: %s", note.AddedBy)
	}
	if note.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned timestamp")
	}
}

func TestConsultationService_ListMine_StripsNotes(t *testing.T) {
	repo := newStubConsultationRepo()
	svc := newConsultationService(repo, &recordingDispatcher{})

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := svc.AddNote(context.Background(), created.ID, "internal assessment", "staff-1"); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}

	mine, err := svc.ListMine(context.Background(), "JANE@example.com")
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 consultation, got %d", len(mine))
	}
	if mine[0].Notes != nil {
		t.Fatalf("notes must be stripped from client listings, got %v", mine[0].Notes)
	}
}

func TestConsultationService_List_Paging(t *testing.T) {
	repo := newStubConsultationRepo()
	svc := newConsultationService(repo, &recordingDispatcher{})

	for i := 0; i < 5; i++ {
		input := submitInput()
		input.Email = fmt.Sprintf("client%d@example.com", i)
		if _, err := svc.Submit(context.Background(), input); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	page, err := svc.List(context.Background(), ports.ListConsultationsInput{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("expected total 5, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.Pages)
	}
	if !page.HasMore {
		t.Fatalf("expected HasMore on first page")
	}

	last, err := svc.List(context.Background(), ports.ListConsultationsInput{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(last.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(last.Items))
	}
	if last.HasMore {
		t.Fatalf("last page must not report more")
	}
}

func TestConsultationService_Delete(t *testing.T) {
	repo := newStubConsultationRepo()
	svc := newConsultationService(repo, &recordingDispatcher{})

	created, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrConsultationNotFound) {
		t.Fatalf("expected ErrConsultationNotFound, got %v", err)
	}
}
