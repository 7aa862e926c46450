package notify

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/addisco/consulting-api/internal/core/domain"
)

func sampleConsultation() *domain.Consultation {
	return &domain.Consultation{
		ID:        "c1",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+15550001111",
		Service:   domain.ServiceStrategic,
		Message:   "We need help restructuring our operations team.",
		Status:    domain.StatusPending,
		CreatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderStatusUpdateEmail_KnownStatuses(t *testing.T) {
	for status, want := range statusMessages {
		c := sampleConsultation()
		c.Status = status
		_, body := renderStatusUpdateEmail(c)
		if !strings.Contains(body, want) {
			t.Fatalf("status %s: body missing message %q", status, want)
		}
	}
}

func TestRenderStatusUpdateEmail_GenericFallback(t *testing.T) {
	c := sampleConsultation()
	c.Status = domain.StatusPending // no entry in statusMessages
	_, body := renderStatusUpdateEmail(c)
	if !strings.Contains(body, genericStatusMessage) {
		t.Fatalf("expected generic fallback message, got:\n%s", body)
	}
}

func TestRenderSubmittedAdminEmail_EscapesUserInput(t *testing.T) {
	c := sampleConsultation()
	c.Name = `<script>alert("x")</script>`
	_, body := renderSubmittedAdminEmail(c)
	if strings.Contains(body, "<script>") {
		t.Fatalf("user input must be escaped:\n%s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in body")
	}
}

func TestRenderSubmittedClientEmail_ContainsRequestID(t *testing.T) {
	c := sampleConsultation()
	subject, body := renderSubmittedClientEmail(c)
	if subject == "" {
		t.Fatalf("expected a subject")
	}
	if !strings.Contains(body, "c1") {
		t.Fatalf("body missing request id")
	}
	if !strings.Contains(body, "Jane Doe") {
		t.Fatalf("body missing requester name")
	}
}

func TestRenderSubmittedWhatsApp_TruncatesLongMessage(t *testing.T) {
	c := sampleConsultation()
	c.Message = strings.Repeat("m", 150)
	text := renderSubmittedWhatsApp(c)
	if !strings.Contains(text, strings.Repeat("m", 100)+"...") {
		t.Fatalf("expected truncated message, got:\n%s", text)
	}
	if strings.Contains(text, strings.Repeat("m", 101)) {
		t.Fatalf("message not truncated at 100 characters")
	}
}

func TestRenderSubmittedWhatsApp_TruncatesOnRunes(t *testing.T) {
	c := sampleConsultation()
	c.Message = strings.Repeat("é", 150)
	text := renderSubmittedWhatsApp(c)
	if !utf8.ValidString(text) {
		t.Fatalf("truncation produced invalid UTF-8:\n%s", text)
	}
	if !strings.Contains(text, strings.Repeat("é", 100)+"...") {
		t.Fatalf("expected 100 characters kept, got:\n%s", text)
	}
	if strings.Contains(text, strings.Repeat("é", 101)) {
		t.Fatalf("message not truncated at 100 characters")
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"in-progress": "In progress",
		"pending":     "Pending",
		"":            "",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Fatalf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
