package ports

import (
	"context"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// SendResult reports the outcome of one channel send. An unconfigured or
// failed channel yields Delivered=false with a reason; it never errors.
type SendResult struct {
	Delivered     bool
	Reference     string
	FailureReason string
}

// Channel is one notification transport (email, messaging app). Send must not
// panic and must not return transport errors as Go errors: failures are
// captured in the result so the caller can log and move on.
type Channel interface {
	Name() string
	Send(ctx context.Context, destination, subject, body string) SendResult
}

// NotificationKind discriminates the lifecycle events that produce
// notifications.
type NotificationKind string

const (
	NotifyConsultationSubmitted NotificationKind = "consultation_submitted"
	NotifyStatusChanged         NotificationKind = "status_changed"
)

// Notification is the intent handed to the dispatcher after a lifecycle
// mutation commits. It carries a snapshot of the consultation so rendering
// never reads the store.
type Notification struct {
	Kind         NotificationKind
	Consultation domain.Consultation
}

// NotificationDispatcher accepts notification intents without blocking.
// Dispatch is fire-and-forget relative to the triggering request: its outcome
// can never affect, and is never awaited by, the lifecycle operation.
type NotificationDispatcher interface {
	Dispatch(n Notification)
}
