package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/addisco/consulting-api/internal/api/metrics"
	"github.com/addisco/consulting-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans notifications out to the configured channels on a fixed set
// of workers. Dispatch never blocks the request path: when the buffer is full
// the notification is dropped and logged. Delivery failures are logged and
// counted, never surfaced to the caller.
type Dispatcher struct {
	queue         chan ports.Notification
	email         ports.Channel
	whatsapp      ports.Channel
	adminEmail    string
	adminWhatsApp string
	workers       int
	log           zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers workers. If
// numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, email, whatsapp ports.Channel, adminEmail, adminWhatsApp string, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		queue:         make(chan ports.Notification, channelBuffer),
		email:         email,
		whatsapp:      whatsapp,
		adminEmail:    adminEmail,
		adminWhatsApp: adminWhatsApp,
		workers:       numWorkers,
		log:           log,
	}
	return d
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Dispatch enqueues a notification without blocking. A full buffer drops the
// notification with a warning.
func (d *Dispatcher) Dispatch(n ports.Notification) {
	select {
	case d.queue <- n:
	default:
		metrics.NotificationsDropped.Inc()
		d.log.Warn().
			Str("kind", string(n.Kind)).
			Str("consultation_id", n.Consultation.ID).
			Msg("notification buffer full, dropping")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-d.queue:
			if !ok {
				return
			}
			d.process(ctx, id, n)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, n ports.Notification) {
	c := &n.Consultation
	switch n.Kind {
	case ports.NotifyConsultationSubmitted:
		subject, body := renderSubmittedAdminEmail(c)
		d.send(ctx, workerID, d.email, d.adminEmail, subject, body, c.ID)

		subject, body = renderSubmittedClientEmail(c)
		d.send(ctx, workerID, d.email, c.Email, subject, body, c.ID)

		if d.adminWhatsApp != "" {
			d.send(ctx, workerID, d.whatsapp, d.adminWhatsApp, "", renderSubmittedWhatsApp(c), c.ID)
		}
	case ports.NotifyStatusChanged:
		subject, body := renderStatusUpdateEmail(c)
		d.send(ctx, workerID, d.email, c.Email, subject, body, c.ID)
	default:
		d.log.Error().
			Str("kind", string(n.Kind)).
			Msg("unknown notification kind")
	}
}

func (d *Dispatcher) send(ctx context.Context, workerID int, ch ports.Channel, destination, subject, body, consultationID string) {
	res := ch.Send(ctx, destination, subject, body)
	if res.Delivered {
		metrics.NotificationsSent.WithLabelValues(ch.Name(), "delivered").Inc()
		d.log.Info().
			Str("channel", ch.Name()).
			Str("consultation_id", consultationID).
			Str("reference", res.Reference).
			Int("worker_id", workerID).
			Msg("notification delivered")
		return
	}
	metrics.NotificationsSent.WithLabelValues(ch.Name(), "failed").Inc()
	d.log.Warn().
		Str("channel", ch.Name()).
		Str("consultation_id", consultationID).
		Str("reason", res.FailureReason).
		Int("worker_id", workerID).
		Msg("notification not delivered")
}
