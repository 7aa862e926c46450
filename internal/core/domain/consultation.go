package domain

import "time"

// Status represents the lifecycle state of a consultation request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusContacted  Status = "contacted"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every lifecycle state. pending is the sole initial state;
// updates may move a consultation between any two states, in any direction.
var Statuses = []Status{StatusPending, StatusContacted, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority represents the triage priority of a consultation.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Service identifies the consulting practice a request is addressed to.
type Service string

const (
	ServiceStrategic      Service = "strategic"
	ServiceDigital        Service = "digital"
	ServiceMarket         Service = "market"
	ServiceOrganizational Service = "organizational"
	ServiceOther          Service = "other"
)

var Services = []Service{ServiceStrategic, ServiceDigital, ServiceMarket, ServiceOrganizational, ServiceOther}

func (s Service) Valid() bool {
	switch s {
	case ServiceStrategic, ServiceDigital, ServiceMarket, ServiceOrganizational, ServiceOther:
		return true
	}
	return false
}

const (
	SourceWebsite  = "website"
	SourceReferral = "referral"
	SourceDirect   = "direct"
	SourceOther    = "other"
)

// OverdueAfter is the age past which a still-pending consultation counts as
// overdue.
const OverdueAfter = 48 * time.Hour

// Note is an internal staff remark attached to a consultation.
type Note struct {
	Text      string    `json:"text" bson:"text"`
	AddedBy   string    `json:"addedBy" bson:"addedBy"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Metadata captures request provenance recorded at submission time.
// SubmittedBy holds the user id when the submitter was authenticated;
// anonymous submissions leave it empty.
type Metadata struct {
	IPAddress   string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent   string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Referrer    string `json:"referrer,omitempty" bson:"referrer,omitempty"`
	SubmittedBy string `json:"submittedBy,omitempty" bson:"submittedBy,omitempty"`
}

// Consultation is the core aggregate: one inbound request for consulting
// services, tracked through its status lifecycle. The requester email is
// stored denormalized (submission does not require an account); ownership
// checks compare it against the caller's identity email.
type Consultation struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	Organization string    `json:"organization,omitempty" bson:"organization,omitempty"`
	Service      Service   `json:"service" bson:"service"`
	Message      string    `json:"message" bson:"message"`
	Status       Status    `json:"status" bson:"status"`
	Priority     Priority  `json:"priority" bson:"priority"`
	AssignedTo   string    `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Notes        []Note    `json:"notes" bson:"notes"`
	Source       string    `json:"source" bson:"source"`
	Metadata     Metadata  `json:"metadata" bson:"metadata"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsOverdue reports whether the consultation has been pending longer than
// OverdueAfter as of now. Any status change away from pending clears it.
func (c *Consultation) IsOverdue(now time.Time) bool {
	return c.Status == StatusPending && now.Sub(c.CreatedAt) > OverdueAfter
}

// IsUrgent reports whether the consultation carries urgent priority.
func (c *Consultation) IsUrgent() bool {
	return c.Priority == PriorityUrgent
}

// VisibleTo reports whether an identity may read this consultation. Staff
// bypass ownership; a client only sees requests submitted under their own
// (normalized) email.
func (c *Consultation) VisibleTo(role, email string) bool {
	if IsStaffRole(role) {
		return true
	}
	return c.Email == NormalizeEmail(email)
}
