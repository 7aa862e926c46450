package domain

import (
	"testing"
	"time"
)

func TestConsultation_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		status  Status
		age     time.Duration
		overdue bool
	}{
		{"pending just submitted", StatusPending, time.Minute, false},
		{"pending at exactly the cutoff", StatusPending, OverdueAfter, false},
		{"pending past the cutoff", StatusPending, OverdueAfter + time.Second, true},
		{"contacted past the cutoff", StatusContacted, 3 * OverdueAfter, false},
		{"completed past the cutoff", StatusCompleted, 3 * OverdueAfter, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Consultation{Status: tc.status, CreatedAt: now.Add(-tc.age)}
			if got := c.IsOverdue(now); got != tc.overdue {
				t.Fatalf("IsOverdue = %v, want %v", got, tc.overdue)
			}
		})
	}
}

func TestConsultation_VisibleTo(t *testing.T) {
	c := Consultation{Email: "jane@example.com"}

	if !c.VisibleTo(RoleAdmin, "someone@else.com") {
		t.Fatalf("admin must see every consultation")
	}
	if !c.VisibleTo(RolePartner, "someone@else.com") {
		t.Fatalf("partner must see every consultation")
	}
	if !c.VisibleTo(RoleClient, "JANE@Example.com") {
		t.Fatalf("owner must see their own consultation regardless of casing")
	}
	if c.VisibleTo(RoleClient, "other@example.com") {
		t.Fatalf("client must not see another client's consultation")
	}
	if !c.VisibleTo("", "jane@example.com") {
		t.Fatalf("ownership match must not depend on role")
	}
}

func TestStatusPriorityServiceValidity(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
	for _, p := range Priorities {
		if !p.Valid() {
			t.Fatalf("priority %q should be valid", p)
		}
	}
	if Priority("extreme").Valid() {
		t.Fatalf("unknown priority must be invalid")
	}
	for _, s := range Services {
		if !s.Valid() {
			t.Fatalf("service %q should be valid", s)
		}
	}
	if Service("astrology").Valid() {
		t.Fatalf("unknown service must be invalid")
	}
}
