package domain

import "testing"

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to completed", StatusPending, StatusCompleted, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"approved is terminal", StatusApproved, StatusCompleted, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"completed is terminal", StatusCompleted, StatusPending, false},
		{"pending to unknown", StatusPending, RequestStatus("Archived"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
			}
		})
	}
}

func TestRequestStatus_CheckTransition(t *testing.T) {
	if err := StatusPending.CheckTransition(StatusApproved); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := StatusApproved.CheckTransition(StatusCompleted); err == nil {
		t.Error("expected error for transition out of terminal state")
	}
	if err := StatusPending.CheckTransition(RequestStatus("bogus")); err == nil {
		t.Error("expected error for unknown target status")
	}
}

func TestPriority_Valid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		if !p.Valid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if Priority("urgent").Valid() {
		t.Error("expected unknown priority to be invalid")
	}
}
