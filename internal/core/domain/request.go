package domain

import (
	"fmt"
	"time"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusApproved  RequestStatus = "Approved"
	StatusRejected  RequestStatus = "Rejected"
	StatusCompleted RequestStatus = "Completed"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is allowed. Pending is the
// only state a request may leave; everything else is terminal here.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s != StatusPending {
		return false
	}
	return next.Valid() && next != StatusPending
}

// CheckTransition returns a descriptive error for a disallowed change.
func (s RequestStatus) CheckTransition(next RequestStatus) error {
	if !next.Valid() {
		return fmt.Errorf("invalid status %q", next)
	}
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("cannot change status from %q to %q", s, next)
	}
	return nil
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// FacilityRef identifies the hospital or blood bank a request belongs to.
type FacilityRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
}

type BedRequest struct {
	ID               string        `json:"id"`
	PatientName      string        `json:"patientName"`
	PatientAge       int           `json:"patientAge"`
	PatientGender    string        `json:"patientGender"`
	ContactNumber    string        `json:"contactNumber"`
	BedType          BedCategory   `json:"bedType"`
	MedicalCondition string        `json:"medicalCondition,omitempty"`
	Priority         Priority      `json:"priority"`
	Status           RequestStatus `json:"status"`
	Hospital         FacilityRef   `json:"hospital"`
	CreatedAt        time.Time     `json:"createdAt"`
}

type BloodRequest struct {
	ID            string        `json:"id"`
	PatientName   string        `json:"patientName"`
	PatientAge    int           `json:"patientAge"`
	ContactNumber string        `json:"contactNumber"`
	BloodGroup    string        `json:"bloodGroup"`
	Units         int           `json:"units"`
	HospitalName  string        `json:"hospitalName,omitempty"`
	Purpose       string        `json:"purpose,omitempty"`
	Priority      Priority      `json:"priority"`
	Status        RequestStatus `json:"status"`
	BloodBank     FacilityRef   `json:"bloodBank"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// HistoryEntry is one row of a patient's mixed bed/blood request history.
type HistoryEntry struct {
	ID           string        `json:"id"`
	Kind         string        `json:"kind"` // "bed" or "blood"
	FacilityName string        `json:"facilityName"`
	PatientName  string        `json:"patientName"`
	Priority     Priority      `json:"priority"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
}
