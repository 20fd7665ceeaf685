package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
)

// ErrUpstreamUnavailable wraps transport-level failures (connection refused,
// timeouts, open circuit breaker).
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// UpstreamError carries a non-2xx upstream response with its message field.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// IsAuthFailure reports whether err is an upstream 401.
func IsAuthFailure(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == 401
}

type RegisterParams struct {
	FirstName     string                `json:"firstName"`
	LastName      string                `json:"lastName"`
	Email         string                `json:"email"`
	Password      string                `json:"password"`
	Role          domain.Role           `json:"role"`
	HospitalInfo  *domain.HospitalInfo  `json:"hospitalInfo,omitempty"`
	BloodBankInfo *domain.BloodBankInfo `json:"bloodBankInfo,omitempty"`
}

type BedRequestParams struct {
	PatientName      string             `json:"patientName"`
	PatientAge       int                `json:"patientAge"`
	PatientGender    string             `json:"patientGender"`
	ContactNumber    string             `json:"contactNumber"`
	BedType          domain.BedCategory `json:"bedType"`
	Priority         domain.Priority    `json:"priority"`
	MedicalCondition string             `json:"medicalCondition,omitempty"`
}

type BloodRequestParams struct {
	PatientName   string          `json:"patientName"`
	PatientAge    int             `json:"patientAge"`
	ContactNumber string          `json:"contactNumber"`
	BloodGroup    string          `json:"bloodGroup"`
	Units         int             `json:"units"`
	Priority      domain.Priority `json:"priority"`
	HospitalName  string          `json:"hospitalName,omitempty"`
	Purpose       string          `json:"purpose,omitempty"`
}

// UpstreamClient is the REST backend the gateway consumes. Every call takes a
// context; authenticated calls take the session's bearer token.
type UpstreamClient interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
	Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	Register(ctx context.Context, params RegisterParams) (string, *domain.User, error)

	Hospitals(ctx context.Context) ([]domain.Hospital, error)
	BloodBanks(ctx context.Context) ([]domain.BloodBank, error)
	UpdateBeds(ctx context.Context, token, hospitalID string, beds domain.BedUpdate) (*domain.Hospital, error)
	UpdateStock(ctx context.Context, token, bloodBankID string, stock domain.BloodStock) (*domain.BloodBank, error)

	CreateBedRequest(ctx context.Context, token, hospitalID string, params BedRequestParams) (*domain.BedRequest, error)
	CreateBloodRequest(ctx context.Context, token, bloodBankID string, params BloodRequestParams) (*domain.BloodRequest, error)
	HospitalBedRequests(ctx context.Context, token string) ([]domain.BedRequest, error)
	HospitalBloodRequests(ctx context.Context, token string) ([]domain.BloodRequest, error)
	UpdateBedRequestStatus(ctx context.Context, token, requestID string, status domain.RequestStatus) (*domain.BedRequest, error)
	UpdateBloodRequestStatus(ctx context.Context, token, requestID string, status domain.RequestStatus) (*domain.BloodRequest, error)
	History(ctx context.Context, token string) ([]domain.HistoryEntry, error)
}
