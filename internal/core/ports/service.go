package ports

import (
	"context"

	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
)

// SessionService owns the session lifecycle: bootstrap/verification, login,
// registration and teardown.
type SessionService interface {
	// Resume re-verifies a cached session against the upstream backend.
	// A missing or unverifiable session yields (nil, nil): not logged in,
	// never a fatal error.
	Resume(ctx context.Context, sid string) (*domain.User, error)
	Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	Register(ctx context.Context, params RegisterParams) (string, *domain.User, error)
	Logout(ctx context.Context, sid string) error
}

// CollectionStatus is the shared fetch state of a cached resource list:
// whether a refresh is in flight, and the last refresh's error if it failed.
type CollectionStatus struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// ResourceService fronts the upstream resource collections and the
// request-lifecycle operations.
type ResourceService interface {
	Hospitals(ctx context.Context, refresh bool) ([]domain.Hospital, error)
	BloodBanks(ctx context.Context, refresh bool) ([]domain.BloodBank, error)
	HospitalsStatus() CollectionStatus
	BloodBanksStatus() CollectionStatus
	UpdateBeds(ctx context.Context, sess Session, hospitalID string, inventory domain.BedInventory) (*domain.Hospital, error)
	UpdateStock(ctx context.Context, sess Session, bloodBankID string, stock domain.BloodStock) (*domain.BloodBank, error)

	CreateBedRequest(ctx context.Context, sid string, sess Session, hospitalID string, params BedRequestParams) (*domain.BedRequest, error)
	CreateBloodRequest(ctx context.Context, sid string, sess Session, bloodBankID string, params BloodRequestParams) (*domain.BloodRequest, error)
	BedRequests(ctx context.Context, sid string, sess Session) ([]domain.BedRequest, error)
	BloodRequests(ctx context.Context, sid string, sess Session) ([]domain.BloodRequest, error)
	UpdateBedRequestStatus(ctx context.Context, sid string, sess Session, requestID string, status domain.RequestStatus) (*domain.BedRequest, error)
	UpdateBloodRequestStatus(ctx context.Context, sid string, sess Session, requestID string, status domain.RequestStatus) (*domain.BloodRequest, error)
	History(ctx context.Context, sess Session) ([]domain.HistoryEntry, error)

	// DropSession disposes any per-session collection state on logout.
	DropSession(sid string)
}
