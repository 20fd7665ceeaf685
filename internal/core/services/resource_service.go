package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

// facilityView holds the request collections scoped to one admin session.
// The upstream list endpoints answer relative to the caller's managed
// facility, so these caches cannot be shared across sessions.
type facilityView struct {
	bedRequests   *Collection[domain.BedRequest]
	bloodRequests *Collection[domain.BloodRequest]
}

// ResourceService fronts the upstream collections: the public hospital and
// blood bank lists are cached process-wide, request lists per session.
type ResourceService struct {
	upstream ports.UpstreamClient
	outbox   ports.OutboxRepository // optional

	hospitals  *Collection[domain.Hospital]
	bloodBanks *Collection[domain.BloodBank]

	mu    sync.Mutex
	views map[string]*facilityView
}

var _ ports.ResourceService = (*ResourceService)(nil)

func NewResourceService(upstream ports.UpstreamClient, outbox ports.OutboxRepository) *ResourceService {
	s := &ResourceService{
		upstream: upstream,
		outbox:   outbox,
		views:    make(map[string]*facilityView),
	}
	s.hospitals = NewCollection(
		func(ctx context.Context) ([]domain.Hospital, error) { return upstream.Hospitals(ctx) },
		func(h domain.Hospital) string { return h.ID },
	)
	s.bloodBanks = NewCollection(
		func(ctx context.Context) ([]domain.BloodBank, error) { return upstream.BloodBanks(ctx) },
		func(b domain.BloodBank) string { return b.ID },
	)
	return s
}

func (s *ResourceService) Hospitals(ctx context.Context, refresh bool) ([]domain.Hospital, error) {
	if refresh || s.hospitals.Len() == 0 {
		if err := s.hospitals.FetchAll(ctx); err != nil {
			return nil, err
		}
	}
	return s.hospitals.Items(), nil
}

func (s *ResourceService) BloodBanks(ctx context.Context, refresh bool) ([]domain.BloodBank, error) {
	if refresh || s.bloodBanks.Len() == 0 {
		if err := s.bloodBanks.FetchAll(ctx); err != nil {
			return nil, err
		}
	}
	return s.bloodBanks.Items(), nil
}

// HospitalsStatus exposes the shared loading flag and last error message.
func (s *ResourceService) HospitalsStatus() ports.CollectionStatus {
	loading, errMsg := s.hospitals.Status()
	return ports.CollectionStatus{Loading: loading, Error: errMsg}
}

func (s *ResourceService) BloodBanksStatus() ports.CollectionStatus {
	loading, errMsg := s.bloodBanks.Status()
	return ports.CollectionStatus{Loading: loading, Error: errMsg}
}

// UpdateBeds pushes a reconciled bed inventory upstream. Only the
// available/occupied pair travels; totals stay server-derived. The cached
// hospital record is replaced with the server's normalized counts.
func (s *ResourceService) UpdateBeds(ctx context.Context, sess ports.Session, hospitalID string, inventory domain.BedInventory) (*domain.Hospital, error) {
	hospital, err := s.upstream.UpdateBeds(ctx, sess.Token, hospitalID, inventory.Update())
	if err != nil {
		return nil, err
	}
	s.hospitals.ReplaceByID(*hospital)
	return hospital, nil
}

func (s *ResourceService) UpdateStock(ctx context.Context, sess ports.Session, bloodBankID string, stock domain.BloodStock) (*domain.BloodBank, error) {
	bank, err := s.upstream.UpdateStock(ctx, sess.Token, bloodBankID, stock.Clamped())
	if err != nil {
		return nil, err
	}
	s.bloodBanks.ReplaceByID(*bank)
	return bank, nil
}

// CreateBedRequest submits a new bed request. On success the hospital list is
// re-fetched rather than merged locally: the server computes the aggregate
// counts the gateway does not replicate.
func (s *ResourceService) CreateBedRequest(ctx context.Context, sid string, sess ports.Session, hospitalID string, params ports.BedRequestParams) (*domain.BedRequest, error) {
	if err := validateBedRequest(params); err != nil {
		return nil, err
	}
	created, err := s.upstream.CreateBedRequest(ctx, sess.Token, hospitalID, params)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, ports.ActivityEvent{
		Kind:        ports.EventRequestSubmitted,
		UserID:      userID(sess),
		RequestID:   created.ID,
		RequestKind: "bed",
		Status:      string(created.Status),
		FacilityID:  hospitalID,
	})

	if err := s.hospitals.FetchAll(ctx); err != nil {
		log.Printf("resources: post-create hospital refresh failed: %v", err)
	}
	return created, nil
}

func (s *ResourceService) CreateBloodRequest(ctx context.Context, sid string, sess ports.Session, bloodBankID string, params ports.BloodRequestParams) (*domain.BloodRequest, error) {
	if err := validateBloodRequest(params); err != nil {
		return nil, err
	}
	created, err := s.upstream.CreateBloodRequest(ctx, sess.Token, bloodBankID, params)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, ports.ActivityEvent{
		Kind:        ports.EventRequestSubmitted,
		UserID:      userID(sess),
		RequestID:   created.ID,
		RequestKind: "blood",
		Status:      string(created.Status),
		FacilityID:  bloodBankID,
	})

	if err := s.bloodBanks.FetchAll(ctx); err != nil {
		log.Printf("resources: post-create blood bank refresh failed: %v", err)
	}
	return created, nil
}

func (s *ResourceService) BedRequests(ctx context.Context, sid string, sess ports.Session) ([]domain.BedRequest, error) {
	view := s.view(sid, sess)
	if err := view.bedRequests.FetchAll(ctx); err != nil {
		return nil, err
	}
	return view.bedRequests.Items(), nil
}

func (s *ResourceService) BloodRequests(ctx context.Context, sid string, sess ports.Session) ([]domain.BloodRequest, error) {
	view := s.view(sid, sess)
	if err := view.bloodRequests.FetchAll(ctx); err != nil {
		return nil, err
	}
	return view.bloodRequests.Items(), nil
}

// UpdateBedRequestStatus sends a status change upstream and folds the
// server's authoritative record back into the session's cached list. Only
// Pending requests may transition.
func (s *ResourceService) UpdateBedRequestStatus(ctx context.Context, sid string, sess ports.Session, requestID string, status domain.RequestStatus) (*domain.BedRequest, error) {
	view := s.view(sid, sess)
	if current, ok := view.bedRequests.Get(requestID); ok {
		if err := current.Status.CheckTransition(status); err != nil {
			return nil, err
		}
	} else if !status.Valid() || status == domain.StatusPending {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	updated, err := s.upstream.UpdateBedRequestStatus(ctx, sess.Token, requestID, status)
	if err != nil {
		return nil, err
	}
	view.bedRequests.ReplaceByID(*updated)

	s.recordActivity(ctx, ports.ActivityEvent{
		Kind:        ports.EventRequestStatusChanged,
		UserID:      userID(sess),
		RequestID:   updated.ID,
		RequestKind: "bed",
		Status:      string(updated.Status),
	})
	return updated, nil
}

func (s *ResourceService) UpdateBloodRequestStatus(ctx context.Context, sid string, sess ports.Session, requestID string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	view := s.view(sid, sess)
	if current, ok := view.bloodRequests.Get(requestID); ok {
		if err := current.Status.CheckTransition(status); err != nil {
			return nil, err
		}
	} else if !status.Valid() || status == domain.StatusPending {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	updated, err := s.upstream.UpdateBloodRequestStatus(ctx, sess.Token, requestID, status)
	if err != nil {
		return nil, err
	}
	view.bloodRequests.ReplaceByID(*updated)

	s.recordActivity(ctx, ports.ActivityEvent{
		Kind:        ports.EventRequestStatusChanged,
		UserID:      userID(sess),
		RequestID:   updated.ID,
		RequestKind: "blood",
		Status:      string(updated.Status),
	})
	return updated, nil
}

func (s *ResourceService) History(ctx context.Context, sess ports.Session) ([]domain.HistoryEntry, error) {
	return s.upstream.History(ctx, sess.Token)
}

// DropSession disposes the per-session collections on logout.
func (s *ResourceService) DropSession(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, sid)
}

// view returns the session's facility view, creating it on first use. The
// fetch closures capture the session token so the upstream scopes results to
// the caller's managed facility.
func (s *ResourceService) view(sid string, sess ports.Session) *facilityView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[sid]; ok {
		return v
	}
	token := sess.Token
	v := &facilityView{
		bedRequests: NewCollection(
			func(ctx context.Context) ([]domain.BedRequest, error) {
				return s.upstream.HospitalBedRequests(ctx, token)
			},
			func(r domain.BedRequest) string { return r.ID },
		),
		bloodRequests: NewCollection(
			func(ctx context.Context) ([]domain.BloodRequest, error) {
				return s.upstream.HospitalBloodRequests(ctx, token)
			},
			func(r domain.BloodRequest) string { return r.ID },
		),
	}
	s.views[sid] = v
	return v
}

func (s *ResourceService) recordActivity(ctx context.Context, evt ports.ActivityEvent) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.outbox.AppendEvent(ctx, evt.Kind, payload); err != nil {
		log.Printf("resources: failed to record %s event: %v", evt.Kind, err)
	}
}

func userID(sess ports.Session) string {
	if sess.User == nil {
		return ""
	}
	return sess.User.ID
}

func validateBedRequest(p ports.BedRequestParams) error {
	if p.PatientName == "" {
		return fmt.Errorf("patient name is required")
	}
	if p.PatientAge <= 0 {
		return fmt.Errorf("patient age must be positive")
	}
	if !p.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", p.Priority)
	}
	switch p.BedType {
	case domain.BedICU, domain.BedGeneral, domain.BedEmergency, domain.BedPediatric:
	default:
		return fmt.Errorf("invalid bed type %q", p.BedType)
	}
	return nil
}

func validateBloodRequest(p ports.BloodRequestParams) error {
	if p.PatientName == "" {
		return fmt.Errorf("patient name is required")
	}
	if p.BloodGroup == "" {
		return fmt.Errorf("blood group is required")
	}
	if p.Units <= 0 {
		return fmt.Errorf("units must be positive")
	}
	if !p.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", p.Priority)
	}
	return nil
}
