// Package mocks provides mock implementations of port interfaces for testing.
// In hexagonal architecture, ports define the contracts between the core domain
// and external adapters. Mocks implement these interfaces to enable isolated testing.
package mocks

import (
	"context"
	"sync"

	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

// MockUpstreamClient implements ports.UpstreamClient for testing.
// Each method returns the configured result, records the call, and honors an
// injected error so services can be tested without a real backend.
type MockUpstreamClient struct {
	mu sync.Mutex

	// Configured results
	VerifyUser    *domain.User
	LoginToken    string
	LoginUser     *domain.User
	RegisterToken string
	RegisterUser  *domain.User
	HospitalList  []domain.Hospital
	BloodBankList []domain.BloodBank
	BedReqList    []domain.BedRequest
	BloodReqList  []domain.BloodRequest
	HistoryList   []domain.HistoryEntry

	UpdatedHospital  *domain.Hospital
	UpdatedBloodBank *domain.BloodBank
	CreatedBedReq    *domain.BedRequest
	CreatedBloodReq  *domain.BloodRequest
	UpdatedBedReq    *domain.BedRequest
	UpdatedBloodReq  *domain.BloodRequest

	// Call tracking for verification
	VerifyCalls        []string
	LoginCalls         []string
	RegisterCalls      []ports.RegisterParams
	HospitalsCalls     int
	BloodBanksCalls    int
	UpdateBedsCalls    []domain.BedUpdate
	UpdateStockCalls   []domain.BloodStock
	CreateBedCalls     []ports.BedRequestParams
	CreateBloodCalls   []ports.BloodRequestParams
	BedStatusCalls     []domain.RequestStatus
	BloodStatusCalls   []domain.RequestStatus
	BedRequestsCalls   []string
	BloodRequestsCalls []string
	HistoryCalls       []string

	// Error injection for testing error scenarios
	VerifyError      error
	LoginError       error
	RegisterError    error
	HospitalsError   error
	BloodBanksError  error
	UpdateBedsError  error
	UpdateStockError error
	CreateBedError   error
	CreateBloodError error
	BedStatusError   error
	BloodStatusError error
	ListError        error
	HistoryError     error
}

var _ ports.UpstreamClient = (*MockUpstreamClient)(nil)

func NewMockUpstreamClient() *MockUpstreamClient {
	return &MockUpstreamClient{}
}

func (m *MockUpstreamClient) Verify(ctx context.Context, token string) (*domain.User, error) {
	m.mu.Lock()
	m.VerifyCalls = append(m.VerifyCalls, token)
	m.mu.Unlock()

	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	return m.VerifyUser, nil
}

func (m *MockUpstreamClient) Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	m.mu.Lock()
	m.LoginCalls = append(m.LoginCalls, email)
	m.mu.Unlock()

	if m.LoginError != nil {
		return "", nil, m.LoginError
	}
	return m.LoginToken, m.LoginUser, nil
}

func (m *MockUpstreamClient) Register(ctx context.Context, params ports.RegisterParams) (string, *domain.User, error) {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, params)
	m.mu.Unlock()

	if m.RegisterError != nil {
		return "", nil, m.RegisterError
	}
	return m.RegisterToken, m.RegisterUser, nil
}

func (m *MockUpstreamClient) Hospitals(ctx context.Context) ([]domain.Hospital, error) {
	m.mu.Lock()
	m.HospitalsCalls++
	m.mu.Unlock()

	if m.HospitalsError != nil {
		return nil, m.HospitalsError
	}
	return m.HospitalList, nil
}

func (m *MockUpstreamClient) BloodBanks(ctx context.Context) ([]domain.BloodBank, error) {
	m.mu.Lock()
	m.BloodBanksCalls++
	m.mu.Unlock()

	if m.BloodBanksError != nil {
		return nil, m.BloodBanksError
	}
	return m.BloodBankList, nil
}

func (m *MockUpstreamClient) UpdateBeds(ctx context.Context, token, hospitalID string, beds domain.BedUpdate) (*domain.Hospital, error) {
	m.mu.Lock()
	m.UpdateBedsCalls = append(m.UpdateBedsCalls, beds)
	m.mu.Unlock()

	if m.UpdateBedsError != nil {
		return nil, m.UpdateBedsError
	}
	return m.UpdatedHospital, nil
}

func (m *MockUpstreamClient) UpdateStock(ctx context.Context, token, bloodBankID string, stock domain.BloodStock) (*domain.BloodBank, error) {
	m.mu.Lock()
	m.UpdateStockCalls = append(m.UpdateStockCalls, stock)
	m.mu.Unlock()

	if m.UpdateStockError != nil {
		return nil, m.UpdateStockError
	}
	return m.UpdatedBloodBank, nil
}

func (m *MockUpstreamClient) CreateBedRequest(ctx context.Context, token, hospitalID string, params ports.BedRequestParams) (*domain.BedRequest, error) {
	m.mu.Lock()
	m.CreateBedCalls = append(m.CreateBedCalls, params)
	m.mu.Unlock()

	if m.CreateBedError != nil {
		return nil, m.CreateBedError
	}
	return m.CreatedBedReq, nil
}

func (m *MockUpstreamClient) CreateBloodRequest(ctx context.Context, token, bloodBankID string, params ports.BloodRequestParams) (*domain.BloodRequest, error) {
	m.mu.Lock()
	m.CreateBloodCalls = append(m.CreateBloodCalls, params)
	m.mu.Unlock()

	if m.CreateBloodError != nil {
		return nil, m.CreateBloodError
	}
	return m.CreatedBloodReq, nil
}

func (m *MockUpstreamClient) HospitalBedRequests(ctx context.Context, token string) ([]domain.BedRequest, error) {
	m.mu.Lock()
	m.BedRequestsCalls = append(m.BedRequestsCalls, token)
	m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.BedReqList, nil
}

func (m *MockUpstreamClient) HospitalBloodRequests(ctx context.Context, token string) ([]domain.BloodRequest, error) {
	m.mu.Lock()
	m.BloodRequestsCalls = append(m.BloodRequestsCalls, token)
	m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.BloodReqList, nil
}

func (m *MockUpstreamClient) UpdateBedRequestStatus(ctx context.Context, token, requestID string, status domain.RequestStatus) (*domain.BedRequest, error) {
	m.mu.Lock()
	m.BedStatusCalls = append(m.BedStatusCalls, status)
	m.mu.Unlock()

	if m.BedStatusError != nil {
		return nil, m.BedStatusError
	}
	return m.UpdatedBedReq, nil
}

func (m *MockUpstreamClient) UpdateBloodRequestStatus(ctx context.Context, token, requestID string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	m.mu.Lock()
	m.BloodStatusCalls = append(m.BloodStatusCalls, status)
	m.mu.Unlock()

	if m.BloodStatusError != nil {
		return nil, m.BloodStatusError
	}
	return m.UpdatedBloodReq, nil
}

func (m *MockUpstreamClient) History(ctx context.Context, token string) ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	m.HistoryCalls = append(m.HistoryCalls, token)
	m.mu.Unlock()

	if m.HistoryError != nil {
		return nil, m.HistoryError
	}
	return m.HistoryList, nil
}
