package asset

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/Senaseser/assetTracker/models"
	"github.com/Senaseser/assetTracker/providers"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

type AssetService interface {
	FetchAssets(ctx context.Context) error
	Assets() []models.Asset
	FilteredAssets() []models.Asset
	UpdateAssetEmployee(assetID string, employee *models.Employee)
	SetSearch(search string)
	SetDepartmentFilter(departmentID string)
	SetAssignedFilter(assigned models.Assignment)
	ClearFilters()
	Filters() models.AssetFilters
	Status() Status
	Err() string
}

type assetService struct {
	api      providers.APIClientProvider
	notifier providers.NotifierProvider
	logger   providers.ZapLoggerProvider

	mu      sync.Mutex
	assets  []models.Asset
	status  Status
	errMsg  string
	filters models.AssetFilters
}

func NewAssetService(api providers.APIClientProvider, notifier providers.NotifierProvider, logger providers.ZapLoggerProvider) AssetService {
	return &assetService{
		api:      api,
		notifier: notifier,
		logger:   logger,
		status:   StatusIdle,
		filters:  models.DefaultAssetFilters(),
	}
}

// FetchAssets replaces the whole list with the normalized backend response.
// A transport failure clears the list; the error state is not sticky, the
// next fetch clears it.
func (s *assetService) FetchAssets(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.errMsg = ""
	s.mu.Unlock()

	var raw interface{}
	if err := s.api.Request(ctx, http.MethodGet, "/api/assets", nil, &raw); err != nil {
		s.mu.Lock()
		s.assets = nil
		s.status = StatusError
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notifier.Error(err.Error())
		return err
	}

	normalized := NormalizeAssets(raw)
	s.mu.Lock()
	s.assets = normalized
	s.status = StatusIdle
	s.mu.Unlock()
	return nil
}

func (s *assetService) Assets() []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// FilteredAssets derives the visible list from current assets and filters.
// The three predicates are ANDed; stored assets are never mutated.
func (s *assetService) FilteredAssets() []models.Asset {
	s.mu.Lock()
	assets := make([]models.Asset, len(s.assets))
	copy(assets, s.assets)
	filters := s.filters
	s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if search != "" &&
			!strings.Contains(strings.ToLower(a.AssetName), search) &&
			!strings.Contains(strings.ToLower(a.SerialNumber), search) {
			continue
		}
		if !filters.MatchesDepartment(a.Employee.ResolvedDepartmentID()) {
			continue
		}
		switch filters.Assigned {
		case models.AssignedOnly:
			if !a.Assigned() {
				continue
			}
		case models.AssignedUnassigned:
			if a.Employee.ID != 0 {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// UpdateAssetEmployee is a pure local projection after an external mutation:
// it swaps the employee of the matching asset, mapping nil to the
// unassigned sentinel. Unknown ids are a no-op. No network call is made.
func (s *assetService) UpdateAssetEmployee(assetID string, employee *models.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assets {
		if s.assets[i].ID != assetID {
			continue
		}
		if employee != nil {
			s.assets[i].Employee = *employee
		} else {
			s.assets[i].Employee = models.EmptyEmployee()
		}
		return
	}
}

func (s *assetService) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Search = search
}

func (s *assetService) SetDepartmentFilter(departmentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.DepartmentID = departmentID
}

func (s *assetService) SetAssignedFilter(assigned models.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Assigned = assigned
}

func (s *assetService) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = models.DefaultAssetFilters()
}

func (s *assetService) Filters() models.AssetFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *assetService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *assetService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
