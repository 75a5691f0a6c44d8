package management

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/Senaseser/assetTracker/models"
	"github.com/Senaseser/assetTracker/providers"
	"github.com/Senaseser/assetTracker/utils"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

type ManagementService interface {
	FetchDepartments(ctx context.Context) error
	FetchEmployeesByDepartment(ctx context.Context, departmentID string) error
	ClearEmployees()
	CreateDepartment(ctx context.Context, payload DepartmentPayload) error
	UpdateDepartment(ctx context.Context, departmentID int, payload DepartmentPayload) error
	DeleteDepartment(ctx context.Context, departmentID int) error
	CreateEmployee(ctx context.Context, payload EmployeePayload) error
	UpdateEmployee(ctx context.Context, employeeID int, payload EmployeePayload) error
	DeleteEmployee(ctx context.Context, employeeID int) error
	Departments() []models.Department
	Employees() []models.Employee
	SelectedDepartmentID() string
	Status() Status
	Err() string
}

type managementService struct {
	api      providers.APIClientProvider
	notifier providers.NotifierProvider
	logger   providers.ZapLoggerProvider

	mu                   sync.Mutex
	departments          []models.Department
	employees            []models.Employee
	selectedDepartmentID string
	status               Status
	errMsg               string
}

func NewManagementService(api providers.APIClientProvider, notifier providers.NotifierProvider, logger providers.ZapLoggerProvider) ManagementService {
	return &managementService{
		api:      api,
		notifier: notifier,
		logger:   logger,
		status:   StatusIdle,
	}
}

// FetchDepartments replaces the department list wholesale. Non-array
// payloads degrade to an empty list rather than erroring.
func (s *managementService) FetchDepartments(ctx context.Context) error {
	s.setLoading()

	var raw json.RawMessage
	if err := s.api.Request(ctx, http.MethodGet, "/api/departments", nil, &raw); err != nil {
		s.fail(err.Error())
		return err
	}

	departments := []models.Department{}
	if err := jsonIter.Unmarshal(raw, &departments); err != nil {
		departments = []models.Department{}
	}

	s.mu.Lock()
	s.departments = departments
	s.status = StatusIdle
	s.mu.Unlock()
	return nil
}

// FetchEmployeesByDepartment records the selection and replaces the
// employee list wholesale, with the same non-array tolerance.
func (s *managementService) FetchEmployeesByDepartment(ctx context.Context, departmentID string) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.errMsg = ""
	s.selectedDepartmentID = departmentID
	s.mu.Unlock()

	var raw json.RawMessage
	if err := s.api.Request(ctx, http.MethodGet, "/api/departments/"+departmentID+"/employees", nil, &raw); err != nil {
		s.fail(err.Error())
		return err
	}

	employees := []models.Employee{}
	if err := jsonIter.Unmarshal(raw, &employees); err != nil {
		employees = []models.Employee{}
	}

	s.mu.Lock()
	s.employees = employees
	s.status = StatusIdle
	s.mu.Unlock()
	return nil
}

// ClearEmployees empties the employee list and the selection marker, used
// when the department selector is reset.
func (s *managementService) ClearEmployees() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = nil
	s.selectedDepartmentID = ""
}

func (s *managementService) CreateDepartment(ctx context.Context, payload DepartmentPayload) error {
	if err := validateDepartment(payload); err != nil {
		return err
	}
	s.setLoading()

	var created models.Department
	if err := s.api.Request(ctx, http.MethodPost, "/api/departments", payload, &created); err != nil {
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	s.departments = append(s.departments, created)
	s.status = StatusIdle
	s.mu.Unlock()
	s.notifier.Success("department added")
	return nil
}

func (s *managementService) UpdateDepartment(ctx context.Context, departmentID int, payload DepartmentPayload) error {
	if err := validateDepartment(payload); err != nil {
		return err
	}
	s.setLoading()

	var updated models.Department
	if err := s.api.Request(ctx, http.MethodPut, "/api/departments/"+strconv.Itoa(departmentID), payload, &updated); err != nil {
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	for i := range s.departments {
		if s.departments[i].ID == departmentID {
			s.departments[i] = updated
		}
	}
	s.status = StatusIdle
	s.mu.Unlock()
	s.notifier.Success("department updated")
	return nil
}

func (s *managementService) DeleteDepartment(ctx context.Context, departmentID int) error {
	s.setLoading()

	if err := s.api.Request(ctx, http.MethodDelete, "/api/departments/"+strconv.Itoa(departmentID), nil, nil); err != nil {
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	kept := s.departments[:0]
	for _, d := range s.departments {
		if d.ID != departmentID {
			kept = append(kept, d)
		}
	}
	s.departments = kept
	s.status = StatusIdle
	s.mu.Unlock()
	s.notifier.Info("department deleted")
	return nil
}

func (s *managementService) CreateEmployee(ctx context.Context, payload EmployeePayload) error {
	if err := validateEmployee(payload); err != nil {
		return err
	}
	s.setLoading()

	var created models.Employee
	if err := s.api.Request(ctx, http.MethodPost, "/api/employees", payload, &created); err != nil {
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	s.employees = append(s.employees, created)
	s.status = StatusIdle
	s.mu.Unlock()
	s.notifier.Success("employee added")
	return nil
}

func (s *managementService) UpdateEmployee(ctx context.Context, employeeID int, payload EmployeePayload) error {
	if err := validateEmployee(payload); err != nil {
		return err
	}
	s.setLoading()

	var updated models.Employee
	if err := s.api.Request(ctx, http.MethodPut, "/api/employees/"+strconv.Itoa(employeeID), payload, &updated); err != nil {
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	for i := range s.employees {
		if s.employees[i].ID == employeeID {
			s.employees[i] = updated
		}
	}
	s.status = StatusIdle
	s.mu.Unlock()
	s.notifier.Success("employee updated")
	return nil
}

func (s *managementService) DeleteEmployee(ctx context.Context, employeeID int) error {
	s.setLoading()

	if err := s.api.Request(ctx, http.MethodDelete, "/api/employees/"+strconv.Itoa(employeeID), nil, nil); err != nil {
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	kept := s.employees[:0]
	for _, e := range s.employees {
		if e.ID != employeeID {
			kept = append(kept, e)
		}
	}
	s.employees = kept
	s.status = StatusIdle
	s.mu.Unlock()
	s.notifier.Info("employee deleted")
	return nil
}

func (s *managementService) Departments() []models.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Department, len(s.departments))
	copy(out, s.departments)
	return out
}

func (s *managementService) Employees() []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *managementService) SelectedDepartmentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDepartmentID
}

func (s *managementService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *managementService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *managementService) setLoading() {
	s.mu.Lock()
	s.status = StatusLoading
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *managementService) fail(message string) {
	s.mu.Lock()
	s.status = StatusError
	s.errMsg = message
	s.mu.Unlock()
	s.notifier.Error(message)
}

func validateDepartment(payload DepartmentPayload) error {
	if err := utils.DepartmentValidityCheck(payload.DeptName, payload.Location); err != nil {
		return err
	}
	return validator.New().Struct(payload)
}

func validateEmployee(payload EmployeePayload) error {
	if err := utils.EmployeeValidityCheck(payload.FullName, payload.Email, payload.DepartmentID); err != nil {
		return err
	}
	return validator.New().Struct(payload)
}
