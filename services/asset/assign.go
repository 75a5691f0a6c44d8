package asset

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Senaseser/assetTracker/models"
	"github.com/Senaseser/assetTracker/providers"
	"github.com/Senaseser/assetTracker/utils"
	"github.com/pkg/errors"
)

// ManagementStore is the slice of the management service the assignment
// workflow reads selections from.
type ManagementStore interface {
	Departments() []models.Department
	Employees() []models.Employee
}

type assignRequest struct {
	EmployeeID *int `json:"employeeId"`
}

// AssignmentWorkflow coordinates the asset and management stores around the
// backend PATCH: mutate first, then project the result into the asset list.
// On failure nothing is projected, so the caller's interaction state stays
// valid for a retry.
type AssignmentWorkflow struct {
	assets   AssetService
	mgmt     ManagementStore
	api      providers.APIClientProvider
	notifier providers.NotifierProvider
}

func NewAssignmentWorkflow(assets AssetService, mgmt ManagementStore, api providers.APIClientProvider, notifier providers.NotifierProvider) *AssignmentWorkflow {
	return &AssignmentWorkflow{
		assets:   assets,
		mgmt:     mgmt,
		api:      api,
		notifier: notifier,
	}
}

func (w *AssignmentWorkflow) Assign(ctx context.Context, assetID, departmentID, employeeID string) error {
	if err := utils.SelectionValidityCheck(departmentID, employeeID); err != nil {
		return err
	}
	resolvedEmployeeID, err := strconv.Atoi(employeeID)
	if err != nil {
		return errors.New("invalid employee selection")
	}

	body := assignRequest{EmployeeID: &resolvedEmployeeID}
	if err := w.api.Request(ctx, http.MethodPatch, "/api/assets/"+assetID, body, nil); err != nil {
		w.notifier.Error(err.Error())
		return err
	}

	resolved := w.resolveEmployee(departmentID, resolvedEmployeeID)
	w.assets.UpdateAssetEmployee(assetID, &resolved)
	w.notifier.Success("assignment completed")
	return nil
}

func (w *AssignmentWorkflow) Unassign(ctx context.Context, assetID string) error {
	body := assignRequest{EmployeeID: nil}
	if err := w.api.Request(ctx, http.MethodPatch, "/api/assets/"+assetID, body, nil); err != nil {
		w.notifier.Error(err.Error())
		return err
	}

	w.assets.UpdateAssetEmployee(assetID, nil)
	w.notifier.Info("asset unassigned")
	return nil
}

// resolveEmployee builds the employee projected into the asset list after a
// successful assignment. The department comes from the best available data,
// in order: the employee's own resolved department, the selected department
// from the fetched list, a synthesized placeholder carrying the selection
// id.
func (w *AssignmentWorkflow) resolveEmployee(departmentID string, employeeID int) models.Employee {
	var selectedEmployee *models.Employee
	for _, e := range w.mgmt.Employees() {
		if e.ID == employeeID {
			employee := e
			selectedEmployee = &employee
			break
		}
	}

	parsedDeptID, _ := strconv.Atoi(departmentID)
	var selectedDepartment *models.Department
	for _, d := range w.mgmt.Departments() {
		if d.ID == parsedDeptID {
			department := d
			selectedDepartment = &department
			break
		}
	}

	var department models.Department
	switch {
	case selectedEmployee != nil && selectedEmployee.Department.ID != 0:
		department = selectedEmployee.Department
	case selectedDepartment != nil:
		department = *selectedDepartment
	default:
		department = models.Department{
			ID:        parsedDeptID,
			DeptName:  "-",
			Location:  "",
			Employees: []models.Employee{},
		}
	}

	if selectedEmployee != nil {
		employee := *selectedEmployee
		employee.Department = department
		employee.DepartmentID = department.ID
		return employee
	}

	return models.Employee{
		ID:           employeeID,
		FullName:     "Assigned",
		Email:        "",
		DepartmentID: department.ID,
		Department:   department,
	}
}
