package models

import (
	"time"
)

// Department groups employees under a named unit. ID 0 is the placeholder
// department standing in for data that has not been fetched yet; it is never
// a persisted entity.
type Department struct {
	ID        int        `json:"id"`
	DeptName  string     `json:"deptName"`
	Location  string     `json:"location"`
	Employees []Employee `json:"employees"`
}

// Employee ID 0 is the "unassigned" sentinel. DepartmentID should equal
// Department.ID whenever Department is resolved; the two diverge only while
// a placeholder department stands in for unfetched data.
type Employee struct {
	ID           int        `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	DepartmentID int        `json:"departmentId"`
	Department   Department `json:"department"`
}

// Asset IDs are kept as strings to tolerate heterogeneous backend id shapes.
// Employee is never absent: the sentinel employee represents "unassigned".
type Asset struct {
	ID           string    `json:"id"`
	AssetName    string    `json:"assetName"`
	PurchaseDate time.Time `json:"purchaseDate"`
	SerialNumber string    `json:"serialNumber"`
	Employee     Employee  `json:"employee"`
}

// EmptyDepartment returns a fresh placeholder department.
func EmptyDepartment() Department {
	return Department{
		ID:        0,
		DeptName:  "-",
		Location:  "",
		Employees: []Employee{},
	}
}

// EmptyEmployee returns a fresh "unassigned" sentinel employee.
func EmptyEmployee() Employee {
	return Employee{
		ID:           0,
		FullName:     "-",
		Email:        "",
		DepartmentID: 0,
		Department:   EmptyDepartment(),
	}
}

// Assigned reports whether the asset is checked out to a real employee.
func (a Asset) Assigned() bool {
	return a.Employee.ID > 0
}

// ResolvedDepartmentID prefers the employee's own departmentId and falls
// back to the nested department record.
func (e Employee) ResolvedDepartmentID() int {
	if e.DepartmentID != 0 {
		return e.DepartmentID
	}
	return e.Department.ID
}
