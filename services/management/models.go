package management

// DepartmentPayload is the create/update request body for a department.
type DepartmentPayload struct {
	DeptName string `json:"deptName" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// EmployeePayload is the create/update request body for an employee.
type EmployeePayload struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	DepartmentID int    `json:"departmentId" validate:"required,min=1"`
}
