package utils

import (
	"strings"

	"github.com/pkg/errors"
)

// Required-field checks run before any network call; failures never reach
// the backend.

func DepartmentValidityCheck(deptName, location string) error {
	if strings.TrimSpace(deptName) == "" {
		return errors.New("department name is required")
	}

	if strings.TrimSpace(location) == "" {
		return errors.New("location is required")
	}
	return nil
}

func EmployeeValidityCheck(fullName, email string, departmentID int) error {
	if strings.TrimSpace(fullName) == "" {
		return errors.New("full name is required")
	}

	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}

	if departmentID <= 0 {
		return errors.New("department is required")
	}
	return nil
}

func SelectionValidityCheck(departmentID, employeeID string) error {
	if strings.TrimSpace(departmentID) == "" || strings.TrimSpace(employeeID) == "" {
		return errors.New("department and employee must be selected")
	}
	return nil
}
