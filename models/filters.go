package models

import "strconv"

// Assignment is the assigned-state filter value.
type Assignment string

const (
	AssignedAll        Assignment = "all"
	AssignedOnly       Assignment = "assigned"
	AssignedUnassigned Assignment = "unassigned"
)

// AssetFilters is the view-scoped filter triple for the asset list. It is
// never persisted. DepartmentID is a string because it mirrors a selector
// value; empty means "any department".
type AssetFilters struct {
	Search       string
	DepartmentID string
	Assigned     Assignment
}

// DefaultAssetFilters is the cleared filter state.
func DefaultAssetFilters() AssetFilters {
	return AssetFilters{
		Search:       "",
		DepartmentID: "",
		Assigned:     AssignedAll,
	}
}

// MatchesDepartment reports whether the given resolved department id passes
// the department filter.
func (f AssetFilters) MatchesDepartment(departmentID int) bool {
	if f.DepartmentID == "" {
		return true
	}
	return strconv.Itoa(departmentID) == f.DepartmentID
}
