package asset

import (
	"testing"
	"time"

	"github.com/Senaseser/assetTracker/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAssetsNonArrayPayloads(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
	}{
		{name: "nil payload", data: nil},
		{name: "object payload", data: map[string]interface{}{"error": "nope"}},
		{name: "string payload", data: "assets"},
		{name: "number payload", data: float64(7)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assets := NormalizeAssets(tc.data)
			assert.NotNil(t, assets)
			assert.Empty(t, assets)
		})
	}
}

func TestNormalizeAssetsIDCandidates(t *testing.T) {
	tests := []struct {
		name     string
		record   map[string]interface{}
		expected string
	}{
		{name: "id field", record: map[string]interface{}{"id": "a1"}, expected: "a1"},
		{name: "numeric id", record: map[string]interface{}{"id": float64(42)}, expected: "42"},
		{name: "assetId fallback", record: map[string]interface{}{"assetId": "X-9"}, expected: "X-9"},
		{name: "serial fallback", record: map[string]interface{}{"serialNumber": "SN-1"}, expected: "SN-1"},
		{name: "positional fallback", record: map[string]interface{}{}, expected: "asset-1"},
		{name: "empty id skipped", record: map[string]interface{}{"id": "", "assetId": "B-2"}, expected: "B-2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assets := NormalizeAssets([]interface{}{tc.record})
			assert.Len(t, assets, 1)
			assert.Equal(t, tc.expected, assets[0].ID)
		})
	}
}

func TestNormalizeAssetsNameAndSerialCandidates(t *testing.T) {
	assets := NormalizeAssets([]interface{}{
		map[string]interface{}{"name": "ThinkPad", "serial": "S-1"},
		map[string]interface{}{"title": "Monitor"},
		map[string]interface{}{"model": "XPS-13", "code": "C-7"},
		map[string]interface{}{},
	})
	assert.Len(t, assets, 4)

	assert.Equal(t, "ThinkPad", assets[0].AssetName)
	assert.Equal(t, "S-1", assets[0].SerialNumber)
	assert.Equal(t, "Monitor", assets[1].AssetName)
	assert.Equal(t, "XPS-13", assets[2].AssetName)
	assert.Equal(t, "C-7", assets[2].SerialNumber)

	// Everything missing: synthesized name, empty serial.
	assert.Equal(t, "Asset 4", assets[3].AssetName)
	assert.Empty(t, assets[3].SerialNumber)
}

func TestNormalizeAssetsPurchaseDate(t *testing.T) {
	assets := NormalizeAssets([]interface{}{
		map[string]interface{}{"purchaseDate": "2024-03-01T10:30:00Z"},
		map[string]interface{}{"purchaseDate": "2024-03-01"},
		map[string]interface{}{"purchaseDate": "not a date"},
		map[string]interface{}{},
	})
	assert.Len(t, assets, 4)

	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), assets[0].PurchaseDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), assets[1].PurchaseDate)
	assert.WithinDuration(t, time.Now(), assets[2].PurchaseDate, time.Minute)
	assert.WithinDuration(t, time.Now(), assets[3].PurchaseDate, time.Minute)
}

func TestNormalizeAssetsMissingEmployeeYieldsSentinel(t *testing.T) {
	assets := NormalizeAssets([]interface{}{
		map[string]interface{}{"id": "a1"},
		map[string]interface{}{"id": "a2", "employee": "broken"},
	})
	assert.Len(t, assets, 2)

	for _, a := range assets {
		assert.Equal(t, models.EmptyEmployee(), a.Employee)
		assert.False(t, a.Assigned())
	}
}

func TestNormalizeAssetsNestedEmployee(t *testing.T) {
	assets := NormalizeAssets([]interface{}{
		map[string]interface{}{
			"id": "a1",
			"employee": map[string]interface{}{
				"id":       float64(5),
				"fullName": "Jane Doe",
				"department": map[string]interface{}{
					"id":       float64(2),
					"deptName": "IT",
					"location": "HQ",
				},
			},
		},
	})
	assert.Len(t, assets, 1)

	employee := assets[0].Employee
	assert.Equal(t, 5, employee.ID)
	assert.Equal(t, "Jane Doe", employee.FullName)
	assert.Empty(t, employee.Email)
	assert.Equal(t, 2, employee.Department.ID)
	assert.Equal(t, "IT", employee.Department.DeptName)
	// departmentId missing on the wire: defaulted from the nested department.
	assert.Equal(t, 2, employee.DepartmentID)
	assert.True(t, assets[0].Assigned())
}

func TestNormalizeAssetsEmployeeWithoutDepartment(t *testing.T) {
	assets := NormalizeAssets([]interface{}{
		map[string]interface{}{
			"id": "a1",
			"employee": map[string]interface{}{
				"id":       float64(9),
				"fullName": "Solo",
			},
		},
	})
	assert.Len(t, assets, 1)

	employee := assets[0].Employee
	assert.Equal(t, 9, employee.ID)
	assert.Equal(t, models.EmptyDepartment(), employee.Department)
	assert.Zero(t, employee.DepartmentID)
}

func TestNormalizeAssetsExplicitDepartmentIDKept(t *testing.T) {
	assets := NormalizeAssets([]interface{}{
		map[string]interface{}{
			"id": "a1",
			"employee": map[string]interface{}{
				"id":           float64(3),
				"departmentId": float64(0),
				"department": map[string]interface{}{
					"id": float64(4),
				},
			},
		},
	})
	assert.Len(t, assets, 1)

	// An explicit zero on the wire stays zero; only an absent field falls
	// back to the nested department id.
	assert.Zero(t, assets[0].Employee.DepartmentID)
	assert.Equal(t, 4, assets[0].Employee.Department.ID)
}
