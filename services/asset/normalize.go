package asset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Senaseser/assetTracker/models"
)

// NormalizeAssets coerces a loosely-typed backend payload into well-formed
// assets. The mapping is total: a malformed record degrades to sentinel
// values, it never produces an error. A non-array top-level payload yields
// an empty list.
func NormalizeAssets(data interface{}) []models.Asset {
	records, ok := data.([]interface{})
	if !ok {
		return []models.Asset{}
	}

	assets := make([]models.Asset, 0, len(records))
	for i, raw := range records {
		assets = append(assets, normalizeAsset(raw, i))
	}
	return assets
}

func normalizeAsset(raw interface{}, index int) models.Asset {
	record, _ := raw.(map[string]interface{})

	id := pickID(record, index)
	name := pickString(record["assetName"], record["name"], record["title"], record["model"], record["serialNumber"])
	if name == "" {
		name = fmt.Sprintf("Asset %d", index+1)
	}
	serial := pickString(record["serialNumber"], record["serial"], record["code"])

	return models.Asset{
		ID:           id,
		AssetName:    name,
		PurchaseDate: coerceDate(record["purchaseDate"]),
		SerialNumber: serial,
		Employee:     normalizeEmployee(record["employee"]),
	}
}

// pickID takes the first id-like field that stringifies to something
// non-empty, falling back to a synthesized positional id.
func pickID(record map[string]interface{}, index int) string {
	for _, key := range []string{"id", "assetId", "serialNumber"} {
		if s := stringify(record[key]); s != "" {
			return s
		}
	}
	return fmt.Sprintf("asset-%d", index+1)
}

// pickString returns the first candidate that is a non-blank string.
func pickString(values ...interface{}) string {
	for _, v := range values {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// coerceDate parses a date value out of the record, defaulting to now when
// the value is absent or unparseable.
func coerceDate(v interface{}) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Now()
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed
		}
	}
	return time.Now()
}

func normalizeEmployee(v interface{}) models.Employee {
	record, ok := v.(map[string]interface{})
	if !ok {
		return models.EmptyEmployee()
	}

	department := normalizeDepartment(record["department"])
	departmentID := department.ID
	if raw, present := record["departmentId"]; present && raw != nil {
		departmentID = intValue(raw)
	}

	return models.Employee{
		ID:           intValue(record["id"]),
		FullName:     stringOr(record["fullName"], "-"),
		Email:        stringOr(record["email"], ""),
		DepartmentID: departmentID,
		Department:   department,
	}
}

func normalizeDepartment(v interface{}) models.Department {
	record, ok := v.(map[string]interface{})
	if !ok {
		return models.EmptyDepartment()
	}

	employees := []models.Employee{}
	if list, ok := record["employees"].([]interface{}); ok {
		for _, item := range list {
			employees = append(employees, normalizeEmployee(item))
		}
	}

	return models.Department{
		ID:        intValue(record["id"]),
		DeptName:  stringOr(record["deptName"], "-"),
		Location:  stringOr(record["location"], ""),
		Employees: employees,
	}
}

// stringOr keeps any string value, including empty, and only substitutes
// the fallback when the field is absent or not a string.
func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func intValue(v interface{}) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		n, _ := strconv.Atoi(value)
		return n
	default:
		return 0
	}
}
