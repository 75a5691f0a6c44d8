// Package backendtest runs an in-process stand-in for the REST backend the
// dashboard client talks to, for use in service tests.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/Senaseser/assetTracker/models"
	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	Username = "admin"
	Password = "secret"
)

type patchCall struct {
	AssetID    string
	EmployeeID *int
}

type Backend struct {
	Server *httptest.Server

	mu          sync.Mutex
	departments []models.Department
	employees   map[int][]models.Employee
	rawAssets   []map[string]interface{}
	nextDeptID  int
	nextEmpID   int
	forcedError string
	lastPatch   *patchCall
}

func New(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		employees:  map[int][]models.Employee{},
		nextDeptID: 1,
		nextEmpID:  1,
	}

	r := chi.NewRouter()
	r.Use(b.basicAuth)
	r.Route("/api", func(api chi.Router) {
		api.Get("/assets", b.listAssets)
		api.Patch("/assets/{assetID}", b.patchAsset)

		api.Get("/departments", b.listDepartments)
		api.Post("/departments", b.createDepartment)
		api.Put("/departments/{departmentID}", b.updateDepartment)
		api.Delete("/departments/{departmentID}", b.deleteDepartment)
		api.Get("/departments/{departmentID}/employees", b.listEmployees)

		api.Post("/employees", b.createEmployee)
		api.Put("/employees/{employeeID}", b.updateEmployee)
		api.Delete("/employees/{employeeID}", b.deleteEmployee)
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

// SeedAssets installs the raw payload returned by GET /api/assets verbatim,
// so tests can exercise normalization against arbitrary shapes.
func (b *Backend) SeedAssets(assets []map[string]interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rawAssets = assets
}

func (b *Backend) SeedDepartment(dept models.Department, employees ...models.Employee) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.departments = append(b.departments, dept)
	b.employees[dept.ID] = append(b.employees[dept.ID], employees...)
	if dept.ID >= b.nextDeptID {
		b.nextDeptID = dept.ID + 1
	}
	for _, e := range employees {
		if e.ID >= b.nextEmpID {
			b.nextEmpID = e.ID + 1
		}
	}
}

// FailWith makes every subsequent request answer 500 with the given
// message; an empty message restores normal behavior.
func (b *Backend) FailWith(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forcedError = message
}

// LastPatch reports the target of the most recent asset PATCH, with the
// employee id carried in the body (nil for an unassign).
func (b *Backend) LastPatch() (string, *int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastPatch == nil {
		return "", nil, false
	}
	return b.lastPatch.AssetID, b.lastPatch.EmployeeID, true
}

func (b *Backend) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != Username || pass != Password {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}

		b.mu.Lock()
		forced := b.forcedError
		b.mu.Unlock()
		if forced != "" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": forced})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) listAssets(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	assets := b.rawAssets
	b.mu.Unlock()
	if assets == nil {
		assets = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, assets)
}

func (b *Backend) patchAsset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID *int `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	b.mu.Lock()
	b.lastPatch = &patchCall{AssetID: chi.URLParam(r, "assetID"), EmployeeID: body.EmployeeID}
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listDepartments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	departments := append([]models.Department{}, b.departments...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, departments)
}

func (b *Backend) createDepartment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DeptName string `json:"deptName"`
		Location string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	b.mu.Lock()
	created := models.Department{
		ID:        b.nextDeptID,
		DeptName:  payload.DeptName,
		Location:  payload.Location,
		Employees: []models.Employee{},
	}
	b.nextDeptID++
	b.departments = append(b.departments, created)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, created)
}

func (b *Backend) updateDepartment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "departmentID"))
	var payload struct {
		DeptName string `json:"deptName"`
		Location string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.departments {
		if b.departments[i].ID == id {
			b.departments[i].DeptName = payload.DeptName
			b.departments[i].Location = payload.Location
			writeJSON(w, http.StatusOK, b.departments[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "department not found"})
}

func (b *Backend) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "departmentID"))

	b.mu.Lock()
	kept := b.departments[:0]
	for _, d := range b.departments {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	b.departments = kept
	delete(b.employees, id)
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listEmployees(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "departmentID"))

	b.mu.Lock()
	employees := append([]models.Employee{}, b.employees[id]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, employees)
}

func (b *Backend) createEmployee(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FullName     string `json:"fullName"`
		Email        string `json:"email"`
		DepartmentID int    `json:"departmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	b.mu.Lock()
	department := models.EmptyDepartment()
	for _, d := range b.departments {
		if d.ID == payload.DepartmentID {
			department = d
			break
		}
	}
	created := models.Employee{
		ID:           b.nextEmpID,
		FullName:     payload.FullName,
		Email:        payload.Email,
		DepartmentID: payload.DepartmentID,
		Department:   department,
	}
	b.nextEmpID++
	b.employees[payload.DepartmentID] = append(b.employees[payload.DepartmentID], created)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, created)
}

func (b *Backend) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "employeeID"))
	var payload struct {
		FullName     string `json:"fullName"`
		Email        string `json:"email"`
		DepartmentID int    `json:"departmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, list := range b.employees {
		for i := range list {
			if list[i].ID == id {
				list[i].FullName = payload.FullName
				list[i].Email = payload.Email
				list[i].DepartmentID = payload.DepartmentID
				writeJSON(w, http.StatusOK, list[i])
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "employee not found"})
}

func (b *Backend) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "employeeID"))

	b.mu.Lock()
	for deptID, list := range b.employees {
		kept := list[:0]
		for _, e := range list {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		b.employees[deptID] = kept
	}
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to serialize response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}
