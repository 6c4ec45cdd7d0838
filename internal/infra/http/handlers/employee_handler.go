package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type EmployeeHandler struct {
	Employees usecase.EmployeeRepositoryInterface
}

func NewEmployeeHandler(employees usecase.EmployeeRepositoryInterface) *EmployeeHandler {
	return &EmployeeHandler{Employees: employees}
}

type employeeRequest struct {
	EmpID       string `json:"empid"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserType    string `json:"user_type"`
	UserRole    string `json:"user_role"`
	Department  string `json:"department"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Salary      string `json:"salary"`
	DOB         string `json:"dob"`
	DOJ         string `json:"doj"`
}

func (req *employeeRequest) toEntity() *entity.Employee {
	e := &entity.Employee{
		EmpID:       req.EmpID,
		FullName:    req.FullName,
		Email:       req.Email,
		UserType:    req.UserType,
		UserRole:    req.UserRole,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Salary:      req.Salary,
	}
	if req.DOB != "" {
		if t, err := time.Parse("2006-01-02", req.DOB); err == nil {
			e.DOB = &t
		}
	}
	if req.DOJ != "" {
		if t, err := time.Parse("2006-01-02", req.DOJ); err == nil {
			e.DOJ = &t
		}
	}
	return e
}

func (h *EmployeeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.ListActiveSales(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao listar funcionários")
		return
	}
	if employees == nil {
		employees = []*entity.Employee{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"employees": employees,
	})
}

func (h *EmployeeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	emp := req.toEntity()
	if errs := usecase.ValidateEmployeeInput(emp, req.Password, true); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}
	emp.PasswordHash = hashPassword(req.Password)

	if err := h.Employees.Create(r.Context(), emp); err != nil {
		if errors.Is(err, database.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "Email já cadastrado")
			return
		}
		logrus.Errorf("❌ Erro ao criar funcionário: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao criar funcionário")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"employee": emp,
	})
}

func (h *EmployeeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	emp := req.toEntity()
	emp.ID = id
	if errs := usecase.ValidateEmployeeInput(emp, req.Password, false); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}
	// Senha vazia no update mantém a atual.
	if req.Password != "" {
		emp.PasswordHash = hashPassword(req.Password)
	}

	if err := h.Employees.Update(r.Context(), emp); err != nil {
		if errors.Is(err, entity.ErrEmployeeNotFound) {
			writeError(w, http.StatusNotFound, "Funcionário não encontrado")
			return
		}
		logrus.Errorf("❌ Erro ao atualizar funcionário %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Erro ao atualizar funcionário")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleDeactivate faz soft delete: o registro fica para histórico e
// relatórios, só sai das listagens ativas.
func (h *EmployeeHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.Employees.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrEmployeeNotFound) {
			writeError(w, http.StatusNotFound, "Funcionário não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Erro ao desativar funcionário")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
