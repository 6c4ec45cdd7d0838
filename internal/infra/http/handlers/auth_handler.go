package handlers

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type AuthHandler struct {
	Employees usecase.EmployeeRepositoryInterface
}

func NewAuthHandler(employees usecase.EmployeeRepositoryInterface) *AuthHandler {
	return &AuthHandler{Employees: employees}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// hashPassword replica o MD5 do sistema legado. As senhas já cadastradas
// estão nesse formato, então a troca de algoritmo exige migração antes.
func hashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	emp, err := h.Employees.FindActiveByEmail(r.Context(), req.Email)
	if err != nil || emp == nil || emp.PasswordHash != hashPassword(req.Password) {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	token, err := middleware.GenerateToken(emp)
	if err != nil {
		logrus.Errorf("❌ Falha ao gerar token para %s: %v", emp.Email, err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	if err := h.Employees.SetOnlineStatus(r.Context(), emp.ID, "online"); err != nil {
		logrus.Warnf("⚠️ Falha ao marcar %s como online: %v", emp.Email, err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user": map[string]any{
			"id":        emp.ID,
			"empid":     emp.EmpID,
			"full_name": emp.FullName,
			"email":     emp.Email,
			"user_role": emp.UserRole,
		},
	})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user != nil {
		if err := h.Employees.SetOnlineStatus(r.Context(), user.EmpID, "offline"); err != nil {
			logrus.Warnf("⚠️ Falha ao marcar usuário %d como offline: %v", user.EmpID, err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleCheckAuth só é alcançado depois do middleware de auth, então basta
// devolver as claims.
func (h *AuthHandler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":        user.EmpID,
			"full_name": user.FullName,
			"email":     user.Email,
			"user_role": user.UserRole,
		},
	})
}
