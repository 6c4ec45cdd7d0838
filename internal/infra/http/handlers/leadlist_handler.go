package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadListHandler struct {
	Lists       usecase.LeadListRepositoryInterface
	ImportCalls *usecase.ImportCallsUseCase
}

func NewLeadListHandler(lists usecase.LeadListRepositoryInterface, importUC *usecase.ImportCallsUseCase) *LeadListHandler {
	return &LeadListHandler{Lists: lists, ImportCalls: importUC}
}

func (h *LeadListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Lists.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao listar databases")
		return
	}
	if lists == nil {
		lists = []*entity.LeadList{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"databases": lists,
	})
}

func (h *LeadListHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	var input usecase.ImportCallsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	user := middleware.CurrentUser(r)
	input.UploadedBy = user.EmpID

	output, err := h.ImportCalls.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	logrus.Infof("📦 Database %q importada: %d calls (usuário %d)", input.Name, output.Imported, user.EmpID)
	writeJSON(w, http.StatusCreated, output)
}

// HandleDelete remove a lista e todos os calls dela, em cascata. Só o
// gerente ou quem subiu a lista pode apagar.
func (h *LeadListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	list, err := h.Lists.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadListNotFound) {
			writeError(w, http.StatusNotFound, "Database não encontrada")
			return
		}
		writeError(w, http.StatusInternalServerError, "Erro ao carregar database")
		return
	}

	user := middleware.CurrentUser(r)
	if user.UserRole != entity.RoleSalesManager && list.UploadedBy != user.EmpID {
		writeError(w, http.StatusForbidden, "Apenas o gerente ou quem subiu a lista pode apagá-la")
		return
	}

	if err := h.Lists.Delete(r.Context(), id); err != nil {
		logrus.Errorf("❌ Erro ao apagar database %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Erro ao apagar database")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *LeadListHandler) HandleListCalls(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if _, err := h.Lists.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrLeadListNotFound) {
			writeError(w, http.StatusNotFound, "Database não encontrada")
			return
		}
		writeError(w, http.StatusInternalServerError, "Erro ao carregar database")
		return
	}

	calls, err := h.Lists.ListCalls(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao listar calls")
		return
	}
	if calls == nil {
		calls = []*entity.Call{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"calls":   calls,
		"count":   len(calls),
	})
}
