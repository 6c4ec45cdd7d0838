package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type CallHandler struct {
	Calls            usecase.CallRepositoryInterface
	Counts           usecase.DispositionCountRepositoryInterface
	UpdateDisposition *usecase.UpdateDispositionUseCase
}

func NewCallHandler(
	calls usecase.CallRepositoryInterface,
	counts usecase.DispositionCountRepositoryInterface,
	updateUC *usecase.UpdateDispositionUseCase,
) *CallHandler {
	return &CallHandler{Calls: calls, Counts: counts, UpdateDisposition: updateUC}
}

// HandleListByStatus lista os calls de um estágio. Executivos só veem os
// próprios; gerentes podem pedir ?all=1 ou filtrar por ?assigned_to=.
func (h *CallHandler) HandleListByStatus(w http.ResponseWriter, r *http.Request) {
	status := entity.Stage(chi.URLParam(r, "status"))
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "Status inválido: "+string(status))
		return
	}

	user := middleware.CurrentUser(r)
	filter := usecase.CallFilter{AssignedTo: &user.EmpID}

	if user.UserRole == entity.RoleSalesManager {
		if r.URL.Query().Get("all") == "1" {
			filter.AssignedTo = nil
		} else if raw := r.URL.Query().Get("assigned_to"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "assigned_to inválido")
				return
			}
			filter.AssignedTo = &id
		} else {
			filter.AssignedTo = nil
		}
	}

	calls, err := h.Calls.ListByStatus(r.Context(), status, filter)
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

func (h *CallHandler) HandleUpdateDisposition(w http.ResponseWriter, r *http.Request) {
	callID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de call inválido")
		return
	}

	var input usecase.UpdateDispositionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	user := middleware.CurrentUser(r)
	input.CallID = callID
	input.UserID = user.EmpID

	output, err := h.UpdateDisposition.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordDisposition(string(output.Status), input.Disposition)
	if output.AutoClosed {
		middleware.RecordAutoClose()
	}
	if output.Status == entity.StageConverted {
		middleware.RecordConversion()
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleDispositionCount expõe o estado do contador de repetição de um call,
// incluindo o agregado do bucket improdutivo e o limite vigente.
func (h *CallHandler) HandleDispositionCount(w http.ResponseWriter, r *http.Request) {
	callID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de call inválido")
		return
	}

	if _, err := h.Calls.FindByID(r.Context(), callID); err != nil {
		if err == entity.ErrCallNotFound {
			writeError(w, http.StatusNotFound, "Call não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Erro ao carregar call")
		return
	}

	counts, err := h.Counts.CountsFor(r.Context(), callID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao carregar contadores")
		return
	}
	if counts == nil {
		counts = map[string]int{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"counts":        counts,
		"ringing_group": usecase.RingingGroupTotal(counts),
		"count_limit":   h.UpdateDisposition.CountLimit,
	})
}
