package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type AssignHandler struct {
	AssignCalls *usecase.AssignCallsUseCase
}

func NewAssignHandler(uc *usecase.AssignCallsUseCase) *AssignHandler {
	return &AssignHandler{AssignCalls: uc}
}

func (h *AssignHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.AssignCallsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	user := middleware.CurrentUser(r)
	input.ActorID = user.EmpID
	input.ActorRole = user.UserRole

	output, err := h.AssignCalls.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	assigned := 0
	for _, n := range output.Details {
		assigned += n
	}
	middleware.RecordAssignments(assigned)

	writeJSON(w, http.StatusOK, output)
}
