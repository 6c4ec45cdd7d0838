package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeUseCaseError traduz erros de domínio/técnicos em status HTTP.
func writeUseCaseError(w http.ResponseWriter, err error) {
	switch usecase.ErrorCode(err) {
	case usecase.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case usecase.CodeUnauthorized:
		writeError(w, http.StatusUnauthorized, err.Error())
	case usecase.CodeValidation, usecase.CodeInvalidDisposition,
		usecase.CodeMissingSchedule, usecase.CodeTerminalState,
		usecase.CodeAlreadyAssigned:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logrus.Errorf("❌ Erro interno: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
