package usecase

import "errors"

// Códigos de erro de domínio expostos no envelope {error: ...} da API.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidDisposition = "INVALID_DISPOSITION"
	CodeMissingSchedule    = "MISSING_SCHEDULE"
	CodeTerminalState      = "TERMINAL_STATE"
	CodeAlreadyAssigned    = "ALREADY_ASSIGNED"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeDatabase           = "DATABASE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode extrai o código de um erro do usecase ("" se não houver).
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
