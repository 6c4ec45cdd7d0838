package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type AssignCallsInput struct {
	CallIDs []int64 `json:"call_ids"`
	UserIDs []int64 `json:"user_ids"`

	// Ator autenticado (vem do token, não do body).
	ActorID   int64  `json:"-"`
	ActorRole string `json:"-"`
}

type AssignCallsOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Details: quantos calls cada executivo recebeu.
	Details map[string]int `json:"details"`
	// Skipped: calls que já tinham dono e foram deixados intactos.
	Skipped []int64 `json:"skipped"`
}

// AssignCallsUseCase é o livro-razão de atribuição: vincula leads sem dono
// aos executivos em round-robin. Dono, uma vez gravado, nunca muda;
// reatribuição vira skip, não erro — sucesso parcial é o resultado normal
// da operação em lote.
type AssignCallsUseCase struct {
	Calls CallRepositoryInterface
}

func NewAssignCallsUseCase(calls CallRepositoryInterface) *AssignCallsUseCase {
	return &AssignCallsUseCase{Calls: calls}
}

func (uc *AssignCallsUseCase) Execute(ctx context.Context, input AssignCallsInput) (*AssignCallsOutput, error) {
	if len(input.CallIDs) == 0 || len(input.UserIDs) == 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "call_ids and user_ids are required"}
	}

	// Executivo só atribui calls de listas que ele mesmo subiu; gestor
	// atribui qualquer um.
	if input.ActorRole != entity.RoleSalesManager {
		uploaders, err := uc.Calls.UploadersFor(ctx, input.CallIDs)
		if err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to check list ownership: " + err.Error()}
		}
		if len(uploaders) == 0 {
			return nil, &DomainError{Code: CodeUnauthorized, Message: "you can only assign calls from lead lists you uploaded"}
		}
		for _, up := range uploaders {
			if up != input.ActorID {
				return nil, &DomainError{Code: CodeUnauthorized, Message: "you can only assign calls from lead lists you uploaded"}
			}
		}
	}

	calls, err := uc.Calls.FindByIDs(ctx, input.CallIDs)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load calls: " + err.Error()}
	}

	details := make(map[string]int, len(input.UserIDs))
	for _, uid := range input.UserIDs {
		details[fmt.Sprintf("%d", uid)] = 0
	}
	skipped := []int64{}

	next := 0
	for _, call := range calls {
		if call.AssignedTo != nil {
			skipped = append(skipped, call.ID)
			continue
		}

		uid := input.UserIDs[next%len(input.UserIDs)]
		err := uc.Calls.AssignOwner(ctx, call.ID, uid)
		if err == entity.ErrAlreadyAssigned {
			// Corrida com outra atribuição: o primeiro dono fica.
			skipped = append(skipped, call.ID)
			continue
		}
		if err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to assign call: " + err.Error()}
		}
		details[fmt.Sprintf("%d", uid)]++
		next++
	}

	return &AssignCallsOutput{
		Success: true,
		Message: "Calls assigned equally",
		Details: details,
		Skipped: skipped,
	}, nil
}
