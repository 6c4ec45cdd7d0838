package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// DefaultCountLimit é o fallback quando COUNT_LIMIT não está configurado.
// O produto já rodou com 2, 3 e 6; trate como configuração, não constante.
const DefaultCountLimit = 3

type UpdateDispositionInput struct {
	CallID int64 `json:"-"`
	UserID int64 `json:"-"`

	Disposition string `json:"disposition"`
	Notes       string `json:"notes"`

	FollowUpDate    string `json:"follow_up_date,omitempty"`
	DemoDate        string `json:"demo_date,omitempty"`
	ProposalDate    string `json:"proposal_date,omitempty"`
	NegotiationDate string `json:"negotiation_date,omitempty"`
}

type UpdateDispositionOutput struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	Status           entity.Stage `json:"status"`
	AutoClosed       bool         `json:"auto_closed"`
	DispositionCount int          `json:"disposition_count,omitempty"`
	CountLimit       int          `json:"count_limit,omitempty"`
	Call             *entity.Call `json:"call"`
}

// UpdateDispositionUseCase é a única autoridade que aplica um evento de
// disposição a um lead: valida contra a tabela do funil, alimenta o
// contador de repetição e produz o novo estado.
type UpdateDispositionUseCase struct {
	Calls      CallRepositoryInterface
	Counts     DispositionCountRepositoryInterface
	History    CallHistoryRepositoryInterface
	Employees  EmployeeRepositoryInterface
	Queue      QueueProducerInterface
	CountLimit int

	locks *callLocks
}

func NewUpdateDispositionUseCase(
	calls CallRepositoryInterface,
	counts DispositionCountRepositoryInterface,
	history CallHistoryRepositoryInterface,
	employees EmployeeRepositoryInterface,
	producer QueueProducerInterface,
	countLimit int,
) *UpdateDispositionUseCase {
	if countLimit <= 0 {
		countLimit = DefaultCountLimit
	}
	return &UpdateDispositionUseCase{
		Calls:      calls,
		Counts:     counts,
		History:    history,
		Employees:  employees,
		Queue:      producer,
		CountLimit: countLimit,
		locks:      newCallLocks(),
	}
}

func (uc *UpdateDispositionUseCase) Execute(ctx context.Context, input UpdateDispositionInput) (*UpdateDispositionOutput, error) {
	if input.Disposition == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "disposition is required"}
	}

	// Serialização por lead: duas submissões concorrentes para o mesmo
	// call entram aqui uma de cada vez.
	release := uc.locks.Acquire(input.CallID)
	defer release()

	call, err := uc.Calls.FindByID(ctx, input.CallID)
	if err != nil {
		if err == entity.ErrCallNotFound {
			return nil, &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("call %d not found", input.CallID)}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load call: " + err.Error()}
	}

	if call.Status.Terminal() {
		return nil, &DomainError{
			Code:    CodeTerminalState,
			Message: fmt.Sprintf("call is already %s and accepts no further dispositions", call.Status),
		}
	}

	rule, ok := entity.RuleFor(call.Status, input.Disposition)
	if !ok {
		return nil, &DomainError{
			Code:    CodeInvalidDisposition,
			Message: fmt.Sprintf("disposition %q is not valid for a %s call", input.Disposition, call.Status),
		}
	}

	switch rule.Effect {
	case entity.EffectStay:
		return uc.applyNonAdvancing(ctx, call, input)
	case entity.EffectAdvance:
		return uc.applyAdvance(ctx, call, rule.Next, input)
	case entity.EffectConvert:
		return uc.applyTerminal(ctx, call, entity.StageConverted, input)
	default:
		return uc.applyTerminal(ctx, call, entity.StageClosure, input)
	}
}

// applyNonAdvancing registra um resultado improdutivo do bucket "ringing".
// Quando o agregado do bucket atinge o limite, o lead é fechado na mesma
// chamada, com os contadores expurgados.
func (uc *UpdateDispositionUseCase) applyNonAdvancing(ctx context.Context, call *entity.Call, input UpdateDispositionInput) (*UpdateDispositionOutput, error) {
	if _, err := uc.Counts.Increment(ctx, call.ID, input.Disposition); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to record disposition count: " + err.Error()}
	}

	counts, err := uc.Counts.CountsFor(ctx, call.ID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to read disposition counts: " + err.Error()}
	}
	aggregate := RingingGroupTotal(counts)

	if aggregate >= uc.CountLimit {
		prev := *call
		now := time.Now()
		call.Status = entity.StageClosure
		call.Disposition = input.Disposition
		call.Notes = input.Notes
		call.CalledDate = &now

		txn := NewTransaction()
		txn.AddOperation("close_call", func(ctx context.Context) error {
			return uc.Calls.Update(ctx, call)
		})
		txn.AddCompensation("restore_call", func(ctx context.Context) error {
			return uc.Calls.Update(ctx, &prev)
		})
		txn.AddOperation("append_history", func(ctx context.Context) error {
			return uc.History.Append(ctx, &entity.CallHistory{
				CallID:      call.ID,
				UserID:      input.UserID,
				Disposition: input.Disposition,
				Notes:       input.Notes,
			})
		})
		txn.AddCompensation("noop", func(ctx context.Context) error { return nil })
		txn.AddOperation("purge_counters", func(ctx context.Context) error {
			return uc.Counts.ResetFor(ctx, call.ID)
		})
		if err := txn.Execute(ctx); err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to close call: " + err.Error()}
		}

		return &UpdateDispositionOutput{
			Success:          true,
			Message:          fmt.Sprintf("Call closed after %d occurrences of %q", aggregate, input.Disposition),
			Status:           call.Status,
			AutoClosed:       true,
			DispositionCount: aggregate,
			CountLimit:       uc.CountLimit,
			Call:             call,
		}, nil
	}

	prev := *call
	now := time.Now()
	call.Disposition = input.Disposition
	call.Notes = input.Notes
	call.CalledDate = &now

	txn := NewTransaction()
	txn.AddOperation("update_call", func(ctx context.Context) error {
		return uc.Calls.Update(ctx, call)
	})
	txn.AddCompensation("restore_call", func(ctx context.Context) error {
		return uc.Calls.Update(ctx, &prev)
	})
	txn.AddOperation("append_history", func(ctx context.Context) error {
		return uc.History.Append(ctx, &entity.CallHistory{
			CallID:      call.ID,
			UserID:      input.UserID,
			Disposition: input.Disposition,
			Notes:       input.Notes,
		})
	})
	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update call: " + err.Error()}
	}

	return &UpdateDispositionOutput{
		Success:          true,
		Message:          "Disposition updated successfully",
		Status:           call.Status,
		DispositionCount: aggregate,
		CountLimit:       uc.CountLimit,
		Call:             call,
	}, nil
}

// applyAdvance move o lead para o próximo estágio, grava a data agendada
// correspondente e zera os contadores de repetição.
func (uc *UpdateDispositionUseCase) applyAdvance(ctx context.Context, call *entity.Call, next entity.Stage, input UpdateDispositionInput) (*UpdateDispositionOutput, error) {
	raw := scheduleFieldFor(next, input)
	if raw == "" {
		return nil, &DomainError{
			Code:    CodeMissingSchedule,
			Message: fmt.Sprintf("disposition %q requires a scheduled date for the %s stage", input.Disposition, next),
		}
	}
	when, err := parseSchedule(raw)
	if err != nil {
		return nil, &DomainError{Code: CodeMissingSchedule, Message: "invalid scheduled date: " + raw}
	}

	prev := *call
	now := time.Now()
	call.Status = next
	call.Disposition = input.Disposition
	call.Notes = input.Notes
	call.CalledDate = &now
	call.ReminderSent = false
	if slot := call.ScheduleFor(next); slot != nil {
		*slot = &when
	}

	txn := NewTransaction()
	txn.AddOperation("advance_call", func(ctx context.Context) error {
		return uc.Calls.Update(ctx, call)
	})
	txn.AddCompensation("restore_call", func(ctx context.Context) error {
		return uc.Calls.Update(ctx, &prev)
	})
	txn.AddOperation("append_history", func(ctx context.Context) error {
		return uc.History.Append(ctx, &entity.CallHistory{
			CallID:      call.ID,
			UserID:      input.UserID,
			Disposition: input.Disposition,
			Notes:       input.Notes,
		})
	})
	txn.AddCompensation("noop", func(ctx context.Context) error { return nil })
	txn.AddOperation("reset_counters", func(ctx context.Context) error {
		return uc.Counts.ResetFor(ctx, call.ID)
	})
	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to advance call: " + err.Error()}
	}

	uc.publishReminder(ctx, call, when)

	return &UpdateDispositionOutput{
		Success: true,
		Message: "Disposition updated successfully",
		Status:  call.Status,
		Call:    call,
	}, nil
}

// applyTerminal encerra o lead como converted ou closure.
func (uc *UpdateDispositionUseCase) applyTerminal(ctx context.Context, call *entity.Call, final entity.Stage, input UpdateDispositionInput) (*UpdateDispositionOutput, error) {
	prev := *call
	now := time.Now()
	call.Status = final
	call.Disposition = input.Disposition
	call.Notes = input.Notes
	call.CalledDate = &now

	txn := NewTransaction()
	txn.AddOperation("finalize_call", func(ctx context.Context) error {
		return uc.Calls.Update(ctx, call)
	})
	txn.AddCompensation("restore_call", func(ctx context.Context) error {
		return uc.Calls.Update(ctx, &prev)
	})
	txn.AddOperation("append_history", func(ctx context.Context) error {
		return uc.History.Append(ctx, &entity.CallHistory{
			CallID:      call.ID,
			UserID:      input.UserID,
			Disposition: input.Disposition,
			Notes:       input.Notes,
		})
	})
	txn.AddCompensation("noop", func(ctx context.Context) error { return nil })
	txn.AddOperation("purge_counters", func(ctx context.Context) error {
		return uc.Counts.ResetFor(ctx, call.ID)
	})
	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to finalize call: " + err.Error()}
	}

	return &UpdateDispositionOutput{
		Success: true,
		Message: "Disposition updated successfully",
		Status:  call.Status,
		Call:    call,
	}, nil
}

// publishReminder manda o agendamento para a fila de lembretes. Falha aqui
// não desfaz a transição: o estado já está persistido.
func (uc *UpdateDispositionUseCase) publishReminder(ctx context.Context, call *entity.Call, when time.Time) {
	if uc.Queue == nil || call.AssignedTo == nil {
		return
	}

	exec, err := uc.Employees.FindByID(ctx, *call.AssignedTo)
	if err != nil {
		logrus.Warnf("⚠️ Reminder skipped, owner %d not found: %v", *call.AssignedTo, err)
		return
	}

	payload := queue.ReminderPayload{
		CallID:         call.ID,
		CallRef:        call.CallID,
		LeadName:       call.DisplayName(),
		PhoneNumber:    call.PhoneNumber,
		Stage:          string(call.Status),
		ScheduledAt:    when.Format(time.RFC3339),
		ExecutiveID:    exec.ID,
		ExecutiveName:  exec.FullName,
		ExecutiveEmail: exec.Email,
		Origin:         "DISPOSITION_UPDATE",
	}
	if err := uc.Queue.PublishReminder(ctx, payload); err != nil {
		logrus.Warnf("⚠️ CRITICAL: call %d advanced but reminder publish failed: %v", call.ID, err)
	}
}

// RingingGroupTotal soma o bucket improdutivo de um mapa de contagens.
func RingingGroupTotal(counts map[string]int) int {
	total := 0
	for label, n := range counts {
		if entity.InRingingGroup(label) {
			total += n
		}
	}
	return total
}

// scheduleFieldFor escolhe o campo de data do payload que casa com o
// estágio alvo do avanço.
func scheduleFieldFor(next entity.Stage, input UpdateDispositionInput) string {
	switch next {
	case entity.StageFollowUp:
		return input.FollowUpDate
	case entity.StageDemo:
		return input.DemoDate
	case entity.StageProposal:
		return input.ProposalDate
	case entity.StageNegotiation:
		return input.NegotiationDate
	}
	return ""
}

// parseSchedule aceita o formato do datetime-local do front e RFC3339.
func parseSchedule(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", raw)
}
