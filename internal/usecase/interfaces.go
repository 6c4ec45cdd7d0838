package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// CallFilter restringe as listagens por estágio.
type CallFilter struct {
	AssignedTo *int64 // nil = sem filtro de dono
}

type CallRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Call) error
	FindByID(ctx context.Context, id int64) (*entity.Call, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Call, error)
	ListByStatus(ctx context.Context, status entity.Stage, f CallFilter) ([]*entity.Call, error)
	// Update persiste status, disposition, notes, called_date e datas agendadas.
	Update(ctx context.Context, c *entity.Call) error
	// AssignOwner só grava se assigned_to ainda for NULL; retorna
	// entity.ErrAlreadyAssigned caso contrário.
	AssignOwner(ctx context.Context, callID, userID int64) error
	// UploadersFor devolve os donos (uploaded_by) das listas de origem dos calls.
	UploadersFor(ctx context.Context, callIDs []int64) ([]int64, error)
}

type DispositionCountRepositoryInterface interface {
	// Increment faz upsert do contador (call_id, disposition) e devolve o valor novo.
	Increment(ctx context.Context, callID int64, disposition string) (int, error)
	CountsFor(ctx context.Context, callID int64) (map[string]int, error)
	// ResetFor zera todos os buckets de um call (avanço de estágio ou fechamento).
	ResetFor(ctx context.Context, callID int64) error
}

type CallHistoryRepositoryInterface interface {
	Append(ctx context.Context, h *entity.CallHistory) error
}

type EmployeeRepositoryInterface interface {
	FindByID(ctx context.Context, id int64) (*entity.Employee, error)
	FindActiveByEmail(ctx context.Context, email string) (*entity.Employee, error)
	ListActiveSales(ctx context.Context) ([]*entity.Employee, error)
	Create(ctx context.Context, e *entity.Employee) error
	Update(ctx context.Context, e *entity.Employee) error
	Deactivate(ctx context.Context, id int64) error
	SetOnlineStatus(ctx context.Context, id int64, status string) error
}

type LeadListRepositoryInterface interface {
	Create(ctx context.Context, l *entity.LeadList) error
	FindByID(ctx context.Context, id int64) (*entity.LeadList, error)
	List(ctx context.Context) ([]*entity.LeadList, error)
	// Delete remove a lista e, em cascata, seus calls e contadores.
	Delete(ctx context.Context, id int64) error
	ListCalls(ctx context.Context, listID int64) ([]*entity.Call, error)
}

type CommunicationRepositoryInterface interface {
	Log(ctx context.Context, c *entity.Communication) error
}

type QueueProducerInterface interface {
	PublishReminder(ctx context.Context, payload queue.ReminderPayload) error
}

type EmailService interface {
	SendFollowUpReminder(to, executiveName, leadName string, stage string, when time.Time) error
	Send(to, subject, htmlBody string) error
}
