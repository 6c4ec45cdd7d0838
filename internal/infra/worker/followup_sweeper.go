package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// FollowUpSweeper varre follow-ups vencidos e publica lembretes para os
// executivos donos. Cobre o caso em que o lembrete agendado na disposição
// se perdeu (fila fora do ar, restart) ou a data já passou sem ação.
type FollowUpSweeper struct {
	Calls        *database.CallRepository
	Employees    *database.EmployeeRepository
	Producer     *queue.RabbitMQProducer
	tickInterval time.Duration
	batchSize    int
}

func NewFollowUpSweeper(calls *database.CallRepository, employees *database.EmployeeRepository, producer *queue.RabbitMQProducer) *FollowUpSweeper {
	return &FollowUpSweeper{
		Calls:        calls,
		Employees:    employees,
		Producer:     producer,
		tickInterval: 5 * time.Minute,
		batchSize:    100,
	}
}

func (w *FollowUpSweeper) Start(ctx context.Context) {
	logrus.Info("🕒 Follow-up Sweeper iniciado (tick de 5min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Warn("⚠️ Follow-up Sweeper encerrado")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *FollowUpSweeper) sweep(ctx context.Context) {
	calls, err := w.Calls.DueFollowUps(ctx, w.batchSize)
	if err != nil {
		logrus.Errorf("❌ Erro ao buscar follow-ups vencidos: %v", err)
		return
	}

	sent := 0
	for _, call := range calls {
		if err := w.remind(ctx, call); err != nil {
			logrus.Warnf("⚠️ Lembrete do call %d falhou: %v", call.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		logrus.Infof("✅ %d lembrete(s) de follow-up publicados", sent)
	}
}

func (w *FollowUpSweeper) remind(ctx context.Context, call *entity.Call) error {
	exec, err := w.Employees.FindByID(ctx, *call.AssignedTo)
	if err != nil {
		return err
	}

	payload := queue.ReminderPayload{
		CallID:         call.ID,
		CallRef:        call.CallID,
		LeadName:       call.DisplayName(),
		PhoneNumber:    call.PhoneNumber,
		Stage:          string(call.Status),
		ScheduledAt:    call.FollowUpDate.Format(time.RFC3339),
		ExecutiveID:    exec.ID,
		ExecutiveName:  exec.FullName,
		ExecutiveEmail: exec.Email,
		Origin:         "SWEEPER",
	}
	if err := w.Producer.PublishReminder(ctx, payload); err != nil {
		return err
	}

	// Marca depois de publicar: lembrete duplicado é melhor que nenhum.
	return w.Calls.MarkReminderSent(ctx, call.ID)
}
