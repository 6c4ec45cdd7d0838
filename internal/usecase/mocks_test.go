package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// MockCallRepository
type MockCallRepository struct {
	mock.Mock
}

func (m *MockCallRepository) Create(ctx context.Context, c *entity.Call) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCallRepository) FindByID(ctx context.Context, id int64) (*entity.Call, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Call), args.Error(1)
}

func (m *MockCallRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Call, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Call), args.Error(1)
}

func (m *MockCallRepository) ListByStatus(ctx context.Context, status entity.Stage, f CallFilter) ([]*entity.Call, error) {
	args := m.Called(ctx, status, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Call), args.Error(1)
}

func (m *MockCallRepository) Update(ctx context.Context, c *entity.Call) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCallRepository) AssignOwner(ctx context.Context, callID, userID int64) error {
	args := m.Called(ctx, callID, userID)
	return args.Error(0)
}

func (m *MockCallRepository) UploadersFor(ctx context.Context, callIDs []int64) ([]int64, error) {
	args := m.Called(ctx, callIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockDispositionCountRepository
type MockDispositionCountRepository struct {
	mock.Mock
}

func (m *MockDispositionCountRepository) Increment(ctx context.Context, callID int64, disposition string) (int, error) {
	args := m.Called(ctx, callID, disposition)
	return args.Int(0), args.Error(1)
}

func (m *MockDispositionCountRepository) CountsFor(ctx context.Context, callID int64) (map[string]int, error) {
	args := m.Called(ctx, callID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockDispositionCountRepository) ResetFor(ctx context.Context, callID int64) error {
	args := m.Called(ctx, callID)
	return args.Error(0)
}

// MockCallHistoryRepository
type MockCallHistoryRepository struct {
	mock.Mock
}

func (m *MockCallHistoryRepository) Append(ctx context.Context, h *entity.CallHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

// MockEmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id int64) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListActiveSales(ctx context.Context) ([]*entity.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SetOnlineStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockLeadListRepository
type MockLeadListRepository struct {
	mock.Mock
}

func (m *MockLeadListRepository) Create(ctx context.Context, l *entity.LeadList) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadListRepository) FindByID(ctx context.Context, id int64) (*entity.LeadList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadList), args.Error(1)
}

func (m *MockLeadListRepository) List(ctx context.Context) ([]*entity.LeadList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LeadList), args.Error(1)
}

func (m *MockLeadListRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadListRepository) ListCalls(ctx context.Context, listID int64) ([]*entity.Call, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Call), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishReminder(ctx context.Context, payload queue.ReminderPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendFollowUpReminder(to, executiveName, leadName string, stage string, when time.Time) error {
	args := m.Called(to, executiveName, leadName, stage, when)
	return args.Error(0)
}

func (m *MockEmailService) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}
