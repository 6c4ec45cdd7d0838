package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// MockCallRepo
type MockCallRepo struct {
	mock.Mock
}

func (m *MockCallRepo) Create(ctx context.Context, c *entity.Call) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCallRepo) FindByID(ctx context.Context, id int64) (*entity.Call, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Call), args.Error(1)
}

func (m *MockCallRepo) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Call, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Call), args.Error(1)
}

func (m *MockCallRepo) ListByStatus(ctx context.Context, status entity.Stage, f usecase.CallFilter) ([]*entity.Call, error) {
	args := m.Called(ctx, status, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Call), args.Error(1)
}

func (m *MockCallRepo) Update(ctx context.Context, c *entity.Call) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCallRepo) AssignOwner(ctx context.Context, callID, userID int64) error {
	args := m.Called(ctx, callID, userID)
	return args.Error(0)
}

func (m *MockCallRepo) UploadersFor(ctx context.Context, callIDs []int64) ([]int64, error) {
	args := m.Called(ctx, callIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCountRepo
type MockCountRepo struct {
	mock.Mock
}

func (m *MockCountRepo) Increment(ctx context.Context, callID int64, disposition string) (int, error) {
	args := m.Called(ctx, callID, disposition)
	return args.Int(0), args.Error(1)
}

func (m *MockCountRepo) CountsFor(ctx context.Context, callID int64) (map[string]int, error) {
	args := m.Called(ctx, callID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockCountRepo) ResetFor(ctx context.Context, callID int64) error {
	args := m.Called(ctx, callID)
	return args.Error(0)
}

// MockHistoryRepo
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Append(ctx context.Context, h *entity.CallHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

// MockEmployeeRepo
type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) FindByID(ctx context.Context, id int64) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepo) ListActiveSales(ctx context.Context) ([]*entity.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepo) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepo) SetOnlineStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockProducer
type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishReminder(ctx context.Context, payload queue.ReminderPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// ============ HELPERS ============

func newTestRouter(h *CallHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth)
		r.Get("/api/calls/{status}", h.HandleListByStatus)
		r.Post("/api/calls/{id}/disposition", h.HandleUpdateDisposition)
		r.Get("/api/calls/{id}/disposition-count", h.HandleDispositionCount)
	})
	return r
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := middleware.GenerateToken(&entity.Employee{
		ID:       5,
		FullName: "Carlos Lima",
		Email:    "carlos@liguemedicina.com",
		UserRole: role,
	})
	assert.NoError(t, err)
	return token
}

func authedRequest(t *testing.T, method, target string, body []byte, role string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, role))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ============ TESTES ============

func TestListByStatus_ExecutiveSeesOnlyOwnCalls(t *testing.T) {
	calls := new(MockCallRepo)
	counts := new(MockCountRepo)
	uc := usecase.NewUpdateDispositionUseCase(calls, counts, new(MockHistoryRepo), new(MockEmployeeRepo), new(MockProducer), 3)
	handler := NewCallHandler(calls, counts, uc)

	own := int64(5)
	calls.On("ListByStatus", mock.Anything, entity.StageFresh, usecase.CallFilter{AssignedTo: &own}).
		Return([]*entity.Call{{ID: 1, Status: entity.StageFresh}}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/api/calls/fresh", nil, entity.RoleSalesExecutive)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
	calls.AssertExpectations(t)
}

func TestListByStatus_ManagerSeesAll(t *testing.T) {
	calls := new(MockCallRepo)
	counts := new(MockCountRepo)
	uc := usecase.NewUpdateDispositionUseCase(calls, counts, new(MockHistoryRepo), new(MockEmployeeRepo), new(MockProducer), 3)
	handler := NewCallHandler(calls, counts, uc)

	calls.On("ListByStatus", mock.Anything, entity.StageFollowUp, usecase.CallFilter{AssignedTo: nil}).
		Return([]*entity.Call{}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/api/calls/follow_up", nil, entity.RoleSalesManager)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	calls.AssertExpectations(t)
}

func TestListByStatus_InvalidStatus(t *testing.T) {
	handler := NewCallHandler(new(MockCallRepo), new(MockCountRepo),
		usecase.NewUpdateDispositionUseCase(new(MockCallRepo), new(MockCountRepo), new(MockHistoryRepo), new(MockEmployeeRepo), new(MockProducer), 3))

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/api/calls/pending", nil, entity.RoleSalesExecutive)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestListByStatus_WithoutTokenIsUnauthorized(t *testing.T) {
	handler := NewCallHandler(new(MockCallRepo), new(MockCountRepo),
		usecase.NewUpdateDispositionUseCase(new(MockCallRepo), new(MockCountRepo), new(MockHistoryRepo), new(MockEmployeeRepo), new(MockProducer), 3))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/calls/fresh", nil)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateDispositionHandler_Success(t *testing.T) {
	calls := new(MockCallRepo)
	counts := new(MockCountRepo)
	history := new(MockHistoryRepo)
	employees := new(MockEmployeeRepo)
	producer := new(MockProducer)

	owner := int64(5)
	call := &entity.Call{
		ID:          42,
		Type:        entity.CallTypeB2C,
		ClientName:  "Maria",
		PhoneNumber: "11987654321",
		AssignedTo:  &owner,
		Status:      entity.StageFresh,
		CreatedDate: time.Now(),
	}

	calls.On("FindByID", mock.Anything, int64(42)).Return(call, nil)
	calls.On("Update", mock.Anything, mock.Anything).Return(nil)
	history.On("Append", mock.Anything, mock.Anything).Return(nil)
	counts.On("ResetFor", mock.Anything, int64(42)).Return(nil)
	employees.On("FindByID", mock.Anything, int64(5)).
		Return(&entity.Employee{ID: 5, FullName: "Carlos", Email: "carlos@liguemedicina.com"}, nil)
	producer.On("PublishReminder", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewUpdateDispositionUseCase(calls, counts, history, employees, producer, 3)
	handler := NewCallHandler(calls, counts, uc)

	body, _ := json.Marshal(map[string]string{
		"disposition":    "Interested",
		"notes":          "ligou de volta",
		"follow_up_date": "2026-09-10T14:30",
	})

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "/api/calls/42/disposition", body, entity.RoleSalesExecutive)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var output usecase.UpdateDispositionOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &output))
	assert.True(t, output.Success)
	assert.Equal(t, entity.StageFollowUp, output.Status)
	assert.False(t, output.AutoClosed)
}

func TestUpdateDispositionHandler_InvalidDispositionIs400(t *testing.T) {
	calls := new(MockCallRepo)
	counts := new(MockCountRepo)

	owner := int64(5)
	calls.On("FindByID", mock.Anything, int64(42)).Return(&entity.Call{
		ID: 42, Type: entity.CallTypeB2C, ClientName: "Maria",
		PhoneNumber: "11987654321", AssignedTo: &owner, Status: entity.StageFresh,
	}, nil)

	uc := usecase.NewUpdateDispositionUseCase(calls, counts, new(MockHistoryRepo), new(MockEmployeeRepo), new(MockProducer), 3)
	handler := NewCallHandler(calls, counts, uc)

	body, _ := json.Marshal(map[string]string{"disposition": "Interested for Demo"})

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "/api/calls/42/disposition", body, entity.RoleSalesExecutive)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope["error"], "not valid")
}

func TestUpdateDispositionHandler_NotFoundIs404(t *testing.T) {
	calls := new(MockCallRepo)
	counts := new(MockCountRepo)

	calls.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrCallNotFound)

	uc := usecase.NewUpdateDispositionUseCase(calls, counts, new(MockHistoryRepo), new(MockEmployeeRepo), new(MockProducer), 3)
	handler := NewCallHandler(calls, counts, uc)

	body, _ := json.Marshal(map[string]string{"disposition": "Not Interested"})

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "/api/calls/99/disposition", body, entity.RoleSalesExecutive)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDispositionCountEndpoint(t *testing.T) {
	calls := new(MockCallRepo)
	counts := new(MockCountRepo)

	calls.On("FindByID", mock.Anything, int64(42)).Return(&entity.Call{ID: 42, Status: entity.StageFresh}, nil)
	counts.On("CountsFor", mock.Anything, int64(42)).Return(map[string]int{
		"SwitchOff": 1,
		"Line Busy": 1,
	}, nil)

	uc := usecase.NewUpdateDispositionUseCase(calls, counts, new(MockHistoryRepo), new(MockEmployeeRepo), new(MockProducer), 3)
	handler := NewCallHandler(calls, counts, uc)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/api/calls/42/disposition-count", nil, entity.RoleSalesExecutive)
	newTestRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success      bool           `json:"success"`
		Counts       map[string]int `json:"counts"`
		RingingGroup int            `json:"ringing_group"`
		CountLimit   int            `json:"count_limit"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.RingingGroup)
	assert.Equal(t, 3, body.CountLimit)
	assert.Equal(t, 1, body.Counts["SwitchOff"])
}
