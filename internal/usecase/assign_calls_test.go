package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func unassignedCalls(ids ...int64) []*entity.Call {
	calls := make([]*entity.Call, len(ids))
	for i, id := range ids {
		calls[i] = &entity.Call{
			ID:          id,
			Type:        entity.CallTypeB2C,
			ClientName:  "Lead",
			PhoneNumber: "11987654321",
			Status:      entity.StageFresh,
		}
	}
	return calls
}

func TestAssignCalls_RoundRobin(t *testing.T) {
	calls := new(MockCallRepository)

	batch := unassignedCalls(1, 2, 3, 4, 5)
	calls.On("FindByIDs", mock.Anything, []int64{1, 2, 3, 4, 5}).Return(batch, nil)
	calls.On("AssignOwner", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewAssignCallsUseCase(calls)
	output, err := uc.Execute(context.Background(), AssignCallsInput{
		CallIDs:   []int64{1, 2, 3, 4, 5},
		UserIDs:   []int64{10, 20},
		ActorID:   1,
		ActorRole: entity.RoleSalesManager,
	})

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, 3, output.Details["10"])
	assert.Equal(t, 2, output.Details["20"])
	assert.Empty(t, output.Skipped)

	calls.AssertNumberOfCalls(t, "AssignOwner", 5)
}

func TestAssignCalls_SkipsAlreadyAssigned(t *testing.T) {
	calls := new(MockCallRepository)

	owner := int64(99)
	batch := unassignedCalls(1, 2, 3)
	batch[1].AssignedTo = &owner // dono existente fica intacto

	calls.On("FindByIDs", mock.Anything, []int64{1, 2, 3}).Return(batch, nil)
	calls.On("AssignOwner", mock.Anything, int64(1), int64(10)).Return(nil)
	calls.On("AssignOwner", mock.Anything, int64(3), int64(20)).Return(nil)

	uc := NewAssignCallsUseCase(calls)
	output, err := uc.Execute(context.Background(), AssignCallsInput{
		CallIDs:   []int64{1, 2, 3},
		UserIDs:   []int64{10, 20},
		ActorID:   1,
		ActorRole: entity.RoleSalesManager,
	})

	assert.NoError(t, err)
	assert.Equal(t, []int64{2}, output.Skipped)
	assert.Equal(t, 1, output.Details["10"])
	assert.Equal(t, 1, output.Details["20"])
	calls.AssertNotCalled(t, "AssignOwner", mock.Anything, int64(2), mock.Anything)
}

func TestAssignCalls_RaceLoserBecomesSkip(t *testing.T) {
	calls := new(MockCallRepository)

	batch := unassignedCalls(1, 2)
	calls.On("FindByIDs", mock.Anything, []int64{1, 2}).Return(batch, nil)
	// Outro gestor atribuiu o call 1 entre o load e o update.
	calls.On("AssignOwner", mock.Anything, int64(1), int64(10)).Return(entity.ErrAlreadyAssigned)
	calls.On("AssignOwner", mock.Anything, int64(2), int64(10)).Return(nil)

	uc := NewAssignCallsUseCase(calls)
	output, err := uc.Execute(context.Background(), AssignCallsInput{
		CallIDs:   []int64{1, 2},
		UserIDs:   []int64{10},
		ActorID:   1,
		ActorRole: entity.RoleSalesManager,
	})

	assert.NoError(t, err)
	assert.Equal(t, []int64{1}, output.Skipped)
	assert.Equal(t, 1, output.Details["10"])
}

func TestAssignCalls_ExecutiveLimitedToOwnLists(t *testing.T) {
	calls := new(MockCallRepository)

	// As listas de origem pertencem a outro usuário.
	calls.On("UploadersFor", mock.Anything, []int64{1, 2}).Return([]int64{7}, nil)

	uc := NewAssignCallsUseCase(calls)
	output, err := uc.Execute(context.Background(), AssignCallsInput{
		CallIDs:   []int64{1, 2},
		UserIDs:   []int64{10},
		ActorID:   5,
		ActorRole: entity.RoleSalesExecutive,
	})

	assert.Nil(t, output)
	assert.Equal(t, CodeUnauthorized, ErrorCode(err))
	calls.AssertNotCalled(t, "AssignOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignCalls_ExecutiveAllowedOnOwnLists(t *testing.T) {
	calls := new(MockCallRepository)

	calls.On("UploadersFor", mock.Anything, []int64{1}).Return([]int64{5}, nil)
	calls.On("FindByIDs", mock.Anything, []int64{1}).Return(unassignedCalls(1), nil)
	calls.On("AssignOwner", mock.Anything, int64(1), int64(5)).Return(nil)

	uc := NewAssignCallsUseCase(calls)
	output, err := uc.Execute(context.Background(), AssignCallsInput{
		CallIDs:   []int64{1},
		UserIDs:   []int64{5},
		ActorID:   5,
		ActorRole: entity.RoleSalesExecutive,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.Details["5"])
}

func TestAssignCalls_EmptyInput(t *testing.T) {
	uc := NewAssignCallsUseCase(new(MockCallRepository))

	_, err := uc.Execute(context.Background(), AssignCallsInput{
		ActorID:   1,
		ActorRole: entity.RoleSalesManager,
	})
	assert.Equal(t, CodeValidation, ErrorCode(err))

	_, err = uc.Execute(context.Background(), AssignCallsInput{
		CallIDs:   []int64{1},
		ActorID:   1,
		ActorRole: entity.RoleSalesManager,
	})
	assert.Equal(t, CodeValidation, ErrorCode(err))
}
