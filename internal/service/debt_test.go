package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/settlement"
)

func threeMemberGroup() (*domain.Group, []domain.User) {
	group := &domain.Group{
		ID:         5,
		Name:       "Lunch crew",
		CreatorID:  1,
		NumMembers: 3,
		MemberIDs:  []int32{1, 2, 3},
	}
	members := []domain.User{
		{ID: 1, Username: "alice", Email: "alice@test.com"},
		{ID: 2, Username: "bob", Email: "bob@test.com"},
		{ID: 3, Username: "carol", Email: "carol@test.com"},
	}
	return group, members
}

func TestDebtService_RecordDebts(t *testing.T) {
	ctx := context.Background()

	t.Run("ComputesEqualShareAndTransfers", func(t *testing.T) {
		group, members := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		debtRepo := new(MockDebtRepo)
		noteRepo := new(MockNotificationRepo)
		email := new(MockEmailService)

		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)
		groupRepo.On("GetMembers", ctx, int32(5)).Return(members, nil)
		debtRepo.On("CreateRound", ctx, int32(5), mock.Anything, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		email.On("SendDebtRecorded", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := NewDebtService(debtRepo, groupRepo, noteRepo, email, 0.005)

		// Alice paid the whole 90; bob and carol owe her 30 each.
		records, transfers, err := svc.RecordDebts(ctx, 1, 5, 90, []settlement.Contribution{
			{MemberID: 1, Amount: 90},
			{MemberID: 2, Amount: 0},
			{MemberID: 3, Amount: 0},
		})
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.Len(t, transfers, 2)

		for _, rec := range records {
			assert.InDelta(t, 30.0, rec.Expected, 0.001)
		}
		for _, tr := range transfers {
			assert.Equal(t, int32(1), tr.ToUserID)
			assert.InDelta(t, 30.0, tr.Amount, 0.001)
		}
		// Debtor records point at the creditor by name.
		assert.Equal(t, "alice", records[1].ToWhoPay)
		assert.InDelta(t, 30.0, records[1].AmountToPay, 0.001)
		assert.Empty(t, records[0].ToWhoPay)

		debtRepo.AssertExpectations(t)
	})

	t.Run("RejectsMismatchedSplit", func(t *testing.T) {
		group, members := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		debtRepo := new(MockDebtRepo)
		noteRepo := new(MockNotificationRepo)

		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)
		groupRepo.On("GetMembers", ctx, int32(5)).Return(members, nil)

		svc := NewDebtService(debtRepo, groupRepo, noteRepo, nil, 0.005)

		_, _, err := svc.RecordDebts(ctx, 1, 5, 90, []settlement.Contribution{
			{MemberID: 1, Amount: 50},
			{MemberID: 2, Amount: 0},
			{MemberID: 3, Amount: 0},
		})
		require.Error(t, err)
		var mismatch *settlement.MismatchError
		assert.ErrorAs(t, err, &mismatch)
		debtRepo.AssertNotCalled(t, "CreateRound", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AcceptsSumWithinTolerance", func(t *testing.T) {
		group, members := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		debtRepo := new(MockDebtRepo)
		noteRepo := new(MockNotificationRepo)

		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)
		groupRepo.On("GetMembers", ctx, int32(5)).Return(members, nil)
		debtRepo.On("CreateRound", ctx, int32(5), mock.Anything, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewDebtService(debtRepo, groupRepo, noteRepo, nil, 0.005)

		_, _, err := svc.RecordDebts(ctx, 1, 5, 100, []settlement.Contribution{
			{MemberID: 1, Amount: 33.33},
			{MemberID: 2, Amount: 33.33},
			{MemberID: 3, Amount: 33.34},
		})
		assert.NoError(t, err)
	})

	t.Run("PadsMissingMembersWithZero", func(t *testing.T) {
		group, members := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		debtRepo := new(MockDebtRepo)
		noteRepo := new(MockNotificationRepo)

		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)
		groupRepo.On("GetMembers", ctx, int32(5)).Return(members, nil)
		debtRepo.On("CreateRound", ctx, int32(5), mock.Anything, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewDebtService(debtRepo, groupRepo, noteRepo, nil, 0.005)

		// Carol sent no row: she contributed nothing and owes her share.
		records, transfers, err := svc.RecordDebts(ctx, 1, 5, 90, []settlement.Contribution{
			{MemberID: 1, Amount: 60},
			{MemberID: 2, Amount: 30},
		})
		require.NoError(t, err)
		require.Len(t, records, 3)

		var carol *domain.DebtRecord
		for i := range records {
			if records[i].MemberID == 3 {
				carol = &records[i]
			}
		}
		require.NotNil(t, carol)
		assert.Zero(t, carol.Contributed)
		assert.Equal(t, "alice", carol.ToWhoPay)
		require.Len(t, transfers, 1)
		assert.Equal(t, int32(3), transfers[0].FromUserID)
		assert.InDelta(t, 30.0, transfers[0].Amount, 0.001)
	})

	t.Run("RejectsDuplicateContribution", func(t *testing.T) {
		group, members := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)
		groupRepo.On("GetMembers", ctx, int32(5)).Return(members, nil)

		svc := NewDebtService(new(MockDebtRepo), groupRepo, new(MockNotificationRepo), nil, 0.005)

		_, _, err := svc.RecordDebts(ctx, 1, 5, 90, []settlement.Contribution{
			{MemberID: 1, Amount: 45},
			{MemberID: 1, Amount: 45},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("RejectsNonMemberCaller", func(t *testing.T) {
		group, _ := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)

		svc := NewDebtService(new(MockDebtRepo), groupRepo, new(MockNotificationRepo), nil, 0.005)

		_, _, err := svc.RecordDebts(ctx, 99, 5, 90, nil)
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})

	t.Run("OnlyCreatorMayRecord", func(t *testing.T) {
		group, _ := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)

		svc := NewDebtService(new(MockDebtRepo), groupRepo, new(MockNotificationRepo), nil, 0.005)

		_, _, err := svc.RecordDebts(ctx, 2, 5, 90, nil)
		assert.ErrorIs(t, err, ErrNotGroupCreator)
	})

	t.Run("RejectsContributionFromOutsider", func(t *testing.T) {
		group, members := threeMemberGroup()
		groupRepo := new(MockGroupRepo)
		groupRepo.On("GetByID", ctx, int32(5)).Return(group, nil)
		groupRepo.On("GetMembers", ctx, int32(5)).Return(members, nil)

		svc := NewDebtService(new(MockDebtRepo), groupRepo, new(MockNotificationRepo), nil, 0.005)

		_, _, err := svc.RecordDebts(ctx, 1, 5, 90, []settlement.Contribution{
			{MemberID: 1, Amount: 90},
			{MemberID: 2, Amount: 0},
			{MemberID: 42, Amount: 0},
		})
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})
}
