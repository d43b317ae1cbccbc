package service

import (
	"context"
	"errors"
	"fmt"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/metrics"
	"debtmates-backend/internal/repository"
	"debtmates-backend/internal/settlement"
)

type debtService struct {
	debtRepo  repository.DebtRepository
	groupRepo repository.GroupRepository
	noteRepo  repository.NotificationRepository
	email     EmailService
	tolerance float64
}

func NewDebtService(debtRepo repository.DebtRepository, groupRepo repository.GroupRepository, noteRepo repository.NotificationRepository, email EmailService, tolerance float64) DebtService {
	return &debtService{
		debtRepo:  debtRepo,
		groupRepo: groupRepo,
		noteRepo:  noteRepo,
		email:     email,
		tolerance: tolerance,
	}
}

func (s *debtService) RecordDebts(ctx context.Context, userID, groupID int32, totalBill float64, contributions []settlement.Contribution) ([]domain.DebtRecord, []domain.DebtTransfer, error) {
	logger.EnterMethod("debtService.RecordDebts", "userID", userID, "groupID", groupID, "totalBill", totalBill)

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, err
	}
	if !group.HasMember(userID) {
		return nil, nil, ErrNotGroupMember
	}
	// Recording rewrites the group's debt round, so only the creator may do it.
	if group.CreatorID != userID {
		return nil, nil, ErrNotGroupCreator
	}

	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[int32]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Username
	}

	// Every contribution must come from a member, at most once. Members
	// without a row contribute zero.
	contributed := make(map[int32]bool, len(contributions))
	for _, c := range contributions {
		if _, ok := names[c.MemberID]; !ok {
			return nil, nil, fmt.Errorf("%w: member %d", ErrNotGroupMember, c.MemberID)
		}
		if contributed[c.MemberID] {
			return nil, nil, fmt.Errorf("%w: duplicate contribution for member %d", ErrInvalidInput, c.MemberID)
		}
		contributed[c.MemberID] = true
	}
	for _, m := range members {
		if !contributed[m.ID] {
			contributions = append(contributions, settlement.Contribution{MemberID: m.ID})
		}
	}

	if err := settlement.ValidateSplit(totalBill, contributions, s.tolerance); err != nil {
		logger.ExitMethodWithError("debtService.RecordDebts", err, "groupID", groupID)
		var mismatch *settlement.MismatchError
		if errors.As(err, &mismatch) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	// Equal split: everyone's expected share is the same.
	share := totalBill / float64(len(members))
	expected := make(map[int32]float64, len(members))
	for _, m := range members {
		expected[m.ID] = share
	}

	balances := settlement.ComputeBalances(contributions, expected)
	transfers := settlement.Settle(balances)

	records := make([]domain.DebtRecord, 0, len(contributions))
	for _, c := range contributions {
		records = append(records, domain.DebtRecord{
			GroupID:     groupID,
			MemberID:    c.MemberID,
			MemberName:  names[c.MemberID],
			Contributed: c.Amount,
			Expected:    share,
		})
	}

	// Fold the first transfer per debtor back into their record for the
	// ledger view; debtors split across creditors keep the full detail in
	// the transfer list.
	firstByDebtor := make(map[int32]settlement.Transfer, len(transfers))
	for _, t := range transfers {
		if _, ok := firstByDebtor[t.FromID]; !ok {
			firstByDebtor[t.FromID] = t
		}
	}
	for i := range records {
		if t, ok := firstByDebtor[records[i].MemberID]; ok {
			records[i].ToWhoPay = names[t.ToID]
			records[i].AmountToPay = t.Amount
		}
	}

	debtTransfers := make([]domain.DebtTransfer, 0, len(transfers))
	for _, t := range transfers {
		debtTransfers = append(debtTransfers, domain.DebtTransfer{
			GroupID:    groupID,
			FromUserID: t.FromID,
			ToUserID:   t.ToID,
			Amount:     t.Amount,
		})
	}

	if err := s.debtRepo.CreateRound(ctx, groupID, records, debtTransfers); err != nil {
		logger.ExitMethodWithError("debtService.RecordDebts", err, "groupID", groupID)
		return nil, nil, err
	}
	metrics.DebtsRecordedTotal.Inc()

	s.notifyDebtors(ctx, group, members, transfers, names)

	logger.ExitMethod("debtService.RecordDebts", "groupID", groupID, "transfers", len(debtTransfers))
	return records, debtTransfers, nil
}

func (s *debtService) notifyDebtors(ctx context.Context, group *domain.Group, members []domain.User, transfers []settlement.Transfer, names map[int32]string) {
	owed := make(map[int32]float64)
	for _, t := range transfers {
		owed[t.FromID] += t.Amount
	}
	emails := make(map[int32]string, len(members))
	for _, m := range members {
		emails[m.ID] = m.Email
	}

	for debtorID, amount := range owed {
		note := &domain.Notification{
			UserID:  debtorID,
			Title:   "Debts recorded",
			Message: fmt.Sprintf("A new debt round was recorded in %q. You owe %.2f.", group.Name, amount),
			Attributes: map[string]string{
				"group_id": fmt.Sprint(group.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create debt notification", "userID", debtorID, "error", err)
		}
		if s.email != nil {
			if err := s.email.SendDebtRecorded(ctx, emails[debtorID], names[debtorID], group.Name, amount); err != nil {
				logger.Warn("Failed to send debt email", "userID", debtorID, "error", err)
			}
		}
	}
}

func (s *debtService) GetDebts(ctx context.Context, userID, groupID int32) ([]domain.DebtRecord, []domain.DebtTransfer, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, err
	}
	if !group.HasMember(userID) {
		return nil, nil, ErrNotGroupMember
	}

	records, err := s.debtRepo.ListRecords(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	transfers, err := s.debtRepo.ListTransfers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return records, transfers, nil
}
