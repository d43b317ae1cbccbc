package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/metrics"
	"debtmates-backend/internal/repository"
	"debtmates-backend/internal/rotation"
	"debtmates-backend/internal/storage"
)

type rotationService struct {
	rotRepo  repository.RotationalRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	store    storage.Storage
	email    EmailService
}

func NewRotationService(rotRepo repository.RotationalRepository, userRepo repository.UserRepository, noteRepo repository.NotificationRepository, store storage.Storage, email EmailService) RotationService {
	return &rotationService{
		rotRepo:  rotRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		store:    store,
		email:    email,
	}
}

func (s *rotationService) CreateGroup(ctx context.Context, creatorID int32, name string, memberEmails []string) (*domain.RotationalGroup, error) {
	logger.EnterMethod("rotationService.CreateGroup", "creatorID", creatorID, "name", name)

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	ids := []int32{creatorID}
	seen := map[int32]bool{creatorID: true}
	for _, email := range memberEmails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
			}
			return nil, err
		}
		if !seen[user.ID] {
			ids = append(ids, user.ID)
			seen[user.ID] = true
		}
	}

	group := &domain.RotationalGroup{
		Name:       strings.TrimSpace(name),
		CreatorID:  creatorID,
		NumMembers: int32(len(ids)),
		MemberIDs:  ids,
	}
	if err := s.rotRepo.CreateGroup(ctx, group); err != nil {
		logger.ExitMethodWithError("rotationService.CreateGroup", err, "creatorID", creatorID)
		return nil, err
	}
	group.IsCreator = true

	logger.ExitMethod("rotationService.CreateGroup", "groupID", group.ID)
	return group, nil
}

func (s *rotationService) GetGroup(ctx context.Context, userID, groupID int32) (*domain.RotationalGroup, []domain.User, error) {
	group, err := s.memberGroup(ctx, userID, groupID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.rotRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return group, members, nil
}

func (s *rotationService) ListGroups(ctx context.Context, userID int32) ([]domain.RotationalGroup, error) {
	return s.rotRepo.ListGroupsByMember(ctx, userID)
}

func (s *rotationService) AddMembers(ctx context.Context, userID, groupID int32, memberEmails []string) (*domain.RotationalGroup, error) {
	group, err := s.memberGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatorID != userID {
		return nil, ErrNotGroupCreator
	}

	// Once the plan exists the member list is frozen: payments were generated
	// from it.
	existing, err := s.rotRepo.GetPlan(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrPlanExists
	}

	var newIDs []int32
	for _, email := range memberEmails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
			}
			return nil, err
		}
		if !group.HasMember(user.ID) && !containsID(newIDs, user.ID) {
			newIDs = append(newIDs, user.ID)
		}
	}
	if len(newIDs) == 0 {
		return group, nil
	}

	if err := s.rotRepo.AddMembers(ctx, groupID, newIDs); err != nil {
		return nil, err
	}
	group.MemberIDs = append(group.MemberIDs, newIDs...)
	group.NumMembers = int32(len(group.MemberIDs))

	for _, id := range newIDs {
		note := &domain.Notification{
			UserID:  id,
			Title:   "Added to rotational group",
			Message: fmt.Sprintf("You were added to the rotational savings group %q.", group.Name),
			Attributes: map[string]string{
				"group_id": fmt.Sprint(groupID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create member notification", "userID", id, "error", err)
		}
	}
	return group, nil
}

func containsID(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// memberGroup loads the group and enforces membership of userID.
func (s *rotationService) memberGroup(ctx context.Context, userID, groupID int32) (*domain.RotationalGroup, error) {
	group, err := s.rotRepo.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotGroupMember
	}
	group.IsCreator = group.CreatorID == userID
	return group, nil
}

func (s *rotationService) CreatePlan(ctx context.Context, userID, groupID int32, entries []domain.PlanEntry) ([]domain.PlanEntry, []domain.RotationalPayment, error) {
	logger.EnterMethod("rotationService.CreatePlan", "userID", userID, "groupID", groupID, "entries", len(entries))

	group, err := s.memberGroup(ctx, userID, groupID)
	if err != nil {
		return nil, nil, err
	}
	if group.CreatorID != userID {
		return nil, nil, ErrNotGroupCreator
	}

	existing, err := s.rotRepo.GetPlan(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) > 0 {
		return nil, nil, ErrPlanExists
	}

	if err := rotation.ValidateSchedule(group.NumMembers, group.MemberIDs, entries); err != nil {
		logger.ExitMethodWithError("rotationService.CreatePlan", err, "groupID", groupID)
		return nil, nil, err
	}

	payments := rotation.BuildPayments(groupID, group.MemberIDs, entries)
	if err := s.rotRepo.CreatePlan(ctx, groupID, entries, payments); err != nil {
		logger.ExitMethodWithError("rotationService.CreatePlan", err, "groupID", groupID)
		return nil, nil, err
	}

	for _, memberID := range group.MemberIDs {
		if memberID == userID {
			continue
		}
		note := &domain.Notification{
			UserID:  memberID,
			Title:   "Payout plan created",
			Message: fmt.Sprintf("The payout plan for %q is ready. Check your monthly payments.", group.Name),
			Attributes: map[string]string{
				"group_id": fmt.Sprint(groupID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create plan notification", "userID", memberID, "error", err)
		}
	}

	logger.ExitMethod("rotationService.CreatePlan", "groupID", groupID, "payments", len(payments))
	return entries, payments, nil
}

func (s *rotationService) GetPlan(ctx context.Context, userID, groupID int32) ([]domain.PlanEntry, []domain.RotationalPayment, error) {
	if _, err := s.memberGroup(ctx, userID, groupID); err != nil {
		return nil, nil, err
	}
	entries, err := s.rotRepo.GetPlan(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.rotRepo.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return entries, payments, nil
}

func (s *rotationService) ListPayments(ctx context.Context, userID, groupID int32) ([]domain.RotationalPayment, error) {
	if _, err := s.memberGroup(ctx, userID, groupID); err != nil {
		return nil, err
	}
	return s.rotRepo.ListPaymentsByGroup(ctx, groupID)
}

func (s *rotationService) SubmitSlip(ctx context.Context, userID, paymentID int32, filename, contentType string, file io.Reader) (*domain.RotationalPayment, error) {
	logger.EnterMethod("rotationService.SubmitSlip", "userID", userID, "paymentID", paymentID, "filename", filename)

	payment, err := s.rotRepo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.PayerID != userID {
		return nil, ErrPermissionDenied
	}
	if !payment.Status.CanTransitionTo(domain.PaymentStatusSubmitted) {
		return nil, ErrInvalidTransition
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	key := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	if err := s.store.SaveFile(key, file); err != nil {
		logger.ExitMethodWithError("rotationService.SubmitSlip", err, "paymentID", paymentID)
		return nil, err
	}

	now := time.Now()
	payment.Status = domain.PaymentStatusSubmitted
	payment.SlipKey = key
	payment.SlipName = filepath.Base(filename)
	payment.SubmittedAt = &now
	if err := s.rotRepo.UpdatePayment(ctx, payment); err != nil {
		s.store.DeleteFile(key)
		logger.ExitMethodWithError("rotationService.SubmitSlip", err, "paymentID", paymentID)
		return nil, err
	}
	metrics.SlipsSubmittedTotal.Inc()

	note := &domain.Notification{
		UserID:  payment.RecipientID,
		Title:   "Payment slip submitted",
		Message: fmt.Sprintf("A payment slip for month %d is waiting for your verification.", payment.MonthNumber),
		Attributes: map[string]string{
			"group_id":   fmt.Sprint(payment.GroupID),
			"payment_id": fmt.Sprint(payment.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create slip notification", "userID", payment.RecipientID, "error", err)
	}
	s.emailCounterparty(ctx, payment.RecipientID, payment.GroupID, func(email, username, groupName string) error {
		return s.email.SendSlipSubmitted(ctx, email, username, groupName, payment.MonthNumber)
	})

	logger.ExitMethod("rotationService.SubmitSlip", "paymentID", paymentID, "key", key)
	return payment, nil
}

// emailCounterparty looks up the counterparty and group and sends an email
// through fn. Delivery is best-effort: failures are logged, never returned.
func (s *rotationService) emailCounterparty(ctx context.Context, userID, groupID int32, fn func(email, username, groupName string) error) {
	if s.email == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load user for payment email", "userID", userID, "error", err)
		return
	}
	group, err := s.rotRepo.GetGroup(ctx, groupID)
	if err != nil {
		logger.Warn("Failed to load group for payment email", "groupID", groupID, "error", err)
		return
	}
	if err := fn(user.Email, user.Username, group.Name); err != nil {
		logger.Warn("Failed to send payment email", "userID", userID, "error", err)
	}
}

func (s *rotationService) VerifyPayment(ctx context.Context, userID, paymentID int32) (*domain.RotationalPayment, error) {
	logger.EnterMethod("rotationService.VerifyPayment", "userID", userID, "paymentID", paymentID)

	payment, err := s.rotRepo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	group, err := s.rotRepo.GetGroup(ctx, payment.GroupID)
	if err != nil {
		return nil, err
	}
	// Only the month's recipient or the group creator can verify.
	if userID != payment.RecipientID && userID != group.CreatorID {
		return nil, ErrPermissionDenied
	}
	if !payment.Status.CanTransitionTo(domain.PaymentStatusVerified) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	payment.Status = domain.PaymentStatusVerified
	payment.VerifiedAt = &now
	if err := s.rotRepo.UpdatePayment(ctx, payment); err != nil {
		logger.ExitMethodWithError("rotationService.VerifyPayment", err, "paymentID", paymentID)
		return nil, err
	}

	note := &domain.Notification{
		UserID:  payment.PayerID,
		Title:   "Payment verified",
		Message: fmt.Sprintf("Your payment for month %d was verified.", payment.MonthNumber),
		Attributes: map[string]string{
			"group_id":   fmt.Sprint(payment.GroupID),
			"payment_id": fmt.Sprint(payment.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create verify notification", "userID", payment.PayerID, "error", err)
	}
	s.emailCounterparty(ctx, payment.PayerID, payment.GroupID, func(email, username, groupName string) error {
		return s.email.SendPaymentVerified(ctx, email, username, groupName, payment.MonthNumber)
	})

	logger.ExitMethod("rotationService.VerifyPayment", "paymentID", paymentID)
	return payment, nil
}

func (s *rotationService) DownloadSlip(ctx context.Context, userID, paymentID int32) (io.ReadCloser, string, error) {
	payment, err := s.rotRepo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrPaymentNotFound
		}
		return nil, "", err
	}

	group, err := s.rotRepo.GetGroup(ctx, payment.GroupID)
	if err != nil {
		return nil, "", err
	}
	// Slips contain bank details; only the parties to the payment and the
	// group creator may read them.
	if userID != payment.PayerID && userID != payment.RecipientID && userID != group.CreatorID {
		return nil, "", ErrPermissionDenied
	}
	if payment.SlipKey == "" {
		return nil, "", ErrSlipMissing
	}

	rc, err := s.store.ReadFile(payment.SlipKey)
	if err != nil {
		return nil, "", err
	}
	return rc, payment.SlipName, nil
}
