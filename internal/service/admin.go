package service

import (
	"context"
	"errors"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository"
)

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) DeleteUser(ctx context.Context, userID int32) error {
	logger.EnterMethod("adminService.DeleteUser", "userID", userID)

	err := s.userRepo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		logger.ExitMethodWithError("adminService.DeleteUser", err, "userID", userID)
		return err
	}
	logger.ExitMethod("adminService.DeleteUser", "userID", userID)
	return nil
}
