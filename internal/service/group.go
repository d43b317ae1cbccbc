package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository"
)

type groupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	noteRepo  repository.NotificationRepository
}

func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository, noteRepo repository.NotificationRepository) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
	}
}

// resolveMembers looks up users by email and returns their IDs, always
// including the creator.
func (s *groupService) resolveMembers(ctx context.Context, creatorID int32, memberEmails []string) ([]int32, error) {
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
	return ids, nil
}

func (s *groupService) CreateGroup(ctx context.Context, creatorID int32, name, description string, memberEmails []string) (*domain.Group, error) {
	logger.EnterMethod("groupService.CreateGroup", "creatorID", creatorID, "name", name)

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	memberIDs, err := s.resolveMembers(ctx, creatorID, memberEmails)
	if err != nil {
		logger.ExitMethodWithError("groupService.CreateGroup", err, "creatorID", creatorID)
		return nil, err
	}

	group := &domain.Group{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatorID:   creatorID,
		NumMembers:  int32(len(memberIDs)),
		MemberIDs:   memberIDs,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		logger.ExitMethodWithError("groupService.CreateGroup", err, "creatorID", creatorID)
		return nil, err
	}
	group.IsCreator = true

	s.notifyMembers(ctx, group.MemberIDs, creatorID, "Added to group",
		fmt.Sprintf("You were added to the expense group %q.", group.Name),
		map[string]string{"group_id": fmt.Sprint(group.ID)})

	logger.ExitMethod("groupService.CreateGroup", "groupID", group.ID)
	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, userID, groupID int32) (*domain.Group, []domain.User, error) {
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
	group.IsCreator = group.CreatorID == userID

	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return group, members, nil
}

func (s *groupService) ListGroups(ctx context.Context, userID int32) ([]domain.Group, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

func (s *groupService) UpdateGroup(ctx context.Context, userID, groupID int32, name, description string) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if group.CreatorID != userID {
		return nil, ErrNotGroupCreator
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}
	group.Name = strings.TrimSpace(name)
	group.Description = strings.TrimSpace(description)

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	group.IsCreator = true
	return group, nil
}

func (s *groupService) AddMembers(ctx context.Context, userID, groupID int32, memberEmails []string) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if group.CreatorID != userID {
		return nil, ErrNotGroupCreator
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
		if !group.HasMember(user.ID) {
			newIDs = append(newIDs, user.ID)
		}
	}
	if len(newIDs) == 0 {
		return group, nil
	}

	if err := s.groupRepo.AddMembers(ctx, groupID, newIDs); err != nil {
		return nil, err
	}
	group.MemberIDs = append(group.MemberIDs, newIDs...)
	group.NumMembers = int32(len(group.MemberIDs))
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	group.IsCreator = true

	s.notifyMembers(ctx, newIDs, userID, "Added to group",
		fmt.Sprintf("You were added to the expense group %q.", group.Name),
		map[string]string{"group_id": fmt.Sprint(group.ID)})

	return group, nil
}

// notifyMembers creates an in-app notification for every member except actor.
// Notification failures are logged, never propagated.
func (s *groupService) notifyMembers(ctx context.Context, memberIDs []int32, actorID int32, title, message string, attrs map[string]string) {
	for _, id := range memberIDs {
		if id == actorID {
			continue
		}
		note := &domain.Notification{
			UserID:     id,
			Title:      title,
			Message:    message,
			Attributes: attrs,
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create notification", "userID", id, "error", err)
		}
	}
}
