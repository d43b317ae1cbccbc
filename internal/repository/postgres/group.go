package postgres

import (
	"context"
	"database/sql"
	"errors"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	logger.EnterMethod("groupRepository.Create", "name", g.Name, "creatorID", g.CreatorID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("groupRepository.Create", err)
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO groups (name, description, creator_id, num_members, created_at)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query, g.Name, g.Description, g.CreatorID, g.NumMembers).
		Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		logger.ExitMethodWithError("groupRepository.Create", err)
		return err
	}

	memberQuery := `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, memberID := range g.MemberIDs {
		if _, err := tx.ExecContext(ctx, memberQuery, g.ID, memberID); err != nil {
			logger.ExitMethodWithError("groupRepository.Create", err, "memberID", memberID)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("groupRepository.Create", err)
		return err
	}
	logger.ExitMethod("groupRepository.Create", "groupID", g.ID)
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	g := &domain.Group{}
	query := `SELECT id, name, COALESCE(description, ''), creator_id, num_members, created_at FROM groups WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.Name, &g.Description, &g.CreatorID, &g.NumMembers, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	memberIDs, err := r.listMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	g.MemberIDs = memberIDs
	return g, nil
}

func (r *groupRepository) listMemberIDs(ctx context.Context, groupID int32) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY user_id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *groupRepository) ListByMember(ctx context.Context, userID int32) ([]domain.Group, error) {
	query := `SELECT g.id, g.name, COALESCE(g.description, ''), g.creator_id, g.num_members, g.created_at
	          FROM groups g
	          JOIN group_members gm ON g.id = gm.group_id
	          WHERE gm.user_id = $1
	          ORDER BY g.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatorID, &g.NumMembers, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.IsCreator = g.CreatorID == userID
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE groups SET name=$1, description=$2, num_members=$3 WHERE id=$4`
	result, err := r.db.ExecContext(ctx, query, g.Name, g.Description, g.NumMembers, g.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *groupRepository) AddMembers(ctx context.Context, groupID int32, memberIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, memberID := range memberIDs {
		if _, err := tx.ExecContext(ctx, query, groupID, memberID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *groupRepository) GetMembers(ctx context.Context, groupID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at, u.updated_at
	          FROM users u
	          JOIN group_members gm ON u.id = gm.user_id
	          WHERE gm.group_id = $1
	          ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
