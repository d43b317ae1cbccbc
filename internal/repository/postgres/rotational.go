package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository"
)

type rotationalRepository struct {
	db *sql.DB
}

func NewRotationalRepository(db *sql.DB) repository.RotationalRepository {
	return &rotationalRepository{db: db}
}

func (r *rotationalRepository) CreateGroup(ctx context.Context, g *domain.RotationalGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO rotational_groups (name, creator_id, num_members, created_at)
	          VALUES ($1, $2, $3, NOW()) RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, query, g.Name, g.CreatorID, g.NumMembers).Scan(&g.ID, &g.CreatedAt); err != nil {
		return err
	}

	memberQuery := `INSERT INTO rotational_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, memberID := range g.MemberIDs {
		if _, err := tx.ExecContext(ctx, memberQuery, g.ID, memberID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *rotationalRepository) GetGroup(ctx context.Context, id int32) (*domain.RotationalGroup, error) {
	g := &domain.RotationalGroup{}
	query := `SELECT id, name, creator_id, num_members, created_at FROM rotational_groups WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.Name, &g.CreatorID, &g.NumMembers, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM rotational_members WHERE group_id = $1 ORDER BY user_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var memberID int32
		if err := rows.Scan(&memberID); err != nil {
			return nil, err
		}
		g.MemberIDs = append(g.MemberIDs, memberID)
	}
	return g, rows.Err()
}

func (r *rotationalRepository) ListGroupsByMember(ctx context.Context, userID int32) ([]domain.RotationalGroup, error) {
	query := `SELECT g.id, g.name, g.creator_id, g.num_members, g.created_at
	          FROM rotational_groups g
	          JOIN rotational_members rm ON g.id = rm.group_id
	          WHERE rm.user_id = $1
	          ORDER BY g.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.RotationalGroup
	for rows.Next() {
		var g domain.RotationalGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatorID, &g.NumMembers, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.IsCreator = g.CreatorID == userID
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *rotationalRepository) AddMembers(ctx context.Context, groupID int32, memberIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO rotational_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, memberID := range memberIDs {
		if _, err := tx.ExecContext(ctx, query, groupID, memberID); err != nil {
			return err
		}
	}

	// Keep the denormalized count in step with the membership table; plan
	// validation reads it.
	countQuery := `UPDATE rotational_groups
	               SET num_members = (SELECT COUNT(*) FROM rotational_members WHERE group_id = $1)
	               WHERE id = $1`
	if _, err := tx.ExecContext(ctx, countQuery, groupID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rotationalRepository) GetMembers(ctx context.Context, groupID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at, u.updated_at
	          FROM users u
	          JOIN rotational_members rm ON u.id = rm.user_id
	          WHERE rm.group_id = $1
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

func (r *rotationalRepository) CreatePlan(ctx context.Context, groupID int32, entries []domain.PlanEntry, payments []domain.RotationalPayment) error {
	logger.EnterMethod("rotationalRepository.CreatePlan", "groupID", groupID, "entries", len(entries), "payments", len(payments))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("rotationalRepository.CreatePlan", err, "groupID", groupID)
		return err
	}
	defer tx.Rollback()

	var existing int32
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan_entries WHERE group_id = $1`, groupID).Scan(&existing); err != nil {
		logger.ExitMethodWithError("rotationalRepository.CreatePlan", err, "groupID", groupID)
		return err
	}
	if existing > 0 {
		err := fmt.Errorf("group %d already has a payout plan", groupID)
		logger.ExitMethodWithError("rotationalRepository.CreatePlan", err, "groupID", groupID)
		return err
	}

	entryQuery := `INSERT INTO plan_entries (group_id, month_number, recipient_id, amount)
	               VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range entries {
		e := &entries[i]
		if err := tx.QueryRowContext(ctx, entryQuery, groupID, e.MonthNumber, e.RecipientID, e.Amount).Scan(&e.ID); err != nil {
			logger.ExitMethodWithError("rotationalRepository.CreatePlan", err, "groupID", groupID, "month", e.MonthNumber)
			return err
		}
		e.GroupID = groupID
	}

	paymentQuery := `INSERT INTO rotational_payments (group_id, month_number, payer_id, recipient_id, amount, status, created_at)
	                 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_at`
	for i := range payments {
		p := &payments[i]
		err := tx.QueryRowContext(ctx, paymentQuery, groupID, p.MonthNumber, p.PayerID, p.RecipientID, p.Amount, p.Status).
			Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			logger.ExitMethodWithError("rotationalRepository.CreatePlan", err, "groupID", groupID, "payerID", p.PayerID)
			return err
		}
		p.GroupID = groupID
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("rotationalRepository.CreatePlan", err, "groupID", groupID)
		return err
	}
	logger.ExitMethod("rotationalRepository.CreatePlan", "groupID", groupID)
	return nil
}

func (r *rotationalRepository) GetPlan(ctx context.Context, groupID int32) ([]domain.PlanEntry, error) {
	query := `SELECT id, group_id, month_number, recipient_id, amount FROM plan_entries WHERE group_id = $1 ORDER BY month_number`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PlanEntry
	for rows.Next() {
		var e domain.PlanEntry
		if err := rows.Scan(&e.ID, &e.GroupID, &e.MonthNumber, &e.RecipientID, &e.Amount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const paymentColumns = `id, group_id, month_number, payer_id, recipient_id, amount, status, COALESCE(slip_key, ''), COALESCE(slip_name, ''), submitted_at, verified_at, created_at`

func scanPayment(scan func(dest ...any) error) (*domain.RotationalPayment, error) {
	p := &domain.RotationalPayment{}
	var status string
	var submittedAt, verifiedAt sql.NullTime
	err := scan(&p.ID, &p.GroupID, &p.MonthNumber, &p.PayerID, &p.RecipientID,
		&p.Amount, &status, &p.SlipKey, &p.SlipName, &submittedAt, &verifiedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Status, err = domain.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		p.SubmittedAt = &t
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		p.VerifiedAt = &t
	}
	return p, nil
}

func (r *rotationalRepository) GetPayment(ctx context.Context, id int32) (*domain.RotationalPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rotational_payments WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanPayment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *rotationalRepository) UpdatePayment(ctx context.Context, p *domain.RotationalPayment) error {
	query := `UPDATE rotational_payments SET status=$1, slip_key=$2, slip_name=$3, submitted_at=$4, verified_at=$5 WHERE id=$6`
	result, err := r.db.ExecContext(ctx, query, p.Status, p.SlipKey, p.SlipName, p.SubmittedAt, p.VerifiedAt, p.ID)
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

func (r *rotationalRepository) ListPaymentsByGroup(ctx context.Context, groupID int32) ([]domain.RotationalPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rotational_payments WHERE group_id = $1 ORDER BY month_number, payer_id`
	return r.listPayments(ctx, query, groupID)
}

func (r *rotationalRepository) ListPaymentsByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.RotationalPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rotational_payments WHERE status = $1 ORDER BY group_id, month_number, payer_id`
	return r.listPayments(ctx, query, status)
}

func (r *rotationalRepository) listPayments(ctx context.Context, query string, args ...any) ([]domain.RotationalPayment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.RotationalPayment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
