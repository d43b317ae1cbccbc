package postgres

import (
	"context"
	"database/sql"
	"errors"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/repository"
)

type savingPlanRepository struct {
	db *sql.DB
}

func NewSavingPlanRepository(db *sql.DB) repository.SavingPlanRepository {
	return &savingPlanRepository{db: db}
}

const savingPlanColumns = `id, owner_id, plan_name, plan_type, goal_amount, current_amount, start_date, end_date, deposit_frequency, status, created_at, updated_at`

func scanSavingPlan(scan func(dest ...any) error) (*domain.SavingPlan, error) {
	p := &domain.SavingPlan{}
	err := scan(&p.ID, &p.OwnerID, &p.PlanName, &p.PlanType, &p.GoalAmount, &p.CurrentAmount,
		&p.StartDate, &p.EndDate, &p.DepositFrequency, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *savingPlanRepository) Create(ctx context.Context, p *domain.SavingPlan) error {
	query := `INSERT INTO saving_plans (owner_id, plan_name, plan_type, goal_amount, current_amount, start_date, end_date, deposit_frequency, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, p.OwnerID, p.PlanName, p.PlanType, p.GoalAmount,
		p.CurrentAmount, p.StartDate, p.EndDate, p.DepositFrequency, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *savingPlanRepository) GetByID(ctx context.Context, id int32) (*domain.SavingPlan, error) {
	query := `SELECT ` + savingPlanColumns + ` FROM saving_plans WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanSavingPlan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *savingPlanRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.SavingPlan, error) {
	query := `SELECT ` + savingPlanColumns + ` FROM saving_plans WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *savingPlanRepository) ListActive(ctx context.Context) ([]domain.SavingPlan, error) {
	query := `SELECT ` + savingPlanColumns + ` FROM saving_plans WHERE status = $1 ORDER BY id`
	return r.list(ctx, query, domain.PlanStatusActive)
}

func (r *savingPlanRepository) list(ctx context.Context, query string, args ...any) ([]domain.SavingPlan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.SavingPlan
	for rows.Next() {
		p, err := scanSavingPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (r *savingPlanRepository) Update(ctx context.Context, p *domain.SavingPlan) error {
	query := `UPDATE saving_plans SET plan_name=$1, plan_type=$2, goal_amount=$3, current_amount=$4, start_date=$5, end_date=$6, deposit_frequency=$7, status=$8, updated_at=NOW() WHERE id=$9`
	result, err := r.db.ExecContext(ctx, query, p.PlanName, p.PlanType, p.GoalAmount,
		p.CurrentAmount, p.StartDate, p.EndDate, p.DepositFrequency, p.Status, p.ID)
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

func (r *savingPlanRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saving_plans WHERE id = $1`, id)
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

func (r *savingPlanRepository) RecordDeposit(ctx context.Context, d *domain.Deposit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO saving_deposits (plan_id, amount, created_at) VALUES ($1, $2, NOW()) RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, query, d.PlanID, d.Amount).Scan(&d.ID, &d.CreatedAt); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE saving_plans SET current_amount = current_amount + $1, updated_at = NOW() WHERE id = $2`,
		d.Amount, d.PlanID)
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
	return tx.Commit()
}
