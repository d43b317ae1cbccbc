package postgres

import (
	"context"
	"database/sql"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository"
)

type debtRepository struct {
	db *sql.DB
}

func NewDebtRepository(db *sql.DB) repository.DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) CreateRound(ctx context.Context, groupID int32, records []domain.DebtRecord, transfers []domain.DebtTransfer) error {
	logger.EnterMethod("debtRepository.CreateRound", "groupID", groupID, "records", len(records), "transfers", len(transfers))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("debtRepository.CreateRound", err, "groupID", groupID)
		return err
	}
	defer tx.Rollback()

	// A new round replaces the previous one for the group.
	if _, err := tx.ExecContext(ctx, `DELETE FROM debt_transfers WHERE group_id = $1`, groupID); err != nil {
		logger.ExitMethodWithError("debtRepository.CreateRound", err, "groupID", groupID)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM debt_records WHERE group_id = $1`, groupID); err != nil {
		logger.ExitMethodWithError("debtRepository.CreateRound", err, "groupID", groupID)
		return err
	}

	recordQuery := `INSERT INTO debt_records (group_id, member_id, member_name, contributed, expected, to_who_pay, amount_to_pay, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_at`
	for i := range records {
		rec := &records[i]
		err := tx.QueryRowContext(ctx, recordQuery, groupID, rec.MemberID, rec.MemberName,
			rec.Contributed, rec.Expected, rec.ToWhoPay, rec.AmountToPay).
			Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			logger.ExitMethodWithError("debtRepository.CreateRound", err, "groupID", groupID, "memberID", rec.MemberID)
			return err
		}
		rec.GroupID = groupID
	}

	transferQuery := `INSERT INTO debt_transfers (group_id, from_user_id, to_user_id, amount, created_at)
	                  VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	for i := range transfers {
		tr := &transfers[i]
		err := tx.QueryRowContext(ctx, transferQuery, groupID, tr.FromUserID, tr.ToUserID, tr.Amount).
			Scan(&tr.ID, &tr.CreatedAt)
		if err != nil {
			logger.ExitMethodWithError("debtRepository.CreateRound", err, "groupID", groupID)
			return err
		}
		tr.GroupID = groupID
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("debtRepository.CreateRound", err, "groupID", groupID)
		return err
	}
	logger.ExitMethod("debtRepository.CreateRound", "groupID", groupID)
	return nil
}

func (r *debtRepository) ListRecords(ctx context.Context, groupID int32) ([]domain.DebtRecord, error) {
	query := `SELECT id, group_id, member_id, member_name, contributed, expected, COALESCE(to_who_pay, ''), amount_to_pay, created_at
	          FROM debt_records WHERE group_id = $1 ORDER BY member_id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.DebtRecord
	for rows.Next() {
		var rec domain.DebtRecord
		if err := rows.Scan(&rec.ID, &rec.GroupID, &rec.MemberID, &rec.MemberName,
			&rec.Contributed, &rec.Expected, &rec.ToWhoPay, &rec.AmountToPay, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *debtRepository) ListTransfers(ctx context.Context, groupID int32) ([]domain.DebtTransfer, error) {
	query := `SELECT id, group_id, from_user_id, to_user_id, amount, created_at
	          FROM debt_transfers WHERE group_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []domain.DebtTransfer
	for rows.Next() {
		var tr domain.DebtTransfer
		if err := rows.Scan(&tr.ID, &tr.GroupID, &tr.FromUserID, &tr.ToUserID, &tr.Amount, &tr.CreatedAt); err != nil {
			return nil, err
		}
		transfers = append(transfers, tr)
	}
	return transfers, rows.Err()
}
