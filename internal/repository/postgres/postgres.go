package postgres

import (
	"database/sql"

	"debtmates-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.GroupRepository
	repository.DebtRepository
	repository.RotationalRepository
	repository.SavingPlanRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		GroupRepository:        NewGroupRepository(db),
		DebtRepository:         NewDebtRepository(db),
		RotationalRepository:   NewRotationalRepository(db),
		SavingPlanRepository:   NewSavingPlanRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
