package service

import (
	"context"

	"github.com/studentdesk/studentdesk-backend/internal/model"
)

// CredentialStore is the service-side contract of the account store.
// *repository.AccountRepository satisfies it; tests substitute in-memory
// fakes.
type CredentialStore interface {
	Create(ctx context.Context, a *model.Account) error
	GetByID(ctx context.Context, id int) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Account, error)
	UpdateByID(ctx context.Context, id int, upd model.AccountUpdate) (*model.Account, error)
	DeleteByID(ctx context.Context, id int) (*model.Account, error)
}

// RecordStore is the service-side contract of the manually entered
// student-record store.
type RecordStore interface {
	Create(ctx context.Context, rec *model.StudentRecord) error
	GetByID(ctx context.Context, id int) (*model.StudentRecord, error)
	GetByIDForCreator(ctx context.Context, id, creatorID int) (*model.StudentRecord, error)
	ListAll(ctx context.Context) ([]model.StudentRecord, error)
	ListByCreator(ctx context.Context, creatorID int) ([]model.StudentRecord, error)
	UpdateByID(ctx context.Context, id int, upd model.StudentRecordUpdate) (*model.StudentRecord, error)
	DeleteByID(ctx context.Context, id int) (*model.StudentRecord, error)
}
