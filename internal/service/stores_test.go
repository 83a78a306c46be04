package service

import (
	"context"
	"time"

	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
)

// In-memory store fakes. They satisfy CredentialStore and RecordStore and
// reproduce the repository sentinel errors.

type fakeCredentialStore struct {
	accounts []model.Account
	nextID   int
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{nextID: 1}
}

func (f *fakeCredentialStore) Create(_ context.Context, a *model.Account) error {
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	a.ID = f.nextID
	f.nextID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.UpdatedAt = a.CreatedAt
	f.accounts = append(f.accounts, *a)
	return nil
}

func (f *fakeCredentialStore) GetByID(_ context.Context, id int) (*model.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			a := f.accounts[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCredentialStore) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].Email == email {
			a := f.accounts[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCredentialStore) ListByRole(_ context.Context, role model.Role) ([]model.Account, error) {
	var out []model.Account
	for _, a := range f.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCredentialStore) UpdateByID(_ context.Context, id int, upd model.AccountUpdate) (*model.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID != id {
			continue
		}
		a := &f.accounts[i]
		if upd.Name != nil {
			a.Name = *upd.Name
		}
		if upd.Email != nil {
			for _, other := range f.accounts {
				if other.ID != id && other.Email == *upd.Email {
					return nil, repository.ErrDuplicateEmail
				}
			}
			a.Email = *upd.Email
		}
		if upd.Age != nil {
			a.Age = *upd.Age
		}
		if upd.Class != nil {
			a.Class = *upd.Class
		}
		a.UpdatedAt = time.Now()
		copied := *a
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCredentialStore) DeleteByID(_ context.Context, id int) (*model.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			deleted := f.accounts[i]
			f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeRecordStore struct {
	records []model.StudentRecord
	nextID  int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{nextID: 1}
}

func (f *fakeRecordStore) Create(_ context.Context, rec *model.StudentRecord) error {
	rec.ID = f.nextID
	f.nextID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = rec.CreatedAt
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeRecordStore) GetByID(_ context.Context, id int) (*model.StudentRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRecordStore) GetByIDForCreator(_ context.Context, id, creatorID int) (*model.StudentRecord, error) {
	for i := range f.records {
		rec := f.records[i]
		if rec.ID == id && rec.CreatedBy != nil && *rec.CreatedBy == creatorID {
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRecordStore) ListAll(_ context.Context) ([]model.StudentRecord, error) {
	out := make([]model.StudentRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeRecordStore) ListByCreator(_ context.Context, creatorID int) ([]model.StudentRecord, error) {
	var out []model.StudentRecord
	for _, rec := range f.records {
		if rec.CreatedBy != nil && *rec.CreatedBy == creatorID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) UpdateByID(_ context.Context, id int, upd model.StudentRecordUpdate) (*model.StudentRecord, error) {
	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		rec := &f.records[i]
		if upd.Name != nil {
			rec.Name = *upd.Name
		}
		if upd.Email != nil {
			rec.Email = *upd.Email
		}
		if upd.Age != nil {
			rec.Age = *upd.Age
		}
		if upd.Class != nil {
			rec.Class = *upd.Class
		}
		rec.UpdatedAt = time.Now()
		copied := *rec
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRecordStore) DeleteByID(_ context.Context, id int) (*model.StudentRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			deleted := f.records[i]
			f.records = append(f.records[:i], f.records[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, repository.ErrNotFound
}
