package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/studentdesk/studentdesk-backend/internal/model"
)

// ErrNoFieldsProvided is returned when a sparse update carries no fields.
var ErrNoFieldsProvided = errors.New("no fields provided for update")

// DirectoryService implements CRUD over manually entered student records
// plus the merged, role-scoped directory listing, and the admin operations
// on registered accounts.
type DirectoryService struct {
	records  RecordStore
	accounts CredentialStore
	// includeRegistrations: when set, accounts with the student role appear
	// in every caller's merged view, without ownership filtering.
	includeRegistrations bool
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(records RecordStore, accounts CredentialStore, includeRegistrations bool) *DirectoryService {
	return &DirectoryService{
		records:              records,
		accounts:             accounts,
		includeRegistrations: includeRegistrations,
	}
}

// CreateRecord persists a new student record owned by the acting admin and
// returns it with the creator's public profile resolved.
func (s *DirectoryService) CreateRecord(ctx context.Context, identity model.Identity, rec *model.StudentRecord) (*model.StudentRecord, error) {
	creatorID := identity.AccountID
	rec.CreatedBy = &creatorID
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Email = normalizeEmail(rec.Email)
	rec.Class = strings.TrimSpace(rec.Class)

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return s.records.GetByID(ctx, rec.ID)
}

// ListRecords builds the merged directory view. Admins see every manual
// record; other callers only see records they created. Registration-sourced
// entries are appended for every caller when enabled. The combined set is
// sorted newest first; the sort is stable so entries created in the same
// instant keep their relative order.
func (s *DirectoryService) ListRecords(ctx context.Context, identity model.Identity) ([]model.MergedRecord, model.ListBreakdown, error) {
	var (
		records []model.StudentRecord
		err     error
	)
	if identity.IsAdmin() {
		records, err = s.records.ListAll(ctx)
	} else {
		records, err = s.records.ListByCreator(ctx, identity.AccountID)
	}
	if err != nil {
		return nil, model.ListBreakdown{}, err
	}

	merged := make([]model.MergedRecord, 0, len(records))
	for _, rec := range records {
		merged = append(merged, model.MergedRecord{
			ID:        rec.ID,
			Name:      rec.Name,
			Email:     rec.Email,
			Age:       rec.Age,
			Class:     rec.Class,
			Source:    model.SourceManual,
			CreatedBy: rec.Creator,
			CreatedAt: rec.CreatedAt,
		})
	}
	breakdown := model.ListBreakdown{Manual: len(records)}

	if s.includeRegistrations {
		registered, err := s.accounts.ListByRole(ctx, model.RoleStudent)
		if err != nil {
			return nil, model.ListBreakdown{}, err
		}
		for _, a := range registered {
			merged = append(merged, model.MergedRecord{
				ID:        a.ID,
				Name:      a.Name,
				Email:     a.Email,
				Age:       a.Age,
				Class:     a.Class,
				Source:    model.SourceRegistration,
				CreatedAt: a.CreatedAt,
			})
		}
		breakdown.Registered = len(registered)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged, breakdown, nil
}

// GetRecord fetches one manual record. Non-admin callers are restricted to
// records they created; a miss and an ownership failure both surface as the
// store's not-found error so existence is never leaked.
func (s *DirectoryService) GetRecord(ctx context.Context, identity model.Identity, id int) (*model.StudentRecord, error) {
	if identity.IsAdmin() {
		return s.records.GetByID(ctx, id)
	}
	return s.records.GetByIDForCreator(ctx, id, identity.AccountID)
}

// UpdateRecord applies a sparse update to a manual record.
func (s *DirectoryService) UpdateRecord(ctx context.Context, id int, upd model.StudentRecordUpdate) (*model.StudentRecord, error) {
	if upd.IsEmpty() {
		return nil, ErrNoFieldsProvided
	}
	if upd.Email != nil {
		e := normalizeEmail(*upd.Email)
		upd.Email = &e
	}
	return s.records.UpdateByID(ctx, id, upd)
}

// DeleteRecord permanently removes a manual record and returns a minimal
// summary of what was deleted.
func (s *DirectoryService) DeleteRecord(ctx context.Context, id int) (*model.DeletedStudentSummary, error) {
	rec, err := s.records.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.DeletedStudentSummary{
		ID:    rec.ID,
		Name:  rec.Name,
		Age:   rec.Age,
		Class: rec.Class,
	}, nil
}

// GetAccount fetches a registered account by id. Password hashes never
// leave the model's JSON boundary.
func (s *DirectoryService) GetAccount(ctx context.Context, id int) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// UpdateAccount applies a sparse update to a registered account. Password
// and role are not settable through this path.
func (s *DirectoryService) UpdateAccount(ctx context.Context, id int, upd model.AccountUpdate) (*model.Account, error) {
	if upd.IsEmpty() {
		return nil, ErrNoFieldsProvided
	}
	if upd.Email != nil {
		e := normalizeEmail(*upd.Email)
		upd.Email = &e
	}
	return s.accounts.UpdateByID(ctx, id, upd)
}

// DeleteAccount removes a registered account and returns a minimal summary.
// Manual records created by the account survive with a null creator.
func (s *DirectoryService) DeleteAccount(ctx context.Context, id int) (*model.DeletedAccountSummary, error) {
	account, err := s.accounts.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.DeletedAccountSummary{ID: account.ID, DeletedUser: account.Name}, nil
}
