package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studentdesk/studentdesk-backend/internal/model"
)

// recordSelect joins every record with the public profile of its creating
// account. The join is LEFT so records survive creator deletion with a
// null creator, mirroring the back-reference only being enforced at
// creation time.
const recordSelect = `
	SELECT s.id, s.name, s.email, s.age, s.class_name, s.created_by,
	       s.created_at, s.updated_at,
	       a.id, a.name, a.email, a.role
	FROM student_records s
	LEFT JOIN accounts a ON a.id = s.created_by`

// StudentRecordRepository is the record store: it persists manually
// entered student records.
type StudentRecordRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRecordRepository creates a new StudentRecordRepository.
func NewStudentRecordRepository(pool *pgxpool.Pool) *StudentRecordRepository {
	return &StudentRecordRepository{pool: pool}
}

// Create inserts a new record. ID and timestamps are filled in on the
// passed struct; the creator profile is not resolved here.
func (r *StudentRecordRepository) Create(ctx context.Context, rec *model.StudentRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO student_records (name, email, age, class_name, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		rec.Name, rec.Email, rec.Age, rec.Class, rec.CreatedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

// GetByID retrieves a record by ID with its creator profile resolved.
func (r *StudentRecordRepository) GetByID(ctx context.Context, id int) (*model.StudentRecord, error) {
	row := r.pool.QueryRow(ctx, recordSelect+` WHERE s.id = $1`, id)
	return scanRecord(row)
}

// GetByIDForCreator retrieves a record only if it was created by the given
// account. A miss and an ownership failure are indistinguishable to the
// caller.
func (r *StudentRecordRepository) GetByIDForCreator(ctx context.Context, id, creatorID int) (*model.StudentRecord, error) {
	row := r.pool.QueryRow(ctx,
		recordSelect+` WHERE s.id = $1 AND s.created_by = $2`, id, creatorID)
	return scanRecord(row)
}

// ListAll retrieves every record, newest first.
func (r *StudentRecordRepository) ListAll(ctx context.Context) ([]model.StudentRecord, error) {
	rows, err := r.pool.Query(ctx, recordSelect+` ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByCreator retrieves records created by the given account, newest first.
func (r *StudentRecordRepository) ListByCreator(ctx context.Context, creatorID int) ([]model.StudentRecord, error) {
	rows, err := r.pool.Query(ctx,
		recordSelect+` WHERE s.created_by = $1 ORDER BY s.created_at DESC`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// UpdateByID applies a sparse update and returns the updated record with
// its creator profile resolved. Returns ErrNotFound if the id does not
// resolve.
func (r *StudentRecordRepository) UpdateByID(ctx context.Context, id int, upd model.StudentRecordUpdate) (*model.StudentRecord, error) {
	query := `UPDATE student_records SET updated_at = CURRENT_TIMESTAMP`
	var args []interface{}
	argIdx := 1

	if upd.Name != nil {
		query += `, name = $` + strconv.Itoa(argIdx)
		args = append(args, *upd.Name)
		argIdx++
	}
	if upd.Email != nil {
		query += `, email = $` + strconv.Itoa(argIdx)
		args = append(args, *upd.Email)
		argIdx++
	}
	if upd.Age != nil {
		query += `, age = $` + strconv.Itoa(argIdx)
		args = append(args, *upd.Age)
		argIdx++
	}
	if upd.Class != nil {
		query += `, class_name = $` + strconv.Itoa(argIdx)
		args = append(args, *upd.Class)
		argIdx++
	}

	query += ` WHERE id = $` + strconv.Itoa(argIdx)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteByID removes a record and returns the deleted row.
func (r *StudentRecordRepository) DeleteByID(ctx context.Context, id int) (*model.StudentRecord, error) {
	rec := &model.StudentRecord{}
	err := r.pool.QueryRow(ctx,
		`DELETE FROM student_records WHERE id = $1
		 RETURNING id, name, email, age, class_name, created_by, created_at, updated_at`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Age, &rec.Class, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (*model.StudentRecord, error) {
	rec := &model.StudentRecord{}
	var (
		creatorID    *int
		creatorName  *string
		creatorEmail *string
		creatorRole  *string
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Age, &rec.Class, &rec.CreatedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
		&creatorID, &creatorName, &creatorEmail, &creatorRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if creatorID != nil {
		role, err := model.RoleFromStorage(*creatorRole)
		if err != nil {
			return nil, err
		}
		rec.Creator = &model.CreatorProfile{
			ID:    *creatorID,
			Name:  *creatorName,
			Email: *creatorEmail,
			Role:  role,
		}
	}
	return rec, nil
}

func collectRecords(rows pgx.Rows) ([]model.StudentRecord, error) {
	var records []model.StudentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
