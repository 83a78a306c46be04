package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studentdesk/studentdesk-backend/internal/model"
)

// Store-level sentinel errors shared by both repositories.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("account with this email already exists")
)

const accountColumns = `id, name, email, password_hash, age, class_name, role, created_at, updated_at`

// AccountRepository is the credential store: it persists registered
// identities (admins and self-registered students).
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account. The unique index on email surfaces as
// ErrDuplicateEmail.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (name, email, password_hash, age, class_name, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		a.Name, a.Email, a.PasswordHash, a.Age, a.Class, string(a.Role),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// GetByEmail retrieves an account by its unique email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// ListByRole retrieves every account carrying the given role, newest first.
func (r *AccountRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE role = $1 ORDER BY created_at DESC`,
		string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// UpdateByID applies a sparse update and returns the updated account.
// Returns ErrNotFound if the id does not resolve, ErrDuplicateEmail if the
// new email collides with an existing account.
func (r *AccountRepository) UpdateByID(ctx context.Context, id int, upd model.AccountUpdate) (*model.Account, error) {
	query := `UPDATE accounts SET updated_at = CURRENT_TIMESTAMP`
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

	query += ` WHERE id = $` + strconv.Itoa(argIdx) + ` RETURNING ` + accountColumns
	args = append(args, id)

	row := r.pool.QueryRow(ctx, query, args...)
	a, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return a, nil
}

// DeleteByID removes an account and returns the deleted row.
// Records created by the account keep existing; their back-reference is
// nulled by the schema.
func (r *AccountRepository) DeleteByID(ctx context.Context, id int) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM accounts WHERE id = $1 RETURNING `+accountColumns, id)
	return scanAccount(row)
}

// AdminExists reports whether any admin account has been bootstrapped.
func (r *AccountRepository) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE role IN ($1, $2))`,
		string(model.RoleAdmin), "superadmin",
	).Scan(&exists)
	return exists, err
}

// scanAccount reads one account row, mapping pgx.ErrNoRows to ErrNotFound
// and normalizing legacy role values.
func scanAccount(row pgx.Row) (*model.Account, error) {
	a := &model.Account{}
	var role string
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Age, &a.Class, &role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Role, err = model.RoleFromStorage(role)
	if err != nil {
		return nil, err
	}
	return a, nil
}
