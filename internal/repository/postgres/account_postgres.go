package postgres

import (
	"context"
	"database/sql"

	"storeapi/internal/model"
	"storeapi/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
type AccountPostgres struct {
	db *sql.DB
}

// NewAccountPostgres creates a new AccountPostgres repository.
func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

const accountColumns = `id, full_name, email, secret_hash, created_at`

func scanAccount(row interface{ Scan(...any) error }) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(
		&a.ID,
		&a.FullName,
		&a.Email,
		&a.SecretHash,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account row and returns the stored record.
func (r *AccountPostgres) Create(ctx context.Context, a *model.Account) (*model.Account, error) {
	q := `
		INSERT INTO accounts (id, full_name, email, secret_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + accountColumns
	row := r.db.QueryRowContext(ctx, q, a.ID, a.FullName, a.Email, a.SecretHash)
	return scanAccount(row)
}

// FindByID fetches an account by its ID.
func (r *AccountPostgres) FindByID(ctx context.Context, id string) (*model.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches an account by its unique email.
func (r *AccountPostgres) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(r.db.QueryRowContext(ctx, q, email))
}
