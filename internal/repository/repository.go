// Package repository contains the data access layer abstractions for the
// document store. Implementations live in subpackages (e.g. postgres).
package repository

import (
	"context"

	"storeapi/internal/model"
	"storeapi/internal/query"
)

// FileRepository defines persistence operations for file records.
// No business logic here — strictly storage operations. Missing rows are
// reported as sql.ErrNoRows so callers can translate them.
type FileRepository interface {
	// Create inserts a new file record and returns the stored row
	// (including values assigned by the database).
	Create(ctx context.Context, f *model.File) (*model.File, error)

	// FindByID returns a file record by its ID.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// List executes a predicate list built by the query package and
	// returns the matching page plus the total match count.
	List(ctx context.Context, preds []query.Predicate) (*ListResult, error)

	// ListByOwner returns every record owned by the given account, with
	// no sharing scope. Used for storage accounting.
	ListByOwner(ctx context.Context, ownerID string) ([]model.File, error)

	// UpdateName sets only the name field and bumps updated_at.
	UpdateName(ctx context.Context, id, name string) (*model.File, error)

	// UpdateUsers replaces the users set and bumps updated_at.
	UpdateUsers(ctx context.Context, id string, users []string) (*model.File, error)

	// Delete removes a file record by ID. Deleting a missing row returns
	// sql.ErrNoRows: the caller must not release the backing blob for a
	// record that was never deleted.
	Delete(ctx context.Context, id string) error
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *model.Account) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

// ListResult is the page returned by a predicate list execution.
type ListResult struct {
	Documents []model.File
	Total     int
}
