package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storeapi/internal/model"
	"storeapi/internal/query"
	"storeapi/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

// IsNoRowsError reports whether err means a missing row.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

const fileColumns = `id, name, type, extension, url, size, owner, account_id, users, bucket_file_id, created_at, updated_at`

// sortColumns maps the query package's logical sort fields onto columns.
// The query builder has already rejected anything outside this set.
var sortColumns = map[query.Field]string{
	query.FieldName:      "name",
	query.FieldSize:      "size",
	query.FieldCreatedAt: "created_at",
	query.FieldUpdatedAt: "updated_at",
}

func scanFile(row interface{ Scan(...any) error }) (*model.File, error) {
	var f model.File
	var users textArray
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Type,
		&f.Extension,
		&f.URL,
		&f.Size,
		&f.Owner,
		&f.AccountID,
		&users,
		&f.BucketFileID,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	f.Users = users
	return &f, nil
}

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, f *model.File) (*model.File, error) {
	q := `
		INSERT INTO files (id, name, type, extension, url, size, owner, account_id, users, bucket_file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.Name,
		string(f.Type),
		f.Extension,
		f.URL,
		f.Size,
		f.Owner,
		f.AccountID,
		textArray(f.Users),
		f.BucketFileID,
	)
	return scanFile(row)
}

// FindByID fetches a single file by its ID.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	q := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// List compiles the predicate list into WHERE/ORDER BY/LIMIT clauses and
// returns the matching page plus the total count of matches (ignoring the
// limit, as the original backend did).
func (r *FilePostgres) List(ctx context.Context, preds []query.Predicate) (*repository.ListResult, error) {
	c, err := compile(preds)
	if err != nil {
		return nil, err
	}

	qCount := `SELECT COUNT(*) FROM files WHERE ` + c.where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, c.args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + fileColumns + ` FROM files WHERE ` + c.where + ` ` + c.order
	if c.limit > 0 {
		qList += fmt.Sprintf(" LIMIT %d", c.limit)
	}
	rows, err := r.db.QueryContext(ctx, qList, c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.ListResult{Documents: docs, Total: total}, nil
}

// ListByOwner returns all rows owned by ownerID, for accounting scans.
func (r *FilePostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.File, error) {
	q := `SELECT ` + fileColumns + ` FROM files WHERE owner = $1`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// UpdateName sets only the name field.
func (r *FilePostgres) UpdateName(ctx context.Context, id, name string) (*model.File, error) {
	q := `UPDATE files SET name = $1, updated_at = now() WHERE id = $2 RETURNING ` + fileColumns
	return scanFile(r.db.QueryRowContext(ctx, q, name, id))
}

// UpdateUsers replaces the users set.
func (r *FilePostgres) UpdateUsers(ctx context.Context, id string, users []string) (*model.File, error) {
	q := `UPDATE files SET users = $1, updated_at = now() WHERE id = $2 RETURNING ` + fileColumns
	return scanFile(r.db.QueryRowContext(ctx, q, textArray(users), id))
}

// Delete removes a file row by ID. A missing row is sql.ErrNoRows: the
// service must not release the blob of a record it never deleted.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// compiled is the SQL fragment set produced from a predicate list.
type compiled struct {
	where string
	args  []any
	order string
	limit int
}

// compile translates the query package's predicates into SQL. Predicates
// are conjunctive; placeholders are numbered in encounter order. Column
// and direction tokens come from fixed maps, never from input.
func compile(preds []query.Predicate) (*compiled, error) {
	var (
		conds []string
		args  []any
	)
	c := &compiled{order: "ORDER BY created_at DESC, id DESC"}

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, p := range preds {
		switch p := p.(type) {
		case query.OwnerOrShared:
			conds = append(conds, fmt.Sprintf("(owner = %s OR %s = ANY(users))",
				next(p.OwnerID), next(p.Email)))
		case query.TypeIn:
			ph := make([]string, 0, len(p.Types))
			for _, t := range p.Types {
				ph = append(ph, next(string(t)))
			}
			conds = append(conds, fmt.Sprintf("type IN (%s)", strings.Join(ph, ", ")))
		case query.NameContains:
			conds = append(conds, fmt.Sprintf(`name ILIKE %s ESCAPE '\'`, next(likePattern(p.Text))))
		case query.Limit:
			c.limit = p.N
		case query.OrderBy:
			col, ok := sortColumns[p.Field]
			if !ok {
				return nil, fmt.Errorf("unsupported sort field %q", p.Field)
			}
			dir := "ASC"
			if p.Desc {
				dir = "DESC"
			}
			c.order = fmt.Sprintf("ORDER BY %s %s, id DESC", col, dir)
		default:
			return nil, fmt.Errorf("unsupported predicate %T", p)
		}
	}

	if len(conds) == 0 {
		return nil, errors.New("predicate list has no filter conditions")
	}
	c.where = strings.Join(conds, " AND ")
	c.args = args
	return c, nil
}

// likePattern wraps text in %…% for substring containment, escaping the
// LIKE metacharacters in the user's input.
func likePattern(text string) string {
	rep := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + rep.Replace(text) + "%"
}
