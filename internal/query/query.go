// Package query translates logical file-listing requests into the ordered
// predicate list the repository layer executes. It performs no I/O.
package query

import (
	"strings"

	"storeapi/internal/model"
)

// Field is a logical sortable field of a file record. The repository maps
// these onto its own columns.
type Field string

const (
	FieldName      Field = "name"
	FieldSize      Field = "size"
	FieldCreatedAt Field = "$createdAt"
	FieldUpdatedAt Field = "$updatedAt"
)

// sortable is the allow-list of fields accepted in a sort expression.
// Anything else falls back to the default ordering.
var sortable = map[Field]bool{
	FieldName:      true,
	FieldSize:      true,
	FieldCreatedAt: true,
	FieldUpdatedAt: true,
}

// Predicate is a single filter or ordering condition. Predicates are
// conjunctive; their order is preserved as built.
type Predicate interface {
	predicate()
}

// OwnerOrShared is the authorization predicate: the record is owned by
// OwnerID or shared with Email. Every built list starts with it.
type OwnerOrShared struct {
	OwnerID string
	Email   string
}

// TypeIn restricts results to records whose type is in Types.
type TypeIn struct {
	Types []model.FileType
}

// NameContains restricts results to records whose name contains Text as a
// substring.
type NameContains struct {
	Text string
}

// Limit caps the number of returned records.
type Limit struct {
	N int
}

// OrderBy orders results by a single field.
type OrderBy struct {
	Field Field
	Desc  bool
}

func (OwnerOrShared) predicate() {}
func (TypeIn) predicate()        {}
func (NameContains) predicate()  {}
func (Limit) predicate()         {}
func (OrderBy) predicate()       {}

// Options are the optional parts of a listing request.
type Options struct {
	Types      []model.FileType
	SearchText string
	// Sort is "<field>-<asc|desc>", e.g. "$createdAt-desc". Empty or
	// unrecognized sorts use the default: $createdAt descending.
	Sort  string
	Limit int
}

// Build produces the predicate list for a listing request. The first
// predicate is always the owner-or-shared authorization boundary; the
// last is always a single OrderBy.
func Build(ownerID, email string, opts Options) []Predicate {
	preds := []Predicate{
		OwnerOrShared{OwnerID: ownerID, Email: email},
	}

	if len(opts.Types) > 0 {
		preds = append(preds, TypeIn{Types: opts.Types})
	}
	if opts.SearchText != "" {
		preds = append(preds, NameContains{Text: opts.SearchText})
	}
	if opts.Limit > 0 {
		preds = append(preds, Limit{N: opts.Limit})
	}

	return append(preds, parseSort(opts.Sort))
}

// parseSort parses "<field>-<asc|desc>". A missing or malformed direction
// means descending. Fields outside the allow-list fall back to the
// default ordering rather than being forwarded to the backend.
func parseSort(sort string) OrderBy {
	def := OrderBy{Field: FieldCreatedAt, Desc: true}
	if sort == "" {
		return def
	}

	parts := strings.SplitN(sort, "-", 2)
	field := Field(parts[0])
	if !sortable[field] {
		return def
	}

	asc := len(parts) == 2 && parts[1] == "asc"
	return OrderBy{Field: field, Desc: !asc}
}
