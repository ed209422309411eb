package query

import (
	"testing"

	"storeapi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AuthorizationPredicateAlwaysFirst(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty options", Options{}},
		{"with types", Options{Types: []model.FileType{model.FileTypeImage}}},
		{"with search", Options{SearchText: "report"}},
		{"with everything", Options{
			Types:      []model.FileType{model.FileTypeVideo, model.FileTypeAudio},
			SearchText: "q",
			Sort:       "size-asc",
			Limit:      25,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := Build("acc-1", "me@example.com", tt.opts)
			require.NotEmpty(t, preds)

			auth, ok := preds[0].(OwnerOrShared)
			require.True(t, ok, "first predicate must be the authorization boundary")
			assert.Equal(t, "acc-1", auth.OwnerID)
			assert.Equal(t, "me@example.com", auth.Email)
		})
	}
}

func TestBuild_OptionalPredicates(t *testing.T) {
	t.Run("type filter present iff types non-empty", func(t *testing.T) {
		preds := Build("a", "e", Options{})
		for _, p := range preds {
			_, ok := p.(TypeIn)
			assert.False(t, ok)
		}

		preds = Build("a", "e", Options{Types: []model.FileType{model.FileTypeImage, model.FileTypeDocument}})
		found := false
		for _, p := range preds {
			if tp, ok := p.(TypeIn); ok {
				found = true
				assert.Equal(t, []model.FileType{model.FileTypeImage, model.FileTypeDocument}, tp.Types)
			}
		}
		assert.True(t, found)
	})

	t.Run("search and limit", func(t *testing.T) {
		preds := Build("a", "e", Options{SearchText: "tax", Limit: 9})
		require.Len(t, preds, 4) // auth, search, limit, order
		assert.Equal(t, NameContains{Text: "tax"}, preds[1])
		assert.Equal(t, Limit{N: 9}, preds[2])
	})
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want OrderBy
	}{
		{"empty defaults to createdAt desc", "", OrderBy{Field: FieldCreatedAt, Desc: true}},
		{"name ascending", "name-asc", OrderBy{Field: FieldName, Desc: false}},
		{"size descending", "size-desc", OrderBy{Field: FieldSize, Desc: true}},
		{"updatedAt ascending", "$updatedAt-asc", OrderBy{Field: FieldUpdatedAt, Desc: false}},
		{"missing direction is descending", "name", OrderBy{Field: FieldName, Desc: true}},
		{"bogus direction is descending", "name-sideways", OrderBy{Field: FieldName, Desc: true}},
		{"unknown field falls back to default", "owner-asc", OrderBy{Field: FieldCreatedAt, Desc: true}},
		{"injection attempt falls back to default", "name;DROP TABLE files-asc", OrderBy{Field: FieldCreatedAt, Desc: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := Build("a", "e", Options{Sort: tt.sort})
			last := preds[len(preds)-1]
			assert.Equal(t, tt.want, last)
		})
	}
}
