package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextArray_Value(t *testing.T) {
	tests := []struct {
		name string
		in   textArray
		want string
	}{
		{name: "empty", in: nil, want: "{}"},
		{name: "single", in: textArray{"a@example.com"}, want: `{"a@example.com"}`},
		{name: "multiple", in: textArray{"a@example.com", "b@example.com"}, want: `{"a@example.com","b@example.com"}`},
		{name: "quotes escaped", in: textArray{`say "hi"`}, want: `{"say \"hi\""}`},
		{name: "backslash escaped", in: textArray{`a\b`}, want: `{"a\\b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.in.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestTextArray_Scan(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "empty", in: "{}", want: []string{}},
		{name: "unquoted elements", in: "{a@example.com,b@example.com}", want: []string{"a@example.com", "b@example.com"}},
		{name: "quoted elements", in: `{"a@example.com","b@example.com"}`, want: []string{"a@example.com", "b@example.com"}},
		{name: "comma inside quotes", in: `{"last, first"}`, want: []string{"last, first"}},
		{name: "escaped quote", in: `{"say \"hi\""}`, want: []string{`say "hi"`}},
		{name: "bytes from driver", in: []byte(`{"a@example.com"}`), want: []string{"a@example.com"}},
		{name: "nil", in: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a textArray
			require.NoError(t, a.Scan(tt.in))
			assert.Equal(t, tt.want, []string(a))
		})
	}
}

func TestTextArray_ScanRejectsMalformed(t *testing.T) {
	var a textArray
	assert.Error(t, a.Scan("not an array"))
	assert.Error(t, a.Scan(42))
}

func TestTextArray_RoundTrip(t *testing.T) {
	in := textArray{`plain`, `with "quotes"`, `back\slash`, `comma, inside`}

	v, err := in.Value()
	require.NoError(t, err)

	var out textArray
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}
