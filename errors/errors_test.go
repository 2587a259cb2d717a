package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		e    Error
	}{
		{
			name: "message only",
			e:    Error{Code: "xml-no-root", Message: "no root element"},
			want: "[xml-no-root] no root element",
		},
		{
			name: "with path",
			e:    Error{Code: "manifest-invalid", Message: "missing name", Path: "factories[1]"},
			want: "[manifest-invalid] missing name at factories[1]",
		},
		{
			name: "with line and column",
			e:    Error{Code: "xml-parse-error", Message: "unexpected EOF", Line: 3, Column: 7},
			want: "[xml-parse-error] unexpected EOF at line 3, column 7",
		},
		{
			name: "with path and line",
			e:    Error{Code: "manifest-invalid", Message: "bad", Path: "container", Line: 2},
			want: "[manifest-invalid] bad at container (line 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.Error())
		})
	}
}

func TestListError(t *testing.T) {
	assert.Equal(t, "no errors", List(nil).Error())

	one := List{New(ErrNoRoot, "empty", "")}
	assert.Equal(t, "[xml-no-root] empty", one.Error())

	two := List{New(ErrNoRoot, "empty", ""), Newf(ErrXMLParse, "", "bad %s", "token")}
	assert.Equal(t, "[xml-no-root] empty (and 1 more)", two.Error())
}

func TestAsUnwrapsList(t *testing.T) {
	base := List{New(ErrXMLParse, "bad token", "").At(1, 2)}
	wrapped := fmt.Errorf("parse doc: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 2, got[0].Column)
	assert.True(t, HasCode(wrapped, ErrXMLParse))
	assert.False(t, HasCode(wrapped, ErrNoRoot))

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
	_, ok = As(nil)
	assert.False(t, ok)
}
