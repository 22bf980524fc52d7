package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)

	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestCursor_RoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	params := &CursorParams{Cursor: EncodeCursor("abc", at)}

	c, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)
	assert.True(t, at.Equal(c.At))

	_, err = (&CursorParams{Cursor: "%%%"}).DecodeCursor()
	assert.Error(t, err)
}

func TestNewCursorPaginatedResult_TrimsExtraRow(t *testing.T) {
	at := time.Now()
	position := func(s string) (string, time.Time) { return s, at }

	res := NewCursorPaginatedResult([]string{"a", "b", "c"}, 2, position)
	assert.Equal(t, []string{"a", "b"}, res.Items)
	require.NotNil(t, res.Pagination.NextCursor)
	assert.True(t, res.Pagination.HasNext)

	last := NewCursorPaginatedResult([]string{"a"}, 2, position)
	assert.Nil(t, last.Pagination.NextCursor)
	assert.False(t, last.Pagination.HasNext)
}
