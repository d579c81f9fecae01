package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestPaginationParamsOffset(t *testing.T) {
	p := &PaginationParams{Page: 1, PerPage: 15}
	assert.Equal(t, 0, p.Offset())

	p.Page = 4
	assert.Equal(t, 45, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)

	assert.Equal(t, 2, pag.CurrentPage)
	assert.Equal(t, 4, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(4, 10, 35)
	assert.False(t, last.HasNext)

	first := NewPagination(1, 10, 35)
	assert.False(t, first.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", createdAt)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "abc-123", cursor.ID)
	assert.True(t, cursor.CreatedAt.Equal(createdAt))
}

func TestDecodeCursorEmpty(t *testing.T) {
	params := &CursorParams{}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecodeCursorInvalid(t *testing.T) {
	params := &CursorParams{Cursor: "not base64!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}

func TestCursorParamsValidate(t *testing.T) {
	c := &CursorParams{}
	c.Validate()
	assert.Equal(t, 15, c.Limit)
	assert.Equal(t, CursorDirectionNext, c.Direction)

	c = &CursorParams{Limit: 1000, Direction: CursorDirectionPrev}
	c.Validate()
	assert.Equal(t, 100, c.Limit)
	assert.Equal(t, CursorDirectionPrev, c.Direction)
}

type row struct {
	ID        string
	CreatedAt time.Time
}

func rows(n int) []row {
	out := make([]row, n)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = row{ID: string(rune('a' + i)), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func TestNewCursorPaginationTrimsExtraRow(t *testing.T) {
	// Fetching limit+1 rows signals another page
	pag, items := NewCursorPagination(rows(4), 3,
		func(r row) string { return r.ID },
		func(r row) time.Time { return r.CreatedAt },
	)

	assert.Len(t, items, 3)
	assert.True(t, pag.HasNext)
	require.NotNil(t, pag.NextCursor)
	require.NotNil(t, pag.PrevCursor)

	next, err := (&CursorParams{Cursor: *pag.NextCursor}).DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, items[len(items)-1].ID, next.ID)
}

func TestNewCursorPaginationLastPage(t *testing.T) {
	pag, items := NewCursorPagination(rows(2), 3,
		func(r row) string { return r.ID },
		func(r row) time.Time { return r.CreatedAt },
	)

	assert.Len(t, items, 2)
	assert.False(t, pag.HasNext)
}

func TestNewCursorPaginationEmpty(t *testing.T) {
	pag, items := NewCursorPagination(nil, 3,
		func(r row) string { return r.ID },
		func(r row) time.Time { return r.CreatedAt },
	)

	assert.Empty(t, items)
	assert.False(t, pag.HasNext)
	assert.Nil(t, pag.NextCursor)
	assert.Nil(t, pag.PrevCursor)
}
