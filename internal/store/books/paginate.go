package books

import (
	"context"
	"database/sql"
	"strconv"

	"bookstore-api/internal/models"
)

// PageConfig makes the pagination defaults explicit instead of burying
// literals in handlers.
type PageConfig struct {
	DefaultLimit int
	MaxLimit     int
}

func DefaultPageConfig() PageConfig {
	return PageConfig{DefaultLimit: 10, MaxLimit: 100}
}

// Limit parses a raw limit value. Anything missing or invalid silently falls
// back to the default; oversized values are capped at MaxLimit.
func (c PageConfig) Limit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return c.DefaultLimit
	}
	if n > c.MaxLimit {
		return c.MaxLimit
	}
	return n
}

// Offset parses a raw offset value; anything invalid means "start at the
// beginning".
func (c PageConfig) Offset(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Cursor parses a raw cursor value with the same fallback policy as Offset.
func (c PageConfig) Cursor(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

type OffsetPage struct {
	Books        []models.Book `json:"books"`
	TotalRecords int           `json:"totalRecords"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
	NextPage     int           `json:"nextPage"`
}

type CursorPage struct {
	Books        []models.Book `json:"books"`
	TotalRecords int           `json:"totalRecords"`
	Limit        int           `json:"limit"`
	Cursor       int64         `json:"cursor"`
}

// ListOffset returns one window ordered by ascending id plus a live total.
// The count runs as its own statement, so it can lag concurrent writes.
func ListOffset(ctx context.Context, db *sql.DB, limit, offset int) (OffsetPage, error) {
	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		return OffsetPage{}, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT "+bookColumns+" FROM books ORDER BY id LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return OffsetPage{}, err
	}
	defer rows.Close()

	bs, err := scanBooks(rows)
	if err != nil {
		return OffsetPage{}, err
	}
	return OffsetPage{
		Books:        bs,
		TotalRecords: total,
		Limit:        limit,
		Offset:       offset,
		NextPage:     limit + offset,
	}, nil
}

// ListCursor returns rows with id strictly greater than cursor, ordered by
// ascending id. The returned cursor is the max id in the window; an empty
// window echoes the input cursor so the client's position is preserved.
func ListCursor(ctx context.Context, db *sql.DB, limit int, cursor int64) (CursorPage, error) {
	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		return CursorPage{}, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE id > $1 ORDER BY id LIMIT $2",
		cursor, limit)
	if err != nil {
		return CursorPage{}, err
	}
	defer rows.Close()

	bs, err := scanBooks(rows)
	if err != nil {
		return CursorPage{}, err
	}
	next := cursor
	if len(bs) > 0 {
		next = bs[len(bs)-1].ID
	}
	return CursorPage{
		Books:        bs,
		TotalRecords: total,
		Limit:        limit,
		Cursor:       next,
	}, nil
}
