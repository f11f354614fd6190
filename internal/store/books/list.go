package books

import (
	"context"
	"database/sql"

	"bookstore-api/internal/models"
)

// List returns books matching the given filters, ordered by ascending id.
// An empty filter set is the browse case: every book, no WHERE clause built
// at all.
func List(ctx context.Context, db *sql.DB, filters Filters) ([]models.Book, error) {
	q := "SELECT " + bookColumns + " FROM books"
	var args []any
	if len(filters) > 0 {
		where, whereArgs, err := filters.BuildWhere()
		if err != nil {
			return nil, err
		}
		q += " WHERE " + where
		args = whereArgs
	}
	q += " ORDER BY id"

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}
