package books

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-api/internal/models"
)

// GetByISBN returns the single book with the given ISBN-13.
func GetByISBN(ctx context.Context, db *sql.DB, isbn int64) (models.Book, error) {
	row := db.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE isbn13 = $1", isbn)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	return b, err
}
