package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"bookstore-api/internal/models"
)

// DeleteByISBN removes one book and returns the deleted row to the caller.
func DeleteByISBN(ctx context.Context, db *sql.DB, isbn int64) (models.Book, error) {
	row := db.QueryRowContext(ctx,
		"DELETE FROM books WHERE isbn13 = $1 RETURNING "+bookColumns, isbn)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	return b, err
}

// DeleteByAuthor removes every book whose authors field matches the given
// name (case-insensitive partial match, same classification as the authors
// filter) and returns all deleted rows. Zero matches is not an error.
func DeleteByAuthor(ctx context.Context, db *sql.DB, author string) ([]models.Book, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, fmt.Errorf("%w: author must be a non-empty string", ErrInvalid)
	}

	rows, err := db.QueryContext(ctx,
		"DELETE FROM books WHERE authors ILIKE $1 RETURNING "+bookColumns,
		"%"+norm.NFC.String(author)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}
