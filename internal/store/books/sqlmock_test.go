package books

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var bookCols = []string{
	"id", "isbn13", "authors", "publication_year", "original_title", "title",
	"rating_1_star", "rating_2_star", "rating_3_star", "rating_4_star", "rating_5_star",
	"image_url", "image_small_url",
}

func bookRow(rows *sqlmock.Rows, id, isbn int64, authors, title string, b StarBuckets) *sqlmock.Rows {
	return rows.AddRow(id, isbn, authors, 2000, title, title,
		b.Star1, b.Star2, b.Star3, b.Star4, b.Star5, "large.jpg", "small.jpg")
}
