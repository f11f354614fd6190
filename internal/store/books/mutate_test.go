package books

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateRatingIncrement(t *testing.T) {
	db, mock := newMock(t)

	// rating_3 starts at 10; increment by 5 lands at 15 with fresh aggregates.
	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, 9780547928227, "J.R.R. Tolkien", "The Hobbit", StarBuckets{Star3: 15})

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE books SET rating_3_star = rating_3_star + $1 WHERE isbn13 = $2 RETURNING "+bookColumns,
	)).WithArgs(5, int64(9780547928227)).WillReturnRows(rows)

	b, err := UpdateRating(context.Background(), db, 9780547928227,
		RatingMutation{Star: 3, Amount: 5, Action: ActionIncrement})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.Ratings.Rating3 != 15 {
		t.Fatalf("rating_3 = %d, want 15", b.Ratings.Rating3)
	}
	if b.Ratings.Count != 15 || b.Ratings.Average == nil || *b.Ratings.Average != 3.0 {
		t.Fatalf("aggregates not recomputed: %+v", b.Ratings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateRatingSet(t *testing.T) {
	db, mock := newMock(t)

	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, 9780547928227, "J.R.R. Tolkien", "The Hobbit", StarBuckets{Star5: 4})

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE books SET rating_5_star = $1 WHERE isbn13 = $2 RETURNING "+bookColumns,
	)).WithArgs(4, int64(9780547928227)).WillReturnRows(rows)

	b, err := UpdateRating(context.Background(), db, 9780547928227,
		RatingMutation{Star: 5, Amount: 4, Action: ActionSet})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.Ratings.Rating5 != 4 {
		t.Fatalf("rating_5 = %d, want 4", b.Ratings.Rating5)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateRatingDecrementClampsAtZero(t *testing.T) {
	db, mock := newMock(t)

	// Storage clamps via GREATEST; the returned bucket never goes negative.
	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, 9780547928227, "J.R.R. Tolkien", "The Hobbit", StarBuckets{})

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE books SET rating_1_star = GREATEST(rating_1_star - $1, 0) WHERE isbn13 = $2 RETURNING "+bookColumns,
	)).WithArgs(100, int64(9780547928227)).WillReturnRows(rows)

	b, err := UpdateRating(context.Background(), db, 9780547928227,
		RatingMutation{Star: 1, Amount: 100, Action: ActionDecrement})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.Ratings.Rating1 != 0 {
		t.Fatalf("rating_1 = %d, want 0", b.Ratings.Rating1)
	}
	if b.Ratings.Average != nil {
		t.Fatalf("empty buckets must yield null average: %+v", b.Ratings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateRatingUnknownISBN(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE books SET rating_2_star = $1 WHERE isbn13 = $2 RETURNING "+bookColumns,
	)).WithArgs(1, int64(9999999999999)).WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := UpdateRating(context.Background(), db, 9999999999999,
		RatingMutation{Star: 2, Amount: 1, Action: ActionSet})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateRatingRejectsBadInputBeforeWrite(t *testing.T) {
	db, mock := newMock(t)

	bad := []RatingMutation{
		{Star: 0, Amount: 1, Action: ActionSet},
		{Star: 6, Amount: 1, Action: ActionSet},
		{Star: 3, Amount: -1, Action: ActionSet},
		{Star: 3, Amount: 1, Action: "boost"},
	}
	for _, m := range bad {
		if _, err := UpdateRating(context.Background(), db, 9780547928227, m); !errors.Is(err, ErrInvalid) {
			t.Errorf("UpdateRating(%+v) = %v, want ErrInvalid", m, err)
		}
	}
	// No statement may have reached the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
