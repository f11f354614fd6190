package books

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

const insertBookSQL = "INSERT INTO books (isbn13, authors, publication_year, original_title, title, rating_1_star, rating_2_star, rating_3_star, rating_4_star, rating_5_star, image_url, image_small_url) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING " + bookColumns

func TestCreateRoundTripsDerivedAggregates(t *testing.T) {
	db, mock := newMock(t)

	buckets := StarBuckets{Star1: 1, Star2: 2, Star3: 3, Star4: 4, Star5: 5}
	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 1, 9780547928227, "J.R.R. Tolkien", "The Hobbit", buckets)

	mock.ExpectQuery(regexp.QuoteMeta(insertBookSQL)).
		WithArgs(int64(9780547928227), "J.R.R. Tolkien", 1937, "The Hobbit", "The Hobbit",
			1, 2, 3, 4, 5, "large.jpg", "small.jpg").
		WillReturnRows(rows)

	b, err := Create(context.Background(), db, CreateBookDTO{
		ISBN13:        9780547928227,
		Authors:       "J.R.R. Tolkien",
		Publication:   1937,
		OriginalTitle: "The Hobbit",
		Title:         "The Hobbit",
		Buckets:       buckets,
		ImageURL:      "large.jpg",
		ImageSmallURL: "small.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Reading back must agree with Total/Average over the same buckets.
	if b.Ratings.Count != buckets.Total() {
		t.Fatalf("count = %d, want %d", b.Ratings.Count, buckets.Total())
	}
	if b.Ratings.Average == nil || *b.Ratings.Average != round1(*buckets.Average()) {
		t.Fatalf("average = %v, want %v", b.Ratings.Average, round1(*buckets.Average()))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateRejectsBadInputBeforeWrite(t *testing.T) {
	db, mock := newMock(t)

	bad := []CreateBookDTO{
		{ISBN13: 123, Authors: "A", Title: "T"},                                        // short isbn
		{ISBN13: 9780547928227, Authors: "", Title: "T"},                               // empty authors
		{ISBN13: 9780547928227, Authors: "A", Title: "  "},                             // blank title
		{ISBN13: 9780547928227, Authors: "A", Title: "T", Buckets: StarBuckets{Star2: -1}}, // negative bucket
	}
	for _, dto := range bad {
		if _, err := Create(context.Background(), db, dto); !errors.Is(err, ErrInvalid) {
			t.Errorf("Create(%+v) = %v, want ErrInvalid", dto, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
