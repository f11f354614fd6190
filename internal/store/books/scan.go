package books

import (
	"database/sql"

	"bookstore-api/internal/models"
)

// bookColumns is the canonical select list. scanBook must stay in sync.
const bookColumns = "id, isbn13, authors, publication_year, original_title, title, rating_1_star, rating_2_star, rating_3_star, rating_4_star, rating_5_star, image_url, image_small_url"

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBook maps one persisted row onto the public shape. Average and count
// are always recomputed from the buckets; stored aggregates are never read.
func scanBook(rs rowScanner) (models.Book, error) {
	var (
		b        models.Book
		buckets  StarBuckets
		imgLarge sql.NullString
		imgSmall sql.NullString
	)
	if err := rs.Scan(
		&b.ID, &b.ISBN13, &b.Authors, &b.Publication, &b.OriginalTitle, &b.Title,
		&buckets.Star1, &buckets.Star2, &buckets.Star3, &buckets.Star4, &buckets.Star5,
		&imgLarge, &imgSmall,
	); err != nil {
		return models.Book{}, err
	}
	b.Ratings = deriveRatings(buckets)
	b.Icons = models.Icons{Large: imgLarge.String, Small: imgSmall.String}
	return b, nil
}

func deriveRatings(buckets StarBuckets) models.Ratings {
	r := models.Ratings{
		Count:   buckets.Total(),
		Rating1: buckets.Star1,
		Rating2: buckets.Star2,
		Rating3: buckets.Star3,
		Rating4: buckets.Star4,
		Rating5: buckets.Star5,
	}
	if avg := buckets.Average(); avg != nil {
		rounded := round1(*avg)
		r.Average = &rounded
	}
	return r
}

func scanBooks(rows *sql.Rows) ([]models.Book, error) {
	out := []models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
