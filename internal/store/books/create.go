package books

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bookstore-api/internal/models"
)

type CreateBookDTO struct {
	ISBN13        int64
	Authors       string
	Publication   int
	OriginalTitle string
	Title         string
	Buckets       StarBuckets
	ImageURL      string
	ImageSmallURL string
}

func (dto CreateBookDTO) validate() error {
	if len(fmt.Sprintf("%d", dto.ISBN13)) != 13 {
		return fmt.Errorf("%w: isbn13 must be exactly 13 digits", ErrInvalid)
	}
	if strings.TrimSpace(dto.Title) == "" {
		return fmt.Errorf("%w: title must be a non-empty string", ErrInvalid)
	}
	if strings.TrimSpace(dto.Authors) == "" {
		return fmt.Errorf("%w: authors must be a non-empty string", ErrInvalid)
	}
	for _, n := range []int{dto.Buckets.Star1, dto.Buckets.Star2, dto.Buckets.Star3, dto.Buckets.Star4, dto.Buckets.Star5} {
		if n < 0 {
			return fmt.Errorf("%w: rating buckets must be non-negative", ErrInvalid)
		}
	}
	return nil
}

// Create inserts a book and returns the persisted row. Buckets the caller
// did not supply arrive zero-valued, which is the documented default.
func Create(ctx context.Context, db *sql.DB, dto CreateBookDTO) (models.Book, error) {
	if err := dto.validate(); err != nil {
		return models.Book{}, err
	}

	const q = `INSERT INTO books (isbn13, authors, publication_year, original_title, title, rating_1_star, rating_2_star, rating_3_star, rating_4_star, rating_5_star, image_url, image_small_url) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING ` + bookColumns

	row := db.QueryRowContext(ctx, q,
		dto.ISBN13, dto.Authors, dto.Publication, dto.OriginalTitle, dto.Title,
		dto.Buckets.Star1, dto.Buckets.Star2, dto.Buckets.Star3, dto.Buckets.Star4, dto.Buckets.Star5,
		dto.ImageURL, dto.ImageSmallURL,
	)
	return scanBook(row)
}
