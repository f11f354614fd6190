package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookstore-api/internal/models"
)

type RatingAction string

const (
	ActionSet       RatingAction = "set"
	ActionIncrement RatingAction = "increment"
	ActionDecrement RatingAction = "decrement"
)

type RatingMutation struct {
	Star   int
	Amount int
	Action RatingAction
}

func (m RatingMutation) validate() error {
	if m.Star < 1 || m.Star > 5 {
		return fmt.Errorf("%w: star must be between 1 and 5", ErrInvalid)
	}
	if m.Amount < 0 {
		return fmt.Errorf("%w: amount must be a non-negative integer", ErrInvalid)
	}
	switch m.Action {
	case ActionSet, ActionIncrement, ActionDecrement:
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalid, m.Action)
	}
}

// UpdateRating applies one bucket mutation in a single statement and returns
// the book with freshly derived average and count, so the mutation and the
// recomputation are observed together. Decrement clamps at zero.
func UpdateRating(ctx context.Context, db *sql.DB, isbn int64, m RatingMutation) (models.Book, error) {
	if err := m.validate(); err != nil {
		return models.Book{}, err
	}

	// Star is a validated integer in 1..5, never user-controlled text.
	col := fmt.Sprintf("rating_%d_star", m.Star)

	var set string
	switch m.Action {
	case ActionIncrement:
		set = col + " = " + col + " + $1"
	case ActionDecrement:
		set = col + " = GREATEST(" + col + " - $1, 0)"
	default:
		set = col + " = $1"
	}

	row := db.QueryRowContext(ctx,
		"UPDATE books SET "+set+" WHERE isbn13 = $2 RETURNING "+bookColumns,
		m.Amount, isbn)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	return b, err
}
