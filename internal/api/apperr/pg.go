package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgconn"
)

// Constraint names we know about, mapped to the offending field.
var constraintField = map[string]string{
	"books_isbn13_check":        "isbn13",
	"books_rating_1_star_check": "rating_1",
	"books_rating_2_star_check": "rating_2",
	"books_rating_3_star_check": "rating_3",
	"books_rating_4_star_check": "rating_4",
	"books_rating_5_star_check": "rating_5",
	"users_email_key":           "email",
	"users_username_key":        "username",
}

func fieldFromDetail(detail string) string {
	for _, k := range []string{"isbn13", "title", "authors", "publication_year", "email", "username", "id"} {
		if strings.Contains(detail, k) {
			return k
		}
	}
	return ""
}

// FromPG maps a pgconn.PgError to a Problem. Returns (Problem, true) when the
// error is a Postgres error. Driver detail never leaks for the default case.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{Title: "Database error", Status: http.StatusInternalServerError}

	field := constraintField[pg.ConstraintName]
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}
	if field == "" {
		field = "field"
	}

	switch pg.Code {
	case "23505": // unique_violation
		p.Status = http.StatusConflict
		p.Title = "Conflict"
		p.FieldErrors = []FieldError{{Field: field, Code: "unique", Message: "value already exists"}}
	case "23502": // not_null_violation
		p.Status = http.StatusBadRequest
		p.Title = "Bad Request"
		if pg.ColumnName != "" {
			field = pg.ColumnName
		}
		p.FieldErrors = []FieldError{{Field: field, Code: "not_null", Message: "required field is missing"}}
	case "23514": // check_violation
		p.Status = http.StatusUnprocessableEntity
		p.Title = "Unprocessable Entity"
		p.FieldErrors = []FieldError{{Field: field, Code: "check", Message: "constraint failed"}}
	case "22P02": // invalid_text_representation
		p.Status = http.StatusBadRequest
		p.Title = "Bad Request"
		p.FieldErrors = []FieldError{{Field: field, Code: "invalid", Message: "invalid format"}}
	case "22001": // string_data_right_truncation
		p.Status = http.StatusBadRequest
		p.Title = "Bad Request"
		p.FieldErrors = []FieldError{{Field: field, Code: "too_long", Message: "value is too long"}}
	case "40001", "40P01": // serialization_failure, deadlock_detected
		p.Status = http.StatusConflict
		p.Title = "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	}
	return p, true
}

// HandleDBError maps err to a Problem and writes it. Always handles non-nil
// errors; unknown causes become a generic 500 with no internal detail.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
