package books

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// avgRatingExpr computes the weighted mean of the five star buckets inline.
// NULL when a book has no ratings, matching StarBuckets.Average returning nil.
const avgRatingExpr = `CASE WHEN (rating_1_star + rating_2_star + rating_3_star + rating_4_star + rating_5_star) = 0 THEN NULL ELSE (rating_1_star * 1 + rating_2_star * 2 + rating_3_star * 3 + rating_4_star * 4 + rating_5_star * 5)::numeric / (rating_1_star + rating_2_star + rating_3_star + rating_4_star + rating_5_star)::numeric END`

type filterKind int

const (
	kindExact filterKind = iota
	kindPartialText
	kindMinRating
)

type fieldSpec struct {
	column string
	kind   filterKind
	check  func(string) error
}

// filterFields is the whitelist. Any field outside it is rejected before any
// query text exists.
var filterFields = map[string]fieldSpec{
	"isbn13":           {column: "isbn13", kind: kindExact, check: checkISBN13},
	"authors":          {column: "authors", kind: kindPartialText, check: checkNonEmpty},
	"publication_year": {column: "publication_year", kind: kindExact, check: checkYear},
	"original_title":   {column: "original_title", kind: kindPartialText, check: checkNonEmpty},
	"title":            {column: "title", kind: kindPartialText, check: checkNonEmpty},
	"rating":           {kind: kindMinRating, check: checkRating},
}

// filterOrder fixes the clause and placeholder order, so identical requests
// always build identical query text and argument lists.
var filterOrder = []string{"isbn13", "authors", "publication_year", "original_title", "title", "rating"}

type Filter struct {
	Field string
	Value string
}

// Filters preserves insertion order; BuildWhere assigns $n placeholders by
// position.
type Filters []Filter

// ParseFilters validates query parameters against the whitelist and returns
// them in canonical order. Unknown fields and bad values fail fast; nothing
// downstream ever sees rejected input.
func ParseFilters(q url.Values) (Filters, error) {
	for field := range q {
		if _, ok := filterFields[field]; !ok {
			return nil, fmt.Errorf("%w: unknown filter field %q", ErrInvalid, field)
		}
	}

	var fs Filters
	for _, field := range filterOrder {
		if !q.Has(field) {
			continue
		}
		value := strings.TrimSpace(q.Get(field))
		spec := filterFields[field]
		if err := spec.check(value); err != nil {
			return nil, fmt.Errorf("%w: %s %s", ErrInvalid, field, err)
		}
		if spec.kind == kindPartialText {
			// Composed and decomposed Unicode should match the same rows.
			value = norm.NFC.String(value)
		}
		fs = append(fs, Filter{Field: field, Value: value})
	}
	return fs, nil
}

// BuildWhere renders the filters as "a AND b AND c" with positional bind
// parameters and the matching argument list. User input only ever travels
// through the args slice; the wildcard markers for partial-text matches wrap
// the bound value, never the clause text.
func (fs Filters) BuildWhere() (string, []any, error) {
	if len(fs) == 0 {
		return "", nil, fmt.Errorf("%w: empty filter set", ErrInvalid)
	}

	clauses := make([]string, 0, len(fs))
	args := make([]any, 0, len(fs))
	for i, f := range fs {
		spec, ok := filterFields[f.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown filter field %q", ErrInvalid, f.Field)
		}
		ph := "$" + strconv.Itoa(i+1)
		switch spec.kind {
		case kindPartialText:
			clauses = append(clauses, spec.column+" ILIKE "+ph)
			args = append(args, "%"+f.Value+"%")
		case kindMinRating:
			// Compare against the unrounded derived value; rounding is a
			// presentation concern only.
			min, err := strconv.ParseFloat(f.Value, 64)
			if err != nil {
				return "", nil, fmt.Errorf("%w: rating must be a number", ErrInvalid)
			}
			clauses = append(clauses, avgRatingExpr+" >= "+ph)
			args = append(args, min)
		default:
			n, err := strconv.ParseInt(f.Value, 10, 64)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %s must be a number", ErrInvalid, f.Field)
			}
			clauses = append(clauses, spec.column+" = "+ph)
			args = append(args, n)
		}
	}
	return strings.Join(clauses, " AND "), args, nil
}

func checkNonEmpty(v string) error {
	if v == "" {
		return errors.New("must be a non-empty string")
	}
	return nil
}

func checkISBN13(v string) error {
	if _, err := strconv.ParseInt(v, 10, 64); err != nil {
		return errors.New("must be a number")
	}
	if len(v) != 13 {
		return errors.New("must be exactly 13 digits")
	}
	return nil
}

func checkYear(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.New("must be a number")
	}
	if n <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

func checkRating(v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.New("must be a number")
	}
	if f <= 0 || f > 5 {
		return errors.New("must be between 0 and 5")
	}
	return nil
}
