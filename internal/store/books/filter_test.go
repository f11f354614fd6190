package books

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestParseFiltersRejectsUnknownField(t *testing.T) {
	q := url.Values{"publisher": {"Penguin"}}
	if _, err := ParseFilters(q); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid for unknown field, got %v", err)
	}
}

func TestParseFiltersValueChecks(t *testing.T) {
	bad := []url.Values{
		{"isbn13": {"123"}},               // too short
		{"isbn13": {"notanumber1234"}},    // not numeric
		{"publication_year": {"0"}},       // not > 0
		{"publication_year": {"-44"}},     // not > 0
		{"publication_year": {"year"}},    // not numeric
		{"title": {""}},                   // empty string
		{"authors": {"   "}},              // whitespace only
		{"rating": {"6"}},                 // out of range
		{"rating": {"four"}},              // not numeric
	}
	for _, q := range bad {
		if _, err := ParseFilters(q); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseFilters(%v) = nil error, want ErrInvalid", q)
		}
	}

	good := url.Values{
		"isbn13":           {"9780547928227"},
		"publication_year": {"1937"},
		"title":            {"Hobbit"},
		"rating":           {"4.5"},
	}
	fs, err := ParseFilters(good)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(fs) != 4 {
		t.Fatalf("want 4 filters, got %d", len(fs))
	}
}

func TestBuildWherePartialTextMatch(t *testing.T) {
	// Filter {title: "Hobbit"} must become a case-insensitive partial match
	// with the wildcards on the bound value, not in the clause text.
	fs := Filters{{Field: "title", Value: "Hobbit"}}
	where, args, err := fs.BuildWhere()
	if err != nil {
		t.Fatal(err)
	}
	if where != "title ILIKE $1" {
		t.Fatalf("clause = %q", where)
	}
	if len(args) != 1 || args[0] != "%Hobbit%" {
		t.Fatalf("args = %v, want [%%Hobbit%%]", args)
	}
}

func TestBuildWhereDeterministic(t *testing.T) {
	fs := Filters{
		{Field: "authors", Value: "Tolkien"},
		{Field: "publication_year", Value: "1937"},
		{Field: "rating", Value: "4"},
	}
	first, firstArgs, err := fs.BuildWhere()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, againArgs, err := fs.BuildWhere()
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("clause changed between invocations:\n%q\n%q", first, again)
		}
		if len(againArgs) != len(firstArgs) {
			t.Fatalf("arg count changed: %v vs %v", firstArgs, againArgs)
		}
		for j := range againArgs {
			if againArgs[j] != firstArgs[j] {
				t.Fatalf("arg %d changed: %v vs %v", j, firstArgs[j], againArgs[j])
			}
		}
	}
}

func TestBuildWhereClauseOrderAndPlaceholders(t *testing.T) {
	fs := Filters{
		{Field: "authors", Value: "Tolkien"},
		{Field: "publication_year", Value: "1937"},
		{Field: "rating", Value: "4"},
	}
	where, args, err := fs.BuildWhere()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(where, "authors ILIKE $1 AND publication_year = $2 AND ") {
		t.Fatalf("unexpected clause prefix: %q", where)
	}
	if !strings.HasSuffix(where, " >= $3") {
		t.Fatalf("rating clause must bind $3: %q", where)
	}
	if !strings.Contains(where, "rating_5_star * 5") {
		t.Fatalf("rating clause must use the derived bucket expression: %q", where)
	}
	if args[0] != "%Tolkien%" || args[1] != int64(1937) || args[2] != 4.0 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildWhereRatingComparesDerivedExpression(t *testing.T) {
	fs := Filters{{Field: "rating", Value: "3.5"}}
	where, args, err := fs.BuildWhere()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(where, "THEN NULL") {
		t.Fatalf("zero-bucket books must compare as NULL: %q", where)
	}
	if args[0] != 3.5 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildWhereEmptyIsInvalid(t *testing.T) {
	if _, _, err := (Filters{}).BuildWhere(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid for empty filter set, got %v", err)
	}
}

func TestBuildWhereNeverInterpolatesValues(t *testing.T) {
	hostile := `'; DROP TABLE books; --`
	fs := Filters{{Field: "title", Value: hostile}}
	where, args, err := fs.BuildWhere()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(where, "DROP TABLE") {
		t.Fatalf("user input leaked into query text: %q", where)
	}
	if args[0] != "%"+hostile+"%" {
		t.Fatalf("value must travel via args: %v", args)
	}
}

func TestParseFiltersCanonicalOrder(t *testing.T) {
	// Same request, any param ordering: filters come back in whitelist order.
	q := url.Values{
		"rating": {"4"},
		"title":  {"Hobbit"},
		"isbn13": {"9780547928227"},
	}
	fs, err := ParseFilters(q)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"isbn13", "title", "rating"}
	if len(fs) != len(want) {
		t.Fatalf("got %d filters", len(fs))
	}
	for i, f := range fs {
		if f.Field != want[i] {
			t.Fatalf("filter %d = %s, want %s", i, f.Field, want[i])
		}
	}
}
