package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
)

// Every book route requires a bearer token; an anonymous request must be
// turned away before the handler can touch the database.
func TestBookRoutesRejectAnonymousRequests(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	h := Router(db, rdb)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/books"},
		{http.MethodGet, "/books/offset"},
		{http.MethodGet, "/books/cursor"},
		{http.MethodGet, "/books/isbn/9780547928227"},
		{http.MethodGet, "/books/isbn/9780547928227/cover"},
		{http.MethodPost, "/books"},
		{http.MethodPatch, "/books/isbn/9780547928227/rating"},
		{http.MethodDelete, "/books/isbn/9780547928227"},
		{http.MethodDelete, "/books/author/Tolkien"},
		{http.MethodPost, "/books/isbn/9780547928227/cover"},
	}
	for _, rt := range routes {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", rt.method, rt.path, rec.Code)
		}
	}

	// no handler may have reached the database
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
