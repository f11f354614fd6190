package books

import (
	"database/sql"
	"net/http"

	"bookstore-api/internal/api/httpx"
	storebooks "bookstore-api/internal/store/books"
)

// ListOffset serves GET /books/offset with ?limit= and ?offset=.
func ListOffset(db *sql.DB, cfg storebooks.PageConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit := cfg.Limit(q.Get("limit"))
		offset := cfg.Offset(q.Get("offset"))

		page, err := storebooks.ListOffset(r.Context(), db, limit, offset)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.OK(w, page)
	}
}

// ListCursor serves GET /books/cursor with ?limit= and ?cursor=.
func ListCursor(db *sql.DB, cfg storebooks.PageConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit := cfg.Limit(q.Get("limit"))
		cursor := cfg.Cursor(q.Get("cursor"))

		page, err := storebooks.ListCursor(r.Context(), db, limit, cursor)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.OK(w, page)
	}
}
