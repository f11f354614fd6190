package books

import (
	"database/sql"
	"net/http"

	"bookstore-api/internal/api/httpx"
	storebooks "bookstore-api/internal/store/books"
)

// List serves GET /books. With no query parameters it browses the whole
// collection; otherwise every parameter must be a known filter field.
func List(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := storebooks.ParseFilters(r.URL.Query())
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		bs, err := storebooks.List(r.Context(), db, filters)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.OK(w, bs)
	}
}
