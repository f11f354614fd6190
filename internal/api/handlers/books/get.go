package books

import (
	"database/sql"
	"net/http"

	"bookstore-api/internal/api/httpx"
	storebooks "bookstore-api/internal/store/books"
)

// Get serves GET /books/isbn/{isbn}.
func Get(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn, err := isbnParam(r)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := storebooks.GetByISBN(r.Context(), db, isbn)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.OK(w, b)
	}
}
