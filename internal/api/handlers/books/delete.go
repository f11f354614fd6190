package books

import (
	"database/sql"
	"net/http"

	"bookstore-api/internal/api/httpx"
	storebooks "bookstore-api/internal/store/books"
)

// Delete serves DELETE /books/isbn/{isbn} and returns the deleted row.
func Delete(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn, err := isbnParam(r)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := storebooks.DeleteByISBN(r.Context(), db, isbn)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.OK(w, b)
	}
}

// DeleteByAuthor serves DELETE /books/author/{author}. Matching zero rows is
// a success with an empty list, mirroring the list endpoints.
func DeleteByAuthor(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author := r.PathValue("author")

		bs, err := storebooks.DeleteByAuthor(r.Context(), db, author)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.OK(w, bs)
	}
}
