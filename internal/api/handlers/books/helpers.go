package books

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"bookstore-api/internal/api/apperr"
	"bookstore-api/internal/api/httpx"
	storebooks "bookstore-api/internal/store/books"
)

// isbnParam pulls the {isbn} path value and requires exactly 13 digits.
func isbnParam(r *http.Request) (int64, error) {
	raw := r.PathValue("isbn")
	if len(raw) != 13 {
		return 0, fmt.Errorf("isbn must be exactly 13 digits")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("isbn must be exactly 13 digits")
	}
	return n, nil
}

// writeStoreError maps store sentinels onto HTTP statuses. Anything else is
// treated as a data-access failure and never leaks driver detail.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storebooks.ErrInvalid):
		httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storebooks.ErrNotFound):
		httpx.ErrorJSON(w, http.StatusNotFound, "book not found")
	default:
		log.Printf("[books] %s %s: %v", r.Method, r.URL.Path, err)
		apperr.HandleDBError(w, r, err, "Failed to query books")
	}
}
