package books

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"bookstore-api/internal/api/httpx"
	storebooks "bookstore-api/internal/store/books"
)

type rateRequest struct {
	Star   int    `json:"star"`
	Amount int    `json:"amount"`
	Action string `json:"action"`
}

// Rate serves PATCH /books/isbn/{isbn}/rating. Action defaults to "set" when
// omitted. The response carries the full book with re-derived aggregates.
func Rate(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn, err := isbnParam(r)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		var req rateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Action == "" {
			req.Action = string(storebooks.ActionSet)
		}

		b, err := storebooks.UpdateRating(r.Context(), db, isbn, storebooks.RatingMutation{
			Star:   req.Star,
			Amount: req.Amount,
			Action: storebooks.RatingAction(req.Action),
		})
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.OK(w, b)
	}
}
