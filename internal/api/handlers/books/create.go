package books

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"bookstore-api/internal/api/httpx"
	storebooks "bookstore-api/internal/store/books"
)

type createRequest struct {
	ISBN13        json.Number `json:"isbn13"`
	Authors       string      `json:"authors"`
	Publication   int         `json:"publication"`
	OriginalTitle string      `json:"original_title"`
	Title         string      `json:"title"`
	Ratings       struct {
		Rating1 int `json:"rating_1"`
		Rating2 int `json:"rating_2"`
		Rating3 int `json:"rating_3"`
		Rating4 int `json:"rating_4"`
		Rating5 int `json:"rating_5"`
	} `json:"ratings"`
	Icons struct {
		Large string `json:"large"`
		Small string `json:"small"`
	} `json:"icons"`
}

// Create serves POST /books. Average and count are never accepted from the
// client; they are derived from the stored buckets on the way back out.
func Create(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		// isbn13 may arrive as a number or a string of digits
		isbn, err := strconv.ParseInt(req.ISBN13.String(), 10, 64)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "isbn13 must be exactly 13 digits")
			return
		}

		b, err := storebooks.Create(r.Context(), db, storebooks.CreateBookDTO{
			ISBN13:        isbn,
			Authors:       req.Authors,
			Publication:   req.Publication,
			OriginalTitle: req.OriginalTitle,
			Title:         req.Title,
			Buckets: storebooks.StarBuckets{
				Star1: req.Ratings.Rating1,
				Star2: req.Ratings.Rating2,
				Star3: req.Ratings.Rating3,
				Star4: req.Ratings.Rating4,
				Star5: req.Ratings.Rating5,
			},
			ImageURL:      req.Icons.Large,
			ImageSmallURL: req.Icons.Small,
		})
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		httpx.Created(w, b)
	}
}
