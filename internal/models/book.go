package models

// Ratings is the derived view over the five stored star buckets. Average is
// nil (JSON null) for books with no ratings yet.
type Ratings struct {
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
	Rating1 int      `json:"rating_1"`
	Rating2 int      `json:"rating_2"`
	Rating3 int      `json:"rating_3"`
	Rating4 int      `json:"rating_4"`
	Rating5 int      `json:"rating_5"`
}

// Icons holds the two cover image URLs. Opaque strings; not validated.
type Icons struct {
	Large string `json:"large"`
	Small string `json:"small"`
}

type Book struct {
	ID            int64   `json:"id"`
	ISBN13        int64   `json:"isbn13"`
	Authors       string  `json:"authors"`
	Publication   int     `json:"publication"`
	OriginalTitle string  `json:"original_title"`
	Title         string  `json:"title"`
	Ratings       Ratings `json:"ratings"`
	Icons         Icons   `json:"icons"`
}
