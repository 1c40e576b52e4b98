package movie

import (
	"strings"

	"watchlist/errs"
)

var (
	ErrInvalidTitle  = errs.Errorf(errs.EINVALID, "movie: invalid title")
	ErrInvalidRating = errs.Errorf(errs.EINVALID, "movie: rating must be a number between 0 and 10")
	ErrInvalidReview = errs.Errorf(errs.EINVALID, "movie: review must not be blank")
)

// Movie is the single persisted entity of the collection. Rating and Review
// stay unset until the owner rates the entry. Ranking is derived from the
// rating order on every listing and is never stored.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating,omitempty"`
	Review      *string  `json:"review,omitempty"`
	ImgURL      string   `json:"img_url"`
	Ranking     int      `json:"ranking,omitempty"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// SearchResult is one candidate from an external title search.
type SearchResult struct {
	ExternalID int    `json:"id"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
}

// Details is the full record fetched for a selected search result.
type Details struct {
	Title       string
	Year        int
	Description string
	PosterURL   string
}

// Rated reports whether the entry has been rated yet.
func (m Movie) Rated() bool {
	return m.Rating != nil
}
