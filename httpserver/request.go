package httpserver

import (
	"strconv"
	"strings"
)

// AddMovieRequest carries the title the user wants to search for.
type AddMovieRequest struct {
	Title string `form:"title" json:"title" validate:"required,notblank,max=250"`
}

// RateMovieRequest carries the rate-form fields. Both are required and the
// rating must parse to a decimal between 0 and 10.
type RateMovieRequest struct {
	Rating string `form:"rating" json:"rating" validate:"required,notblank,rating"`
	Review string `form:"review" json:"review" validate:"required,notblank,max=250"`
}

func (r RateMovieRequest) RatingValue() float64 {
	value, _ := strconv.ParseFloat(strings.TrimSpace(r.Rating), 64)
	return value
}
