package movie

import (
	"context"
	"strings"
)

type Service interface {
	ListRanked(ctx context.Context) ([]Movie, error)
	Search(ctx context.Context, title string) ([]SearchResult, error)
	AddFromLookup(ctx context.Context, externalID int) (Movie, error)
	Rate(ctx context.Context, id int64, rating float64, review string) error
	Remove(ctx context.Context, id int64) error
}

type Repository interface {
	CreateMovie(ctx context.Context, m *Movie) error
	MovieByID(ctx context.Context, id int64) (Movie, error)
	AllMoviesByRating(ctx context.Context) ([]Movie, error)
	UpdateMovie(ctx context.Context, m Movie) error
	DeleteMovie(ctx context.Context, id int64) error
}

// Lookup is the outbound integration with the external movie database.
type Lookup interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Details(ctx context.Context, externalID int) (Details, error)
}

type Usecase struct {
	r Repository
	l Lookup
}

func NewUsecase(r Repository, l Lookup) *Usecase {
	return &Usecase{r: r, l: l}
}

// ListRanked returns all movies ascending by rating with Ranking set to the
// 1-based position, so the lowest-rated entry gets rank 1. The rank is a
// view projection and is not written back to the store.
func (uc *Usecase) ListRanked(ctx context.Context) ([]Movie, error) {
	movies, err := uc.r.AllMoviesByRating(ctx)
	if err != nil {
		return nil, err
	}

	for i := range movies {
		movies[i].Ranking = i + 1
	}
	return movies, nil
}

func (uc *Usecase) Search(ctx context.Context, title string) ([]SearchResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidTitle
	}
	return uc.l.Search(ctx, title)
}

// AddFromLookup fetches full details for a selected search result and stores
// it as a new, not yet rated entry.
func (uc *Usecase) AddFromLookup(ctx context.Context, externalID int) (Movie, error) {
	details, err := uc.l.Details(ctx, externalID)
	if err != nil {
		return Movie{}, err
	}

	m := Movie{
		Title:       details.Title,
		Year:        details.Year,
		Description: details.Description,
		ImgURL:      details.PosterURL,
	}
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	if err := uc.r.CreateMovie(ctx, &m); err != nil {
		return Movie{}, err
	}
	return m, nil
}

// Rate overwrites the rating and review of an existing entry and nothing
// else.
func (uc *Usecase) Rate(ctx context.Context, id int64, rating float64, review string) error {
	if rating < 0 || rating > 10 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(review) == "" {
		return ErrInvalidReview
	}

	m, err := uc.r.MovieByID(ctx, id)
	if err != nil {
		return err
	}

	m.Rating = &rating
	m.Review = &review
	return uc.r.UpdateMovie(ctx, m)
}

func (uc *Usecase) Remove(ctx context.Context, id int64) error {
	return uc.r.DeleteMovie(ctx, id)
}
