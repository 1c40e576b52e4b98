package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"watchlist/errs"
	"watchlist/movie"
)

const uniqueViolation = "23505"

// MovieModel represents the database model for collection entries. Ranking
// is a read-time projection and has no column.
type MovieModel struct {
	ID          int64    `gorm:"primaryKey"`
	Title       string   `gorm:"not null;uniqueIndex"`
	Year        int      `gorm:"not null"`
	Description string   `gorm:"not null"`
	Rating      *float64 `gorm:"type:double precision"`
	Review      *string
	ImgURL      string `gorm:"column:img_url;not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository on top of PostgreSQL.
// Every mutation commits immediately.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// CreateMovie inserts a new entry and assigns its ID. A duplicate title is
// reported as a conflict.
func (r *MovieRepository) CreateMovie(ctx context.Context, m *movie.Movie) error {
	model := toModel(*m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.Errorf(errs.ECONFLICT, "movie %q is already in the collection", m.Title)
		}
		return err
	}
	m.ID = model.ID
	return nil
}

func (r *MovieRepository) MovieByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return movie.Movie{}, errs.Errorf(errs.ENOTFOUND, "movie %d not found", id)
	}
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomain(model), nil
}

// AllMoviesByRating returns every entry ascending by rating. Unrated entries
// sort first, matching how they should rank below any rated entry.
func (r *MovieRepository) AllMoviesByRating(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	err := r.db.WithContext(ctx).Order("rating ASC NULLS FIRST").Find(&models).Error
	if err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomain(model)
	}
	return movies, nil
}

func (r *MovieRepository) UpdateMovie(ctx context.Context, m movie.Movie) error {
	model := toModel(m)
	result := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", m.ID).
		Select("Title", "Year", "Description", "Rating", "Review", "ImgURL").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "movie %d not found", m.ID)
	}
	return nil
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "movie %d not found", id)
	}
	return nil
}

func toModel(m movie.Movie) MovieModel {
	return MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		Rating:      m.Rating,
		Review:      m.Review,
		ImgURL:      m.ImgURL,
	}
}

func toDomain(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		Year:        model.Year,
		Description: model.Description,
		Rating:      model.Rating,
		Review:      model.Review,
		ImgURL:      model.ImgURL,
	}
}
