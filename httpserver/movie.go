package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"watchlist/errs"
)

// RegisterMovieRoutes wires the add/search/select/detail/edit/delete
// workflow. The step of the add flow a user is in lives entirely in URL
// parameters; handlers hold no state between requests.
func (s *Server) RegisterMovieRoutes() {
	s.Router.GET("/", s.handleListMovies)
	s.Router.GET("/add", s.handleAddForm)
	s.Router.POST("/add", s.handleSearchTitle)
	s.Router.GET("/details", s.handleSelectMovie)
	s.Router.GET("/edit", s.handleRateForm)
	s.Router.POST("/edit", s.handleRateMovie)
	s.Router.GET("/delete", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List the collection
// @Description All movies ascending by rating, ranked per listing
// @Tags movies
// @Produce json
// @Success 200 {array} movie.Movie
// @Router / [get]
func (s *Server) handleListMovies(c echo.Context) error {
	movies, err := s.MovieService.ListRanked(c.Request().Context())
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, movies)
}

func (s *Server) handleAddForm(c echo.Context) error {
	return writeSuccess(c, http.StatusOK, AddMovieRequest{})
}

// handleSearchTitle godoc
// @Summary Search the movie database
// @Description Search candidates for the submitted title
// @Tags movies
// @Accept x-www-form-urlencoded
// @Produce json
// @Param title formData string true "Movie title"
// @Success 200 {array} movie.SearchResult
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /add [post]
func (s *Server) handleSearchTitle(c echo.Context) error {
	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "malformed request")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	results, err := s.MovieService.Search(c.Request().Context(), req.Title)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, results)
}

// handleSelectMovie resolves a chosen search candidate: it fetches the full
// details, stores the new entry with rating and review unset, and sends the
// user on to the rate form.
func (s *Server) handleSelectMovie(c echo.Context) error {
	externalID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	m, err := s.MovieService.AddFromLookup(c.Request().Context(), externalID)
	if err != nil {
		return err
	}

	target := fmt.Sprintf("/edit?id=%d&title=%s", m.ID, url.QueryEscape(m.Title))
	return c.Redirect(http.StatusSeeOther, target)
}

// handleRateForm renders the rate-form model. Only the title is carried
// over; a prior rating or review is never pre-filled.
func (s *Server) handleRateForm(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"id":    id,
		"title": strings.TrimSpace(c.QueryParam("title")),
	})
}

// handleRateMovie godoc
// @Summary Rate a movie
// @Description Overwrite the rating and review of an entry
// @Tags movies
// @Accept x-www-form-urlencoded
// @Param id query int true "Movie ID"
// @Param rating formData string true "Rating out of 10"
// @Param review formData string true "Review"
// @Success 303
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /edit [post]
func (s *Server) handleRateMovie(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req RateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "malformed request")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := s.MovieService.Rate(c.Request().Context(), int64(id), req.RatingValue(), req.Review); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// handleDeleteMovie godoc
// @Summary Delete a movie
// @Tags movies
// @Param id query int true "Movie ID"
// @Success 303
// @Failure 404 {object} APIResponse
// @Router /delete [get]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.MovieService.Remove(c.Request().Context(), int64(id)); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func intParam(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, errs.Errorf(errs.EINVALID, "missing %s parameter", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "invalid %s parameter", name)
	}
	return value, nil
}
