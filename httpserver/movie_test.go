package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"watchlist/errs"
	"watchlist/httpserver"
	"watchlist/movie"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListRanked(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieService) Search(ctx context.Context, title string) ([]movie.SearchResult, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]movie.SearchResult), args.Error(1)
}

func (m *MockMovieService) AddFromLookup(ctx context.Context, externalID int) (movie.Movie, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Rate(ctx context.Context, id int64, rating float64, review string) error {
	args := m.Called(ctx, id, rating, review)
	return args.Error(0)
}

func (m *MockMovieService) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func ratingOf(v float64) *float64 { return &v }

func TestListMovies(t *testing.T) {
	server := httpserver.Default(testConfig())
	svc := new(MockMovieService)
	server.MovieService = svc

	t.Run("should return 200 with the ranked collection", func(t *testing.T) {
		movies := []movie.Movie{
			{ID: 1, Title: "Gattaca", Rating: ratingOf(5.0), Ranking: 1},
			{ID: 2, Title: "Parasite", Rating: ratingOf(9.1), Ranking: 2},
		}
		svc.On("ListRanked", mock.Anything).Return(movies, nil).Once()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "200", resp.Code)
		var result struct {
			Data []movie.Movie `json:"data"`
		}
		decodeAPIResult(t, resp.Result, &result)
		assert.Equal(t, movies, result.Data)
		svc.AssertExpectations(t)
	})
}

func TestSearchTitle(t *testing.T) {
	server := httpserver.Default(testConfig())
	svc := new(MockMovieService)
	server.MovieService = svc

	t.Run("should return 200 with search candidates", func(t *testing.T) {
		results := []movie.SearchResult{{ExternalID: 1817, Title: "Phone Booth", Year: 2002}}
		svc.On("Search", mock.Anything, "Phone Booth").Return(results, nil).Once()
		request := newSearchRequest("Phone Booth")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		var result struct {
			Data []movie.SearchResult `json:"data"`
		}
		decodeAPIResult(t, resp.Result, &result)
		assert.Equal(t, results, result.Data)
		svc.AssertExpectations(t)
	})

	t.Run("should return 200 with an empty list when nothing matches", func(t *testing.T) {
		svc.On("Search", mock.Anything, "No Such Film").Return([]movie.SearchResult{}, nil).Once()
		request := newSearchRequest("No Such Film")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 when the title is blank", func(t *testing.T) {
		request := newSearchRequest("   ")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "Search")
	})

	t.Run("should return 502 when the movie database is down", func(t *testing.T) {
		upstreamErr := errs.Errorf(errs.EUNAVAILABLE, "tmdb: connection refused")
		svc.On("Search", mock.Anything, "Phone Booth").Return([]movie.SearchResult{}, upstreamErr).Once()
		request := newSearchRequest("Phone Booth")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100502", resp.Code)
	})
}

func TestSelectMovie(t *testing.T) {
	server := httpserver.Default(testConfig())
	svc := new(MockMovieService)
	server.MovieService = svc

	t.Run("should create the entry and redirect to the rate form", func(t *testing.T) {
		created := movie.Movie{ID: 7, Title: "Phone Booth", Year: 2002}
		svc.On("AddFromLookup", mock.Anything, 1817).Return(created, nil).Once()
		request := httptest.NewRequest(http.MethodGet, "/details?id=1817", nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/edit?id=7&title=Phone+Booth", recorder.Header().Get("Location"))
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 for a non-numeric id", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/details?id=abc", nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "AddFromLookup")
	})

	t.Run("should return 502 when the detail fetch fails", func(t *testing.T) {
		upstreamErr := errs.Errorf(errs.EUNAVAILABLE, "tmdb: unexpected status 500")
		svc.On("AddFromLookup", mock.Anything, 1817).Return(movie.Movie{}, upstreamErr).Once()
		request := httptest.NewRequest(http.MethodGet, "/details?id=1817", nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}

func TestRateForm(t *testing.T) {
	server := httpserver.Default(testConfig())
	server.MovieService = new(MockMovieService)

	t.Run("should carry over only id and title", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/edit?id=7&title=Phone+Booth", nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		var form struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		}
		decodeAPIResult(t, resp.Result, &form)
		assert.Equal(t, 7, form.ID)
		assert.Equal(t, "Phone Booth", form.Title)
	})
}

func TestRateMovie(t *testing.T) {
	server := httpserver.Default(testConfig())
	svc := new(MockMovieService)
	server.MovieService = svc

	t.Run("should update rating and review then redirect home", func(t *testing.T) {
		svc.On("Rate", mock.Anything, int64(3), 7.5, "Great").Return(nil).Once()
		request := newRateRequest("3", "7.5", "Great")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/", recorder.Header().Get("Location"))
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 and leave the movie unchanged on empty review", func(t *testing.T) {
		request := newRateRequest("3", "7.5", "")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "Rate")
	})

	t.Run("should return 400 for an unparsable rating", func(t *testing.T) {
		request := newRateRequest("3", "excellent", "Great")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "Rate")
	})

	t.Run("should return 404 for an unknown movie", func(t *testing.T) {
		notFound := errs.Errorf(errs.ENOTFOUND, "movie 99 not found")
		svc.On("Rate", mock.Anything, int64(99), 7.5, "Great").Return(notFound).Once()
		request := newRateRequest("99", "7.5", "Great")
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100404", resp.Code)
	})
}

func TestDeleteMovie(t *testing.T) {
	server := httpserver.Default(testConfig())
	svc := new(MockMovieService)
	server.MovieService = svc

	t.Run("should delete and redirect home", func(t *testing.T) {
		svc.On("Remove", mock.Anything, int64(5)).Return(nil).Once()
		request := httptest.NewRequest(http.MethodGet, "/delete?id=5", nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/", recorder.Header().Get("Location"))
		svc.AssertExpectations(t)
	})

	t.Run("should return 404 for an unknown id", func(t *testing.T) {
		notFound := errs.Errorf(errs.ENOTFOUND, "movie 99 not found")
		svc.On("Remove", mock.Anything, int64(99)).Return(notFound).Once()
		request := httptest.NewRequest(http.MethodGet, "/delete?id=99", nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func newSearchRequest(title string) *http.Request {
	form := url.Values{"title": {title}}
	request := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func newRateRequest(id, rating, review string) *http.Request {
	form := url.Values{"rating": {rating}, "review": {review}}
	request := httptest.NewRequest(http.MethodPost, "/edit?id="+id, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}
