package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/karavil/cinema-booking-api/api"
	"github.com/karavil/cinema-booking-api/internal/catalog"
)

func (app *application) GetMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.catalogClient.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: toMovieResponses(movies),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovieByIdHandler(w http.ResponseWriter, r *http.Request) {
	movieId := chi.URLParam(r, "movieId")

	movie, err := app.catalogClient.GetByID(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if movie == nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(*movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieResponses(movies []catalog.Movie) []api.MovieResponse {
	responses := make([]api.MovieResponse, len(movies))

	for i, movie := range movies {
		responses[i] = toMovieResponse(movie)
	}

	return responses
}

func toMovieResponse(movie catalog.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:     movie.ID,
		Title:  movie.Title,
		Year:   movie.Year,
		Rating: movie.Rating,
		Crew:   movie.Crew,
	}
}
