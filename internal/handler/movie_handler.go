package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"movie-catalog/internal/model"
	"movie-catalog/internal/service"
	"movie-catalog/pkg/apierror"
)

type MovieHandler struct {
	catalog *service.CatalogService
	engine  *service.AggregationEngine
}

func NewMovieHandler(catalog *service.CatalogService, engine *service.AggregationEngine) *MovieHandler {
	return &MovieHandler{catalog: catalog, engine: engine}
}

// List returns raw movies, or movies joined to their reviews and ordered by
// average rating when ?reviews=true.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	withReviews, err := reviewsRequested(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if withReviews {
		rated, err := h.engine.RateAll(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, model.RatedMovieListData{Movies: rated})
		return
	}

	movies, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, model.MovieListData{Movies: movies})
}

func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	withReviews, err := reviewsRequested(r)
	if err != nil {
		writeError(w, err)
		return
	}

	movieID := chi.URLParam(r, "movieId")

	if withReviews {
		rated, err := h.engine.RateOne(r.Context(), movieID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, rated)
		return
	}

	movie, err := h.catalog.GetMovie(r.Context(), movieID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, movie)
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateMovieRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.catalog.CreateMovie(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, movie)
}

func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateMovieRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.catalog.UpdateMovie(r.Context(), chi.URLParam(r, "movieId"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, movie)
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteMovie(r.Context(), chi.URLParam(r, "movieId")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MessageData{Message: "movie deleted"})
}

func reviewsRequested(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("reviews")
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierror.BadRequest("reviews must be true or false")
	}
	return v, nil
}
