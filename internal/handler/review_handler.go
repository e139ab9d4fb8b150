package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"movie-catalog/internal/middleware"
	"movie-catalog/internal/model"
	"movie-catalog/internal/service"
)

type ReviewHandler struct {
	catalog *service.CatalogService
}

func NewReviewHandler(catalog *service.CatalogService) *ReviewHandler {
	return &ReviewHandler{catalog: catalog}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.catalog.ListReviews(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.ReviewListData{Reviews: reviews})
}

// Create attributes the review to the token's username; any username in the
// body is ignored.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.CreateReviewRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	review, err := h.catalog.CreateReview(r.Context(), claims.Username, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteReview(r.Context(), chi.URLParam(r, "reviewId")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MessageData{Message: "review deleted"})
}
