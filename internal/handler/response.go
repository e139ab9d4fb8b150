package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"movie-catalog/internal/auth"
	"movie-catalog/internal/model"
	"movie-catalog/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    apierror.CodeInternal,
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
		body.Fields = apiErr.Fields
	} else if errors.Is(err, model.ErrUserAlreadyExists) {
		status = http.StatusConflict
		body.Code = apierror.CodeConflict
		body.Message = "Username already exists"
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = apierror.CodeUnauthorized
		body.Message = "Invalid username or password"
	} else if errors.Is(err, model.ErrUnauthorized) ||
		errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrMalformedToken) ||
		errors.Is(err, auth.ErrExpiredToken) {
		status = http.StatusUnauthorized
		body.Code = apierror.CodeUnauthorized
		body.Message = "missing or invalid token"
	} else if errors.Is(err, model.ErrMovieNotFound) {
		status = http.StatusNotFound
		body.Code = apierror.CodeNotFound
		body.Message = "Movie not found"
	} else if errors.Is(err, model.ErrReviewNotFound) {
		status = http.StatusNotFound
		body.Code = apierror.CodeNotFound
		body.Message = "Review not found"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = apierror.CodeNotFound
		body.Message = "User not found"
	} else {
		// Store and driver errors never reach the client.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

// decodeJSON reads one JSON document from the request body into dst.
// Empty, malformed or oversized bodies are reported as 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierror.BadRequest("request body too large")
		}
		return apierror.BadRequest("unable to read request body")
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return apierror.BadRequest("request body is required")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return apierror.BadRequest("invalid JSON body")
	}
	return nil
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, apierror.NotFound("route not found", r.URL.Path))
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, apierror.MethodNotAllowed())
}
