package apierror

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationOrdersReasonsByField(t *testing.T) {
	t.Parallel()

	err := Validation(map[string]string{
		"title":  "title is required",
		"actors": "actors must contain at least one entry",
	})

	require.Equal(t, CodeValidation, err.Code)
	require.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	require.Equal(t, "actors must contain at least one entry; title is required", err.Message)
	require.Equal(t, "actors,title", err.Details)
	require.Len(t, err.Fields, 2)
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NOT_FOUND: movie not found (abc)", NotFound("movie not found", "abc").Error())
	require.Equal(t, "UNAUTHORIZED: invalid token", Unauthorized("invalid token").Error())

	var nilErr *APIError
	require.Equal(t, "", nilErr.Error())
}
