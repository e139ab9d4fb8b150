//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFlowOnPostgres(t *testing.T) {
	server, db := newServer(t)
	token := signin(t, server, "alice", "s3cret")

	status, env := call(t, server, http.MethodPost, "/signup", "", map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	var users int
	require.NoError(t, db.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM users`).Scan(&users))
	assert.Equal(t, 1, users)

	movie := func(title string) map[string]any {
		return map[string]any{
			"title":       title,
			"releaseDate": 2020,
			"genre":       "Horror",
			"actors":      []map[string]string{{"actorName": "A", "characterName": "B"}},
			"imageUrl":    "x",
		}
	}

	ids := map[string]string{}
	for _, title := range []string{"Nope", "Alpha", "Unrated"} {
		status, env = call(t, server, http.MethodPost, "/movies", token, movie(title))
		require.Equal(t, http.StatusCreated, status)

		var created struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &created))
		ids[title] = created.ID
	}

	for title, ratings := range map[string][]float64{"Nope": {2, 4}, "Alpha": {3}} {
		for _, rating := range ratings {
			status, _ = call(t, server, http.MethodPost, "/reviews", token, map[string]any{
				"movieId": ids[title], "review": "seen it", "rating": rating,
			})
			require.Equal(t, http.StatusCreated, status)
		}
	}

	status, env = call(t, server, http.MethodGet, "/movies?reviews=true", token, nil)
	require.Equal(t, http.StatusOK, status)

	var listed struct {
		Movies []struct {
			Title     string     `json:"title"`
			AvgRating *float64   `json:"avgRating"`
			Reviews   []struct{} `json:"reviews"`
		} `json:"movies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed.Movies, 3)

	assert.Equal(t, "Nope", listed.Movies[0].Title)
	assert.Equal(t, 3.0, *listed.Movies[0].AvgRating)
	assert.Len(t, listed.Movies[0].Reviews, 2)
	assert.Equal(t, "Alpha", listed.Movies[1].Title)
	assert.Equal(t, "Unrated", listed.Movies[2].Title)
	assert.Nil(t, listed.Movies[2].AvgRating)
	assert.Empty(t, listed.Movies[2].Reviews)

	status, env = call(t, server, http.MethodPut, "/movies/"+ids["Alpha"], token, map[string]any{"actors": []any{}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error.Fields, "actors")

	status, _ = call(t, server, http.MethodDelete, "/movies/"+ids["Nope"], token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, server, http.MethodDelete, "/movies/"+ids["Nope"], token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, server, http.MethodGet, "/movies/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var orphaned int
	require.NoError(t, db.Pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM reviews WHERE movie_id = $1`, ids["Nope"]).Scan(&orphaned))
	assert.Equal(t, 2, orphaned)

	status, _ = call(t, server, http.MethodGet, "/movies", "JWT forged.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
