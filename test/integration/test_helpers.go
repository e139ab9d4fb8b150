//go:build integration

package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"movie-catalog/internal/app"
	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
)

// startPostgres runs a throwaway Postgres and returns its connection string.
func startPostgres(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("movies"),
		tcpostgres.WithUsername("movies"),
		tcpostgres.WithPassword("movies"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func newServer(t *testing.T) (*httptest.Server, *database.DB) {
	t.Helper()

	dsn := startPostgres(t)

	cfg := &config.Config{
		ServerPort:              "0",
		ServerReadHeaderTimeout: 10 * time.Second,
		ServerWriteTimeout:      30 * time.Second,
		ServerIdleTimeout:       120 * time.Second,
		RequestTimeout:          10 * time.Second,
		ShutdownTimeout:         5 * time.Second,
		JWTSecret:               "integration-secret",
		BcryptCost:              4,
		CORSOrigins:             []string{"*"},
		StoreDriver:             config.StoreDriverPostgres,
		DatabaseURL:             dsn,
		DBMaxConns:              5,
		DBMinConns:              1,
		LogFormat:               "pretty",
	}
	require.NoError(t, cfg.Validate())

	application, err := app.New(context.Background(), cfg)
	require.NoError(t, err)

	server := httptest.NewServer(application.Handler())
	t.Cleanup(server.Close)

	db, err := database.New(context.Background(), dsn, 2, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return server, db
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func call(t *testing.T, server *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, server.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func signin(t *testing.T, server *httptest.Server, username, password string) string {
	t.Helper()

	status, _ := call(t, server, http.MethodPost, "/signup", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, status)

	status, env := call(t, server, http.MethodPost, "/signin", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}
