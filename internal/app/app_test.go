package app_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"katalog/internal/app"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		ping     func() error
		code     int
		status   string
		database string
	}{
		{"no store to ping", nil, http.StatusOK, "healthy", "up"},
		{"store up", func() error { return nil }, http.StatusOK, "healthy", "up"},
		{"store down", func() error { return errors.New("connection refused") }, http.StatusServiceUnavailable, "unhealthy", "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := services.NewProductService(repositories.NewMemoryProductRepository(), nil)
			server := app.New(service, app.Options{Name: "katalog-test", Ping: tt.ping})

			resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.code, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status, body["status"])
			assert.Equal(t, tt.database, body["database"])
			assert.NotEmpty(t, body["time"])
		})
	}
}

func TestRoutesMounted(t *testing.T) {
	service := services.NewProductService(repositories.NewMemoryProductRepository(), nil)
	server := app.New(service, app.Options{})

	for _, path := range []string{"/api/products", "/api/test", "/api/demo/products"} {
		resp, err := server.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
