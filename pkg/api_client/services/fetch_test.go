package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.org/bp.yaml"))
	assert.True(t, IsRemote(" HTTP://localhost/bp.yaml"))
	assert.False(t, IsRemote("./blueprint.yaml"))
	assert.False(t, IsRemote("-"))
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(mysqlBlueprint))
		case "/empty":
			_, _ = w.Write([]byte("  \n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	data, err := FetchURL(ctx, srv.URL+"/ok", 0)
	require.NoError(t, err)
	assert.Equal(t, mysqlBlueprint, string(data))

	_, err = FetchURL(ctx, srv.URL+"/ok", 10)
	assert.ErrorContains(t, err, "groter dan 10 bytes")

	_, err = FetchURL(ctx, srv.URL+"/empty", 0)
	assert.ErrorIs(t, err, ErrEmptyBlueprint)

	_, err = FetchURL(ctx, srv.URL+"/missing", 0)
	assert.ErrorContains(t, err, "HTTP 404")
}
