package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmojiListDisabledWithoutAPIKey(t *testing.T) {
	svc := NewEmojiService("http://example.invalid/emojis", "", time.Hour, nil, quietLogger())

	emojis, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, emojis)
}

func TestEmojiListFetchesAndCaches(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "secret", r.URL.Query().Get("access_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"slug":"grinning","character":"😀"},{"slug":"wave","character":"👋"}]`))
	}))
	defer srv.Close()

	svc := NewEmojiService(srv.URL, "secret", time.Hour, nil, quietLogger())
	ctx := context.Background()

	emojis, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"😀", "👋"}, emojis)

	again, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, emojis, again)
	assert.Equal(t, int64(1), calls.Load(), "second call must come from the cache")
}

func TestEmojiListSurfacesUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewEmojiService(srv.URL, "secret", time.Hour, nil, quietLogger())

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}
