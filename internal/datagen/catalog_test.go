package datagen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCatalogNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Fjallraven Backpack"},{"id":2,"title":"Mens Casual T-Shirt"},{"id":3,"title":""}]`))
	}))
	defer srv.Close()

	names, err := FetchCatalogNames(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fjallraven Backpack", "Mens Casual T-Shirt"}, names)
}

func TestFetchCatalogNamesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchCatalogNames(context.Background(), srv.URL, 5*time.Second)
	assert.Error(t, err)
}

func TestFetchCatalogNamesBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := FetchCatalogNames(context.Background(), srv.URL, 5*time.Second)
	assert.Error(t, err)
}

func TestFetchCatalogNamesEmptyTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":""}]`))
	}))
	defer srv.Close()

	_, err := FetchCatalogNames(context.Background(), srv.URL, 5*time.Second)
	assert.Error(t, err)
}

func TestFetchCatalogNamesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := FetchCatalogNames(context.Background(), srv.URL, 10*time.Millisecond)
	assert.Error(t, err)
}

func TestFallbackNames(t *testing.T) {
	gc := testContext(42)

	names := gc.FallbackNames(15)
	require.Len(t, names, 15)
	for _, n := range names {
		assert.NotEmpty(t, n)
	}

	// Non-positive counts get the default pool size
	assert.Len(t, testContext(42).FallbackNames(0), 20)
}
