package movies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"movieticket/pkg/logger"
	"movieticket/pkg/upstream"
)

func newClientFor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(upstream.New(srv.URL, "/api", 2*time.Second, logger.New()))
}

const catalogJSON = `{"success":true,"message":"OK","data":[
	{"id":1,"title":"Dune","genre":"Sci-Fi","price":15000,"isEnabled":true},
	{"id":2,"title":"Heat","genre":"Crime","price":12000,"isEnabled":true},
	{"id":3,"title":"Alien","genre":"Sci-Fi","price":13000,"isEnabled":true}]}`

func TestLoadBuildsDistinctSortedGenres(t *testing.T) {
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogJSON))
	})
	cat := NewCatalog(client, 10)

	require.NoError(t, cat.Load(context.Background()))
	require.Len(t, cat.Movies(), 3)
	require.Equal(t, []string{"Crime", "Sci-Fi"}, cat.Genres())
}

func TestFilterKeepsGenreSetStable(t *testing.T) {
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("genre") == "Sci-Fi" {
			w.Write([]byte(`{"success":true,"message":"OK","data":[
				{"id":1,"title":"Dune","genre":"Sci-Fi","price":15000,"isEnabled":true},
				{"id":3,"title":"Alien","genre":"Sci-Fi","price":13000,"isEnabled":true}]}`))
			return
		}
		w.Write([]byte(catalogJSON))
	})
	cat := NewCatalog(client, 10)
	ctx := context.Background()

	require.NoError(t, cat.Load(ctx))
	require.NoError(t, cat.Filter(ctx, "", "Sci-Fi"))

	// The list narrows but the genre chips don't
	require.Len(t, cat.Movies(), 2)
	require.Equal(t, []string{"Crime", "Sci-Fi"}, cat.Genres())

	require.NoError(t, cat.ClearFilters(ctx))
	require.Len(t, cat.Movies(), 3)
}

func TestFilterSendsQueryParameters(t *testing.T) {
	var gotTitle, gotGenre string
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.URL.Query().Get("title")
		gotGenre = r.URL.Query().Get("genre")
		w.Write([]byte(`{"success":true,"message":"OK","data":[]}`))
	})
	cat := NewCatalog(client, 10)

	require.NoError(t, cat.Filter(context.Background(), "dune", "Sci-Fi"))
	require.Equal(t, "dune", gotTitle)
	require.Equal(t, "Sci-Fi", gotGenre)
}

func TestCatalogPagination(t *testing.T) {
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogJSON))
	})
	cat := NewCatalog(client, 2)

	require.NoError(t, cat.Load(context.Background()))

	page, pageCount := cat.Page(1)
	require.Equal(t, 2, pageCount)
	require.Len(t, page, 2)

	page, _ = cat.Page(2)
	require.Len(t, page, 1)
	require.Equal(t, "Alien", page[0].Title)
}
