package purchases

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"movieticket/internal/movies"
	"movieticket/pkg/logger"
	"movieticket/pkg/upstream"
)

func newServiceEnv(t *testing.T, handler http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.New()
	api := upstream.New(srv.URL, "/api", 2*time.Second, log)
	return NewService(NewClient(api), movies.NewClient(api), log, 2)
}

// aggregateHandler serves two movies whose purchase lists overlap on id 11.
func aggregateHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/movies":
		w.Write([]byte(`{"success":true,"message":"OK","data":[
			{"id":1,"title":"Dune","genre":"Sci-Fi","price":15000,"isEnabled":true},
			{"id":2,"title":"Heat","genre":"Crime","price":12000,"isEnabled":true}]}`))
	case "/api/purchases/movie/1":
		w.Write([]byte(`{"success":true,"message":"OK","data":[
			{"id":10,"customerId":12,"customerName":"Alice Moreno","customerEmail":"alice@example.com",
			 "movieId":1,"movieTitle":"Dune","quantity":1,"totalAmount":15000,"status":"CONFIRMED",
			 "purchaseDate":"2026-08-27T09:00:00","confirmationCode":"AAA111"},
			{"id":11,"customerId":13,"customerName":"Bob Chen","customerEmail":"bob@example.com",
			 "movieId":1,"movieTitle":"Dune","quantity":2,"totalAmount":30000,"status":"CONFIRMED",
			 "purchaseDate":"2026-08-29T12:00:00","confirmationCode":"BBB222"}]}`))
	case "/api/purchases/movie/2":
		w.Write([]byte(`{"success":true,"message":"OK","data":[
			{"id":11,"customerId":13,"customerName":"Bob Chen","customerEmail":"bob@example.com",
			 "movieId":1,"movieTitle":"Dune","quantity":2,"totalAmount":30000,"status":"CONFIRMED",
			 "purchaseDate":"2026-08-29T12:00:00","confirmationCode":"BBB222"},
			{"id":12,"customerId":12,"customerName":"Alice Moreno","customerEmail":"alice@example.com",
			 "movieId":2,"movieTitle":"Heat","quantity":1,"totalAmount":12000,"status":"CANCELLED",
			 "purchaseDate":"2026-08-28T18:30:00","confirmationCode":"CCC333"}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Not found"}`))
	}
}

func TestReloadAggregatesDeduplicatesAndSorts(t *testing.T) {
	svc := newServiceEnv(t, aggregateHandler)
	require.NoError(t, svc.Reload(context.Background()))

	all := svc.Purchases()
	require.Len(t, all, 3)

	// Newest first, the shared purchase 11 appears exactly once
	require.Equal(t, int64(11), all[0].ID)
	require.Equal(t, int64(12), all[1].ID)
	require.Equal(t, int64(10), all[2].ID)
}

func TestFilters(t *testing.T) {
	svc := newServiceEnv(t, aggregateHandler)
	require.NoError(t, svc.Reload(context.Background()))

	svc.SetFilters(Filters{CustomerID: 12})
	filtered := svc.Filtered()
	require.Len(t, filtered, 2)
	for _, p := range filtered {
		require.Equal(t, int64(12), p.CustomerID)
	}

	svc.SetFilters(Filters{Status: StatusCancelled})
	filtered = svc.Filtered()
	require.Len(t, filtered, 1)
	require.Equal(t, int64(12), filtered[0].ID)

	svc.SetFilters(Filters{Search: "bob"})
	filtered = svc.Filtered()
	require.Len(t, filtered, 1)
	require.Equal(t, "Bob Chen", filtered[0].CustomerName)

	svc.SetFilters(Filters{Search: "CCC333"})
	require.Len(t, svc.Filtered(), 1)

	svc.SetFilters(Filters{})
	require.Len(t, svc.Filtered(), 3)
}

func TestPage(t *testing.T) {
	svc := newServiceEnv(t, aggregateHandler)
	require.NoError(t, svc.Reload(context.Background()))

	// Page size 2 over 3 purchases
	page, pageCount := svc.Page(1)
	require.Equal(t, 2, pageCount)
	require.Len(t, page, 2)

	page, _ = svc.Page(2)
	require.Len(t, page, 1)
	require.Equal(t, int64(10), page[0].ID)

	page, _ = svc.Page(3)
	require.Empty(t, page)
}

func TestCustomerHistory(t *testing.T) {
	svc := newServiceEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/purchases/customer/12", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"OK","data":[
			{"id":10,"customerId":12,"status":"CONFIRMED","purchaseDate":"2026-08-27T09:00:00"}]}`))
	})

	history, err := svc.CustomerHistory(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, int64(10), history[0].ID)
}

func TestCancelSurfacesUpstreamMessage(t *testing.T) {
	svc := newServiceEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/purchases/12", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"Only confirmed purchases can be cancelled"}`))
	})

	err := svc.Cancel(context.Background(), 12)
	require.Error(t, err)

	apiErr, ok := upstream.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, "Only confirmed purchases can be cancelled", apiErr.Message)
}
