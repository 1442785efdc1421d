package movies

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleFlowDisablesAndReloads(t *testing.T) {
	var disabled atomic.Bool
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/api/movies/2" {
			disabled.Store(true)
			w.Write([]byte(`{"success":true,"message":"Movie disabled"}`))
			return
		}
		if disabled.Load() {
			w.Write([]byte(`{"success":true,"message":"OK","data":[
				{"id":1,"title":"Dune","genre":"Sci-Fi","price":15000,"isEnabled":true},
				{"id":2,"title":"Heat","genre":"Crime","price":12000,"isEnabled":false}]}`))
			return
		}
		w.Write([]byte(`{"success":true,"message":"OK","data":[
			{"id":1,"title":"Dune","genre":"Sci-Fi","price":15000,"isEnabled":true},
			{"id":2,"title":"Heat","genre":"Crime","price":12000,"isEnabled":true}]}`))
	})

	mng := NewManage(client, 10, 5<<20)
	ctx := context.Background()
	require.NoError(t, mng.Reload(ctx))

	pending, err := mng.PrepareToggle(2)
	require.NoError(t, err)
	require.Equal(t, "Heat", pending.Title)
	require.NotNil(t, mng.PendingToggle())

	require.NoError(t, mng.ConfirmToggle(ctx))
	require.Nil(t, mng.PendingToggle())

	// Disabled movies stay in the admin list, flagged off
	list := mng.Movies()
	require.Len(t, list, 2)
	require.False(t, list[1].IsEnabled)
}

func TestCancelToggleSendsNothing(t *testing.T) {
	var deletes atomic.Int32
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
		}
		w.Write([]byte(catalogJSON))
	})

	mng := NewManage(client, 10, 5<<20)
	ctx := context.Background()
	require.NoError(t, mng.Reload(ctx))

	_, err := mng.PrepareToggle(1)
	require.NoError(t, err)
	mng.CancelToggle()

	require.Nil(t, mng.PendingToggle())
	require.Equal(t, int32(0), deletes.Load())
	require.ErrorIs(t, mng.ConfirmToggle(ctx), ErrNoPendingToggle)
}

func TestPrepareToggleUnknownMovie(t *testing.T) {
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogJSON))
	})

	mng := NewManage(client, 10, 5<<20)
	require.NoError(t, mng.Reload(context.Background()))

	_, err := mng.PrepareToggle(99)
	require.ErrorIs(t, err, ErrMovieNotLoaded)
}

func TestCreateWithoutImageUsesJSON(t *testing.T) {
	var contentType string
	client := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"success":true,"message":"Created","data":{"id":9,"title":"Arrival","isEnabled":true}}`))
	})

	mng := NewManage(client, 10, 5<<20)
	movie, err := mng.Create(context.Background(), CreateMovieRequest{
		Title:       "Arrival",
		Description: "First contact",
		Duration:    116,
		Genre:       "Sci-Fi",
		Price:       14000,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(9), movie.ID)
	require.Equal(t, "application/json", contentType)
}
