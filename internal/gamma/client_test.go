package gamma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfeed/polyfeed/models"
)

func TestFetchEventsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "nba", r.URL.Query().Get("tag"))
		w.Write([]byte(`[{"id":"e1","title":"Game 1"},{"id":"e2","title":"Game 2"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0, nil)
	events, err := c.FetchEvents(context.Background(), "/events", map[string]string{"tag": "nba"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
}

func TestFetchEventsWrappedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{"id":"e1","title":"Game 1"}],"pagination":{"hasMore":false}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0, nil)
	events, err := c.FetchEvents(context.Background(), "/events", nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
}

func TestFetchEventsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"id":"e1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 2, nil)
	events, err := c.FetchEvents(context.Background(), "/events", nil)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchEventsClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 3, nil)
	_, err := c.FetchEvents(context.Background(), "/events", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchEventsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0, nil)
	_, err := c.FetchEvents(context.Background(), "/events", nil)
	require.Error(t, err)
	assert.True(t, models.IsTransformCode(err, models.CodeParseFailure))
}
