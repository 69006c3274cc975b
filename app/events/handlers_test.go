package events

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/polyfeed/polyfeed/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetEvents(ctx context.Context, offset, limit int) (*models.EventPage, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventPage), args.Error(1)
}

func (m *MockService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockService) SearchEvents(ctx context.Context, query string, offset, limit int) (*models.EventPage, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventPage), args.Error(1)
}

func (m *MockService) RefreshOnce(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockService) AddInjectedURL(rawURL string) (*models.InjectedURL, error) {
	args := m.Called(rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InjectedURL), args.Error(1)
}

func (m *MockService) RemoveInjectedURL(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockService) ListInjectedURLs() []models.InjectedURL {
	return m.Called().Get(0).([]models.InjectedURL)
}

func setupHandlerTest() (*MockService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	service := &MockService{}
	handler := NewHandler(service, GetDefaultConfig())

	r := gin.New()
	r.GET("/events", handler.GetEvents)
	r.GET("/events/search", handler.SearchEvents)
	r.GET("/events/:id", handler.GetEventByID)
	r.POST("/injected-urls", handler.AddInjectedURL)
	r.GET("/injected-urls", handler.ListInjectedURLs)
	r.DELETE("/injected-urls/:id", handler.RemoveInjectedURL)
	return service, r
}

func doRequest(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetEventsHandler(t *testing.T) {
	service, r := setupHandlerTest()

	page := &models.EventPage{
		Events:     []models.Event{{ID: "e1", Title: "alpha"}},
		Pagination: models.Pagination{TotalResults: 1, Limit: 20},
	}
	service.On("GetEvents", mock.Anything, 0, 20).Return(page, nil)

	w := doRequest(r, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    []models.Event `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "e1", resp.Data[0].ID)
}

func TestGetEventsHandlerCustomPaging(t *testing.T) {
	service, r := setupHandlerTest()

	page := &models.EventPage{Events: []models.Event{}}
	service.On("GetEvents", mock.Anything, 40, 10).Return(page, nil)

	w := doRequest(r, http.MethodGet, "/events?offset=40&limit=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestGetEventsHandlerInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "non-numeric offset", path: "/events?offset=abc"},
		{name: "negative offset", path: "/events?offset=-1"},
		{name: "non-numeric limit", path: "/events?limit=ten"},
		{name: "limit over max", path: "/events?limit=5000"},
		{name: "zero limit", path: "/events?limit=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := setupHandlerTest()
			w := doRequest(r, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetEventByIDHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		service, r := setupHandlerTest()
		service.On("GetEventByID", mock.Anything, "e1").
			Return(&models.Event{ID: "e1"}, nil)

		w := doRequest(r, http.MethodGet, "/events/e1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		service, r := setupHandlerTest()
		service.On("GetEventByID", mock.Anything, "missing").
			Return(nil, models.ErrRecordNotFound)

		w := doRequest(r, http.MethodGet, "/events/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSearchEventsHandler(t *testing.T) {
	t.Run("query required", func(t *testing.T) {
		_, r := setupHandlerTest()
		w := doRequest(r, http.MethodGet, "/events/search", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("matches returned", func(t *testing.T) {
		service, r := setupHandlerTest()
		page := &models.EventPage{Events: []models.Event{{ID: "e1"}}}
		service.On("SearchEvents", mock.Anything, "lakers", 0, 20).Return(page, nil)

		w := doRequest(r, http.MethodGet, "/events/search?q=lakers", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})
}

func TestAddInjectedURLHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		service, r := setupHandlerTest()
		service.On("AddInjectedURL", "https://example.com/events").
			Return(&models.InjectedURL{ID: "abc", URL: "https://example.com/events"}, nil)

		body, _ := json.Marshal(AddInjectedURLRequest{URL: "https://example.com/events"})
		w := doRequest(r, http.MethodPost, "/injected-urls", body)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing url", func(t *testing.T) {
		_, r := setupHandlerTest()
		w := doRequest(r, http.MethodPost, "/injected-urls", []byte(`{}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid url rejected by service", func(t *testing.T) {
		service, r := setupHandlerTest()
		service.On("AddInjectedURL", "http://").Return(nil, models.ErrInvalidURL)

		body, _ := json.Marshal(map[string]string{"url": "http://"})
		w := doRequest(r, http.MethodPost, "/injected-urls", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("registry full", func(t *testing.T) {
		service, r := setupHandlerTest()
		service.On("AddInjectedURL", "https://example.com/more").Return(nil, ErrRegistryFull)

		body, _ := json.Marshal(AddInjectedURLRequest{URL: "https://example.com/more"})
		w := doRequest(r, http.MethodPost, "/injected-urls", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestListInjectedURLsHandler(t *testing.T) {
	service, r := setupHandlerTest()
	service.On("ListInjectedURLs").
		Return([]models.InjectedURL{{ID: "abc", URL: "https://example.com/events"}})

	w := doRequest(r, http.MethodGet, "/injected-urls", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data InjectedURLListResponse `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Meta.Count)
	require.Len(t, resp.Data.URLs, 1)
}

func TestRemoveInjectedURLHandler(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		service, r := setupHandlerTest()
		service.On("RemoveInjectedURL", "abc").Return(nil)

		w := doRequest(r, http.MethodDelete, "/injected-urls/abc", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		service, r := setupHandlerTest()
		service.On("RemoveInjectedURL", "nope").Return(models.ErrRecordNotFound)

		w := doRequest(r, http.MethodDelete, "/injected-urls/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
