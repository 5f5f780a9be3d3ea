package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abdulachik/feedfilter/internal/db"
	"github.com/abdulachik/feedfilter/internal/filter"
	"github.com/abdulachik/feedfilter/internal/metrics"
	"github.com/abdulachik/feedfilter/internal/settings"
	"github.com/abdulachik/feedfilter/internal/watcher"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	server   *Server
	settings *settings.Store
	health   *watcher.Health
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := settings.New(db.NewTestStore(t))
	health := watcher.NewHealth()

	return &testEnv{
		server: New(Config{
			Settings: store,
			Metrics:  metrics.New(),
			Health:   health,
		}),
		settings: store,
		health:   health,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy":true`)

	env.health.SetUnhealthy(watcher.ComponentFeed, errors.New("feed missing"))

	w = env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "feed missing")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestGetSettings_Defaults(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got filter.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Empty(t, got.Keywords)
	assert.False(t, got.HideGeoPopular)
	assert.False(t, got.HideAds)
}

func TestPutSettings(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/settings",
		`{"keywords":[" Bitcoin ","crypto","bitcoin"],"hideGeoPopular":true,"hideAds":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got filter.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"bitcoin", "crypto"}, got.Keywords)
	assert.True(t, got.HideGeoPopular)

	stored, err := env.settings.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestPutSettings_BadJSON(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/settings", `{"keywords":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddKeywords(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/keywords", `{"input":"Politics, news"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"added":["politics","news"]}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/v1/keywords", `{"input":"news"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"added":[]}`, w.Body.String())
}

func TestAddKeywords_Empty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/keywords", `{"input":" , "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/keywords", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveKeyword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.AddKeywords(ctx, "politics,news")
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, "/api/v1/keywords/politics", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	stored, err := env.settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"news"}, stored.Keywords)

	w = env.do(t, http.MethodDelete, "/api/v1/keywords/politics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearKeywords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.AddKeywords(ctx, "politics,news")
	require.NoError(t, err)
	require.NoError(t, env.settings.SetHideAds(ctx, true))

	w := env.do(t, http.MethodDelete, "/api/v1/keywords", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	stored, err := env.settings.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored.Keywords)
	assert.True(t, stored.HideAds)
}

func TestClassify_StoredSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.AddKeywords(ctx, "politics")
	require.NoError(t, err)
	require.NoError(t, env.settings.SetHideGeoPopular(ctx, true))

	body := `{"posts":[
		{"id":"a","title":"Weekly thread","subreddit":"r/WorldPolitics"},
		{"id":"b","title":"Cute cat","subreddit":"r/aww","recommendation_source":"geo_explore_subreddits"},
		{"id":"c","title":"Cute dog","subreddit":"r/aww"}
	]}`

	w := env.do(t, http.MethodPost, "/api/v1/classify", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp classifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "a", resp.Results[0].ID)
	assert.True(t, resp.Results[0].Hide)
	assert.Equal(t, filter.ReasonKeyword, resp.Results[0].Reason)
	assert.Equal(t, []string{"politics"}, resp.Results[0].MatchedKeywords)

	assert.True(t, resp.Results[1].Hide)
	assert.Equal(t, filter.ReasonGeoPopular, resp.Results[1].Reason)

	assert.False(t, resp.Results[2].Hide)

	assert.Equal(t, 3, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.Hidden)
	assert.Equal(t, 1, resp.Summary.HiddenByKeyword)
	assert.Equal(t, 1, resp.Summary.HiddenByGeo)
}

func TestClassify_InlineSettings(t *testing.T) {
	env := newTestEnv(t)

	body := `{
		"posts":[{"title":"Rust 2.0 released","subreddit":"r/programming"}],
		"settings":{"keywords":["rust"],"hideGeoPopular":false,"hideAds":false}
	}`

	w := env.do(t, http.MethodPost, "/api/v1/classify", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp classifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].Hide)

	stored, err := env.settings.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored.Keywords)
}

func TestClassify_BadRequest(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/classify", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
