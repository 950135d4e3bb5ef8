package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/gripe-service/internal/config"
)

const giphyFixture = `{
  "data": [
    {
      "images": {
        "original": {
          "url": "https://media.example.com/happy.gif"
        }
      }
    }
  ]
}`

func newTestRewardService(baseURL string) *RewardService {
	return NewRewardService(config.GiphyConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Tag:            "happy",
		OffsetBound:    75,
		TimeoutSeconds: 2,
	}, zap.NewNop())
}

func TestFetchCheerfulImage_Success(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/gifs/search", r.URL.Path)
		gotQuery = map[string]string{
			"api_key": r.URL.Query().Get("api_key"),
			"q":       r.URL.Query().Get("q"),
			"limit":   r.URL.Query().Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(giphyFixture))
	}))
	defer server.Close()

	svc := newTestRewardService(server.URL)
	url := svc.FetchCheerfulImage(context.Background())

	assert.Equal(t, "https://media.example.com/happy.gif", url)
	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "happy", gotQuery["q"])
	assert.Equal(t, "1", gotQuery["limit"])
}

func TestFetchCheerfulImage_ServerErrorIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestRewardService(server.URL)
	assert.Empty(t, svc.FetchCheerfulImage(context.Background()))
}

func TestFetchCheerfulImage_EmptyResultIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	svc := newTestRewardService(server.URL)
	assert.Empty(t, svc.FetchCheerfulImage(context.Background()))
}

func TestFetchCheerfulImage_UnreachableHostIsSwallowed(t *testing.T) {
	svc := newTestRewardService("http://127.0.0.1:1")
	assert.Empty(t, svc.FetchCheerfulImage(context.Background()))
}
