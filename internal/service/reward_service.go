package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spec-kit/gripe-service/internal/config"
)

// RewardService fetches a cheerful image from the Giphy search API. Every
// failure on this path is non-fatal: the caller renders without an image
// and the error is only logged.
type RewardService struct {
	cfg    config.GiphyConfig
	client *http.Client
	logger *zap.Logger
	randN  func(n int) int
}

// NewRewardService constructs the service with a bounded HTTP timeout so a
// slow image API can never stall a page.
func NewRewardService(cfg config.GiphyConfig, logger *zap.Logger) *RewardService {
	return &RewardService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
		randN:  rand.Intn,
	}
}

// FetchCheerfulImage returns the URL of a random image for the configured
// tag, or "" when the fetch fails for any reason.
func (s *RewardService) FetchCheerfulImage(ctx context.Context) string {
	imageURL, err := s.search(ctx)
	if err != nil {
		s.logger.Warn("cheerful image fetch failed", zap.Error(err))
		return ""
	}
	return imageURL
}

func (s *RewardService) search(ctx context.Context) (string, error) {
	offset := 0
	if s.cfg.OffsetBound > 0 {
		offset = s.randN(s.cfg.OffsetBound)
	}

	query := url.Values{}
	query.Set("api_key", s.cfg.APIKey)
	query.Set("q", s.cfg.Tag)
	query.Set("limit", "1")
	query.Set("offset", strconv.Itoa(offset))

	endpoint := s.cfg.BaseURL + "/v1/gifs/search?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("giphy search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	imageURL := gjson.GetBytes(body, "data.0.images.original.url").String()
	if imageURL == "" {
		return "", fmt.Errorf("giphy search returned no results for %q", s.cfg.Tag)
	}
	return imageURL, nil
}
