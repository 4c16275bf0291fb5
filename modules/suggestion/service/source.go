package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/logger"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/dto"
)

// SuggestionSource is the upstream recommendation provider.
type SuggestionSource interface {
	Fetch(ctx context.Context, destination string, interests []string) ([]dto.Suggestion, []dto.ScheduledSuggestion, error)
}

// HTTPSource talks to the suggestion provider over its JSON endpoint.
type HTTPSource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPSource creates a source from the suggestion config
func NewHTTPSource(cfg config.SuggestionConfig) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Enrich looks up one point of interest by provider id.
func (s *HTTPSource) Enrich(ctx context.Context, sourceID string) (*entity.Enrichment, error) {
	apiURL := fmt.Sprintf("%s/v1/pois/%s", s.baseURL, url.PathEscape(sourceID))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build enrichment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("HTTPSource:Enrich", err)
		return nil, fmt.Errorf("suggestion provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// The POI vanished upstream; nothing to write back.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion provider returned status %d", resp.StatusCode)
	}

	var enrichment entity.Enrichment
	if err := json.NewDecoder(resp.Body).Decode(&enrichment); err != nil {
		return nil, fmt.Errorf("failed to decode enrichment response: %w", err)
	}
	return &enrichment, nil
}

type sourcePayload struct {
	Suggestions []dto.Suggestion          `json:"suggestions"`
	Scheduled   []dto.ScheduledSuggestion `json:"scheduled"`
}

// Fetch requests recommendations for a destination filtered by interests.
func (s *HTTPSource) Fetch(ctx context.Context, destination string, interests []string) ([]dto.Suggestion, []dto.ScheduledSuggestion, error) {
	params := url.Values{}
	params.Set("destination", destination)
	if len(interests) > 0 {
		params.Set("interests", strings.Join(interests, ","))
	}
	apiURL := fmt.Sprintf("%s/v1/suggestions?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build suggestion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("HTTPSource:Fetch", err)
		return nil, nil, fmt.Errorf("suggestion provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("suggestion provider returned status %d", resp.StatusCode)
	}

	var payload sourcePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("failed to decode suggestion response: %w", err)
	}

	return payload.Suggestions, payload.Scheduled, nil
}
