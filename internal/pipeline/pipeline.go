// Package pipeline defines the contract with the external query-processing
// pipeline: the backend submits batches of (query id, engines) pairs, and the
// pipeline later writes Citation rows for those queries through the ingest
// endpoint. Nothing in this package detects citations itself.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Submitter asks the external pipeline to run a set of queries against a set
// of engines. Submission is fire-and-forget: results arrive asynchronously as
// new citation rows.
type Submitter interface {
	Submit(ctx context.Context, userID string, queryIDs []string, engines []string) error
}

// HTTPSubmitter posts batches to a pipeline webhook endpoint.
type HTTPSubmitter struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewHTTPSubmitter builds a submitter for the given webhook endpoint.
func NewHTTPSubmitter(endpoint, apiKey string) *HTTPSubmitter {
	return &HTTPSubmitter{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit posts one batch request. A non-2xx response is an error; the caller
// decides whether to retry.
func (s *HTTPSubmitter) Submit(ctx context.Context, userID string, queryIDs []string, engines []string) error {
	body, err := json.Marshal(map[string]any{
		"user_id":   userID,
		"query_ids": queryIDs,
		"engines":   engines,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(s.Endpoint, "/")+"/process-query-batch", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pipeline submit: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// NopSubmitter accepts every batch without doing anything. Used when no
// pipeline endpoint is configured (local development) and in tests.
type NopSubmitter struct{}

// Submit logs the batch and succeeds.
func (NopSubmitter) Submit(_ context.Context, userID string, queryIDs []string, engines []string) error {
	log.Debug().
		Str("user_id", userID).
		Int("queries", len(queryIDs)).
		Strs("engines", engines).
		Msg("pipeline submit (nop)")
	return nil
}
