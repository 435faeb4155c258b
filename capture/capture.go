package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"zinescan/config"
	"zinescan/metrics"
)

// Event is the secondary, non-authoritative copy of a scan shipped to the
// external analytics capture service.
type Event struct {
	Name       string            `json:"event"`
	DistinctID string            `json:"distinct_id"`
	Properties map[string]string `json:"properties"`
}

// Sink ships scan events to the external analytics service. Submissions are
// best-effort: failures are counted and logged, never surfaced to the
// scanning client.
type Sink interface {
	Submit(event Event)
}

// NewSink returns an HTTP sink, or a disabled one when no endpoint is
// configured.
func NewSink(cfg config.CaptureConfig) Sink {
	if cfg.Endpoint == "" {
		log.Info().Msg("External analytics capture disabled (no endpoint configured)")
		return NopSink{}
	}
	return NewHTTPSink(cfg)
}

// HTTPSink POSTs events to the capture endpoint. Each submission runs on its
// own goroutine with a detached, bounded-timeout context so sink slowness
// never delays the redirect that triggered it.
type HTTPSink struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	client   *http.Client
}

var _ Sink = (*HTTPSink)(nil)

func NewHTTPSink(cfg config.CaptureConfig) *HTTPSink {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPSink{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSink) Submit(event Event) {
	go s.send(event)
}

func (s *HTTPSink) send(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	body, err := json.Marshal(event)
	if err != nil {
		metrics.CaptureFailures.Inc()
		log.Error().Err(err).Msg("Failed to encode capture event")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		metrics.CaptureFailures.Inc()
		log.Error().Err(err).Msg("Failed to build capture request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.CaptureFailures.Inc()
		log.Warn().Err(err).Str("event", event.Name).Msg("Capture submission failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.CaptureFailures.Inc()
		log.Warn().
			Int("status", resp.StatusCode).
			Str("event", event.Name).
			Msg("Capture endpoint rejected event")
	}
}

// NopSink drops every event. Used when capture is unconfigured and in tests.
type NopSink struct{}

func (NopSink) Submit(Event) {}
