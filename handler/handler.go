package handler

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"zinescan/cache"
	"zinescan/capture"
	"zinescan/config"
	"zinescan/storage"
	"zinescan/tracker"
)

// ScanHandler serves the public scan path: link resolution, scan recording
// and the QR image endpoint.
type ScanHandler struct {
	store    storage.Store
	cache    cache.LinkCache
	recorder *tracker.Recorder
	sink     capture.Sink
	config   config.Config
	baseURL  string
}

// NewScanHandler creates the scan handler with its dependencies injected.
// cacheClient may be nil when caching is disabled.
func NewScanHandler(store storage.Store, cacheClient cache.LinkCache, recorder *tracker.Recorder, sink capture.Sink, cfg config.Config) *ScanHandler {
	baseURL := cfg.WebServer.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s://%s:%s", cfg.WebServer.Scheme, cfg.WebServer.IP, cfg.WebServer.Port)
	}
	return &ScanHandler{
		store:    store,
		cache:    cacheClient,
		recorder: recorder,
		sink:     sink,
		config:   cfg,
		baseURL:  baseURL,
	}
}

func (h *ScanHandler) opTimeout() time.Duration {
	return time.Duration(h.config.Database.OperationTimeout) * time.Second
}

// clientIP extracts the best-effort client address: the first entry of
// X-Forwarded-For when a proxy set one, else the remote address host. May
// return empty behind proxies that strip both.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
