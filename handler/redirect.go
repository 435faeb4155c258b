package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"zinescan/capture"
	"zinescan/metrics"
	"zinescan/model"
	"zinescan/storage"
	"zinescan/tracker"
)

// Redirect handles GET /qr/{issueID}/{linkID} - the public scan path
// @Summary Resolve a scan and redirect
// @Description Resolves the link attached to a zine issue, records the scan, and redirects to the destination URL. The redirect is marked uncacheable so every scan is counted.
// @Tags Scans
// @Produce plain
// @Param issueID path string true "Issue ID"
// @Param linkID path string true "Link ID"
// @Success 302 "Redirect to the link's destination"
// @Failure 404 {string} string "link not found"
// @Router /qr/{issueID}/{linkID} [get]
func (h *ScanHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	vars := mux.Vars(r)
	issueID := vars["issueID"]
	linkID := vars["linkID"]

	link, err := h.resolveLink(ctx, issueID, linkID)
	if err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) {
			metrics.Redirects.WithLabelValues("not_found").Inc()
			log.Warn().
				Str("issue_id", issueID).
				Str("link_id", linkID).
				Msg("Scan for unknown link")
			http.Error(w, "link not found", http.StatusNotFound)
			return
		}
		// Lookup failed or timed out: fail closed rather than redirect a
		// scan that was never recorded.
		metrics.Redirects.WithLabelValues("error").Inc()
		log.Error().Err(err).
			Str("issue_id", issueID).
			Str("link_id", linkID).
			Msg("Link lookup failed")
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	// Record the scan before responding. The insert is best effort: its
	// failure has already been logged and counted, and must not cost the
	// scanning user their redirect.
	event, _ := h.recorder.Record(ctx, issueID, linkID, tracker.ScanContext{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
		Referer:   r.Referer(),
	})

	h.submitCapture(event, link)

	metrics.Redirects.WithLabelValues("resolved").Inc()
	log.Info().
		Str("issue_id", issueID).
		Str("link_id", linkID).
		Str("url", link.URL).
		Msg("Redirecting scan")

	// Repeated scans must each reach us, not an intermediary's cache.
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, link.URL, http.StatusFound)
}

// resolveLink looks up the (issueID, linkID) pair, cache first. A link with
// an empty destination is treated as not found.
func (h *ScanHandler) resolveLink(ctx context.Context, issueID, linkID string) (*model.Link, error) {
	if h.cache != nil {
		if link, found := h.cache.Get(ctx, issueID, linkID); found {
			log.Debug().Str("issue_id", issueID).Str("link_id", linkID).Msg("Link cache hit")
			return link, nil
		}
	}

	link, err := h.store.GetLink(ctx, issueID, linkID)
	if err != nil {
		return nil, err
	}
	if link.URL == "" {
		return nil, storage.ErrLinkNotFound
	}

	if h.cache != nil {
		h.cache.Set(ctx, link)
	}
	return link, nil
}

// submitCapture ships the secondary copy of the scan to the external
// analytics sink. The distinct id is the client IP when we have one,
// otherwise the event's own id so IP-less scans stay distinct actors.
func (h *ScanHandler) submitCapture(event *model.ScanEvent, link *model.Link) {
	distinctID := event.IPAddress
	if distinctID == "" {
		distinctID = event.ID
	}

	h.sink.Submit(capture.Event{
		Name:       "qr_scan",
		DistinctID: distinctID,
		Properties: map[string]string{
			"issue_id":   event.IssueID,
			"link_id":    event.LinkID,
			"label":      link.Label,
			"referer":    event.Referer,
			"user_agent": event.UserAgent,
			"path":       model.ScanPath(event.IssueID, event.LinkID),
		},
	})
}
