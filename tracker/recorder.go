package tracker

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"zinescan/metrics"
	"zinescan/model"
	"zinescan/storage"
)

// ScanContext carries the request context captured alongside a scan. All
// fields are optional; an empty value simply isn't recorded.
type ScanContext struct {
	UserAgent string
	IPAddress string
	Referer   string
}

// Recorder appends scan events to the durable store. Inserts are independent
// of each other (append-only, no cross-row invariant), so concurrent
// recordings need no coordination here.
type Recorder struct {
	store storage.ScanEventStore
}

func NewRecorder(store storage.ScanEventStore) *Recorder {
	return &Recorder{store: store}
}

// Record appends exactly one scan event for a resolved link. The returned
// event carries the id to hand to the capture sink. The error is for
// observation only: callers on the redirect path log it and move on rather
// than failing the user-facing response.
func (r *Recorder) Record(ctx context.Context, issueID, linkID string, sc ScanContext) (*model.ScanEvent, error) {
	event := &model.ScanEvent{
		ID:        uuid.New().String(),
		IssueID:   issueID,
		LinkID:    linkID,
		UserAgent: sc.UserAgent,
		IPAddress: sc.IPAddress,
		Referer:   sc.Referer,
	}

	if err := r.store.CreateScanEvent(ctx, event); err != nil {
		metrics.ScanRecordFailures.Inc()
		log.Error().Err(err).
			Str("issue_id", issueID).
			Str("link_id", linkID).
			Msg("Failed to record scan event")
		return event, err
	}

	metrics.ScansRecorded.Inc()
	log.Debug().
		Str("issue_id", issueID).
		Str("link_id", linkID).
		Str("event_id", event.ID).
		Msg("Scan event recorded")
	return event, nil
}
