package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"zinescan/middleware"
	"zinescan/tracker"
)

// AnalyticsHandler serves the authenticated creator analytics API.
type AnalyticsHandler struct {
	aggregator *tracker.Aggregator
}

func NewAnalyticsHandler(aggregator *tracker.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{aggregator: aggregator}
}

// GetAnalytics handles GET /api/analytics
// @Summary Get creator scan analytics
// @Description Per-issue and per-link scan totals with day-bucketed time series for every issue the authenticated creator owns.
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.CreatorAnalytics "Creator analytics"
// @Failure 401 {object} handler.ErrorResponse "Not authenticated"
// @Failure 500 {object} handler.ErrorResponse "Internal server error"
// @Router /api/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profileID, ok := middleware.ProfileID(r.Context())
	if !ok {
		SendJSONError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Authentication required")
		return
	}

	result, err := h.aggregator.Aggregate(ctx, profileID)
	if err != nil {
		log.Error().Err(err).Str("profile_id", profileID).Msg("Failed to aggregate scan analytics")
		SendJSONError(w, http.StatusInternalServerError, errors.New("failed to load analytics"), "Please try again")
		return
	}

	SendJSONSuccess(w, http.StatusOK, result)
}
