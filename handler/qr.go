package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"zinescan/storage"
)

// GenerateQR handles GET /qr/{issueID}/{linkID}/png - renders the QR image
// for a link's public scan URL
// @Summary Generate QR code for a link
// @Description Renders a PNG QR code pointing at the link's scan path. Scanning the code triggers the tracked redirect.
// @Tags Scans
// @Produce png
// @Param issueID path string true "Issue ID"
// @Param linkID path string true "Link ID"
// @Param size query int false "Image size in pixels (128-1024)" default(256)
// @Param level query string false "Error correction level: low, medium, high, highest" default(medium)
// @Success 200 {file} binary "QR code image"
// @Failure 400 {object} handler.ErrorResponse "Invalid parameters"
// @Failure 404 {object} handler.ErrorResponse "Link not found"
// @Failure 500 {object} handler.ErrorResponse "Internal server error"
// @Router /qr/{issueID}/{linkID}/png [get]
func (h *ScanHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout())
	defer cancel()

	vars := mux.Vars(r)
	issueID := vars["issueID"]
	linkID := vars["linkID"]

	// The QR encodes the scan path, so the link must resolve
	if _, err := h.resolveLink(ctx, issueID, linkID); err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) {
			SendJSONError(w, http.StatusNotFound, errors.New("link not found"), "No such link under this issue")
			return
		}
		log.Error().Err(err).Str("issue_id", issueID).Str("link_id", linkID).Msg("Failed to resolve link for QR")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to verify link")
		return
	}

	// Get size parameter (default: 256, min: 128, max: 1024)
	query := r.URL.Query()
	size := 256
	if sizeStr := query.Get("size"); sizeStr != "" {
		parsedSize, err := strconv.Atoi(sizeStr)
		if err != nil {
			SendJSONError(w, http.StatusBadRequest, errors.New("invalid size parameter"), "Size must be a number")
			return
		}
		if parsedSize < 128 || parsedSize > 1024 {
			SendJSONError(w, http.StatusBadRequest, errors.New("size out of range"), "Size must be between 128 and 1024")
			return
		}
		size = parsedSize
	}

	// Get error correction level (default: medium)
	level := qrcode.Medium
	if levelStr := query.Get("level"); levelStr != "" {
		switch levelStr {
		case "low":
			level = qrcode.Low
		case "medium":
			level = qrcode.Medium
		case "high":
			level = qrcode.High
		case "highest":
			level = qrcode.Highest
		default:
			SendJSONError(w, http.StatusBadRequest, errors.New("invalid level parameter"), "Level must be: low, medium, high, or highest")
			return
		}
	}

	scanURL := fmt.Sprintf("%s/qr/%s/%s", h.baseURL, issueID, linkID)

	qrImage, err := qrcode.Encode(scanURL, level, size)
	if err != nil {
		log.Error().Err(err).Str("url", scanURL).Msg("Failed to generate QR code")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(qrImage)))

	if _, err := w.Write(qrImage); err != nil {
		log.Error().Err(err).Msg("Failed to write QR code response")
		return
	}

	log.Info().
		Str("issue_id", issueID).
		Str("link_id", linkID).
		Int("size", size).
		Msg("QR code generated")
}
