package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
)

type setRatingRequest struct {
	Player string `json:"player"`
	Game   string `json:"game"`
	Elo    int    `json:"elo"`
}

func (h *Handler) RecordMatchHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var sub models.MatchSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	rec, err := h.match.Record(r.Context(), userId, sub)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// The ledger is committed; the event feed is best-effort.
	h.broker.PublishMatchRecorded(userId, rec)

	h.CreateResponse(w, Response{
		Message: "match recorded",
		Code:    http.StatusOK,
		Data:    rec,
	})
}

func (h *Handler) SetRatingHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req setRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	if err := h.match.SetRating(r.Context(), userId, req.Player, req.Game, req.Elo); err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "rating updated",
		Code:    http.StatusOK,
	})
}

// ListHistoryHandler serves the owner's history, newest first. The
// optional ?player= filter resolves against the live roster, so a
// deleted player's name yields 404; their entries stay reachable
// through the unfiltered listing (history rows carry only player ids).
func (h *Handler) ListHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	entries, err := h.query.ListHistory(r.Context(), userId, r.URL.Query().Get("player"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: entries,
	})
}
