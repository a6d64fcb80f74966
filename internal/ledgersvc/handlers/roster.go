package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
)

type playerRequest struct {
	Name string `json:"name"`
}

type gameTypeRequest struct {
	Name              string `json:"name"`
	NumPlayers        int    `json:"num_players"`
	TeamSize          int    `json:"team_size"`
	HalfPointsAllowed bool   `json:"half_points_allowed"`
}

func (h *Handler) CreatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	p, err := h.roster.CreatePlayer(r.Context(), userId, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "player created",
		Code:    http.StatusCreated,
		Data:    p,
	})
}

func (h *Handler) DeletePlayerHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	if err := h.roster.DeletePlayer(r.Context(), userId, req.Name); err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "player deleted",
		Code:    http.StatusOK,
	})
}

func (h *Handler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	players, err := h.query.ListPlayers(r.Context(), userId)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: players,
	})
}

func (h *Handler) CreateGameTypeHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req gameTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	gt, err := h.roster.CreateGameType(r.Context(), userId, req.Name, req.NumPlayers, req.TeamSize, req.HalfPointsAllowed)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "gametype created",
		Code:    http.StatusCreated,
		Data:    gt,
	})
}

func (h *Handler) DeleteGameTypeHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req gameTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	if err := h.roster.DeleteGameType(r.Context(), userId, req.Name); err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "gametype deleted",
		Code:    http.StatusOK,
	})
}

func (h *Handler) ListGameTypesHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	games, err := h.query.ListGameTypes(r.Context(), userId)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: games,
	})
}
