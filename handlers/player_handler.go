package handlers

import (
	"net/http"

	"github.com/Arnaud541/BabyFootClementine/middleware"
	"github.com/Arnaud541/BabyFootClementine/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// List handles GET /utilisateurs.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, players)
}

// Me handles GET /utilisateurs/moi for the authenticated player.
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current player")
		return
	}

	player, err := h.playerService.GetByID(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, player)
}

// ListTournaments handles GET /utilisateurs/{userId}/tournois.
func (h *PlayerHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	playerID, err := getUUIDFromURL(r, "userId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.playerService.ListTournaments(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, tournaments)
}

// Subscribe handles PATCH /utilisateurs/{userId}/inscription/tournois/{tournoiId}.
func (h *PlayerHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	playerID, err := getUUIDFromURL(r, "userId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournamentID, err := getUUIDFromURL(r, "tournoiId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.Subscribe(r.Context(), playerID, tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, nil)
}

// Unsubscribe handles DELETE /utilisateurs/{userId}/inscription/tournois/{tournoiId}.
func (h *PlayerHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	playerID, err := getUUIDFromURL(r, "userId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournamentID, err := getUUIDFromURL(r, "tournoiId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.Unsubscribe(r.Context(), playerID, tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
