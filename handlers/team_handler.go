package handlers

import (
	"net/http"

	"github.com/Arnaud541/BabyFootClementine/services"
)

type TeamHandler struct {
	rosterService services.RosterService
}

func NewTeamHandler(rs services.RosterService) *TeamHandler {
	return &TeamHandler{rosterService: rs}
}

// CreateTeams handles POST /tournois/{tournoiId}/equipes.
func (h *TeamHandler) CreateTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournoiId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Teams []services.TeamProposal `json:"equipes"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	for _, proposal := range input.Teams {
		if err := validate.Struct(proposal); err != nil {
			failedValidationResponse(w, r, err)
			return
		}
	}

	if err := h.rosterService.CreateTeams(r.Context(), tournamentID, input.Teams); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	successResponse(w, r, http.StatusCreated, nil)
}

// UpdateTeam handles PATCH /tournois/{tournoiId}/equipes/{equipeId}:
// a rename, member swaps, or both.
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournoiId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getUUIDFromURL(r, "equipeId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	if err := h.rosterService.UpdateTeam(r.Context(), tournamentID, teamID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	successResponse(w, r, http.StatusOK, nil)
}

// DeleteTeam handles DELETE /tournois/{tournoiId}/equipes/{equipeId}.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournoiId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getUUIDFromURL(r, "equipeId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.DeleteTeam(r.Context(), tournamentID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
