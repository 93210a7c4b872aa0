package handlers

import (
	"net/http"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/services"
)

type PollHandler struct {
	pollService services.PollService
}

func NewPollHandler(pollService services.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

func (h *PollHandler) Open(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Question string `json:"question"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	poll, err := h.pollService.OpenPoll(r.Context(), tournamentID, input.Question)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"poll": poll}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PollHandler) Close(w http.ResponseWriter, r *http.Request) {
	pollID, err := getIDFromURL(r, "pollID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.pollService.ClosePoll(r.Context(), pollID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"poll_id": pollID, "status": models.PollClosed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	pollID, err := getIDFromURL(r, "pollID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	poll, err := h.pollService.GetPoll(r.Context(), pollID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"poll": poll}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PollHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := getIDFromURL(r, "pollID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerID int              `json:"player_id"`
		Value    models.VoteValue `json:"value"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	vote, err := h.pollService.CastVote(r.Context(), pollID, input.PlayerID, input.Value)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"vote": vote}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PollHandler) Pools(w http.ResponseWriter, r *http.Request) {
	pollID, err := getIDFromURL(r, "pollID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pools, err := h.pollService.Pools(r.Context(), pollID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"pools": pools}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
