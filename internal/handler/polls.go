package handler

import (
	"net/http"

	"github.com/msomdec/employee-polls/internal/domain"
	"github.com/msomdec/employee-polls/internal/service"
	"github.com/msomdec/employee-polls/internal/state"
)

// PollHandler handles poll listing, creation, and answering. Poll views
// are always computed for the effective current user, so an active
// impersonation changes what these endpoints return.
type PollHandler struct {
	polls *service.PollService
	state *state.State
}

// NewPollHandler creates a new PollHandler.
func NewPollHandler(polls *service.PollService, st *state.State) *PollHandler {
	return &PollHandler{polls: polls, state: st}
}

// HandleUnanswered lists polls the effective user has not answered yet,
// newest first.
// GET /api/polls/unanswered
// Response: {"polls": [...]}
func (h *PollHandler) HandleUnanswered(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"polls": toPollDTOs(h.state.UnansweredPolls()),
	})
}

// HandleAnswered lists polls the effective user has answered, newest
// first, each carrying the chosen option.
// GET /api/polls/answered
// Response: {"polls": [...]}
func (h *PollHandler) HandleAnswered(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"polls": toPollDTOs(h.state.AnsweredPolls()),
	})
}

// HandleGet returns a single poll.
// GET /api/polls/{id}
// Response: {"poll": {...}}
func (h *PollHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, ok := h.state.PollByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"poll": toPollDTO(view)})
}

// HandleCreate makes a new poll authored by the effective current user.
// POST /api/polls
// Request:  {"optionOneText":"...","optionTwoText":"..."}
// Response: {"poll": {...}}
func (h *PollHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OptionOneText string `json:"optionOneText"`
		OptionTwoText string `json:"optionTwoText"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	author, ok := h.state.EffectiveCurrentUser()
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	question, err := h.polls.Create(r.Context(), author.ID, req.OptionOneText, req.OptionTwoText)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	view, _ := h.state.PollByID(question.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"poll": toPollDTO(view)})
}

// HandleAnswer records the effective current user's vote on a poll.
// POST /api/polls/{id}/answers
// Request:  {"option":"optionOne"|"optionTwo"}
// Response: {"poll": {...}}
func (h *PollHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option domain.OptionKey `json:"option"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, ok := h.state.EffectiveCurrentUser()
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	questionID := r.PathValue("id")
	if err := h.polls.Answer(r.Context(), user.ID, questionID, req.Option); err != nil {
		writeDomainError(w, err)
		return
	}

	view, _ := h.state.PollByID(questionID)
	writeJSON(w, http.StatusOK, map[string]any{"poll": toPollDTO(view)})
}
