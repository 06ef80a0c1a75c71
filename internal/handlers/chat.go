package handlers

import (
	"net/http"
	"strconv"

	"github.com/MegaGrindStone/finbot-web/internal/chat"
	"github.com/MegaGrindStone/finbot-web/internal/models"
	"github.com/MegaGrindStone/finbot-web/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// HandleMessages submits the "message" form field on the page's chat panel.
//
// An accepted message is answered with 202 Accepted; the user message, the composing indicator and
// the assistant reply all reach the page as SSE events. A refused message leaves the panel untouched
// and is answered with 400 (empty), 409 (a reply is still being composed) or 503 (service
// disconnected).
func (m Main) HandleMessages(w http.ResponseWriter, r *http.Request) {
	s, ok := m.page(w, r)
	if !ok {
		return
	}

	round, err := s.Chat.Submit(r.FormValue("message"))
	if err != nil {
		m.refuse(w, err)
		return
	}

	m.startRound(s, round)
	w.WriteHeader(http.StatusAccepted)
}

// HandleSuggestion selects the suggestion chip at the {index} URL parameter.
func (m Main) HandleSuggestion(w http.ResponseWriter, r *http.Request) {
	s, ok := m.page(w, r)
	if !ok {
		return
	}

	chips := models.SuggestionChips()
	idx, ok := indexParam(r, len(chips))
	if !ok {
		http.Error(w, "Suggestion not found", http.StatusNotFound)
		return
	}

	round, err := s.Chat.SelectSuggestion(chips[idx])
	if err != nil {
		m.refuse(w, err)
		return
	}

	m.startRound(s, round)
	w.WriteHeader(http.StatusAccepted)
}

// HandleQuickAction selects the quick action at the {index} URL parameter.
func (m Main) HandleQuickAction(w http.ResponseWriter, r *http.Request) {
	s, ok := m.page(w, r)
	if !ok {
		return
	}

	actions := models.QuickActions()
	idx, ok := indexParam(r, len(actions))
	if !ok {
		http.Error(w, "Quick action not found", http.StatusNotFound)
		return
	}

	round, err := s.Chat.SelectQuickAction(actions[idx])
	if err != nil {
		m.refuse(w, err)
		return
	}

	m.startRound(s, round)
	w.WriteHeader(http.StatusAccepted)
}

// HandleDraft stores the "draft" form field as the text of the page's input box.
func (m Main) HandleDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := m.page(w, r)
	if !ok {
		return
	}

	s.Chat.SetDraft(r.FormValue("draft"))
	w.WriteHeader(http.StatusNoContent)
}

// HandleConnection checks the chat service again on the user's request and renders the resulting
// connection banner.
func (m Main) HandleConnection(w http.ResponseWriter, r *http.Request) {
	s, ok := m.page(w, r)
	if !ok {
		return
	}

	status := s.Chat.CheckConnection(r.Context())

	err := m.templates.ExecuteTemplate(w, "connection_banner", connection{
		PageID:    s.ID,
		Connected: status.Connected(),
	})
	if err != nil {
		m.logger.Error().Str(errLoggerKey, err.Error()).Msg("Failed to execute connection template")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// startRound waits for the reply of an accepted submission in the background. The reply is delivered
// to the page by the panel's listener. Once shutdown has begun the round completes right away against
// the cancelled context, so the panel still gets its fallback reply and leaves the composing state.
func (m Main) startRound(s *session.Session, round chat.Round) {
	if !m.rounds.add() {
		m.completeRound(s, round)
		return
	}

	go func() {
		defer m.rounds.done()
		m.completeRound(s, round)
	}()
}

func (m Main) completeRound(s *session.Session, round chat.Round) {
	if _, err := s.Chat.Complete(m.roundsCtx, round); err != nil {
		m.logger.Error().
			Str("pageID", s.ID).
			Str(errLoggerKey, err.Error()).
			Msg("Failed to complete chat round")
	}
}

func (m Main) refuse(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, chat.ErrEmptyDraft):
		status = http.StatusBadRequest
	case errors.Is(err, chat.ErrComposing):
		status = http.StatusConflict
	case errors.Is(err, chat.ErrDisconnected):
		status = http.StatusServiceUnavailable
	}

	m.logger.Debug().Str(errLoggerKey, err.Error()).Int("status", status).Msg("Submission refused")
	http.Error(w, err.Error(), status)
}

func indexParam(r *http.Request, n int) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
