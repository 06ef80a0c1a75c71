package handlers

import (
	"net/http"
	"time"

	"github.com/MegaGrindStone/finbot-web/internal/chat"
	"github.com/MegaGrindStone/finbot-web/internal/market"
	"github.com/MegaGrindStone/finbot-web/internal/models"
	"github.com/MegaGrindStone/finbot-web/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tmaxmax/go-sse"
)

type suggestion struct {
	Index int
	models.SuggestionChip
}

type quickAction struct {
	Index int
	models.QuickAction
}

type homePageData struct {
	PageID          string
	Messages        []message
	Draft           string
	Composing       bool
	Connection      connection
	ShowSuggestions bool
	Suggestions     []suggestion
	QuickActions    []quickAction
	Sidebar         sidebar
}

// HandleHome mounts a new page: it creates fresh chat and sidebar panels, checks the chat service once
// and renders the whole page.
func (m Main) HandleHome(w http.ResponseWriter, r *http.Request) {
	pageID := uuid.New().String()

	panel := chat.NewPanel(m.backend,
		chat.WithReplyDelay(m.replyDelay),
		chat.WithListener(m.publisher(pageID)),
		chat.WithLogger(m.logger.With().Str("pageID", pageID).Logger()),
	)
	s := session.New(pageID, panel, market.NewSidebar(market.MockSnapshot()), m.sessions.Now())
	m.sessions.Add(s)

	panel.CheckConnection(r.Context())

	data, err := m.pageData(s)
	if err != nil {
		m.logger.Error().Str(errLoggerKey, err.Error()).Msg("Failed to build page data")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := m.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		m.logger.Error().Str(errLoggerKey, err.Error()).Msg("Failed to execute home template")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (m Main) pageData(s *session.Session) (homePageData, error) {
	msgs := s.Chat.Messages()
	views := make([]message, len(msgs))
	for i, msg := range msgs {
		v, err := m.messageView(msg)
		if err != nil {
			return homePageData{}, err
		}
		views[i] = v
	}

	chips := models.SuggestionChips()
	suggestions := make([]suggestion, len(chips))
	for i, c := range chips {
		suggestions[i] = suggestion{Index: i, SuggestionChip: c}
	}

	actions := models.QuickActions()
	quickActions := make([]quickAction, len(actions))
	for i, a := range actions {
		quickActions[i] = quickAction{Index: i, QuickAction: a}
	}

	return homePageData{
		PageID:          s.ID,
		Messages:        views,
		Draft:           s.Chat.Draft(),
		Composing:       s.Chat.Composing(),
		Connection:      connection{PageID: s.ID, Connected: s.Chat.Status().Connected()},
		ShowSuggestions: s.Chat.ShowSuggestions(),
		Suggestions:     suggestions,
		QuickActions:    quickActions,
		Sidebar:         sidebarView(s.ID, s.Sidebar),
	}, nil
}

// page looks up the session named by the {pageID} URL parameter, answering 404 when it is gone.
func (m Main) page(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	pageID := chi.URLParam(r, "pageID")
	s, ok := m.sessions.Get(pageID)
	if !ok {
		m.logger.Warn().Str("pageID", pageID).Msg("Page not found")
		http.Error(w, "Page not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// HandleClose unmounts the page. Browsers call it when the page is hidden for good.
func (m Main) HandleClose(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	if !m.sessions.Remove(pageID) {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	m.closePage(pageID)
	w.WriteHeader(http.StatusNoContent)
}

// SweepPages unmounts the pages idle for longer than maxIdle and tells any stream still open for them to
// stop. It returns the number of pages removed.
func (m Main) SweepPages(maxIdle time.Duration) int {
	removed := m.sessions.Sweep(maxIdle)
	for _, pageID := range removed {
		m.closePage(pageID)
	}
	if len(removed) > 0 {
		m.logger.Info().Int("pages", len(removed)).Msg("Swept idle pages")
	}
	return len(removed)
}

func (m Main) closePage(pageID string) {
	e := &sse.Message{Type: closePageSSEType}
	e.AppendData("bye")

	if err := m.sseSrv.Publish(e, pageTopic(pageID)); err != nil {
		m.logger.Warn().Str("pageID", pageID).Str(errLoggerKey, err.Error()).Msg("Failed to publish close event")
	}
}

// HandleSSE streams the events of the page named by the page_id query parameter. The page is kept
// mounted for as long as the stream stays open.
func (m Main) HandleSSE(w http.ResponseWriter, r *http.Request) {
	if s, ok := m.sessions.Get(r.URL.Query().Get("page_id")); ok {
		s.StreamOpened()
		defer func() { s.StreamClosed(m.sessions.Now()) }()
	}

	m.sseSrv.ServeHTTP(w, r)
}
