package handlers

import (
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	finbotweb "github.com/MegaGrindStone/finbot-web"
	"github.com/MegaGrindStone/finbot-web/internal/chat"
	"github.com/MegaGrindStone/finbot-web/internal/session"
	"github.com/rs/zerolog"
	"github.com/tmaxmax/go-sse"
	"github.com/yuin/goldmark"
)

// Main serves the chat page. Each page load mounts a session holding its own chat and sidebar panels;
// state changes of the chat panel are pushed to that page over server-sent events.
type Main struct {
	sseSrv    *sse.Server
	templates *template.Template
	markdown  goldmark.Markdown

	backend    chat.Backend
	sessions   *session.Store
	replyDelay time.Duration

	// Rounds outlive the request that started them; they are bound to the server lifetime instead.
	roundsCtx    context.Context
	cancelRounds context.CancelFunc
	rounds       *rounds

	logger zerolog.Logger
}

const errLoggerKey = "err"

// NewMain creates a Main answering through backend and keeping pages in sessions. replyDelay is passed
// to every chat panel it mounts. Templates are parsed from the embedded filesystem.
func NewMain(backend chat.Backend, sessions *session.Store, replyDelay time.Duration, logger zerolog.Logger) (Main, error) {
	// We parse templates from three distinct directories to separate layout, pages, and partial views
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(
		finbotweb.TemplateFS,
		"templates/layout/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return Main{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := Main{
		templates:    tmpl,
		markdown:     newMarkdown(),
		backend:      backend,
		sessions:     sessions,
		replyDelay:   replyDelay,
		roundsCtx:    ctx,
		cancelRounds: cancel,
		rounds:       &rounds{},
		logger:       logger.With().Str("module", "handlers").Logger(),
	}

	m.sseSrv = &sse.Server{
		OnSession: func(s *sse.Session) (sse.Subscription, bool) {
			pageID := s.Req.URL.Query().Get("page_id")
			if _, ok := m.sessions.Get(pageID); !ok {
				return sse.Subscription{}, false
			}

			return sse.Subscription{
				Client:      s,
				LastEventID: s.LastEventID,
				Topics:      []string{sse.DefaultTopic, pageTopic(pageID)},
			}, true
		},
	}

	return m, nil
}

// rounds tracks the background chat rounds. Once closed it admits no new ones, so close can wait for
// the running rounds without racing a late add.
type rounds struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func (r *rounds) add() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.wg.Add(1)
	return true
}

func (r *rounds) done() {
	r.wg.Done()
}

func (r *rounds) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
}

func pageTopic(pageID string) string {
	return fmt.Sprintf("page-%s", pageID)
}

// Shutdown tells every connected page to stop listening, cancels the chat rounds still waiting for a
// reply and waits up to 5 seconds for connections to terminate.
func (m Main) Shutdown(ctx context.Context) error {
	e := &sse.Message{Type: closePageSSEType}
	// Events without data are dropped by browsers
	e.AppendData("bye")

	// We ignore the error here since we're shutting down anyway
	_ = m.sseSrv.Publish(e)

	m.cancelRounds()
	m.rounds.close()

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	return m.sseSrv.Shutdown(ctx)
}
