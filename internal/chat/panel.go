package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MegaGrindStone/finbot-web/internal/metrics"
	"github.com/MegaGrindStone/finbot-web/internal/models"
	"github.com/MegaGrindStone/finbot-web/internal/services"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Backend is the remote chat service as seen by the panel.
type Backend interface {
	Health(ctx context.Context) error
	Chat(ctx context.Context, message string) (services.ChatReply, error)
}

// Fallback texts appended in place of a reply the service could not give.
const (
	FallbackServiceError = "Sorry, I couldn't process that request. Please try again."
	FallbackUnreachable  = "Sorry, I'm having trouble connecting to the analysis service. " +
		"Please try again in a moment."
)

// Errors returned when a submission is refused. A refused submission leaves the panel untouched.
var (
	ErrEmptyDraft   = errors.New("message is empty")
	ErrComposing    = errors.New("a reply is still being composed")
	ErrDisconnected = errors.New("chat service is disconnected")
	ErrStaleRound   = errors.New("round is not pending on this panel")
)

// Panel owns the state of one chat panel: the draft, the conversation, whether a reply is being
// composed, and the connection status from the last health check.
//
// Submissions are serialised by the composing flag, so at most one chat request is in flight per panel.
type Panel struct {
	mu        sync.Mutex
	draft     string
	messages  []models.Message
	composing bool
	pending   string // ID of the user message awaiting Complete
	status    models.ConnectionStatus

	backend    Backend
	replyDelay time.Duration
	listener   Listener
	now        func() time.Time

	logger zerolog.Logger
}

// Round is an accepted submission waiting for its reply.
type Round struct {
	User models.Message
}

// Option configures a Panel.
type Option func(*Panel)

// WithReplyDelay holds back the assistant reply for d after the service answered. The delay is purely
// cosmetic; zero disables it.
func WithReplyDelay(d time.Duration) Option {
	return func(p *Panel) {
		p.replyDelay = d
	}
}

// WithListener registers l to receive every state change of the panel.
func WithListener(l Listener) Option {
	return func(p *Panel) {
		p.listener = l
	}
}

// WithLogger sets the panel logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Panel) {
		p.logger = logger.With().Str("module", "chat").Logger()
	}
}

// WithClock overrides the time source used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(p *Panel) {
		p.now = now
	}
}

// NewPanel creates a panel whose conversation starts with the greeting. The panel starts disconnected
// until CheckConnection succeeds.
func NewPanel(backend Backend, opts ...Option) *Panel {
	p := &Panel{
		status:  models.StatusDisconnected,
		backend: backend,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.messages = []models.Message{models.NewMessage(models.RoleAssistant, models.Greeting, p.now())}
	return p
}

// CheckConnection checks the service once and records the outcome.
func (p *Panel) CheckConnection(ctx context.Context) models.ConnectionStatus {
	status := models.StatusConnected
	if err := p.backend.Health(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Health check failed")
		status = models.StatusDisconnected
	}
	metrics.HealthChecks.WithLabelValues(string(status)).Inc()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = status
	p.emit(Event{Kind: EventStatus, Status: status})
	return status
}

// SetDraft records the text the page has typed into the input box. No event is emitted: the page
// already shows it, and an echo arriving after newer keystrokes would overwrite them.
func (p *Panel) SetDraft(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draft = text
}

// Submit accepts draft for sending: it appends the trimmed text as a user message, clears the draft and
// marks the panel as composing. The returned Round must be passed to Complete.
func (p *Panel) Submit(draft string) (Round, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.submitLocked(draft)
}

func (p *Panel) submitLocked(draft string) (Round, error) {
	text := strings.TrimSpace(draft)
	switch {
	case text == "":
		metrics.Submissions.WithLabelValues("empty").Inc()
		return Round{}, ErrEmptyDraft
	case p.composing:
		metrics.Submissions.WithLabelValues("composing").Inc()
		return Round{}, ErrComposing
	case !p.status.Connected():
		metrics.Submissions.WithLabelValues("disconnected").Inc()
		return Round{}, ErrDisconnected
	}
	metrics.Submissions.WithLabelValues("accepted").Inc()

	msg := models.NewMessage(models.RoleUser, text, p.now())
	p.messages = append(p.messages, msg)
	p.emit(Event{Kind: EventMessage, Message: msg})

	p.draft = ""
	p.emit(Event{Kind: EventDraft})

	p.composing = true
	p.pending = msg.ID
	p.emit(Event{Kind: EventComposing, Composing: true})

	return Round{User: msg}, nil
}

// Complete sends the round's text to the service and appends the assistant reply, or a fallback text
// when the service failed or could not be reached. The composing flag is cleared in the same step the
// reply is appended. Transport failures don't change the connection status.
func (p *Panel) Complete(ctx context.Context, r Round) (models.Message, error) {
	p.mu.Lock()
	if !p.composing || p.pending != r.User.ID {
		p.mu.Unlock()
		return models.Message{}, ErrStaleRound
	}
	p.pending = ""
	p.mu.Unlock()

	text := p.exchange(ctx, r.User.Text)

	if p.replyDelay > 0 {
		t := time.NewTimer(p.replyDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := models.NewMessage(models.RoleAssistant, text, p.now())
	p.messages = append(p.messages, msg)
	p.emit(Event{Kind: EventMessage, Message: msg})

	p.composing = false
	p.emit(Event{Kind: EventComposing, Composing: false})

	return msg, nil
}

func (p *Panel) exchange(ctx context.Context, text string) string {
	start := time.Now()
	reply, err := p.backend.Chat(ctx, text)
	metrics.ChatLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Error().Err(err).Msg("Chat request failed")
		metrics.Replies.WithLabelValues("unreachable").Inc()
		return FallbackUnreachable
	}
	if !reply.Success {
		p.logger.Warn().Str("response", reply.Response).Msg("Chat service reported failure")
		metrics.Replies.WithLabelValues("service_error").Inc()
		return FallbackServiceError
	}

	metrics.Replies.WithLabelValues("success").Inc()
	return reply.Response
}

// Send submits draft and waits for the reply.
func (p *Panel) Send(ctx context.Context, draft string) (models.Message, error) {
	r, err := p.Submit(draft)
	if err != nil {
		return models.Message{}, err
	}
	return p.Complete(ctx, r)
}

// SelectSuggestion puts the chip's prompt in the input box and submits it, the same as typing it.
func (p *Panel) SelectSuggestion(chip models.SuggestionChip) (Round, error) {
	return p.selectPrompt(chip.Prompt)
}

// SelectQuickAction puts the action's prompt in the input box and submits it, the same as typing it.
func (p *Panel) SelectQuickAction(action models.QuickAction) (Round, error) {
	return p.selectPrompt(action.Prompt)
}

func (p *Panel) selectPrompt(prompt string) (Round, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Shortcuts are disabled while disconnected, so the draft isn't touched either.
	if !p.status.Connected() {
		metrics.Submissions.WithLabelValues("disconnected").Inc()
		return Round{}, ErrDisconnected
	}

	p.draft = prompt
	p.emit(Event{Kind: EventDraft, Draft: prompt})

	return p.submitLocked(prompt)
}

// Messages returns a copy of the conversation in the order it was appended.
func (p *Panel) Messages() []models.Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := make([]models.Message, len(p.messages))
	copy(msgs, p.messages)
	return msgs
}

func (p *Panel) Draft() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

func (p *Panel) Composing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.composing
}

func (p *Panel) Status() models.ConnectionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// ShowSuggestions reports whether the suggestion chips are visible: only while the conversation holds
// nothing but the greeting.
func (p *Panel) ShowSuggestions() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages) == 1
}

// emit must be called with p.mu held, which keeps events in the order the state changed.
func (p *Panel) emit(e Event) {
	if p.listener == nil {
		return
	}
	p.listener(e)
}
