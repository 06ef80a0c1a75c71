package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Backend is a client for the remote chat service. It knows two endpoints: a health check and the chat
// exchange. Every call is a single attempt; retrying is up to the caller.
type Backend struct {
	baseURL string
	client  *http.Client

	logger zerolog.Logger
}

// ChatReply is the decoded body of a chat exchange.
type ChatReply struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// StatusError is returned when the service answers with a non-success HTTP status.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Path, e.StatusCode)
}

// NewBackend creates a client for the service rooted at baseURL. A zero timeout leaves requests bound
// only by their context.
func NewBackend(baseURL string, timeout time.Duration, logger zerolog.Logger) (Backend, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Backend{}, errors.Wrap(err, "failed to parse backend url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Backend{}, errors.Errorf("backend url %q must be http or https", baseURL)
	}

	return Backend{
		baseURL: strings.TrimRight(u.String(), "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("module", "backend").Logger(),
	}, nil
}

// BaseURL returns the normalized root of the service.
func (b Backend) BaseURL() string {
	return b.baseURL
}

// Health checks GET /health. Any transport failure or status outside 2xx is an error; the body is
// ignored.
func (b Backend) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return errors.Wrap(err, "failed to create health request")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to reach backend")
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StatusError{Path: "/health", StatusCode: resp.StatusCode}
	}
	return nil
}

// Chat sends message to POST /chat and decodes the reply. A reply with Success set to false is not an
// error; it is returned as is for the caller to interpret.
func (b Backend) Chat(ctx context.Context, message string) (ChatReply, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return ChatReply{}, errors.Wrap(err, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return ChatReply{}, errors.Wrap(err, "failed to create chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		return ChatReply{}, errors.Wrap(err, "failed to reach backend")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ChatReply{}, StatusError{Path: "/chat", StatusCode: resp.StatusCode}
	}

	var reply ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return ChatReply{}, errors.Wrap(err, "failed to decode chat response")
	}

	b.logger.Debug().
		Bool("success", reply.Success).
		Int("responseLength", len(reply.Response)).
		Dur("latency", time.Since(start)).
		Msg("Chat exchange completed")

	return reply, nil
}
