package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MegaGrindStone/finbot-web/internal/services"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "trailing slash trimmed", baseURL: "http://localhost:8000/", want: "http://localhost:8000"},
		{name: "path kept", baseURL: "https://example.com/api", want: "https://example.com/api"},
		{name: "missing scheme", baseURL: "localhost:8000", wantErr: true},
		{name: "unsupported scheme", baseURL: "ftp://example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := services.NewBackend(tt.baseURL, time.Second, zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.BaseURL())
		})
	}
}

func TestBackendHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content", status: http.StatusNoContent},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
		{name: "not found", status: http.StatusNotFound, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				assert.Equal(t, http.MethodGet, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			b, err := services.NewBackend(srv.URL, time.Second, zerolog.Nop())
			require.NoError(t, err)

			err = b.Health(context.Background())
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var statusErr services.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
		})
	}
}

func TestBackendHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	b, err := services.NewBackend(url, time.Second, zerolog.Nop())
	require.NoError(t, err)

	assert.Error(t, b.Health(context.Background()))
}

func TestBackendChat(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    services.ChatReply
		wantErr bool
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"success":true,"response":"NVDA is up"}`,
			want:   services.ChatReply{Success: true, Response: "NVDA is up"},
		},
		{
			name:   "application failure",
			status: http.StatusOK,
			body:   `{"success":false}`,
			want:   services.ChatReply{Success: false},
		},
		{
			name:   "extra fields ignored",
			status: http.StatusOK,
			body:   `{"success":true,"response":"hi","data":null}`,
			want:   services.ChatReply{Success: true, Response: "hi"},
		},
		{name: "http error", status: http.StatusBadGateway, body: `{}`, wantErr: true},
		{name: "malformed body", status: http.StatusOK, body: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req struct {
					Message string `json:"message"`
				}
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "How is NVDA doing?", req.Message)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			b, err := services.NewBackend(srv.URL, time.Second, zerolog.Nop())
			require.NoError(t, err)

			got, err := b.Chat(context.Background(), "How is NVDA doing?")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackendChatTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	b, err := services.NewBackend(srv.URL, 50*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)

	_, err = b.Chat(context.Background(), "hello")
	assert.Error(t, err)
}
