package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MegaGrindStone/finbot-web/internal/api"
	"github.com/MegaGrindStone/finbot-web/internal/responder"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() http.Handler {
	return api.NewRouter(zerolog.Nop(), responder.New(responder.MockQuotes()))
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestRoot(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestChat(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantSuccess bool
		wantText    string
	}{
		{
			name:        "canned rule",
			body:        `{"message":"Analyze AAPL"}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantText:    "AAPL Technical Snapshot",
		},
		{
			name:        "analysis",
			body:        `{"message":"  how about TSLA  "}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantText:    "Looking at Tesla",
		},
		{
			name:        "data failure",
			body:        `{"message":"AMZN"}`,
			wantStatus:  http.StatusOK,
			wantSuccess: false,
			wantText:    "trouble pulling the latest data for AMZN",
		},
		{
			name:       "malformed",
			body:       `{"message":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newRouter().ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			var resp api.ChatResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantSuccess, resp.Success)
			if tt.wantText != "" {
				assert.Contains(t, resp.Response, tt.wantText)
			}
		})
	}
}

func TestChatData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"How about MSFT"}`))
	w := httptest.NewRecorder()

	newRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.ChatResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "MSFT", resp.Data.Ticker)
	assert.Equal(t, responder.Buy, resp.Data.Recommendation)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name        string
		ticker      string
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{
			name:        "quoted ticker",
			ticker:      "NVDA",
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Analysis completed for NVDA",
		},
		{
			name:        "lower case",
			ticker:      "tsla",
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Analysis completed for TSLA",
		},
		{
			name:       "known ticker without quote",
			ticker:     "AMZN",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown ticker",
			ticker:     "ZZZZ",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze/"+tt.ticker, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			var resp api.AnalyzeResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantSuccess, resp.Success)
			if !tt.wantSuccess {
				assert.Nil(t, resp.Data)
				assert.Contains(t, resp.Detail, strings.ToUpper(tt.ticker))
				return
			}
			assert.Equal(t, tt.wantMessage, resp.Message)
			require.NotNil(t, resp.Data)
			assert.Equal(t, strings.ToUpper(tt.ticker), resp.Data.Ticker)
		})
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	newRouter().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
