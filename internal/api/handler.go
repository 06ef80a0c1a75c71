package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MegaGrindStone/finbot-web/internal/metrics"
	"github.com/MegaGrindStone/finbot-web/internal/responder"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler serves the reference chat service endpoints.
type Handler struct {
	responder responder.Responder
	logger    zerolog.Logger
}

// NewHandler creates a Handler answering chat requests with resp.
func NewHandler(resp responder.Responder, logger zerolog.Logger) *Handler {
	return &Handler{
		responder: resp,
		logger:    logger.With().Str("module", "api").Logger(),
	}
}

// RootResponse is the body of GET /.
type RootResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply of POST /chat. Response is omitted only for rejected requests; Data is null
// unless the reply is a ticker analysis.
type ChatResponse struct {
	Success  bool                `json:"success"`
	Response string              `json:"response,omitempty"`
	Data     *responder.Analysis `json:"data"`
	Error    string              `json:"error,omitempty"`
}

// AnalyzeResponse is the body of GET /analyze/{ticker}.
type AnalyzeResponse struct {
	Success bool                `json:"success"`
	Data    *responder.Analysis `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Detail  string              `json:"detail,omitempty"`
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// Root handles the root endpoint.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	h.JSON(w, http.StatusOK, RootResponse{Message: "FinBot chat service is running"})
}

// Health handles the health check endpoint.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.JSON(w, http.StatusOK, HealthResponse{Status: "healthy", Message: "API is operational"})
}

// Chat answers a chat message with the responder.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Invalid chat request")
		h.JSON(w, http.StatusBadRequest, ChatResponse{Success: false, Error: "invalid request body"})
		return
	}

	reply := h.responder.Respond(strings.TrimSpace(req.Message))
	metrics.ResponderRules.WithLabelValues(reply.Rule).Inc()

	h.logger.Debug().
		Str("rule", reply.Rule).
		Bool("success", reply.Success).
		Msg("Chat answered")

	h.JSON(w, http.StatusOK, ChatResponse{
		Success:  reply.Success,
		Response: reply.Text,
		Data:     reply.Data,
	})
}

// Analyze returns the analysis data of the {ticker} URL parameter.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	data, ok := h.responder.Analyze(ticker)
	if !ok {
		h.logger.Debug().Str("ticker", ticker).Msg("No quote for ticker")
		h.JSON(w, http.StatusBadRequest, AnalyzeResponse{
			Success: false,
			Detail:  fmt.Sprintf("no price data for %s", ticker),
		})
		return
	}

	h.JSON(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    &data,
		Message: fmt.Sprintf("Analysis completed for %s", ticker),
	})
}
