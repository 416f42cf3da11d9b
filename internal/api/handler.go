package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SluberskiHomeLab/panelcss/internal/buildcfg"
	"github.com/SluberskiHomeLab/panelcss/internal/store"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the record store into HTTP handlers.
type Handler struct {
	store store.Store

	clock func() time.Time

	mu              sync.RWMutex
	configUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(st store.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		store: st,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.configUpdatedAt = h.clock()
	return h
}

// MarkConfigUpdated records a config swap performed outside the HTTP surface
// (the file watcher) so updatedAt stays truthful.
func (h *Handler) MarkConfigUpdated() {
	h.mu.Lock()
	h.configUpdatedAt = h.clock()
	h.mu.Unlock()
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	cfg, err := h.store.Config()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := configResponse{
		Config:    cfg,
		UpdatedAt: h.currentConfigUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var req buildcfg.Config
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if issues := req.Issues(); len(issues) > 0 {
		writeIssues(w, http.StatusBadRequest, issues)
		return
	}

	if err := h.store.Replace(req); err != nil {
		var issue *buildcfg.Issue
		if errors.As(err, &issue) {
			writeError(w, http.StatusBadRequest, "Invalid build config", err.Error())
			return
		}
		if errors.Is(err, buildcfg.ErrInvalidGlob) {
			writeError(w, http.StatusBadRequest, "Invalid build config", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.MarkConfigUpdated()

	cfg, err := h.store.Config()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := configResponse{
		Config:    cfg,
		UpdatedAt: h.currentConfigUpdatedAt(),
		Message:   "Build config updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleValidateConfig(w http.ResponseWriter, r *http.Request) {
	var req buildcfg.Config
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	issues := req.Issues()
	resp := validateResponse{
		Valid:  len(issues) == 0,
		Issues: issuePayloads(issues),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetTokens(w http.ResponseWriter, r *http.Request) {
	_ = r
	theme, err := h.store.Theme()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := tokensResponse{
		Tokens:    theme.Tokens,
		UpdatedAt: h.currentConfigUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCoverage(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "query parameter 'path' is required")
		return
	}

	resp := coverageResponse{
		Path:    path,
		Covered: h.store.Matcher().Covers(path),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentConfigUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.configUpdatedAt
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type configResponse struct {
	Config    buildcfg.Config `json:"config"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Message   string          `json:"message,omitempty"`
}

type validateResponse struct {
	Valid  bool           `json:"valid"`
	Issues []issuePayload `json:"issues"`
}

type issuePayload struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type tokensResponse struct {
	Tokens    []buildcfg.Token `json:"tokens"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type coverageResponse struct {
	Path    string `json:"path"`
	Covered bool   `json:"covered"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string         `json:"error"`
	Details string         `json:"details,omitempty"`
	Issues  []issuePayload `json:"issues,omitempty"`
}

func issuePayloads(issues []buildcfg.Issue) []issuePayload {
	out := make([]issuePayload, 0, len(issues))
	for idx := range issues {
		issue := issues[idx]
		out = append(out, issuePayload{
			Field: issue.Field,
			Error: issue.Err.Error(),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeIssues(w http.ResponseWriter, status int, issues []buildcfg.Issue) {
	writeJSON(w, status, errorResponse{
		Error:  "Invalid build config",
		Issues: issuePayloads(issues),
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
