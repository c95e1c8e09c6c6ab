package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"launchpad/backend/internal/deploy"
)

// TokenDeployer is what the HTTP layer needs from the deployment service
type TokenDeployer interface {
	DeployToken(ctx context.Context, name, symbol string) (string, *deploy.Error)
}

// ConnectionChecker reports node reachability for the health endpoint
type ConnectionChecker interface {
	IsConnected(ctx context.Context) bool
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	deployer  TokenDeployer
	node      ConnectionChecker
	chainName string
	logger    *zap.Logger
}

// NewHandler creates a new API handler. node may be nil when no RPC
// endpoint is configured.
func NewHandler(deployer TokenDeployer, node ConnectionChecker, chainName string, logger *zap.Logger) *Handler {
	return &Handler{
		deployer:  deployer,
		node:      node,
		chainName: chainName,
		logger:    logger,
	}
}

// ==================== Health Check ====================

// HandleHealth returns service health status
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.node != nil && h.node.IsConnected(r.Context())

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Chain:     h.chainName,
		Connected: connected,
	})
}

// ==================== Token Deployment ====================

// HandleDeployToken handles POST /deploy-token. Request validation lives
// here; everything past a well-formed (name, symbol) pair is the deployment
// pipeline's concern.
func (h *Handler) HandleDeployToken(w http.ResponseWriter, r *http.Request) {
	var req DeployTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Symbol == "" {
		respondError(w, http.StatusBadRequest, "Missing token name or symbol")
		return
	}

	h.logger.Info("Received deployment request",
		zap.String("name", req.Name),
		zap.String("symbol", req.Symbol))

	address, derr := h.deployer.DeployToken(r.Context(), req.Name, req.Symbol)
	if derr != nil {
		respondError(w, statusForError(derr), derr.Reason)
		return
	}

	respondJSON(w, http.StatusOK, DeployTokenResponse{TokenAddress: address})
}

// statusForError maps pipeline failures to transport status codes. All
// failures are server-side from the caller's point of view; the stage and
// kind are already folded into the reason string.
func statusForError(derr *deploy.Error) int {
	switch derr.Kind {
	case deploy.KindConfiguration:
		return http.StatusInternalServerError
	case deploy.KindNodeUnreachable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ==================== Helper Functions ====================

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already written, nothing more to do
		return
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}
