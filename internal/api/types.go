package api

// ==================== Token Deployment ====================

// DeployTokenRequest represents a request to deploy a new token
type DeployTokenRequest struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// DeployTokenResponse represents a successful deployment
type DeployTokenResponse struct {
	TokenAddress string `json:"tokenAddress"`
}

// ==================== Error Response ====================

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ==================== Health Check ====================

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Chain     string `json:"chain,omitempty"`
	Connected bool   `json:"connected"`
}
