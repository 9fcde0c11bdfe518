package dto

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// WebhookResponse acknowledges a webhook delivery.
type WebhookResponse struct {
	OK      bool   `json:"ok"`
	Outcome string `json:"outcome,omitempty"`
}
