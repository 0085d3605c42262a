package types

import "time"

// HealthState represents the coarse availability of a provider
type HealthState string

const (
	HealthUnknown   HealthState = "unknown"
	HealthHealthy   HealthState = "healthy"
	HealthDegraded  HealthState = "degraded"
	HealthUnhealthy HealthState = "unhealthy"
)

// Selectable reports whether the selector may consider a provider in this
// state. Unknown counts as selectable: a provider is assumed reachable until
// a probe says otherwise.
func (s HealthState) Selectable() bool {
	return s != HealthUnhealthy
}

// ProviderHealth is the per-provider health record. Overwritten in place by
// each health check, never destroyed.
type ProviderHealth struct {
	Status      HealthState `json:"status"`
	LastError   string      `json:"last_error,omitempty"`
	LastChecked time.Time   `json:"last_checked,omitempty"`
}

// UsageStats is the per-provider usage accumulator. Updated after every
// completed request, including successful fallbacks.
type UsageStats struct {
	Requests         int64         `json:"requests"`
	PromptTokens     int64         `json:"prompt_tokens"`
	CompletionTokens int64         `json:"completion_tokens"`
	TotalTokens      int64         `json:"total_tokens"`
	TotalCostUSD     string        `json:"total_cost_usd"`
	AvgResponseTime  time.Duration `json:"avg_response_time"`
}
