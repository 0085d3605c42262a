package providers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bridgekit-ai/aibridge/types"
)

// NewResponse assembles the uniform response for a completed vendor call
func NewResponse(provider Provider, model string, task types.TaskType, content string,
	usage types.TokenUsage, elapsed time.Duration, cost decimal.Decimal,
	metadata map[string]string) *types.Response {
	return &types.Response{
		ID:           uuid.New().String(),
		Provider:     string(provider),
		Model:        model,
		Task:         task,
		Content:      content,
		TokenUsage:   usage,
		ResponseTime: elapsed,
		CostUSD:      cost.String(),
		Metadata:     metadata,
	}
}
