package providers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

var _1K = decimal.NewFromInt(1000)

// ComputeCost computes the exact cost of a completed request from the
// vendor-reported token usage and the model's per-1K rates:
//
//	prompt/1000 * inputRate + completion/1000 * outputRate
func ComputeCost(model models.ModelConfig, usage types.TokenUsage) decimal.Decimal {
	inputUSD := requireFromString(model.Cost.InputUSDPer1K).
		Mul(decimal.NewFromInt(usage.Prompt)).Div(_1K)
	outputUSD := requireFromString(model.Cost.OutputUSDPer1K).
		Mul(decimal.NewFromInt(usage.Completion)).Div(_1K)
	return inputUSD.Add(outputUSD)
}

// EstimateCost produces a rough pre-call cost estimate for selection, before
// real usage exists: a word-count token approximation of the input plus a
// per-task default output assumption. Kept separate from ComputeCost so the
// heuristic never masquerades as the exact figure.
func EstimateCost(model models.ModelConfig, req types.Request) decimal.Decimal {
	promptTokens := EstimateTokens(req.Content)
	for k, v := range req.Context {
		promptTokens += EstimateTokens(k) + EstimateTokens(v)
	}
	if req.SystemPrompt != "" {
		promptTokens += EstimateTokens(req.SystemPrompt)
	}

	outputTokens := int64(DefaultOutputTokens(req.Task))
	if req.MaxTokens > 0 && int64(req.MaxTokens) < outputTokens {
		outputTokens = int64(req.MaxTokens)
	}

	return ComputeCost(model, types.TokenUsage{
		Prompt:     promptTokens,
		Completion: outputTokens,
		Total:      promptTokens + outputTokens,
	})
}

// EstimateTokens approximates the token count of free text as words * 4/3,
// the common english-prose heuristic.
func EstimateTokens(text string) int64 {
	words := int64(len(strings.Fields(text)))
	if words == 0 {
		return 0
	}
	tokens := words * 4 / 3
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// DefaultOutputTokens returns the output-token assumption used when
// estimating cost before the call.
func DefaultOutputTokens(task types.TaskType) int {
	switch task {
	case types.TaskClassify, types.TaskExtract:
		return 256
	case types.TaskSummarize, types.TaskSuggest:
		return 512
	default:
		return 1024
	}
}

func requireFromString(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	return decimal.RequireFromString(s)
}

// AddDecimals sums decimal strings, treating empty strings as zero
func AddDecimals(nums ...string) string {
	sum := decimal.Zero
	for _, num := range nums {
		sum = sum.Add(requireFromString(num))
	}
	return sum.String()
}
