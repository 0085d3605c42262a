package models

// Model ids
const (
	ModelClaudeSonnet4   = "claude-sonnet-4-20250514"
	ModelClaude3_7Sonnet = "claude-3-7-sonnet-20250219"
	ModelClaude3_5Haiku  = "claude-3-5-haiku-20241022"
)

// AnthropicModels contains all Anthropic model definitions
var AnthropicModels = map[string]ModelConfig{
	ModelClaudeSonnet4: {
		ID:            ModelClaudeSonnet4,
		DisplayName:   "Claude Sonnet 4",
		Provider:      ProviderAnthropic,
		ContextWindow: 200000,
		MaxOutput:     64000,
		Cost: ModelCost{
			InputUSDPer1K:  "0.003",
			OutputUSDPer1K: "0.015",
		},
		QualityRank:         1,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "vision", "json", "reasoning"},
	},
	ModelClaude3_7Sonnet: {
		ID:            ModelClaude3_7Sonnet,
		DisplayName:   "Claude 3.7 Sonnet",
		Provider:      ProviderAnthropic,
		ContextWindow: 200000,
		MaxOutput:     64000,
		Cost: ModelCost{
			InputUSDPer1K:  "0.003",
			OutputUSDPer1K: "0.015",
		},
		QualityRank:         2,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "vision", "json"},
	},
	ModelClaude3_5Haiku: {
		ID:            ModelClaude3_5Haiku,
		DisplayName:   "Claude 3.5 Haiku",
		Provider:      ProviderAnthropic,
		ContextWindow: 200000,
		MaxOutput:     8192,
		Cost: ModelCost{
			InputUSDPer1K:  "0.0008",
			OutputUSDPer1K: "0.004",
		},
		QualityRank:         4,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "json"},
	},
}
