package models

// Model ids
const (
	ModelGPT4_1      = "gpt-4.1"
	ModelGPT4_1_Mini = "gpt-4.1-mini"
	ModelGPT4o       = "gpt-4o"
	ModelGPT4oMini   = "gpt-4o-mini"
	ModelGPTo3       = "o3"
	ModelGPTo4Mini   = "o4-mini"
)

// OpenAIModels contains all OpenAI model definitions
var OpenAIModels = map[string]ModelConfig{
	ModelGPT4_1: {
		ID:            ModelGPT4_1,
		DisplayName:   "GPT-4.1",
		Provider:      ProviderOpenAI,
		ContextWindow: 1047576,
		MaxOutput:     32768,
		Cost: ModelCost{
			InputUSDPer1K:  "0.002",
			OutputUSDPer1K: "0.008",
		},
		QualityRank:         2,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "vision", "json", "long-context"},
	},
	ModelGPT4_1_Mini: {
		ID:            ModelGPT4_1_Mini,
		DisplayName:   "GPT-4.1 mini",
		Provider:      ProviderOpenAI,
		ContextWindow: 1047576,
		MaxOutput:     32768,
		Cost: ModelCost{
			InputUSDPer1K:  "0.0004",
			OutputUSDPer1K: "0.0016",
		},
		QualityRank:         3,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "vision", "json"},
	},
	ModelGPT4o: {
		ID:            ModelGPT4o,
		DisplayName:   "GPT-4o",
		Provider:      ProviderOpenAI,
		ContextWindow: 128000,
		MaxOutput:     16384,
		Cost: ModelCost{
			InputUSDPer1K:  "0.0025",
			OutputUSDPer1K: "0.01",
		},
		QualityRank:         2,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "vision", "json"},
	},
	ModelGPT4oMini: {
		ID:            ModelGPT4oMini,
		DisplayName:   "GPT-4o mini",
		Provider:      ProviderOpenAI,
		ContextWindow: 128000,
		MaxOutput:     16384,
		Cost: ModelCost{
			InputUSDPer1K:  "0.00015",
			OutputUSDPer1K: "0.0006",
		},
		QualityRank:         4,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "json"},
	},
	ModelGPTo3: {
		ID:            ModelGPTo3,
		DisplayName:   "o3",
		Provider:      ProviderOpenAI,
		ContextWindow: 200000,
		MaxOutput:     100000,
		Cost: ModelCost{
			InputUSDPer1K:  "0.002",
			OutputUSDPer1K: "0.008",
		},
		QualityRank: 1,
		// reasoning models reject the temperature parameter
		SupportsTemperature:     false,
		SupportsSystem:          true,
		UsesMaxCompletionTokens: true,
		Capabilities:            []string{"chat", "tools", "json", "reasoning"},
	},
	ModelGPTo4Mini: {
		ID:            ModelGPTo4Mini,
		DisplayName:   "o4-mini",
		Provider:      ProviderOpenAI,
		ContextWindow: 200000,
		MaxOutput:     100000,
		Cost: ModelCost{
			InputUSDPer1K:  "0.0011",
			OutputUSDPer1K: "0.0044",
		},
		QualityRank:             2,
		SupportsTemperature:     false,
		SupportsSystem:          true,
		UsesMaxCompletionTokens: true,
		Capabilities:            []string{"chat", "tools", "json", "reasoning"},
	},
}
