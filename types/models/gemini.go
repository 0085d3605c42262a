package models

// Model ids
const (
	ModelGemini2_5_Pro   = "gemini-2.5-pro"
	ModelGemini2_5_Flash = "gemini-2.5-flash"
	ModelGemini2_0_Flash = "gemini-2.0-flash"
)

// GeminiModels contains all Gemini model definitions
var GeminiModels = map[string]ModelConfig{
	ModelGemini2_5_Pro: {
		ID:            ModelGemini2_5_Pro,
		DisplayName:   "Gemini 2.5 Pro",
		Provider:      ProviderGemini,
		ContextWindow: 1048576,
		MaxOutput:     65536,
		Cost: ModelCost{
			InputUSDPer1K:  "0.00125",
			OutputUSDPer1K: "0.01",
		},
		QualityRank:         1,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "vision", "json", "reasoning", "long-context"},
	},
	ModelGemini2_5_Flash: {
		ID:            ModelGemini2_5_Flash,
		DisplayName:   "Gemini 2.5 Flash",
		Provider:      ProviderGemini,
		ContextWindow: 1048576,
		MaxOutput:     65536,
		Cost: ModelCost{
			InputUSDPer1K:  "0.0003",
			OutputUSDPer1K: "0.0025",
		},
		QualityRank:         3,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "vision", "json", "long-context"},
	},
	ModelGemini2_0_Flash: {
		ID:            ModelGemini2_0_Flash,
		DisplayName:   "Gemini 2.0 Flash",
		Provider:      ProviderGemini,
		ContextWindow: 1048576,
		MaxOutput:     8192,
		Cost: ModelCost{
			InputUSDPer1K:  "0.0001",
			OutputUSDPer1K: "0.0004",
		},
		QualityRank:         4,
		SupportsTemperature: true,
		SupportsSystem:      true,
		Capabilities:        []string{"chat", "tools", "json"},
	},
}
