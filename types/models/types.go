package models

// Provider represents the AI provider
type Provider string

// Provider constants
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ModelCost represents the per-1K-token cost structure for a model.
// Rates are decimal strings to avoid float drift in accounting.
type ModelCost struct {
	InputUSDPer1K  string
	OutputUSDPer1K string
}

// ModelConfig contains the static description of one vendor model.
// Immutable, defined at adapter construction.
type ModelConfig struct {
	ID            string
	DisplayName   string
	Provider      Provider
	ContextWindow int
	MaxOutput     int
	Cost          ModelCost

	// QualityRank is a static tier, 1=best .. 5=basic. It drives the
	// min-quality filter and the quality component of scoring.
	QualityRank int

	// Capability flags. Adapters consult these before adding optional
	// parameters to a vendor payload; no vendor branching elsewhere.
	SupportsTemperature bool
	SupportsSystem      bool
	// Some OpenAI reasoning models reject max_tokens and require
	// max_completion_tokens instead.
	UsesMaxCompletionTokens bool

	Capabilities []string
}

// HasCapability reports whether the model carries the given capability tag
func (m ModelConfig) HasCapability(tag string) bool {
	for _, c := range m.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}

// AllModelConfigs contains all model configurations in a centralized map.
// Model definitions are organized per provider in this package.
var AllModelConfigs = initAllModelConfigs()

func initAllModelConfigs() map[string]ModelConfig {
	result := make(map[string]ModelConfig)
	for k, v := range OpenAIModels {
		result[k] = v
	}
	for k, v := range AnthropicModels {
		result[k] = v
	}
	for k, v := range GeminiModels {
		result[k] = v
	}
	return result
}

// Get looks up a model configuration by id
func Get(model string) (ModelConfig, bool) {
	cfg, ok := AllModelConfigs[model]
	return cfg, ok
}

// GetAllModels returns all supported model ids
func GetAllModels() []string {
	ids := make([]string, 0, len(AllModelConfigs))
	for id := range AllModelConfigs {
		ids = append(ids, id)
	}
	return ids
}

// ByProvider returns the model configurations belonging to one provider
func ByProvider(provider Provider) []ModelConfig {
	var result []ModelConfig
	for _, cfg := range AllModelConfigs {
		if cfg.Provider == provider {
			result = append(result, cfg)
		}
	}
	return result
}
