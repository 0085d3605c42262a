package manager

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
)

// ProviderConfig holds the per-provider operational settings. Loaded once at
// startup and read-only afterwards.
type ProviderConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Enabled bool   `json:"enabled"`

	// Priority orders fallback attempts; lower is tried first.
	Priority int `json:"priority"`

	// DefaultModel is the model used for fallback attempts against this
	// provider.
	DefaultModel string `json:"default_model,omitempty"`

	RequestsPerMinute int `json:"requests_per_minute,omitempty"`
	TokensPerMinute   int `json:"tokens_per_minute,omitempty"`

	// DailyBudgetUSD is a decimal string; empty means unlimited. Providers
	// whose recorded cost for the current day reaches the budget are
	// excluded from selection until the day rolls over.
	DailyBudgetUSD string `json:"daily_budget_usd,omitempty"`
}

// Config is the manager configuration: one entry per provider plus optional
// scoring weight overrides.
type Config struct {
	Providers map[providers.Provider]ProviderConfig `json:"providers"`
	Weights   *types.ScoringWeights                 `json:"weights,omitempty"`
}

var defaultPriorities = map[providers.Provider]int{
	providers.ProviderOpenAI:    1,
	providers.ProviderAnthropic: 2,
	providers.ProviderGemini:    3,
}

// LoadConfigFromEnv builds a Config from AIBRIDGE_<PROVIDER>_* environment
// variables, optionally loading a .env file first. A provider is enabled
// when its API key is present unless explicitly disabled.
//
//	AIBRIDGE_OPENAI_API_KEY / _BASE_URL / _ENABLED / _PRIORITY /
//	_DEFAULT_MODEL / _RPM / _TPM / _DAILY_BUDGET_USD
func LoadConfigFromEnv(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// best-effort .env in the working directory
		_ = godotenv.Load()
	}

	cfg := Config{Providers: make(map[providers.Provider]ProviderConfig)}
	for _, provider := range providers.AllProviders {
		pc, err := providerConfigFromEnv(provider)
		if err != nil {
			return Config{}, err
		}
		if pc.APIKey == "" {
			continue
		}
		cfg.Providers[provider] = pc
	}
	return cfg, nil
}

func providerConfigFromEnv(provider providers.Provider) (ProviderConfig, error) {
	prefix := "AIBRIDGE_" + strings.ToUpper(string(provider)) + "_"

	pc := ProviderConfig{
		APIKey:         os.Getenv(prefix + "API_KEY"),
		BaseURL:        os.Getenv(prefix + "BASE_URL"),
		DefaultModel:   os.Getenv(prefix + "DEFAULT_MODEL"),
		DailyBudgetUSD: os.Getenv(prefix + "DAILY_BUDGET_USD"),
		Priority:       defaultPriorities[provider],
		Enabled:        true,
	}

	if v := os.Getenv(prefix + "ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return ProviderConfig{}, fmt.Errorf("parse %sENABLED: %w", prefix, err)
		}
		pc.Enabled = enabled
	}
	if v := os.Getenv(prefix + "PRIORITY"); v != "" {
		priority, err := strconv.Atoi(v)
		if err != nil {
			return ProviderConfig{}, fmt.Errorf("parse %sPRIORITY: %w", prefix, err)
		}
		pc.Priority = priority
	}
	if v := os.Getenv(prefix + "RPM"); v != "" {
		rpm, err := strconv.Atoi(v)
		if err != nil {
			return ProviderConfig{}, fmt.Errorf("parse %sRPM: %w", prefix, err)
		}
		pc.RequestsPerMinute = rpm
	}
	if v := os.Getenv(prefix + "TPM"); v != "" {
		tpm, err := strconv.Atoi(v)
		if err != nil {
			return ProviderConfig{}, fmt.Errorf("parse %sTPM: %w", prefix, err)
		}
		pc.TokensPerMinute = tpm
	}
	return pc, nil
}
