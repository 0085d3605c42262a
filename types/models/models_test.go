package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCatalogSanity(t *testing.T) {
	if len(AllModelConfigs) == 0 {
		t.Fatalf("expected a non-empty model catalog")
	}
	for id, cfg := range AllModelConfigs {
		if cfg.ID != id {
			t.Errorf("model %s: ID field mismatch: %s", id, cfg.ID)
		}
		if cfg.Provider == "" {
			t.Errorf("model %s: missing provider", id)
		}
		if cfg.QualityRank < 1 || cfg.QualityRank > 5 {
			t.Errorf("model %s: quality rank out of range: %d", id, cfg.QualityRank)
		}
		for _, rate := range []string{cfg.Cost.InputUSDPer1K, cfg.Cost.OutputUSDPer1K} {
			parsed, err := decimal.NewFromString(rate)
			if err != nil {
				t.Errorf("model %s: bad cost rate %q: %v", id, rate, err)
				continue
			}
			if !parsed.IsPositive() {
				t.Errorf("model %s: cost rate must be positive: %s", id, rate)
			}
		}
		if cfg.ContextWindow <= 0 {
			t.Errorf("model %s: context window must be positive", id)
		}
		if cfg.MaxOutput <= 0 {
			t.Errorf("model %s: max output must be positive", id)
		}
	}
}

func TestGet(t *testing.T) {
	cfg, ok := Get(ModelGPT4oMini)
	if !ok {
		t.Fatalf("expected %s in catalog", ModelGPT4oMini)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected provider %s, got %s", ProviderOpenAI, cfg.Provider)
	}

	if _, ok := Get("no-such-model"); ok {
		t.Errorf("did not expect unknown model in catalog")
	}
}

func TestByProvider(t *testing.T) {
	for _, provider := range []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		configs := ByProvider(provider)
		if len(configs) == 0 {
			t.Errorf("expected models for provider %s", provider)
		}
		for _, cfg := range configs {
			if cfg.Provider != provider {
				t.Errorf("provider %s: got model %s from %s", provider, cfg.ID, cfg.Provider)
			}
		}
	}
}

func TestHasCapability(t *testing.T) {
	cfg := ModelConfig{Capabilities: []string{"reasoning", "code"}}
	if !cfg.HasCapability("code") {
		t.Errorf("expected code capability")
	}
	if cfg.HasCapability("vision") {
		t.Errorf("did not expect vision capability")
	}
}
