package manager

import (
	"testing"
	"time"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

// selectorManager pairs a cheap low-rank model against an expensive top-rank
// model, the canonical trade-off the strategies disagree on.
func selectorManager(t *testing.T) *Manager {
	t.Helper()
	openAI := newFakeAdapter(providers.ProviderOpenAI, models.ModelGPT4oMini, models.ModelGPT4oMini)
	anthropic := newFakeAdapter(providers.ProviderAnthropic, models.ModelClaudeSonnet4, models.ModelClaudeSonnet4)
	return newTestManager(t, twoProviderConfig(), openAI, anthropic)
}

func TestStrategyWinners(t *testing.T) {
	tests := []struct {
		strategy      types.Strategy
		expectedModel string
	}{
		{types.StrategyBalanced, models.ModelGPT4oMini},
		{types.StrategyCost, models.ModelGPT4oMini},
		{types.StrategySpeed, models.ModelGPT4oMini},
		{types.StrategyPerformance, models.ModelClaudeSonnet4},
		{types.StrategyFallback, models.ModelGPT4oMini},
	}

	mgr := selectorManager(t)
	req := types.NewRequest(types.TaskGenerate, "hello world")
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			crit := types.DefaultCriteria(types.TaskGenerate)
			crit.Strategy = tt.strategy
			chosen, ok := mgr.selectCandidate(req, crit)
			if !ok {
				t.Fatalf("expected a candidate")
			}
			if chosen.Model != tt.expectedModel {
				t.Errorf("expected %s, got %s", tt.expectedModel, chosen.Model)
			}
		})
	}
}

func TestMinQualityFilter(t *testing.T) {
	mgr := selectorManager(t)
	req := types.NewRequest(types.TaskGenerate, "hello")
	crit := types.DefaultCriteria(types.TaskGenerate)
	crit.MinQuality = 2

	chosen, ok := mgr.selectCandidate(req, crit)
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.Model != models.ModelClaudeSonnet4 {
		t.Errorf("expected the rank-4 model to be filtered, got %s", chosen.Model)
	}
}

func TestMaxCostFilter(t *testing.T) {
	mgr := selectorManager(t)
	req := types.NewRequest(types.TaskGenerate, "hello")
	crit := types.DefaultCriteria(types.TaskGenerate)
	crit.Strategy = types.StrategyPerformance

	// ceiling below the expensive model's estimate forces the cheap one
	crit.MaxCostUSD = "0.005"
	chosen, ok := mgr.selectCandidate(req, crit)
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.Model != models.ModelGPT4oMini {
		t.Errorf("expected the cost ceiling to exclude the expensive model, got %s", chosen.Model)
	}

	// ceiling below everything yields no candidate
	crit.MaxCostUSD = "0.0000000001"
	if _, ok := mgr.selectCandidate(req, crit); ok {
		t.Errorf("expected no candidate under an impossible ceiling")
	}
}

func TestTieBreakPrefersLowerPriority(t *testing.T) {
	// both providers offer the identical model, so scores tie exactly
	openAI := newFakeAdapter(providers.ProviderOpenAI, models.ModelGPT4oMini, models.ModelGPT4oMini)
	anthropic := newFakeAdapter(providers.ProviderAnthropic, models.ModelGPT4oMini, models.ModelGPT4oMini)
	cfg := Config{
		Providers: map[providers.Provider]ProviderConfig{
			providers.ProviderOpenAI:    {Enabled: true, Priority: 2},
			providers.ProviderAnthropic: {Enabled: true, Priority: 1},
		},
	}
	mgr := newTestManager(t, cfg, openAI, anthropic)

	req := types.NewRequest(types.TaskGenerate, "hello")
	chosen, ok := mgr.selectCandidate(req, types.DefaultCriteria(types.TaskGenerate))
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.Provider != providers.ProviderAnthropic {
		t.Errorf("expected the priority-1 provider on a tie, got %s", chosen.Provider)
	}
}

func TestCustomWeightsOverride(t *testing.T) {
	mgr := selectorManager(t)
	req := types.NewRequest(types.TaskGenerate, "hello")
	crit := types.DefaultCriteria(types.TaskGenerate)
	crit.Weights = &types.ScoringWeights{BalancedQuality: 1}

	chosen, ok := mgr.selectCandidate(req, crit)
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.Model != models.ModelClaudeSonnet4 {
		t.Errorf("expected quality-only weights to pick the top-rank model, got %s", chosen.Model)
	}
}

func TestMaxLatencyFilter(t *testing.T) {
	mgr := selectorManager(t)
	mgr.usage.track(providers.ProviderOpenAI, &types.Response{
		CostUSD:      "0.0001",
		ResponseTime: 2 * time.Second,
	})

	req := types.NewRequest(types.TaskGenerate, "hello")
	crit := types.DefaultCriteria(types.TaskGenerate)
	crit.MaxLatency = time.Second

	chosen, ok := mgr.selectCandidate(req, crit)
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.Provider != providers.ProviderAnthropic {
		t.Errorf("expected the slow provider to be filtered, got %s", chosen.Provider)
	}
}

func TestDailyBudgetExcludesProvider(t *testing.T) {
	openAI := newFakeAdapter(providers.ProviderOpenAI, models.ModelGPT4oMini, models.ModelGPT4oMini)
	anthropic := newFakeAdapter(providers.ProviderAnthropic, models.ModelClaudeSonnet4, models.ModelClaudeSonnet4)
	cfg := Config{
		Providers: map[providers.Provider]ProviderConfig{
			providers.ProviderOpenAI:    {Enabled: true, Priority: 1, DailyBudgetUSD: "0.00005"},
			providers.ProviderAnthropic: {Enabled: true, Priority: 2},
		},
	}
	mgr := newTestManager(t, cfg, openAI, anthropic)
	mgr.usage.track(providers.ProviderOpenAI, &types.Response{CostUSD: "0.0001"})

	req := types.NewRequest(types.TaskGenerate, "hello")
	chosen, ok := mgr.selectCandidate(req, types.DefaultCriteria(types.TaskGenerate))
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.Provider != providers.ProviderAnthropic {
		t.Errorf("expected the over-budget provider to be excluded, got %s", chosen.Provider)
	}
}

func TestIsFastModel(t *testing.T) {
	tests := []struct {
		model    string
		expected bool
	}{
		{"gpt-4o-mini", true},
		{"claude-3-5-haiku-20241022", true},
		{"gemini-2.0-flash", true},
		{"claude-sonnet-4-20250514", false},
		{"o3", false},
		{"gpt-4.1", false},
	}
	for _, tt := range tests {
		if got := isFastModel(tt.model); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.model, tt.expected, got)
		}
	}
}

func TestQualityScore(t *testing.T) {
	if got := qualityScore(1); got != 1.0 {
		t.Errorf("rank 1: expected 1.0, got %f", got)
	}
	if got := qualityScore(5); got != 0.2 {
		t.Errorf("rank 5: expected 0.2, got %f", got)
	}
	if got := qualityScore(0); got != 0.2 {
		t.Errorf("unset rank treated as basic, expected 0.2, got %f", got)
	}
}
