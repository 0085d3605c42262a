package manager

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
)

// providerUsage is the mutable per-provider accumulator. All access goes
// through the tracker's mutex; concurrent request completions would
// otherwise lose updates.
type providerUsage struct {
	requests         int64
	promptTokens     int64
	completionTokens int64
	totalTokens      int64
	totalCost        decimal.Decimal
	avgResponse      time.Duration

	// daily cost window for budget gating
	day     string
	dayCost decimal.Decimal

	// per-minute request window for rate gating
	windowStart time.Time
	windowCount int
}

type usageTracker struct {
	mu    sync.Mutex
	stats map[providers.Provider]*providerUsage
	now   func() time.Time
}

func newUsageTracker() *usageTracker {
	return &usageTracker{
		stats: make(map[providers.Provider]*providerUsage),
		now:   time.Now,
	}
}

func (t *usageTracker) entry(provider providers.Provider) *providerUsage {
	u, ok := t.stats[provider]
	if !ok {
		u = &providerUsage{
			totalCost: decimal.Zero,
			dayCost:   decimal.Zero,
		}
		t.stats[provider] = u
	}
	return u
}

// track records one completed request. Called exactly once per successful
// call, successful fallbacks included.
func (t *usageTracker) track(provider providers.Provider, resp *types.Response) {
	cost := decimal.Zero
	if resp.CostUSD != "" {
		if parsed, err := decimal.NewFromString(resp.CostUSD); err == nil {
			cost = parsed
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.entry(provider)
	u.requests++
	u.promptTokens += resp.TokenUsage.Prompt
	u.completionTokens += resp.TokenUsage.Completion
	u.totalTokens += resp.TokenUsage.Total
	u.totalCost = u.totalCost.Add(cost)

	// incremental mean: new = (old*(n-1) + value) / n
	n := u.requests
	u.avgResponse = time.Duration((int64(u.avgResponse)*(n-1) + int64(resp.ResponseTime)) / n)

	day := t.now().Format("2006-01-02")
	if u.day != day {
		u.day = day
		u.dayCost = decimal.Zero
	}
	u.dayCost = u.dayCost.Add(cost)
}

// dayCost returns the cost recorded for the provider today
func (t *usageTracker) dayCost(provider providers.Provider) decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.stats[provider]
	if !ok {
		return decimal.Zero
	}
	if u.day != t.now().Format("2006-01-02") {
		return decimal.Zero
	}
	return u.dayCost
}

// allowRequest consumes one slot from the provider's per-minute request
// window. A non-positive limit means unlimited.
func (t *usageTracker) allowRequest(provider providers.Provider, requestsPerMinute int) bool {
	if requestsPerMinute <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.entry(provider)
	now := t.now()
	if now.Sub(u.windowStart) >= time.Minute {
		u.windowStart = now
		u.windowCount = 0
	}
	if u.windowCount >= requestsPerMinute {
		return false
	}
	u.windowCount++
	return true
}

func (t *usageTracker) snapshot() map[providers.Provider]types.UsageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make(map[providers.Provider]types.UsageStats, len(t.stats))
	for provider, u := range t.stats {
		result[provider] = types.UsageStats{
			Requests:         u.requests,
			PromptTokens:     u.promptTokens,
			CompletionTokens: u.completionTokens,
			TotalTokens:      u.totalTokens,
			TotalCostUSD:     u.totalCost.String(),
			AvgResponseTime:  u.avgResponse,
		}
	}
	return result
}

// UsageStats returns a copy of the per-provider usage accumulators
func (m *Manager) UsageStats() map[providers.Provider]types.UsageStats {
	return m.usage.snapshot()
}
