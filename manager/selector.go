package manager

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

// candidate is one (provider, model) pair under consideration
type candidate struct {
	Provider      providers.Provider
	Model         string
	Config        models.ModelConfig
	EstimatedCost decimal.Decimal
}

// fastModelMarkers are naming patterns that identify latency-optimized
// models for the speed strategy.
var fastModelMarkers = []string{"haiku", "mini", "flash", "fast", "nano", "lite"}

func isFastModel(model string) bool {
	lower := strings.ToLower(model)
	for _, marker := range fastModelMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// orderedProviders returns the registered providers sorted by ascending
// priority (id as tie-break). This fixes the candidate enumeration order,
// which is also the documented tie-break order of the selector.
func (m *Manager) orderedProviders() []providers.Provider {
	ids := make([]providers.Provider, 0, len(m.adapters))
	for id := range m.adapters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := m.configs[ids[i]].Priority, m.configs[ids[j]].Priority
		if pi != pj {
			return pi < pj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// eligibleProvider applies the provider-level filters: health, provider
// preference, daily budget, recorded latency.
func (m *Manager) eligibleProvider(id providers.Provider, crit types.SelectionCriteria) bool {
	if crit.PreferProvider != "" && string(id) != crit.PreferProvider {
		return false
	}
	if !m.health.get(id).Status.Selectable() {
		return false
	}
	if budget := m.configs[id].DailyBudgetUSD; budget != "" {
		if limit, err := decimal.NewFromString(budget); err == nil {
			if m.usage.dayCost(id).GreaterThanOrEqual(limit) {
				return false
			}
		}
	}
	if crit.MaxLatency > 0 {
		if stats, ok := m.usage.snapshot()[id]; ok && stats.AvgResponseTime > crit.MaxLatency {
			return false
		}
	}
	return true
}

// selectCandidate runs the selection algorithm: enumerate candidates from
// eligible providers, filter by quality and cost ceilings, then score with
// the strategy's weights. Ties go to the first candidate seen.
func (m *Manager) selectCandidate(req types.Request, crit types.SelectionCriteria) (candidate, bool) {
	var maxCost decimal.Decimal
	hasMaxCost := false
	if crit.MaxCostUSD != "" {
		if parsed, err := decimal.NewFromString(crit.MaxCostUSD); err == nil {
			maxCost = parsed
			hasMaxCost = true
		}
	}

	var candidates []candidate
	for _, id := range m.orderedProviders() {
		if !m.eligibleProvider(id, crit) {
			continue
		}
		adapter := m.adapters[id]
		for _, model := range adapter.RecommendModels(crit.Task) {
			cfg, ok := models.Get(model)
			if !ok {
				continue
			}
			if crit.MinQuality > 0 && cfg.QualityRank > crit.MinQuality {
				continue
			}
			est := providers.EstimateCost(cfg, req)
			if hasMaxCost && est.GreaterThan(maxCost) {
				continue
			}
			candidates = append(candidates, candidate{
				Provider:      id,
				Model:         model,
				Config:        cfg,
				EstimatedCost: est,
			})
		}
	}
	if len(candidates) == 0 {
		return candidate{}, false
	}

	weights := m.weights
	if crit.Weights != nil {
		weights = *crit.Weights
	}

	best := 0
	bestScore := scoreCandidate(candidates[0], candidates, crit.Strategy, weights)
	for i := 1; i < len(candidates); i++ {
		if score := scoreCandidate(candidates[i], candidates, crit.Strategy, weights); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return candidates[best], true
}

// scoreCandidate computes the strategy-weighted score over three components
// normalized against the candidate set: quality (inverse of rank), cost
// (cheapest = 1.0) and capability count (richest = 1.0).
func scoreCandidate(c candidate, all []candidate, strategy types.Strategy, weights types.ScoringWeights) float64 {
	quality := qualityScore(c.Config.QualityRank)
	cost := costScore(c, all)
	capability := capabilityScore(c, all)

	switch strategy {
	case types.StrategyPerformance:
		return weights.PerformanceQuality*quality + weights.PerformanceCapability*capability
	case types.StrategyCost:
		return weights.CostCost*cost + weights.CostQuality*quality
	case types.StrategySpeed:
		score := weights.SpeedQuality*quality + weights.SpeedCost*cost
		if isFastModel(c.Model) {
			score += weights.SpeedFastBonus
		}
		return score
	default: // balanced and fallback
		return weights.BalancedQuality*quality + weights.BalancedCost*cost + weights.BalancedCapability*capability
	}
}

func qualityScore(rank int) float64 {
	if rank < 1 {
		rank = 5
	}
	if rank > 5 {
		rank = 5
	}
	return float64(6-rank) / 5
}

func costScore(c candidate, all []candidate) float64 {
	minCost := c.EstimatedCost
	for _, other := range all {
		if other.EstimatedCost.LessThan(minCost) {
			minCost = other.EstimatedCost
		}
	}
	if c.EstimatedCost.IsZero() {
		return 1
	}
	ratio, _ := minCost.Div(c.EstimatedCost).Float64()
	return ratio
}

func capabilityScore(c candidate, all []candidate) float64 {
	maxCaps := 0
	for _, other := range all {
		if n := len(other.Config.Capabilities); n > maxCaps {
			maxCaps = n
		}
	}
	if maxCaps == 0 {
		return 0
	}
	return float64(len(c.Config.Capabilities)) / float64(maxCaps)
}
