package types

import "time"

// SelectionCriteria narrows and ranks the candidate (provider, model) pairs
// for one request. Supplied per call, never persisted.
type SelectionCriteria struct {
	Task TaskType `json:"task"`

	// MaxCostUSD is a decimal string; empty means no cost ceiling.
	MaxCostUSD string `json:"max_cost_usd,omitempty"`

	MaxLatency time.Duration `json:"max_latency,omitempty"`

	// MinQuality filters models whose quality rank (1=best..5=basic) is
	// numerically worse than this value. Zero means no filter.
	MinQuality int `json:"min_quality,omitempty"`

	// PreferProvider restricts selection to a single provider when set.
	PreferProvider string `json:"prefer_provider,omitempty"`

	Strategy Strategy `json:"strategy,omitempty"`

	// Weights override the default scoring weights. Nil means defaults.
	Weights *ScoringWeights `json:"weights,omitempty"`
}

// ScoringWeights holds the strategy scoring constants. These are hand-tuned
// product parameters, kept as data so deployments can adjust them.
type ScoringWeights struct {
	PerformanceQuality    float64 `json:"performance_quality"`
	PerformanceCapability float64 `json:"performance_capability"`

	CostCost    float64 `json:"cost_cost"`
	CostQuality float64 `json:"cost_quality"`

	SpeedQuality   float64 `json:"speed_quality"`
	SpeedCost      float64 `json:"speed_cost"`
	SpeedFastBonus float64 `json:"speed_fast_bonus"`

	BalancedQuality    float64 `json:"balanced_quality"`
	BalancedCost       float64 `json:"balanced_cost"`
	BalancedCapability float64 `json:"balanced_capability"`
}

// DefaultScoringWeights returns the stock weights.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		PerformanceQuality:    0.7,
		PerformanceCapability: 0.3,

		CostCost:    0.8,
		CostQuality: 0.2,

		SpeedQuality:   0.3,
		SpeedCost:      0.2,
		SpeedFastBonus: 0.5,

		BalancedQuality:    0.4,
		BalancedCost:       0.4,
		BalancedCapability: 0.2,
	}
}

// DefaultCriteria returns the criteria used when the caller supplies none.
func DefaultCriteria(task TaskType) SelectionCriteria {
	return SelectionCriteria{
		Task:     task,
		Strategy: StrategyBalanced,
	}
}
