package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/providers/anthropic"
	"github.com/bridgekit-ai/aibridge/providers/gemini"
	"github.com/bridgekit-ai/aibridge/providers/openai"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

// UsageRecord is one completed request, as handed to a UsageStore.
type UsageRecord struct {
	Time         time.Time        `json:"time"`
	Provider     string           `json:"provider"`
	Model        string           `json:"model"`
	Task         types.TaskType   `json:"task"`
	Usage        types.TokenUsage `json:"usage"`
	CostUSD      string           `json:"cost_usd"`
	ResponseTime time.Duration    `json:"response_time"`
	Fallback     bool             `json:"fallback"`
}

// UsageStore persists completed requests. Implementations must be safe for
// concurrent use.
type UsageStore interface {
	Record(ctx context.Context, record UsageRecord) error
}

// Manager routes requests across the configured providers: it selects a
// (provider, model) pair per request, dispatches, falls back on failure when
// the strategy permits, and tracks health and usage.
type Manager struct {
	adapters map[providers.Provider]providers.Adapter
	configs  map[providers.Provider]ProviderConfig
	weights  types.ScoringWeights

	health *healthTracker
	usage  *usageTracker

	store  UsageStore
	logger types.Logger
}

type Option func(*options)

type options struct {
	logger   types.Logger
	store    UsageStore
	adapters map[providers.Provider]providers.Adapter
}

// WithLogger sets the manager's logger. The default discards everything.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithUsageStore attaches a persistent store for completed requests.
func WithUsageStore(store UsageStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter registers a pre-built adapter for a provider instead of
// constructing one from its config.
func WithAdapter(adapter providers.Adapter) Option {
	return func(o *options) {
		if o.adapters == nil {
			o.adapters = make(map[providers.Provider]providers.Adapter)
		}
		o.adapters[adapter.Provider()] = adapter
	}
}

var discardLogger = types.LoggerFunc(func(ctx context.Context, logType types.LogType, format string, args ...interface{}) {})

// New builds a Manager from the config, constructing and initializing one
// adapter per enabled provider. Providers whose adapter fails to initialize
// are skipped with a log line; New errors only when no provider survives.
func New(ctx context.Context, cfg Config, opts ...Option) (*Manager, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = discardLogger
	}

	weights := types.DefaultScoringWeights()
	if cfg.Weights != nil {
		weights = *cfg.Weights
	}

	m := &Manager{
		adapters: make(map[providers.Provider]providers.Adapter),
		configs:  make(map[providers.Provider]ProviderConfig),
		weights:  weights,
		usage:    newUsageTracker(),
		store:    o.store,
		logger:   logger,
	}

	for id, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}
		adapter := o.adapters[id]
		if adapter == nil {
			built, err := buildAdapter(id, pc)
			if err != nil {
				return nil, err
			}
			adapter = built
		}
		if err := adapter.Initialize(ctx); err != nil {
			logger.Log(ctx, types.LogType_Error, "provider %s init failed, skipping: %v", id, err)
			continue
		}
		m.adapters[id] = adapter
		m.configs[id] = pc
	}
	// injected adapters without a config entry still register, with defaults
	for id, adapter := range o.adapters {
		if _, ok := m.adapters[id]; ok {
			continue
		}
		if err := adapter.Initialize(ctx); err != nil {
			logger.Log(ctx, types.LogType_Error, "provider %s init failed, skipping: %v", id, err)
			continue
		}
		m.adapters[id] = adapter
		m.configs[id] = ProviderConfig{Enabled: true, Priority: defaultPriorities[id]}
	}

	if len(m.adapters) == 0 {
		return nil, fmt.Errorf("no providers available: configure at least one API key")
	}

	ids := make([]providers.Provider, 0, len(m.adapters))
	for id := range m.adapters {
		ids = append(ids, id)
	}
	m.health = newHealthTracker(ids)
	return m, nil
}

func buildAdapter(id providers.Provider, pc ProviderConfig) (providers.Adapter, error) {
	switch id {
	case providers.ProviderOpenAI:
		return openai.New(openai.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL, DefaultModel: pc.DefaultModel}), nil
	case providers.ProviderAnthropic:
		return anthropic.New(anthropic.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL, DefaultModel: pc.DefaultModel}), nil
	case providers.ProviderGemini:
		return gemini.New(gemini.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL, DefaultModel: pc.DefaultModel}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", id)
	}
}

// Providers returns the registered provider ids in priority order
func (m *Manager) Providers() []providers.Provider {
	return m.orderedProviders()
}

// Adapter returns the registered adapter for a provider, if any
func (m *Manager) Adapter(id providers.Provider) (providers.Adapter, bool) {
	adapter, ok := m.adapters[id]
	return adapter, ok
}

// ProcessRequest routes one request. An explicit req.Model pins both the
// model and its provider and disables fallback; otherwise the selector
// picks a (provider, model) pair per the criteria and, when the strategy
// permits, failures cascade through the remaining providers in ascending
// priority order using each provider's default model. When every fallback
// fails too, the primary attempt's error is returned.
func (m *Manager) ProcessRequest(ctx context.Context, req types.Request, crit types.SelectionCriteria) (*types.Response, error) {
	if !req.Task.Valid() {
		return nil, fmt.Errorf("invalid task type: %q", req.Task)
	}
	if crit.Task == "" {
		crit.Task = req.Task
	}
	if crit.Strategy == "" {
		crit.Strategy = types.StrategyBalanced
	}

	if req.Model != "" {
		return m.processPinned(ctx, req)
	}

	chosen, ok := m.selectCandidate(req, crit)
	if !ok {
		return nil, providers.NewError(providers.ErrKindUnavailable, "", "",
			fmt.Errorf("no provider satisfies the selection criteria"))
	}

	req.Model = chosen.Model
	resp, primaryErr := m.attempt(ctx, chosen.Provider, req, false)
	if primaryErr == nil {
		return resp, nil
	}
	if !crit.Strategy.AllowsFallback() {
		return nil, primaryErr
	}

	m.logger.Log(ctx, types.LogType_Info, "provider %s failed, trying fallbacks: %v", chosen.Provider, primaryErr)
	for _, id := range m.orderedProviders() {
		if id == chosen.Provider {
			continue
		}
		if !m.health.get(id).Status.Selectable() {
			continue
		}
		fallbackReq := req
		fallbackReq.Model = m.adapters[id].DefaultModel()
		resp, err := m.attempt(ctx, id, fallbackReq, true)
		if err != nil {
			m.logger.Log(ctx, types.LogType_Info, "fallback provider %s failed: %v", id, err)
			continue
		}
		return resp, nil
	}
	return nil, primaryErr
}

// processPinned dispatches to exactly the requested model, no fallback.
func (m *Manager) processPinned(ctx context.Context, req types.Request) (*types.Response, error) {
	cfg, ok := models.Get(req.Model)
	if !ok {
		return nil, providers.NewError(providers.ErrKindInvalidRequest, "", req.Model,
			fmt.Errorf("unknown model: %s", req.Model))
	}
	if _, registered := m.adapters[cfg.Provider]; !registered {
		return nil, providers.NewError(providers.ErrKindUnavailable, cfg.Provider, req.Model,
			fmt.Errorf("provider %s is not configured", cfg.Provider))
	}
	return m.attempt(ctx, cfg.Provider, req, false)
}

// attempt runs one provider call, enforcing the provider's request rate and
// recording usage on success.
func (m *Manager) attempt(ctx context.Context, id providers.Provider, req types.Request, fallback bool) (*types.Response, error) {
	if !m.usage.allowRequest(id, m.configs[id].RequestsPerMinute) {
		return nil, providers.NewError(providers.ErrKindQuotaExceeded, id, req.Model,
			fmt.Errorf("request rate limit reached for provider %s", id))
	}

	resp, err := m.adapters[id].ProcessRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if fallback {
		if resp.Metadata == nil {
			resp.Metadata = make(map[string]string)
		}
		resp.Metadata["fallback"] = "true"
	}

	m.usage.track(id, resp)
	if m.store != nil {
		record := UsageRecord{
			Time:         time.Now(),
			Provider:     string(id),
			Model:        resp.Model,
			Task:         resp.Task,
			Usage:        resp.TokenUsage,
			CostUSD:      resp.CostUSD,
			ResponseTime: resp.ResponseTime,
			Fallback:     fallback,
		}
		if err := m.store.Record(ctx, record); err != nil {
			m.logger.Log(ctx, types.LogType_Error, "usage store record failed: %v", err)
		}
	}
	return resp, nil
}
