package manager

import (
	"context"
	"sync"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
)

// healthTracker holds the per-provider health records. Entries start unknown
// and are overwritten in place by each check.
type healthTracker struct {
	mu     sync.RWMutex
	health map[providers.Provider]types.ProviderHealth
}

func newHealthTracker(ids []providers.Provider) *healthTracker {
	health := make(map[providers.Provider]types.ProviderHealth, len(ids))
	for _, id := range ids {
		health[id] = types.ProviderHealth{Status: types.HealthUnknown}
	}
	return &healthTracker{health: health}
}

func (t *healthTracker) get(provider providers.Provider) types.ProviderHealth {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.health[provider]
}

func (t *healthTracker) set(provider providers.Provider, health types.ProviderHealth) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.health[provider] = health
}

func (t *healthTracker) snapshot() map[providers.Provider]types.ProviderHealth {
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make(map[providers.Provider]types.ProviderHealth, len(t.health))
	for k, v := range t.health {
		result[k] = v
	}
	return result
}

// CheckAllProviderHealth probes every registered adapter concurrently and
// overwrites its health entry. Probe failures become status values; this
// method never returns an error to the caller.
func (m *Manager) CheckAllProviderHealth(ctx context.Context) map[providers.Provider]types.ProviderHealth {
	var wg sync.WaitGroup
	for id, adapter := range m.adapters {
		wg.Add(1)
		go func(id providers.Provider, adapter providers.Adapter) {
			defer wg.Done()
			health := adapter.HealthCheck(ctx)
			m.health.set(id, health)
			if health.Status != types.HealthHealthy {
				m.logger.Log(ctx, types.LogType_Info, "provider %s health: %s (%s)",
					id, health.Status, health.LastError)
			}
		}(id, adapter)
	}
	wg.Wait()
	return m.health.snapshot()
}

// ProviderHealth returns a copy of the current health records
func (m *Manager) ProviderHealth() map[providers.Provider]types.ProviderHealth {
	return m.health.snapshot()
}
