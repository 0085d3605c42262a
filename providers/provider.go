package providers

import (
	"context"

	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

// Provider represents the AI provider (re-exported from models package)
type Provider = models.Provider

// Re-export Provider constants from models package
const (
	ProviderOpenAI    = models.ProviderOpenAI
	ProviderAnthropic = models.ProviderAnthropic
	ProviderGemini    = models.ProviderGemini
)

// AllProviders lists every known provider identifier
var AllProviders = []Provider{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderGemini,
}

// Adapter wraps one vendor SDK behind the uniform request/response contract.
// Implementations hold exactly one vendor client handle, created in
// Initialize and reused for the adapter's lifetime.
type Adapter interface {
	// Provider returns the adapter's provider identifier.
	Provider() Provider

	// Initialize establishes the vendor client. Returns an Unavailable
	// error when the credential is missing or the client cannot be built.
	Initialize(ctx context.Context) error

	// HealthCheck issues a minimal probe call and classifies the outcome.
	// Probe errors become a status, never an error return.
	HealthCheck(ctx context.Context) types.ProviderHealth

	// ProcessRequest executes the request against the vendor API and
	// returns a populated Response including computed cost. Vendor errors
	// are reclassified into the *Error taxonomy and never swallowed.
	ProcessRequest(ctx context.Context, req types.Request) (*types.Response, error)

	// Models returns the adapter's static model catalog.
	Models() []models.ModelConfig

	// RecommendModels returns model ids ordered best-to-weakest for the
	// given task type.
	RecommendModels(task types.TaskType) []string

	// DefaultModel returns the model used for fallback attempts.
	DefaultModel() string
}
