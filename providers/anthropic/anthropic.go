package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anth_opt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

const healthProbeModel = models.ModelClaude3_5Haiku

// Config represents the adapter configuration
type Config struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
}

// Adapter wraps the Anthropic SDK behind the uniform provider contract
type Adapter struct {
	config Config
	client *anthropic.Client
}

// New creates an Anthropic adapter. Initialize must be called before use.
func New(config Config) *Adapter {
	if config.DefaultModel == "" {
		config.DefaultModel = models.ModelClaudeSonnet4
	}
	return &Adapter{config: config}
}

func (a *Adapter) Provider() providers.Provider {
	return providers.ProviderAnthropic
}

func (a *Adapter) DefaultModel() string {
	return a.config.DefaultModel
}

func (a *Adapter) Models() []models.ModelConfig {
	return models.ByProvider(providers.ProviderAnthropic)
}

func (a *Adapter) Initialize(ctx context.Context) error {
	if a.config.APIKey == "" {
		return providers.NewError(providers.ErrKindUnavailable, a.Provider(), "",
			fmt.Errorf("api key is required"))
	}
	opts := []anth_opt.RequestOption{
		anth_opt.WithAPIKey(a.config.APIKey),
	}
	if a.config.BaseURL != "" {
		opts = append(opts, anth_opt.WithBaseURL(a.config.BaseURL))
	}
	client := anthropic.NewClient(opts...)
	a.client = &client
	return nil
}

func (a *Adapter) HealthCheck(ctx context.Context) types.ProviderHealth {
	checked := time.Now()
	if a.client == nil {
		return types.ProviderHealth{
			Status:      types.HealthUnhealthy,
			LastError:   "adapter not initialized",
			LastChecked: checked,
		}
	}

	_, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(healthProbeModel),
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		status := types.HealthUnhealthy
		if classifyError(err) == providers.ErrKindQuotaExceeded {
			status = types.HealthDegraded
		}
		return types.ProviderHealth{
			Status:      status,
			LastError:   err.Error(),
			LastChecked: checked,
		}
	}
	return types.ProviderHealth{Status: types.HealthHealthy, LastChecked: checked}
}

func (a *Adapter) ProcessRequest(ctx context.Context, req types.Request) (*types.Response, error) {
	if a.client == nil {
		return nil, providers.NewError(providers.ErrKindUnavailable, a.Provider(), "",
			fmt.Errorf("adapter not initialized"))
	}

	model := req.Model
	if model == "" {
		model = a.config.DefaultModel
	}
	modelCfg, ok := models.Get(model)
	if !ok || modelCfg.Provider != providers.ProviderAnthropic {
		return nil, providers.NewError(providers.ErrKindInvalidRequest, a.Provider(), model,
			fmt.Errorf("unknown model"))
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(providers.MaxOutputTokens(req, modelCfg.MaxOutput)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(providers.UserContent(req))),
		},
	}
	// the Anthropic API has no system role turn; system prompts travel in a
	// dedicated field
	if systemPrompt := providers.SystemPrompt(req); systemPrompt != "" && modelCfg.SupportsSystem {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}
	if req.Temperature != nil && modelCfg.SupportsTemperature {
		params.Temperature = param.NewOpt(*req.Temperature)
	}

	start := time.Now()
	result, err := a.client.Messages.New(ctx, params)
	elapsed := time.Since(start)
	if err != nil {
		return nil, providers.NewError(classifyError(err), a.Provider(), model, err)
	}

	var content strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			content.WriteString(block.AsText().Text)
		}
	}

	usage := types.TokenUsage{
		Prompt:     result.Usage.InputTokens,
		Completion: result.Usage.OutputTokens,
		Total:      result.Usage.InputTokens + result.Usage.OutputTokens,
	}
	cost := providers.ComputeCost(modelCfg, usage)

	return providers.NewResponse(a.Provider(), model, req.Task, content.String(),
		usage, elapsed, cost, map[string]string{
			"stop_reason": string(result.StopReason),
		}), nil
}

// RecommendModels returns model ids ordered best-to-weakest for a task
func (a *Adapter) RecommendModels(task types.TaskType) []string {
	if recs, ok := taskRecommendations[task]; ok {
		return recs
	}
	return []string{a.config.DefaultModel}
}

var taskRecommendations = map[types.TaskType][]string{
	types.TaskSummarize: {models.ModelClaude3_5Haiku, models.ModelClaude3_7Sonnet},
	types.TaskAnalyze:   {models.ModelClaudeSonnet4, models.ModelClaude3_7Sonnet},
	types.TaskSuggest:   {models.ModelClaudeSonnet4, models.ModelClaude3_7Sonnet},
	types.TaskClassify:  {models.ModelClaude3_5Haiku, models.ModelClaude3_7Sonnet},
	types.TaskExtract:   {models.ModelClaude3_7Sonnet, models.ModelClaude3_5Haiku},
	types.TaskTranslate: {models.ModelClaude3_7Sonnet, models.ModelClaude3_5Haiku},
	types.TaskGenerate:  {models.ModelClaudeSonnet4, models.ModelClaude3_7Sonnet},
}

func classifyError(err error) providers.ErrorKind {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return providers.ClassifyStatus(apierr.StatusCode)
	}
	return providers.ErrKindProvider
}
