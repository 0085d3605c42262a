package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	openai_opt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

// healthProbeModel is the cheapest model in the catalog; the probe buys one
// completion token of it.
const healthProbeModel = models.ModelGPT4oMini

// Config represents the adapter configuration
type Config struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
}

// Adapter wraps the OpenAI SDK behind the uniform provider contract
type Adapter struct {
	config Config
	client *openai.Client
}

// New creates an OpenAI adapter. Initialize must be called before use.
func New(config Config) *Adapter {
	if config.DefaultModel == "" {
		config.DefaultModel = models.ModelGPT4_1_Mini
	}
	return &Adapter{config: config}
}

func (a *Adapter) Provider() providers.Provider {
	return providers.ProviderOpenAI
}

func (a *Adapter) DefaultModel() string {
	return a.config.DefaultModel
}

func (a *Adapter) Models() []models.ModelConfig {
	return models.ByProvider(providers.ProviderOpenAI)
}

// Initialize constructs the SDK client. The client handle is created once
// and reused for the adapter's lifetime.
func (a *Adapter) Initialize(ctx context.Context) error {
	if a.config.APIKey == "" {
		return providers.NewError(providers.ErrKindUnavailable, a.Provider(), "",
			fmt.Errorf("api key is required"))
	}
	opts := []openai_opt.RequestOption{
		openai_opt.WithAPIKey(a.config.APIKey),
	}
	if a.config.BaseURL != "" {
		opts = append(opts, openai_opt.WithBaseURL(a.config.BaseURL))
	}
	client := openai.NewClient(opts...)
	a.client = &client
	return nil
}

// HealthCheck buys a single completion token on the cheapest model and
// classifies the outcome. Probe failures become a status, never an error.
func (a *Adapter) HealthCheck(ctx context.Context) types.ProviderHealth {
	checked := time.Now()
	if a.client == nil {
		return types.ProviderHealth{
			Status:      types.HealthUnhealthy,
			LastError:   "adapter not initialized",
			LastChecked: checked,
		}
	}

	_, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: healthProbeModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: param.NewOpt("ping"),
					},
				},
			},
		},
		MaxTokens: param.NewOpt(int64(1)),
	})
	if err != nil {
		return healthFromError(err, checked)
	}
	return types.ProviderHealth{Status: types.HealthHealthy, LastChecked: checked}
}

func healthFromError(err error, checked time.Time) types.ProviderHealth {
	status := types.HealthUnhealthy
	if classifyError(err) == providers.ErrKindQuotaExceeded {
		// rate limited but reachable
		status = types.HealthDegraded
	}
	return types.ProviderHealth{
		Status:      status,
		LastError:   err.Error(),
		LastChecked: checked,
	}
}

// ProcessRequest translates the uniform request into an OpenAI chat
// completion call and the result back into the uniform response.
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
	if !ok || modelCfg.Provider != providers.ProviderOpenAI {
		return nil, providers.NewError(providers.ErrKindInvalidRequest, a.Provider(), model,
			fmt.Errorf("unknown model"))
	}

	params := a.buildParams(req, modelCfg)

	start := time.Now()
	result, err := a.client.Chat.Completions.New(ctx, params)
	elapsed := time.Since(start)
	if err != nil {
		return nil, providers.NewError(classifyError(err), a.Provider(), model, err)
	}
	if len(result.Choices) == 0 {
		return nil, providers.NewError(providers.ErrKindProvider, a.Provider(), model,
			fmt.Errorf("response has no choices"))
	}
	firstChoice := result.Choices[0]

	usage := types.TokenUsage{
		Prompt:     result.Usage.PromptTokens,
		Completion: result.Usage.CompletionTokens,
		Total:      result.Usage.TotalTokens,
	}
	cost := providers.ComputeCost(modelCfg, usage)

	return providers.NewResponse(a.Provider(), model, req.Task, firstChoice.Message.Content,
		usage, elapsed, cost, map[string]string{
			"finish_reason": string(firstChoice.FinishReason),
		}), nil
}

// buildParams assembles the vendor payload, consulting the model's
// capability flags before adding each optional parameter.
func (a *Adapter) buildParams(req types.Request, modelCfg models.ModelConfig) openai.ChatCompletionNewParams {
	var msgs []openai.ChatCompletionMessageParamUnion

	systemPrompt := providers.SystemPrompt(req)
	if systemPrompt != "" && modelCfg.SupportsSystem {
		msgs = append(msgs, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.NewOpt(systemPrompt),
				},
			},
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: param.NewOpt(providers.UserContent(req)),
			},
		},
	})

	params := openai.ChatCompletionNewParams{
		Model:    modelCfg.ID,
		Messages: msgs,
		N:        param.NewOpt(int64(1)),
	}

	maxTokens := int64(providers.MaxOutputTokens(req, modelCfg.MaxOutput))
	if modelCfg.UsesMaxCompletionTokens {
		params.MaxCompletionTokens = param.NewOpt(maxTokens)
	} else {
		params.MaxTokens = param.NewOpt(maxTokens)
	}

	if req.Temperature != nil && modelCfg.SupportsTemperature {
		params.Temperature = param.NewOpt(*req.Temperature)
	}
	return params
}

// RecommendModels returns model ids ordered best-to-weakest for a task
func (a *Adapter) RecommendModels(task types.TaskType) []string {
	if recs, ok := taskRecommendations[task]; ok {
		return recs
	}
	return []string{a.config.DefaultModel}
}

var taskRecommendations = map[types.TaskType][]string{
	types.TaskSummarize: {models.ModelGPT4_1_Mini, models.ModelGPT4oMini, models.ModelGPT4_1},
	types.TaskAnalyze:   {models.ModelGPTo3, models.ModelGPT4_1, models.ModelGPT4o},
	types.TaskSuggest:   {models.ModelGPT4_1, models.ModelGPT4o, models.ModelGPT4_1_Mini},
	types.TaskClassify:  {models.ModelGPT4oMini, models.ModelGPT4_1_Mini},
	types.TaskExtract:   {models.ModelGPT4_1_Mini, models.ModelGPT4o, models.ModelGPT4oMini},
	types.TaskTranslate: {models.ModelGPT4o, models.ModelGPT4_1_Mini},
	types.TaskGenerate:  {models.ModelGPT4_1, models.ModelGPT4o, models.ModelGPT4_1_Mini},
}

func classifyError(err error) providers.ErrorKind {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return providers.ClassifyStatus(apierr.StatusCode)
	}
	return providers.ErrKindProvider
}
