package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
)

const healthProbeModel = models.ModelGemini2_0_Flash

// Config represents the adapter configuration
type Config struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
}

// Adapter wraps the Gemini SDK behind the uniform provider contract
type Adapter struct {
	config Config
	client *genai.Client
}

// New creates a Gemini adapter. Initialize must be called before use.
func New(config Config) *Adapter {
	if config.DefaultModel == "" {
		config.DefaultModel = models.ModelGemini2_5_Flash
	}
	return &Adapter{config: config}
}

func (a *Adapter) Provider() providers.Provider {
	return providers.ProviderGemini
}

func (a *Adapter) DefaultModel() string {
	return a.config.DefaultModel
}

func (a *Adapter) Models() []models.ModelConfig {
	return models.ByProvider(providers.ProviderGemini)
}

func (a *Adapter) Initialize(ctx context.Context) error {
	if a.config.APIKey == "" {
		return providers.NewError(providers.ErrKindUnavailable, a.Provider(), "",
			fmt.Errorf("api key is required"))
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  a.config.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: a.config.BaseURL,
		},
	})
	if err != nil {
		return providers.NewError(providers.ErrKindUnavailable, a.Provider(), "", err)
	}
	a.client = client
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

	one := int32(1)
	_, err := a.client.Models.GenerateContent(ctx, healthProbeModel,
		[]*genai.Content{
			{Role: genai.RoleUser, Parts: []*genai.Part{{Text: "ping"}}},
		},
		&genai.GenerateContentConfig{
			MaxOutputTokens: one,
			CandidateCount:  1,
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
	if !ok || modelCfg.Provider != providers.ProviderGemini {
		return nil, providers.NewError(providers.ErrKindInvalidRequest, a.Provider(), model,
			fmt.Errorf("unknown model"))
	}

	config := &genai.GenerateContentConfig{
		CandidateCount:  1,
		MaxOutputTokens: int32(providers.MaxOutputTokens(req, modelCfg.MaxOutput)),
	}
	if systemPrompt := providers.SystemPrompt(req); systemPrompt != "" && modelCfg.SupportsSystem {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	if req.Temperature != nil && modelCfg.SupportsTemperature {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}

	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: providers.UserContent(req)}},
		},
	}

	start := time.Now()
	result, err := a.client.Models.GenerateContent(ctx, model, contents, config)
	elapsed := time.Since(start)
	if err != nil {
		return nil, providers.NewError(classifyError(err), a.Provider(), model, err)
	}
	if len(result.Candidates) == 0 {
		return nil, providers.NewError(providers.ErrKindProvider, a.Provider(), model,
			fmt.Errorf("response has no candidates"))
	}
	candidate := result.Candidates[0]

	var content strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			content.WriteString(part.Text)
		}
	}

	var usage types.TokenUsage
	if result.UsageMetadata != nil {
		usage = types.TokenUsage{
			Prompt:     int64(result.UsageMetadata.PromptTokenCount),
			Completion: int64(result.UsageMetadata.CandidatesTokenCount),
			Total:      int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	cost := providers.ComputeCost(modelCfg, usage)

	return providers.NewResponse(a.Provider(), model, req.Task, content.String(),
		usage, elapsed, cost, map[string]string{
			"finish_reason": string(candidate.FinishReason),
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
	types.TaskSummarize: {models.ModelGemini2_5_Flash, models.ModelGemini2_0_Flash},
	types.TaskAnalyze:   {models.ModelGemini2_5_Pro, models.ModelGemini2_5_Flash},
	types.TaskSuggest:   {models.ModelGemini2_5_Pro, models.ModelGemini2_5_Flash},
	types.TaskClassify:  {models.ModelGemini2_0_Flash, models.ModelGemini2_5_Flash},
	types.TaskExtract:   {models.ModelGemini2_5_Flash, models.ModelGemini2_0_Flash},
	types.TaskTranslate: {models.ModelGemini2_5_Flash, models.ModelGemini2_5_Pro},
	types.TaskGenerate:  {models.ModelGemini2_5_Pro, models.ModelGemini2_5_Flash},
}

func classifyError(err error) providers.ErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return providers.ClassifyStatus(apiErr.Code)
	}
	return providers.ErrKindProvider
}
