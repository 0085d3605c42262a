package types

import (
	"context"
	"time"
)

// TaskType represents the kind of work a request asks a model to do
type TaskType string

const (
	TaskSummarize TaskType = "summarize"
	TaskAnalyze   TaskType = "analyze"
	TaskSuggest   TaskType = "suggest"
	TaskClassify  TaskType = "classify"
	TaskExtract   TaskType = "extract"
	TaskTranslate TaskType = "translate"
	TaskGenerate  TaskType = "generate"
)

// AllTasks lists every supported task type
var AllTasks = []TaskType{
	TaskSummarize,
	TaskAnalyze,
	TaskSuggest,
	TaskClassify,
	TaskExtract,
	TaskTranslate,
	TaskGenerate,
}

func (t TaskType) Valid() bool {
	for _, task := range AllTasks {
		if t == task {
			return true
		}
	}
	return false
}

// Strategy shapes how the selector scores candidate models
type Strategy string

const (
	StrategyPerformance Strategy = "performance"
	StrategyCost        Strategy = "cost"
	StrategySpeed       Strategy = "speed"
	StrategyBalanced    Strategy = "balanced"
	StrategyFallback    Strategy = "fallback"
)

// AllowsFallback reports whether a failed primary attempt may be retried
// against other providers under this strategy.
func (s Strategy) AllowsFallback() bool {
	return s == StrategyBalanced || s == StrategyFallback
}

// Request represents one AI request. Created per call, never persisted.
type Request struct {
	Task    TaskType `json:"task"`
	Content string   `json:"content"`

	// Context entries are flattened into the user turn as "key: value" lines
	Context map[string]string `json:"context,omitempty"`

	// Overrides. Zero values mean "use the model/task defaults".
	SystemPrompt string   `json:"system_prompt,omitempty"`
	MaxTokens    int      `json:"max_tokens,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	Model        string   `json:"model,omitempty"`
}

// TokenUsage represents token consumption reported by a vendor
type TokenUsage struct {
	Prompt     int64 `json:"prompt"`
	Completion int64 `json:"completion"`
	Total      int64 `json:"total"`
}

// Add adds two TokenUsage together
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		Prompt:     u.Prompt + other.Prompt,
		Completion: u.Completion + other.Completion,
		Total:      u.Total + other.Total,
	}
}

// Response represents one completed AI request. Immutable once created.
type Response struct {
	ID       string   `json:"id"`
	Provider string   `json:"provider"`
	Model    string   `json:"model"`
	Task     TaskType `json:"task"`
	Content  string   `json:"content"`

	TokenUsage   TokenUsage    `json:"token_usage"`
	ResponseTime time.Duration `json:"response_time"`

	// CostUSD is a decimal string, e.g. "0.000125"
	CostUSD string `json:"cost_usd"`

	// vendor-specific fields such as stop reason
	Metadata map[string]string `json:"metadata,omitempty"`
}

type LogType string

const (
	LogType_Info  LogType = "info"
	LogType_Error LogType = "error"
)

type Logger interface {
	Log(ctx context.Context, logType LogType, format string, args ...interface{})
}

type LoggerFunc func(ctx context.Context, logType LogType, format string, args ...interface{})

func (l LoggerFunc) Log(ctx context.Context, logType LogType, format string, args ...interface{}) {
	l(ctx, logType, format, args...)
}
