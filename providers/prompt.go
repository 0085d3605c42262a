package providers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bridgekit-ai/aibridge/types"
)

// taskSystemPrompts holds the default system prompt per task type, used when
// the request carries no override.
var taskSystemPrompts = map[types.TaskType]string{
	types.TaskSummarize: "You are a precise assistant. Summarize the provided content concisely, preserving key facts and figures.",
	types.TaskAnalyze:   "You are an analyst. Examine the provided content and explain the notable patterns, risks and implications.",
	types.TaskSuggest:   "You are an advisor. Propose concrete, actionable improvements for the situation described.",
	types.TaskClassify:  "You are a classifier. Assign the provided content to the most fitting category and answer with the category only.",
	types.TaskExtract:   "You are an extraction engine. Pull out the requested structured fields from the content and return them as JSON.",
	types.TaskTranslate: "You are a translator. Translate the provided content faithfully, keeping tone and formatting.",
	types.TaskGenerate:  "You are a writing assistant. Produce the requested content in a clear, professional voice.",
}

// SystemPrompt returns the system prompt for a request: the explicit
// override when present, otherwise the task default.
func SystemPrompt(req types.Request) string {
	if req.SystemPrompt != "" {
		return req.SystemPrompt
	}
	return taskSystemPrompts[req.Task]
}

// UserContent flattens the request into the user turn: the free-text
// content followed by the context entries as "key: value" lines. Context
// keys are emitted sorted so the prompt is stable across calls.
func UserContent(req types.Request) string {
	if len(req.Context) == 0 {
		return req.Content
	}

	keys := make([]string, 0, len(req.Context))
	for k := range req.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(req.Content)
	b.WriteString("\n\nContext:\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, req.Context[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

// MaxOutputTokens resolves the completion cap for a request against the
// model limit: the request override when set, trimmed to the model maximum.
func MaxOutputTokens(req types.Request, modelMax int) int {
	if req.MaxTokens > 0 && req.MaxTokens < modelMax {
		return req.MaxTokens
	}
	if modelMax > 0 {
		return modelMax
	}
	return 4096
}
