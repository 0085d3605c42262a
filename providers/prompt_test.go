package providers

import (
	"strings"
	"testing"

	"github.com/bridgekit-ai/aibridge/types"
)

func TestSystemPromptDefaultPerTask(t *testing.T) {
	for _, task := range types.AllTasks {
		prompt := SystemPrompt(types.Request{Task: task})
		if prompt == "" {
			t.Errorf("task %s: expected a default system prompt", task)
		}
	}
}

func TestSystemPromptOverride(t *testing.T) {
	req := types.Request{
		Task:         types.TaskSummarize,
		SystemPrompt: "You are a pirate.",
	}
	if got := SystemPrompt(req); got != "You are a pirate." {
		t.Errorf("expected override to win, got: %s", got)
	}
}

func TestUserContentWithoutContext(t *testing.T) {
	req := types.Request{Task: types.TaskGenerate, Content: "hello"}
	if got := UserContent(req); got != "hello" {
		t.Errorf("expected plain content, got: %s", got)
	}
}

func TestUserContentFlattensContextSorted(t *testing.T) {
	req := types.Request{
		Task:    types.TaskTranslate,
		Content: "good morning",
		Context: map[string]string{
			"tone":            "formal",
			"target_language": "French",
		},
	}
	got := UserContent(req)
	expected := "good morning\n\nContext:\ntarget_language: French\ntone: formal"
	if got != expected {
		t.Errorf("expected:\n%q\ngot:\n%q", expected, got)
	}
	if !strings.HasPrefix(got, req.Content) {
		t.Errorf("expected content first, got: %s", got)
	}
}

func TestMaxOutputTokens(t *testing.T) {
	tests := []struct {
		name     string
		req      types.Request
		modelMax int
		expected int
	}{
		{name: "no override uses model max", req: types.Request{}, modelMax: 8192, expected: 8192},
		{name: "override below model max wins", req: types.Request{MaxTokens: 100}, modelMax: 8192, expected: 100},
		{name: "override above model max is trimmed", req: types.Request{MaxTokens: 99999}, modelMax: 8192, expected: 8192},
		{name: "no limits falls back", req: types.Request{}, modelMax: 0, expected: 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxOutputTokens(tt.req, tt.modelMax); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
