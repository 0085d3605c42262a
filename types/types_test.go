package types

import "testing"

func TestTaskTypeValid(t *testing.T) {
	for _, task := range AllTasks {
		if !task.Valid() {
			t.Errorf("expected %s to be valid", task)
		}
	}
	if TaskType("").Valid() {
		t.Errorf("empty task must be invalid")
	}
	if TaskType("daydream").Valid() {
		t.Errorf("unknown task must be invalid")
	}
}

func TestStrategyAllowsFallback(t *testing.T) {
	tests := []struct {
		strategy Strategy
		expected bool
	}{
		{StrategyBalanced, true},
		{StrategyFallback, true},
		{StrategyPerformance, false},
		{StrategyCost, false},
		{StrategySpeed, false},
	}
	for _, tt := range tests {
		if got := tt.strategy.AllowsFallback(); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.strategy, tt.expected, got)
		}
	}
}

func TestHealthStateSelectable(t *testing.T) {
	tests := []struct {
		state    HealthState
		expected bool
	}{
		{HealthHealthy, true},
		{HealthDegraded, true},
		{HealthUnknown, true},
		{HealthUnhealthy, false},
	}
	for _, tt := range tests {
		if got := tt.state.Selectable(); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.state, tt.expected, got)
		}
	}
}

func TestTokenUsageAdd(t *testing.T) {
	a := TokenUsage{Prompt: 10, Completion: 5, Total: 15}
	b := TokenUsage{Prompt: 1, Completion: 2, Total: 3}
	sum := a.Add(b)
	if sum.Prompt != 11 || sum.Completion != 7 || sum.Total != 18 {
		t.Errorf("unexpected sum: %+v", sum)
	}
	// operands unchanged
	if a.Total != 15 || b.Total != 3 {
		t.Errorf("expected value semantics")
	}
}

func TestNewRequestOptions(t *testing.T) {
	req := NewRequest(TaskTranslate, "good morning",
		WithSystemPrompt("translate formally"),
		WithMaxTokens(128),
		WithTemperature(0.2),
		WithModel("gpt-4o-mini"),
		WithContextValue("target_language", "German"),
	)

	if req.Task != TaskTranslate {
		t.Errorf("unexpected task: %s", req.Task)
	}
	if req.Content != "good morning" {
		t.Errorf("unexpected content: %s", req.Content)
	}
	if req.SystemPrompt != "translate formally" {
		t.Errorf("unexpected system prompt: %s", req.SystemPrompt)
	}
	if req.MaxTokens != 128 {
		t.Errorf("unexpected max tokens: %d", req.MaxTokens)
	}
	if req.Temperature == nil || *req.Temperature != 0.2 {
		t.Errorf("unexpected temperature: %v", req.Temperature)
	}
	if req.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model: %s", req.Model)
	}
	if req.Context["target_language"] != "German" {
		t.Errorf("unexpected context: %v", req.Context)
	}
}

func TestWithContextMerges(t *testing.T) {
	req := NewRequest(TaskAnalyze, "data",
		WithContextValue("a", "1"),
		WithContext(map[string]string{"b": "2"}),
	)
	if req.Context["a"] != "1" || req.Context["b"] != "2" {
		t.Errorf("expected merged context, got: %v", req.Context)
	}
}
