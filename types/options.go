package types

// RequestOption represents a functional option for building a Request
type RequestOption func(*Request)

// WithContext merges key/value entries into the request context
func WithContext(context map[string]string) RequestOption {
	return func(req *Request) {
		if req.Context == nil {
			req.Context = make(map[string]string, len(context))
		}
		for k, v := range context {
			req.Context[k] = v
		}
	}
}

// WithContextValue adds a single context entry
func WithContextValue(key, value string) RequestOption {
	return func(req *Request) {
		if req.Context == nil {
			req.Context = make(map[string]string, 1)
		}
		req.Context[key] = value
	}
}

// WithSystemPrompt overrides the task's default system prompt
func WithSystemPrompt(prompt string) RequestOption {
	return func(req *Request) {
		req.SystemPrompt = prompt
	}
}

// WithMaxTokens caps the completion length
func WithMaxTokens(maxTokens int) RequestOption {
	return func(req *Request) {
		req.MaxTokens = maxTokens
	}
}

// WithTemperature sets the sampling temperature. The adapter drops it for
// models that do not accept one.
func WithTemperature(temperature float64) RequestOption {
	return func(req *Request) {
		req.Temperature = &temperature
	}
}

// WithModel pins the request to an exact model, bypassing selection
func WithModel(model string) RequestOption {
	return func(req *Request) {
		req.Model = model
	}
}

// NewRequest builds a Request from a task, content and options
func NewRequest(task TaskType, content string, opts ...RequestOption) Request {
	req := Request{
		Task:    task,
		Content: content,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}
