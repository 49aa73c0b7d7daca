package openrouter

import "time"

const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "mistralai/mistral-7b-instruct"

	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DeepSeekBaseURL and QwenBaseURL serve the same chat completions contract.
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// DefaultReferer and DefaultTitle identify the app to OpenRouter.
	DefaultReferer = "http://localhost:3000"
	DefaultTitle   = "Task Planner App"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)
