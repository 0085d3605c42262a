package run

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the request subcommand's settings in file form. Flags given
// on the command line take precedence over config values.
type Config struct {
	Task           string   `json:"task,omitempty"`
	Model          string   `json:"model,omitempty"`
	Strategy       string   `json:"strategy,omitempty"`
	PreferProvider string   `json:"prefer_provider,omitempty"`
	MaxCostUSD     string   `json:"max_cost_usd,omitempty"`
	MinQuality     int      `json:"min_quality,omitempty"`
	MaxLatency     string   `json:"max_latency,omitempty"`
	System         string   `json:"system,omitempty"`
	MaxTokens      int      `json:"max_tokens,omitempty"`
	Temperature    string   `json:"temperature,omitempty"`
	Context        []string `json:"context,omitempty"`
	EnvFile        string   `json:"env_file,omitempty"`
	UsageDB        string   `json:"usage_db,omitempty"`
	Verbose        bool     `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(configFile string) (*Config, error) {
	if configFile == "" {
		return &Config{}, nil
	}
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", configFile, err)
	}
	var config Config
	if err := json.Unmarshal(content, &config); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
	}
	return &config, nil
}

// ApplyConfig fills unset flag values from the config
func ApplyConfig(config *Config, task *string, model *string, strategy *string, preferProvider *string, maxCostUSD *string, minQuality *int, maxLatency *string, systemPrompt *string, maxTokens *int, temperature *string, contextPairs *[]string, envFile *string, usageDB *string, verbose *bool) {
	if config == nil {
		return
	}
	if *task == "" && config.Task != "" {
		*task = config.Task
	}
	if *model == "" && config.Model != "" {
		*model = config.Model
	}
	if *strategy == "" && config.Strategy != "" {
		*strategy = config.Strategy
	}
	if *preferProvider == "" && config.PreferProvider != "" {
		*preferProvider = config.PreferProvider
	}
	if *maxCostUSD == "" && config.MaxCostUSD != "" {
		*maxCostUSD = config.MaxCostUSD
	}
	if *minQuality == 0 && config.MinQuality != 0 {
		*minQuality = config.MinQuality
	}
	if *maxLatency == "" && config.MaxLatency != "" {
		*maxLatency = config.MaxLatency
	}
	if *systemPrompt == "" && config.System != "" {
		*systemPrompt = config.System
	}
	if *maxTokens == 0 && config.MaxTokens != 0 {
		*maxTokens = config.MaxTokens
	}
	if *temperature == "" && config.Temperature != "" {
		*temperature = config.Temperature
	}
	*contextPairs = append(*contextPairs, config.Context...)
	if *envFile == "" && config.EnvFile != "" {
		*envFile = config.EnvFile
	}
	if *usageDB == "" && config.UsageDB != "" {
		*usageDB = config.UsageDB
	}
	if !*verbose && config.Verbose {
		*verbose = config.Verbose
	}
}
