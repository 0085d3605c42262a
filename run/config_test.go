package run

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigEmpty(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config == nil {
		t.Fatalf("expected an empty config")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("does-not-exist.json"); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadAndApplyConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"task": "summarize",
		"strategy": "cost",
		"max_cost_usd": "0.01",
		"context": ["audience=executives"],
		"verbose": true
	}`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// flag already set on the command line wins
	task := "analyze"
	var model, strategy, preferProvider, maxCostUSD, maxLatency, systemPrompt, temperature, envFile, usageDB string
	var minQuality, maxTokens int
	var contextPairs []string
	var verbose bool

	ApplyConfig(config, &task, &model, &strategy, &preferProvider, &maxCostUSD,
		&minQuality, &maxLatency, &systemPrompt, &maxTokens, &temperature,
		&contextPairs, &envFile, &usageDB, &verbose)

	if task != "analyze" {
		t.Errorf("command line task must win, got %s", task)
	}
	if strategy != "cost" {
		t.Errorf("expected strategy from config, got %s", strategy)
	}
	if maxCostUSD != "0.01" {
		t.Errorf("expected max cost from config, got %s", maxCostUSD)
	}
	if len(contextPairs) != 1 || contextPairs[0] != "audience=executives" {
		t.Errorf("unexpected context: %v", contextPairs)
	}
	if !verbose {
		t.Errorf("expected verbose from config")
	}
}
