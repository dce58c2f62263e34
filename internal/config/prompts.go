package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// PromptExample is one few-shot pair as stored in the prompts file.
type PromptExample struct {
	Human     string `json:"human"`
	Assistant string `json:"assistant"`
}

// PromptConfig holds the persona text and few-shot examples fed to every prompt.
type PromptConfig struct {
	Context  string          `json:"context"`
	Examples []PromptExample `json:"examples"`
}

func LoadPrompts(path string) (*PromptConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	var cfg PromptConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	return &cfg, nil
}
