package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the model artifact to path, creating parent directories
func Save(tm *TrainedModel, path string) error {
	data, err := tm.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}
	return nil
}

// Load reads a model artifact from path
func Load(path string) (*TrainedModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	return Unmarshal(data)
}
