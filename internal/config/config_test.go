package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoragePath != "segue.db" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.BatchWorkers != 4 || cfg.QueueSize != 100 {
		t.Errorf("workers/queue = %d/%d", cfg.BatchWorkers, cfg.QueueSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEGUE_PORT", "9090")
	t.Setenv("EXTRACTOR_URL", "http://analysis.local")
	t.Setenv("EXTRACTOR_SENSITIVITY", "0.6")
	t.Setenv("SEGUE_BATCH_WORKERS", "not-a-number")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.ExtractorURL != "http://analysis.local" {
		t.Errorf("ExtractorURL = %q", cfg.ExtractorURL)
	}
	if cfg.CueSensitivity != 0.6 {
		t.Errorf("CueSensitivity = %v", cfg.CueSensitivity)
	}
	// Unparseable values fall back to the default.
	if cfg.BatchWorkers != 4 {
		t.Errorf("BatchWorkers = %d, want 4", cfg.BatchWorkers)
	}
}
