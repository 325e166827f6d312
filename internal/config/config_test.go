package config

import (
	"testing"

	"goresample/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"TRIAL_COUNT", "CONFIDENCE_LEVEL", "SEED", "WORKERS", "DATABASE_URL", "PORT", "EXCEL_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.TrialCount != 1000 {
		t.Errorf("TrialCount = %d, want 1000", cfg.Simulation.TrialCount)
	}
	if cfg.Simulation.ConfidenceLevel != 0.95 {
		t.Errorf("ConfidenceLevel = %v, want 0.95", cfg.Simulation.ConfidenceLevel)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Simulation.Seed)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Enabled {
		t.Error("database enabled without DATABASE_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRIAL_COUNT", "5000")
	t.Setenv("CONFIDENCE_LEVEL", "0.99")
	t.Setenv("SEED", "7")
	t.Setenv("WORKERS", "4")
	t.Setenv("DATABASE_URL", "postgres://localhost/resample")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.TrialCount != 5000 || cfg.Simulation.ConfidenceLevel != 0.99 {
		t.Errorf("overrides not applied: %+v", cfg.Simulation)
	}
	if cfg.Simulation.Seed != 7 || cfg.Simulation.Workers != 4 {
		t.Errorf("seed/workers not applied: %+v", cfg.Simulation)
	}
	if !cfg.Database.Enabled {
		t.Error("database not enabled with DATABASE_URL set")
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"TRIAL_COUNT":      "0",
		"CONFIDENCE_LEVEL": "1.5",
		"WORKERS":          "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			if err == nil {
				t.Fatalf("%s=%s accepted", key, value)
			}
			if errors.GetCode(err) != errors.CodeConfigInvalid {
				t.Errorf("error code = %v", errors.GetCode(err))
			}
		})
	}
}
