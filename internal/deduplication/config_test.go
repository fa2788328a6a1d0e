package deduplication

import (
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "no environment variables uses defaults",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg Config) {
				if cfg != DefaultConfig() {
					t.Errorf("cfg = %v, want %v", cfg, DefaultConfig())
				}
			},
		},
		{
			name: "valid custom configuration",
			envVars: map[string]string{
				"ISSUEVIEW_DEDUP_ENABLED":   "false",
				"ISSUEVIEW_DEDUP_MIN_LEVEL": "35",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Enabled {
					t.Errorf("Enabled = %v, want false", cfg.Enabled)
				}
				if cfg.MinCapabilityLevel != 35 {
					t.Errorf("MinCapabilityLevel = %v, want 35", cfg.MinCapabilityLevel)
				}
			},
		},
		{
			name:    "invalid bool value",
			envVars: map[string]string{"ISSUEVIEW_DEDUP_ENABLED": "maybe"},
			wantErr: true,
		},
		{
			name:    "invalid int value",
			envVars: map[string]string{"ISSUEVIEW_DEDUP_MIN_LEVEL": "not-a-number"},
			wantErr: true,
		},
		{
			name:    "value out of range",
			envVars: map[string]string{"ISSUEVIEW_DEDUP_MIN_LEVEL": "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Empty values fall back to defaults
			t.Setenv("ISSUEVIEW_DEDUP_ENABLED", "")
			t.Setenv("ISSUEVIEW_DEDUP_MIN_LEVEL", "")
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := ConfigFromEnv()
			if (err != nil) != tt.wantErr {
				t.Errorf("ConfigFromEnv() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	got := DefaultConfig().String()
	want := "Config{Enabled: true, MinCapabilityLevel: 34}"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestForCapabilityLevel(t *testing.T) {
	cfg := DefaultConfig()

	if d := ForCapabilityLevel(LevelDeduplication-1, cfg); d != nil {
		t.Errorf("expected no deduplicator below level %d, got %T", LevelDeduplication, d)
	}
	if d := ForCapabilityLevel(LevelDeduplication, cfg); d == nil {
		t.Error("expected a deduplicator at the minimum level")
	}

	cfg.Enabled = false
	if d := ForCapabilityLevel(LevelDeduplication+5, cfg); d != nil {
		t.Error("disabled config must not produce a deduplicator")
	}
}
