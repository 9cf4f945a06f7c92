package config

import (
	"os"
	"testing"
	"time"
)

// unsetenv clears key for the duration of the test; t.Setenv restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CHECK_SSD_LOG_LEVEL",
		"CHECK_SSD_COMMAND_TIMEOUT",
		"CHECK_SSD_BREAKER_THRESHOLD",
		"CHECK_SSD_VOLUME_BOUND",
		"CHECK_SSD_DESCRIBE_HOST",
	} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("Load() default log level = %v, want warn", cfg.LogLevel)
	}

	if cfg.CommandTimeout != 5*time.Second {
		t.Errorf("Load() default command timeout = %v, want 5s", cfg.CommandTimeout)
	}

	if cfg.BreakerThreshold != 3 {
		t.Errorf("Load() default breaker threshold = %v, want 3", cfg.BreakerThreshold)
	}

	if cfg.BoundByVolumeCount() {
		t.Errorf("Load() default volume bound = %v, want %v", cfg.VolumeBound, VolumeBoundControllers)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHECK_SSD_LOG_LEVEL", "debug")
	t.Setenv("CHECK_SSD_COMMAND_TIMEOUT", "750ms")
	t.Setenv("CHECK_SSD_VOLUME_BOUND", "Volumes")
	t.Setenv("CHECK_SSD_DESCRIBE_HOST", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Load() log level from env = %v, want debug", cfg.LogLevel)
	}

	if cfg.CommandTimeout != 750*time.Millisecond {
		t.Errorf("Load() command timeout from env = %v, want 750ms", cfg.CommandTimeout)
	}

	if !cfg.BoundByVolumeCount() {
		t.Errorf("Load() volume bound from env = %v, want %v", cfg.VolumeBound, VolumeBoundVolumes)
	}

	if cfg.DescribeHost {
		t.Error("Load() describe host from env = true, want false")
	}
}

func TestLoadRejectsInvalidBound(t *testing.T) {
	t.Setenv("CHECK_SSD_VOLUME_BOUND", "drives")

	if _, err := Load(); err == nil {
		t.Error("Load() with invalid volume bound returned nil error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{"defaults are valid", func(s *Settings) {}, false},
		{"zero timeout", func(s *Settings) { s.CommandTimeout = 0 }, true},
		{"negative threshold", func(s *Settings) { s.BreakerThreshold = -1 }, true},
		{"unknown volume bound", func(s *Settings) { s.VolumeBound = "disks" }, true},
		{"upper case volume bound", func(s *Settings) { s.VolumeBound = "CONTROLLERS" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(s)

			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
