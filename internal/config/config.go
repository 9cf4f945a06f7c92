// Package config provides check configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name, e.g. CHECK_SSD_LOG_LEVEL.
const Prefix = "CHECK_SSD"

// Volume loop bounds for the StorCLI backend.
const (
	// VolumeBoundControllers probes volumes [0, controller count) on every controller.
	// This matches the behaviour existing monitoring setups were tuned against.
	VolumeBoundControllers = "controllers"
	// VolumeBoundVolumes probes volumes [0, volume count) of each controller.
	VolumeBoundVolumes = "volumes"
)

// Settings holds all check configuration.
type Settings struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`

	// Upper bound for a single external tool invocation
	CommandTimeout time.Duration `envconfig:"COMMAND_TIMEOUT" default:"5s"`

	// Consecutive timeouts/start failures of one binary before it is skipped for the rest of the run
	BreakerThreshold int `envconfig:"BREAKER_THRESHOLD" default:"3"`

	VolumeBound string `envconfig:"VOLUME_BOUND" default:"controllers"`

	// Log host and virtualization info at startup
	DescribeHost bool `envconfig:"DESCRIBE_HOST" default:"true"`
}

// Defaults returns the settings used when the environment is empty or unusable.
func Defaults() *Settings {
	return &Settings{
		LogLevel:         "warn",
		CommandTimeout:   5 * time.Second,
		BreakerThreshold: 3,
		VolumeBound:      VolumeBoundControllers,
		DescribeHost:     true,
	}
}

// Load creates a new Settings instance from environment variables.
func Load() (*Settings, error) {
	s := &Settings{}
	if err := envconfig.Process(Prefix, s); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks value ranges that envconfig cannot express.
func (s *Settings) Validate() error {
	if s.CommandTimeout <= 0 {
		return fmt.Errorf("invalid %s_COMMAND_TIMEOUT %s: must be positive", Prefix, s.CommandTimeout)
	}
	if s.BreakerThreshold <= 0 {
		return fmt.Errorf("invalid %s_BREAKER_THRESHOLD %d: must be positive", Prefix, s.BreakerThreshold)
	}

	switch strings.ToLower(s.VolumeBound) {
	case VolumeBoundControllers, VolumeBoundVolumes:
		s.VolumeBound = strings.ToLower(s.VolumeBound)
	default:
		return fmt.Errorf("invalid %s_VOLUME_BOUND %q: want %q or %q",
			Prefix, s.VolumeBound, VolumeBoundControllers, VolumeBoundVolumes)
	}

	return nil
}

// BoundByVolumeCount reports whether the StorCLI volume loop uses each controller's own volume count.
func (s *Settings) BoundByVolumeCount() bool {
	return s.VolumeBound == VolumeBoundVolumes
}
