package config

import (
	"os"
	"strconv"
	"time"

	"gamblelab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Experiment ExperimentConfig
	Coach      CoachConfig
	Server     ServerConfig
	Profiling  ProfilingConfig
}

// ExperimentConfig carries the experimental design constants. The defaults
// define the standard protocol; changing them changes the experiment.
type ExperimentConfig struct {
	PreTrials      int
	TrainingTrials int
	PostTrials     int
	// FlagWindow caps the sliding flag history used by adaptation.
	FlagWindow int
	// EaseFraction / HardenFraction bound the loss-aversion fraction that
	// lowers / raises the difficulty tier.
	EaseFraction   float64
	HardenFraction float64
	// EVThreshold is the EV band beyond which a gamble counts as clearly
	// favorable or unfavorable for flagging.
	EVThreshold float64
	// BaseSeed anchors per-trial RNG streams; 0 means derive from the clock.
	BaseSeed int64
}

// CoachConfig holds feedback composer settings
type CoachConfig struct {
	// Provider selects the composer: "template" (default) or "openai".
	Provider    string
	OpenAIKey   string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Experiment: loadExperimentConfig(),
		Coach:      loadCoachConfig(),
		Server:     loadServerConfig(),
		Profiling:  loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		PreTrials:      getEnvIntOrDefault("PRE_TRIALS", 40),
		TrainingTrials: getEnvIntOrDefault("TRAIN_TRIALS", 25),
		PostTrials:     getEnvIntOrDefault("POST_TRIALS", 40),
		FlagWindow:     getEnvIntOrDefault("FLAG_WINDOW", 10),
		EaseFraction:   getEnvFloatOrDefault("EASE_FRACTION", 0.6),
		HardenFraction: getEnvFloatOrDefault("HARDEN_FRACTION", 0.2),
		EVThreshold:    getEnvFloatOrDefault("EV_THRESHOLD", 2.0),
		BaseSeed:       int64(getEnvIntOrDefault("BASE_SEED", 0)),
	}
}

func loadCoachConfig() CoachConfig {
	provider := getEnvOrDefault("COACH_PROVIDER", "template")
	// Without a key the model-backed coach cannot run; fall back quietly.
	if provider == "openai" && os.Getenv("OPENAI_API_KEY") == "" {
		provider = "template"
	}
	return CoachConfig{
		Provider:    provider,
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:       getEnvOrDefault("COACH_MODEL", "gpt-4o-mini"),
		Temperature: getEnvFloatOrDefault("COACH_TEMPERATURE", 0.3),
		MaxTokens:   getEnvIntOrDefault("COACH_MAX_TOKENS", 200),
		Timeout:     getEnvDurationOrDefault("COACH_TIMEOUT", 30*time.Second),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		APIPort: getEnvOrDefault("API_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	e := config.Experiment
	if e.PreTrials <= 0 || e.TrainingTrials <= 0 || e.PostTrials <= 0 {
		return errors.ConfigInvalid("trial counts must be positive")
	}
	if e.FlagWindow <= 0 {
		return errors.ConfigInvalid("FLAG_WINDOW must be positive")
	}
	if e.EaseFraction <= e.HardenFraction {
		return errors.ConfigInvalid("EASE_FRACTION must exceed HARDEN_FRACTION")
	}
	if e.EVThreshold <= 0 {
		return errors.ConfigInvalid("EV_THRESHOLD must be positive")
	}
	if config.Coach.Provider != "template" && config.Coach.Provider != "openai" {
		return errors.ConfigInvalid("COACH_PROVIDER must be template or openai")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
