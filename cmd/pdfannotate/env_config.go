package main

import (
	"strconv"
	"strings"

	"github.com/alnah/go-pdfannotate/internal/config"
	"github.com/alnah/go-pdfannotate/internal/logger"
)

const envPrefix = "PDFANNOTATE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string  // PDFANNOTATE_CONFIG: config file name or path
	Scale      float64 // PDFANNOTATE_SCALE: render zoom factor
	OutputDir  string  // PDFANNOTATE_OUTPUT_DIR: export directory
}

// knownEnvVars lists valid PDFANNOTATE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDFANNOTATE_CONFIG":     true,
	"PDFANNOTATE_SCALE":      true,
	"PDFANNOTATE_OUTPUT_DIR": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are reported and ignored.
func loadEnvConfig(env *Environment, log *logger.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.Getenv("PDFANNOTATE_CONFIG"),
		OutputDir:  env.Getenv("PDFANNOTATE_OUTPUT_DIR"),
	}

	if scale := env.Getenv("PDFANNOTATE_SCALE"); scale != "" {
		s, err := strconv.ParseFloat(scale, 64)
		if err != nil || s <= 0 {
			log.Warnf("ignoring PDFANNOTATE_SCALE=%q: not a positive number", scale)
		} else {
			cfg.Scale = s
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PDFANNOTATE_* variables.
// Helps catch typos like PDFANNOTATE_SCAL.
func warnUnknownEnvVars(env *Environment, log *logger.Logger) {
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.Warnf("unknown environment variable %s (typo?)", name)
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Flags are applied afterwards, giving: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Scale != 0 {
		cfg.Render.Scale = env.Scale
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
}
