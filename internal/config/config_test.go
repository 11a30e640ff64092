package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Render.Scale != 1.5 {
		t.Errorf("Render.Scale = %v, want 1.5", cfg.Render.Scale)
	}
	if cfg.Output.Dir != "" {
		t.Errorf("Output.Dir = %q, want empty", cfg.Output.Dir)
	}
	if !cfg.TUI.ShowHelp {
		t.Error("TUI.ShowHelp = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit is invalid", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test") {
					t.Errorf("error should name the field, got %q", err)
				}
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "max scale", mutate: func(c *Config) { c.Render.Scale = MaxScale }},
		{name: "small scale", mutate: func(c *Config) { c.Render.Scale = 0.25 }},
		{name: "zero scale", mutate: func(c *Config) { c.Render.Scale = 0 }, wantErr: ErrInvalidScale},
		{name: "negative scale", mutate: func(c *Config) { c.Render.Scale = -1 }, wantErr: ErrInvalidScale},
		{name: "scale above max", mutate: func(c *Config) { c.Render.Scale = 8.01 }, wantErr: ErrInvalidScale},
		{name: "NaN scale", mutate: func(c *Config) { c.Render.Scale = math.NaN() }, wantErr: ErrInvalidScale},
		{
			name:    "output dir too long",
			mutate:  func(c *Config) { c.Output.Dir = strings.Repeat("d", MaxDirLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "work.yaml", `render:
  scale: 2
output:
  dir: "/tmp/exports"
tui:
  showHelp: false
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := &Config{
			Render: RenderConfig{Scale: 2},
			Output: OutputConfig{Dir: "/tmp/exports"},
			TUI:    TUIConfig{ShowHelp: false},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "partial.yaml", "output:\n  dir: out\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Render.Scale != DefaultScale {
			t.Errorf("Render.Scale = %v, want %v", cfg.Render.Scale, DefaultScale)
		}
		if !cfg.TUI.ShowHelp {
			t.Error("TUI.ShowHelp = false, want default true")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("surely-missing-pdfannotate-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("error %T is not *NotFoundError", err)
		}
		if len(nf.Tried) < 2 || nf.Tried[0] != "surely-missing-pdfannotate-config.yaml" {
			t.Errorf("Tried = %v, want local .yaml first", nf.Tried)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "invalid.yaml", "render: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "unknown.yaml", "render:\n  scale: 1\n  dpi: 300\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("scale out of range returns ErrInvalidScale", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "scale.yaml", "render:\n  scale: 12\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidScale) {
			t.Errorf("error = %v, want ErrInvalidScale", err)
		}
	})
}

// Not parallel: changes the working directory.
func TestLoadConfig_ByNameInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "team.yml", "render:\n  scale: 3\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Render.Scale != 3 {
		t.Errorf("Render.Scale = %v, want 3", cfg.Render.Scale)
	}
}
