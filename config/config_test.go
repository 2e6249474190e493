package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Output.Format != "text" {
		t.Errorf("expected default format 'text', got %q", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("expected color on by default")
	}
	if cfg.Output.LogTheme != "everforest" {
		t.Errorf("expected default log theme 'everforest', got %q", cfg.Output.LogTheme)
	}
	if cfg.Chart.AsOfYear != 0 {
		t.Errorf("expected as_of_year 0 (clock year), got %d", cfg.Chart.AsOfYear)
	}
	if cfg.Chart.Trace {
		t.Error("expected trace off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "zero values are valid",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "known formats are valid",
			config: Config{
				Output: OutputConfig{Format: "yaml"},
			},
			wantErr: false,
		},
		{
			name: "unknown format is invalid",
			config: Config{
				Output: OutputConfig{Format: "csv"},
			},
			wantErr: true,
		},
		{
			name: "unknown log theme is invalid",
			config: Config{
				Output: OutputConfig{LogTheme: "solarized"},
			},
			wantErr: true,
		},
		{
			name: "as_of_year inside the table window is valid",
			config: Config{
				Chart: ChartConfig{AsOfYear: 2022},
			},
			wantErr: false,
		},
		{
			name: "as_of_year before the table window is invalid",
			config: Config{
				Chart: ChartConfig{AsOfYear: 1899},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[output]\nformat = \"json\"\n\n[chart]\nas_of_year = 2030\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("expected format from file, got %q", cfg.Output.Format)
	}
	if cfg.Chart.AsOfYear != 2030 {
		t.Errorf("expected as_of_year from file, got %d", cfg.Chart.AsOfYear)
	}
	// Values absent from the file keep their defaults.
	if cfg.Output.LogTheme != "everforest" {
		t.Errorf("expected default log theme, got %q", cfg.Output.LogTheme)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestSaveRotatesBackups(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{
		Output: OutputConfig{Format: "toml", Color: true, LogTheme: "gruvbox"},
		Chart:  ChartConfig{AsOfYear: 2026},
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}

	path := filepath.Join(home, ".ziwei", "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "gruvbox") {
		t.Errorf("saved config missing log theme: %s", data)
	}

	cfg.Output.LogTheme = "everforest"
	if err := Save(cfg); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	backup, err := os.ReadFile(path + ".back1")
	if err != nil {
		t.Fatalf("backup not created: %v", err)
	}
	if !strings.Contains(string(backup), "gruvbox") {
		t.Errorf("backup should hold the previous contents, got %s", backup)
	}

	current, _ := os.ReadFile(path)
	if !strings.Contains(string(current), "everforest") {
		t.Errorf("config should hold the new contents, got %s", current)
	}

	roundTrip, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() on saved config failed: %v", err)
	}
	if roundTrip.Chart.AsOfYear != 2026 {
		t.Errorf("round trip lost as_of_year, got %d", roundTrip.Chart.AsOfYear)
	}
}

func TestGetterFallbacks(t *testing.T) {
	var cfg Config
	if got := cfg.GetFormat(); got != "text" {
		t.Errorf("GetFormat() zero-value fallback = %q, want text", got)
	}
	if got := cfg.GetLogTheme(); got != "everforest" {
		t.Errorf("GetLogTheme() zero-value fallback = %q, want everforest", got)
	}
}
