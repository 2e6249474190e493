package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/mingli/ziwei/errors"
)

// UserConfigPath returns the path of the user config file,
// ~/.ziwei/config.toml, or empty when no home directory resolves.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ziwei", "config.toml")
}

// Save writes cfg to the user config file with a rotating backup of the
// previous contents.
func Save(cfg *Config) error {
	configPath := UserConfigPath()
	if configPath == "" {
		return errors.New("could not determine home directory")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create .ziwei directory")
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	// Keys mirror the mapstructure names so the file reads back through
	// the viper cascade.
	settings := map[string]interface{}{
		"output": map[string]interface{}{
			"format":    cfg.GetFormat(),
			"color":     cfg.Output.Color,
			"log_theme": cfg.GetLogTheme(),
		},
		"chart": map[string]interface{}{
			"as_of_year": cfg.Chart.AsOfYear,
			"trace":      cfg.Chart.Trace,
		},
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// createBackup rotates backups (.back1, .back2, .back3) before a write
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete oldest backup")
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	return os.WriteFile(back1, content, 0o644)
}
