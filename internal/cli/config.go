package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hackerslides/hackerslides/pkg/pipeline"
)

// Config is the optional on-disk configuration, decoded from
// $XDG_CONFIG_HOME/hackerslides/config.toml (or ~/.config/hackerslides/).
// Flags override config values; config values override built-in defaults.
type Config struct {
	Resolution string      `toml:"resolution"`
	Output     string      `toml:"output"`
	Tools      ToolsConfig `toml:"tools"`
	Fonts      FontsConfig `toml:"fonts"`
}

// ToolsConfig names the collaborator executables.
type ToolsConfig struct {
	Convert    string `toml:"convert"`
	Identify   string `toml:"identify"`
	Pygmentize string `toml:"pygmentize"`
}

// FontsConfig overrides the per-role font preference lists. Each list is
// ordered by preference; an empty list keeps the built-in preferences.
type FontsConfig struct {
	Text []string `toml:"text"`
	Code []string `toml:"code"`
	Meme []string `toml:"meme"`
}

// configPath returns the config file location using the XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file if present. A missing file yields the
// zero config without error; a malformed file is an error.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

// loadConfigFile decodes one TOML config file.
func loadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyTo fills pipeline options the caller left empty.
func (cfg Config) applyTo(opts *pipeline.Options) {
	if opts.Resolution == "" {
		opts.Resolution = cfg.Resolution
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Output
	}
	if opts.ConvertTool == "" {
		opts.ConvertTool = cfg.Tools.Convert
	}
	if opts.IdentifyTool == "" {
		opts.IdentifyTool = cfg.Tools.Identify
	}
	if opts.HighlightTool == "" {
		opts.HighlightTool = cfg.Tools.Pygmentize
	}
	if len(opts.TextFonts) == 0 {
		opts.TextFonts = cfg.Fonts.Text
	}
	if len(opts.CodeFonts) == 0 {
		opts.CodeFonts = cfg.Fonts.Code
	}
	if len(opts.MemeFonts) == 0 {
		opts.MemeFonts = cfg.Fonts.Meme
	}
}
