// Package config loads and saves the user's settings.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "tuichess/config.json"
	logFile = "tuichess/tuichess.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ThemeHex is a board theme written with hex colours, e.g. "#b58863".
// "#0" stands for the terminal's default colour.
type ThemeHex struct {
	Name              string `json:"name"`
	SquareDark        string `json:"squareDark"`
	SquareLight       string `json:"squareLight"`
	SquareSelected    string `json:"squareSelected"`
	SquareDestination string `json:"squareDestination"`
	SquareHover       string `json:"squareHover"`
	SquareCheck       string `json:"squareCheck"`
	SquareLastMove    string `json:"squareLastMove"`
	White             string `json:"white"`
	Black             string `json:"black"`
	Rank              string `json:"rank"`
	File              string `json:"file"`
	Prompt            string `json:"prompt"`
	Input             string `json:"input"`
	InputInvalid      string `json:"inputInvalid"`
	Status            string `json:"status"`
	MoveBox           string `json:"moveBox"`
	PromotionBg       string `json:"promotionBg"`
	PromotionSelected string `json:"promotionSelected"`
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Addr        string `json:"addr"`
	HostKeyFile string `json:"host_key_file"`
	IdleTimeout string `json:"idle_timeout"`
}

// Timeout returns the idle timeout. Validate has checked it parses.
func (s SSHConfig) Timeout() time.Duration {
	d, _ := time.ParseDuration(s.IdleTimeout)
	return d
}

type Config struct {
	Theme       string     `json:"theme"`
	Themes      []ThemeHex `json:"themes"`
	Glyphs      string     `json:"glyphs"`
	Orientation string     `json:"orientation"`
	Mouse       bool       `json:"mouse"`
	LogLevel    string     `json:"log_level"`
	LogFile     string     `json:"log_file"`
	SSH         SSHConfig  `json:"ssh"`
}

// InitConfig returns the defaults overridden by the user's config file, if
// one exists in the XDG config directories.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		config.Themes = append([]ThemeHex(nil), DefaultConfig.Themes...)
		return &config, config.Validate()
	}
	return LoadConfig(absPath)
}

// LoadConfig reads the config file at path on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig
	config.Themes = nil
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	config.Themes = mergeThemes(DefaultConfig.Themes, config.Themes)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// mergeThemes returns the built-in themes with user themes replacing those
// of the same name. New user themes follow the built-in ones.
func mergeThemes(builtin, user []ThemeHex) []ThemeHex {
	themes := append([]ThemeHex(nil), builtin...)
	for _, th := range user {
		replaced := false
		for i := range themes {
			if themes[i].Name == th.Name {
				themes[i] = th
				replaced = true
				break
			}
		}
		if !replaced {
			themes = append(themes, th)
		}
	}
	return themes
}

func (c *Config) Validate() error {
	switch c.Glyphs {
	case GlyphsUnicode, GlyphsLetters, GlyphsBlock:
	default:
		return &InvalidConfig{fmt.Sprintf("unknown glyph set %q", c.Glyphs)}
	}
	switch c.Orientation {
	case "white", "black":
	default:
		return &InvalidConfig{fmt.Sprintf("orientation must be white or black, got %q", c.Orientation)}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	if _, err := time.ParseDuration(c.SSH.IdleTimeout); err != nil {
		return &InvalidConfig{fmt.Sprintf("ssh idle timeout: %s", err)}
	}
	if _, ok := c.FindTheme(c.Theme); !ok {
		return &InvalidConfig{fmt.Sprintf("theme %q is not defined", c.Theme)}
	}
	return nil
}

// FindTheme returns the theme called name.
func (c *Config) FindTheme(name string) (ThemeHex, bool) {
	for _, t := range c.Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeHex{}, false
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

// LogPath returns the log file location, defaulting to the XDG cache
// directory.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	return xdg.CacheFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %s", filePath, err)}
	}
	return nil
}
