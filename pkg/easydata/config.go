package easydata

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Config contains all configuration options for template expansion
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// StrictMode makes unresolvable paths fail instead of expanding to null
	StrictMode bool
	// MaxRenderDepth limits how deeply macro invocations may nest
	MaxRenderDepth int
	// MaxDerefIterations limits the rounds of ${...} substitution within one path
	MaxDerefIterations int
	// Markers holds the opening, marker and closing characters of tags, e.g. "[@]"
	Markers string
	// LineBreak is the line terminator of templates, "\n" or "\r\n"
	LineBreak string
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func loadGlobalConfig() {
	configOnce.Do(func() {
		globalConfigMutex.Lock()
		if globalConfig == nil {
			globalConfig = ConfigFromEnvironment()
		}
		globalConfigMutex.Unlock()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:           "info",
		StrictMode:         false,
		MaxRenderDepth:     100,
		MaxDerefIterations: 64,
		Markers:            "[@]",
		LineBreak:          "\n",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// EASYDATA_LOG_LEVEL
	if val := os.Getenv("EASYDATA_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// EASYDATA_STRICT_MODE
	if val := os.Getenv("EASYDATA_STRICT_MODE"); val != "" {
		config.StrictMode = parseBool(val)
	}

	// EASYDATA_MAX_RENDER_DEPTH
	if val := os.Getenv("EASYDATA_MAX_RENDER_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			config.MaxRenderDepth = depth
		}
	}

	// EASYDATA_MAX_DEREF_ITERATIONS
	if val := os.Getenv("EASYDATA_MAX_DEREF_ITERATIONS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxDerefIterations = n
		}
	}

	// EASYDATA_MARKERS
	if val := os.Getenv("EASYDATA_MARKERS"); val != "" {
		config.Markers = val
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.MaxRenderDepth == 0 {
		config.MaxRenderDepth = defaults.MaxRenderDepth
	}
	if config.MaxDerefIterations == 0 {
		config.MaxDerefIterations = defaults.MaxDerefIterations
	}
	if config.Markers == "" {
		config.Markers = defaults.Markers
	}
	if config.LineBreak == "" {
		config.LineBreak = defaults.LineBreak
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxRenderDepth <= 0 {
		return errors.New("max render depth must be positive")
	}

	if c.MaxDerefIterations <= 0 {
		return errors.New("max deref iterations must be positive")
	}

	if _, _, _, err := ParseMarkers(c.Markers); err != nil {
		return err
	}

	if !isLineBreak(c.LineBreak) {
		return fmt.Errorf("unsupported line break %q", c.LineBreak)
	}

	return nil
}

// ParseMarkers splits a three character marker string such as "[@]" into the
// opening, marker and closing characters.
func ParseMarkers(markers string) (opening, marker, closing rune, err error) {
	if utf8.RuneCountInString(markers) != 3 {
		return 0, 0, 0, fmt.Errorf("markers must have 3 characters: opening, marking, closing, got %q", markers)
	}
	r := []rune(markers)
	return r[0], r[1], r[2], nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	loadGlobalConfig()
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	loadGlobalConfig()
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Outside the lock, the logger reads the config back.
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
