package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure.
type Config struct {
	// OutputDirectory is where the per-year report files are written.
	// Defaults to the working directory, which is where the fix tool
	// expects to find them.
	OutputDirectory string `mapstructure:"output_directory"`

	ImageExtensions   []string `mapstructure:"image_extensions"`
	VideoExtensions   []string `mapstructure:"video_extensions"`
	IgnoredExtensions []string `mapstructure:"ignored_extensions"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		OutputDirectory: ".",
		ImageExtensions: []string{
			".jpg", ".jpeg", ".png", ".tiff", ".heic", ".gif",
		},
		VideoExtensions: []string{
			".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv",
		},
		// Only .cr2 for now. Other RAW formats are deliberately not
		// listed until confirmed against the archive contents.
		IgnoredExtensions: []string{".cr2"},
		Logging: LoggingConfig{
			Level:      "info",
			FilePath:   "",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Look for config file in current directory and home directory
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.exif-auditor")
		viper.AddConfigPath("/etc/exif-auditor")
	}

	// Enable environment variable support
	viper.SetEnvPrefix("EXIF_AUDITOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate validates and normalizes the configuration.
func (c *Config) Validate() error {
	if c.OutputDirectory == "" {
		c.OutputDirectory = "."
	}

	c.ImageExtensions = normalizeExtensions(c.ImageExtensions)
	c.VideoExtensions = normalizeExtensions(c.VideoExtensions)
	c.IgnoredExtensions = normalizeExtensions(c.IgnoredExtensions)

	if len(c.ImageExtensions) == 0 && len(c.VideoExtensions) == 0 {
		return fmt.Errorf("no image or video extensions configured")
	}

	validLogLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// IsImageExtension checks if the extension is for an image file.
func (c *Config) IsImageExtension(ext string) bool {
	return containsExtension(c.ImageExtensions, ext)
}

// IsVideoExtension checks if the extension is for a video file.
func (c *Config) IsVideoExtension(ext string) bool {
	return containsExtension(c.VideoExtensions, ext)
}

// IsIgnoredExtension checks if the extension is silently skipped.
func (c *Config) IsIgnoredExtension(ext string) bool {
	return containsExtension(c.IgnoredExtensions, ext)
}

// Helper functions

func containsExtension(extensions []string, ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range extensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, len(extensions))
	for i, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[i] = ext
	}
	return normalized
}
