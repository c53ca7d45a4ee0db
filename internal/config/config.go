package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Ingestion
	MaxRows    int `mapstructure:"max_rows" yaml:"max_rows"`
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`

	// Profiling and recommendations
	SampleValues        int     `mapstructure:"sample_values" yaml:"sample_values"`
	MinCorrelation      float64 `mapstructure:"min_correlation" yaml:"min_correlation"`
	HistogramBins       int     `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	MovingAverageWindow int     `mapstructure:"moving_average_window" yaml:"moving_average_window"`

	// Batch processing
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Output and logging
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"max_rows", "sample_rows", "sample_values", "min_correlation", "histogram_bins",
	"moving_average_window", "workers", "output_format", "log_level", "log_format",
}

const dirName = ".vizadvisor"

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		MaxRows:             100000,
		SampleRows:          5,
		SampleValues:        10,
		MinCorrelation:      0.5,
		HistogramBins:       10,
		MovingAverageWindow: 7,
		Workers:             4,
		OutputFormat:        "markdown",
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.vizadvisor/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from .env, env, file and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory only fills variables that are not already set.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("VIZADVISOR")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("max_rows", d.MaxRows)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("sample_values", d.SampleValues)
	v.SetDefault("min_correlation", d.MinCorrelation)
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("moving_average_window", d.MovingAverageWindow)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the analysis pipeline cannot use.
func (c *Global) Validate() error {
	switch {
	case c.MaxRows < 0:
		return fmt.Errorf("max_rows must be >= 0, got %d", c.MaxRows)
	case c.Workers < 1:
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	case c.HistogramBins < 1:
		return fmt.Errorf("histogram_bins must be >= 1, got %d", c.HistogramBins)
	case c.MovingAverageWindow < 1:
		return fmt.Errorf("moving_average_window must be >= 1, got %d", c.MovingAverageWindow)
	case c.MinCorrelation < 0 || c.MinCorrelation > 1:
		return fmt.Errorf("min_correlation must be in [0,1], got %g", c.MinCorrelation)
	}
	switch c.OutputFormat {
	case "markdown", "json", "html":
	default:
		return fmt.Errorf("invalid output_format: %s (use markdown, json or html)", c.OutputFormat)
	}
	return nil
}

// Get returns the string form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "max_rows":
		return strconv.Itoa(c.MaxRows), nil
	case "sample_rows":
		return strconv.Itoa(c.SampleRows), nil
	case "sample_values":
		return strconv.Itoa(c.SampleValues), nil
	case "min_correlation":
		return strconv.FormatFloat(c.MinCorrelation, 'g', -1, 64), nil
	case "histogram_bins":
		return strconv.Itoa(c.HistogramBins), nil
	case "moving_average_window":
		return strconv.Itoa(c.MovingAverageWindow), nil
	case "workers":
		return strconv.Itoa(c.Workers), nil
	case "output_format":
		return c.OutputFormat, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Set parses val into key and validates the result.
func (c *Global) Set(key, val string) error {
	next := *c
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "max_rows":
		next.MaxRows, err = atoi()
	case "sample_rows":
		next.SampleRows, err = atoi()
	case "sample_values":
		next.SampleValues, err = atoi()
	case "histogram_bins":
		next.HistogramBins, err = atoi()
	case "moving_average_window":
		next.MovingAverageWindow, err = atoi()
	case "workers":
		next.Workers, err = atoi()
	case "min_correlation":
		next.MinCorrelation, err = strconv.ParseFloat(val, 64)
		if err != nil {
			err = fmt.Errorf("invalid float for min_correlation: %v", val)
		}
	case "output_format":
		next.OutputFormat = strings.ToLower(val)
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			next.LogLevel = strings.ToLower(val)
		default:
			err = fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			next.LogFormat = strings.ToLower(val)
		default:
			err = fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
