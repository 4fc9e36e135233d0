package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"project_path"`

	// Output settings
	OutputJSONFile string `yaml:"output_json_file"`
	OutputJSONDir  string `yaml:"output_json_dir"`
	MetricsFile    string `yaml:"metrics_file"`

	// Execution settings
	Processors int    `yaml:"processors"`
	LogLevel   string `yaml:"log_level"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	Processors  int
	NameFilter  string
	FailFast    bool
	TestCases   bool
	OnlyMarked  bool
	MetricsFile string
	Verbose     bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		LogLevel:       DefaultLogLevel,
		Flags:          Flags{Processors: DefaultProcessors},
	}
}

// Load builds the config from defaults, .env, the YAML config file,
// environment variables and finally flags, later sources winning
func Load(flags Flags) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := New()

	path := flags.ConfigFile
	if path == "" {
		path = filepath.Join(cfg.ProjectPath, DefaultConfigFile)
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Apply(flags)

	return cfg, nil
}

// LoadFile merges the YAML file at path into the config
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ITD_PROCESSORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ITD_PROCESSORS: %w", err)
		}
		c.Processors = n
	}
	if v := os.Getenv("ITD_OUTPUT_DIR"); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Apply stores flags and lets them override file and environment settings
func (c *Config) Apply(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.MetricsFile != "" {
		c.MetricsFile = flags.MetricsFile
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and report always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetMetricsPath returns where metrics are written, empty when disabled
func (c *Config) GetMetricsPath() string {
	if c.MetricsFile == "" || filepath.IsAbs(c.MetricsFile) {
		return c.MetricsFile
	}
	return filepath.Join(c.ProjectPath, c.OutputJSONDir, c.MetricsFile)
}
