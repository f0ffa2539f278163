// Package config provides configuration management for the search service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Search     SearchConfig     `mapstructure:"search"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Checkpoint CheckpointConfig `mapstructure:"checkpoint"`
	Log        LogConfig        `mapstructure:"log"`
}

// SearchConfig holds BFS driver tuning.
type SearchConfig struct {
	DataDir        string `mapstructure:"data_dir"`
	Threads        int    `mapstructure:"threads"`
	MaxMemoryBytes int64  `mapstructure:"max_memory_bytes"`
	InitialForesight int  `mapstructure:"initial_foresight"`
	RecollectMS    int64  `mapstructure:"recollect_ms"`
}

// StorageConfig holds chunk-backing configuration.
type StorageConfig struct {
	UseMmap         bool   `mapstructure:"use_mmap"`
	ChunkDir        string `mapstructure:"chunk_dir"`
	ChunkBytesHint  int    `mapstructure:"chunk_bytes_hint"`
}

// CheckpointConfig holds checkpoint file framing configuration.
type CheckpointConfig struct {
	Path          string `mapstructure:"path"`
	IntervalSteps int    `mapstructure:"interval_steps"`
	Compress      bool   `mapstructure:"compress"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/lgolsearch")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("config file not found, using defaults")
		} else if os.IsNotExist(err) {
			fmt.Printf("config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.data_dir", "./data")
	v.SetDefault("search.threads", 1)
	v.SetDefault("search.max_memory_bytes", int64(1<<30))
	v.SetDefault("search.initial_foresight", 0)
	v.SetDefault("search.recollect_ms", int64(1000))

	v.SetDefault("storage.use_mmap", false)
	v.SetDefault("storage.chunk_dir", "./data/chunks")
	v.SetDefault("storage.chunk_bytes_hint", 1<<20)

	v.SetDefault("checkpoint.path", "./data/checkpoint.bin")
	v.SetDefault("checkpoint.interval_steps", 100)
	v.SetDefault("checkpoint.compress", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Search.Threads < 1 {
		return fmt.Errorf("search.threads must be at least 1")
	}
	if c.Search.MaxMemoryBytes <= 0 {
		return fmt.Errorf("search.max_memory_bytes must be positive")
	}
	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	if c.Search.DataDir == "" {
		return nil
	}
	return os.MkdirAll(c.Search.DataDir, 0755)
}

// ChunkDirPath returns the directory chunk files should be created under.
func (c *Config) ChunkDirPath() string {
	if c.Storage.ChunkDir != "" {
		return c.Storage.ChunkDir
	}
	return filepath.Join(c.Search.DataDir, "chunks")
}
