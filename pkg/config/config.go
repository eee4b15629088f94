package config

import (
	"encoding/json"
	"fmt"
	"os"

	"pagesim/pkg/buffer"
	"pagesim/pkg/sim"
)

// ServerConfig is read from a JSON file at startup.
type ServerConfig struct {
	Port              string `json:"port"`
	DataDir           string `json:"data_dir"`
	LogFile           string `json:"log_file"`
	LogLevel          string `json:"log_level"`
	DefaultMemorySize int    `json:"default_memory_size"`
	DefaultPageSize   int    `json:"default_page_size"`
	DefaultPolicy     string `json:"default_policy"`
}

func Default() ServerConfig {
	return ServerConfig{
		Port:              ":8888",
		DataDir:           "./pagesim_data",
		LogLevel:          "INFO",
		DefaultMemorySize: 3,
		DefaultPageSize:   1,
		DefaultPolicy:     "FIFO",
	}
}

// Load reads filePath over the defaults. Unknown fields are rejected.
func Load(filePath string) (ServerConfig, error) {
	cfg := Default()
	file, err := os.Open(filePath)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", filePath, err)
	}
	return cfg, cfg.Validate()
}

func (c ServerConfig) Validate() error {
	if _, err := buffer.ParseKind(c.DefaultPolicy); err != nil {
		return fmt.Errorf("default_policy: %w", err)
	}
	return c.SimConfig().Validate()
}

func (c ServerConfig) SimConfig() sim.Config {
	return sim.Config{MemorySize: c.DefaultMemorySize, PageSize: c.DefaultPageSize}
}

// Policy returns the default policy; Validate has already checked it.
func (c ServerConfig) Policy() buffer.Kind {
	kind, _ := buffer.ParseKind(c.DefaultPolicy)
	return kind
}
