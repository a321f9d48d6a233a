package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type RetrievalConfig struct {
	ChunkSize int `yaml:"chunk_size"` // target characters per transcript chunk
	TopK      int `yaml:"top_k"`      // best-scoring chunks to seed context from
	Window    int `yaml:"window"`     // neighbouring chunks kept on each side of a match
}

type OpenAIConfig struct {
	EmbeddingModel string `yaml:"embedding_model"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type PathsConfig struct {
	Captions string `yaml:"captions"` // drop directory watched for subtitle files
	Output   string `yaml:"output"`   // exported transcripts and answers
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates a yaml config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Retrieval.ChunkSize < 0 {
		return fmt.Errorf("retrieval.chunk_size must not be negative")
	}
	if c.Retrieval.TopK < 0 {
		return fmt.Errorf("retrieval.top_k must not be negative")
	}
	if c.Retrieval.Window < 0 {
		return fmt.Errorf("retrieval.window must not be negative")
	}

	if c.Retrieval.ChunkSize == 0 {
		c.Retrieval.ChunkSize = 500
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = 5
	}
	if c.Retrieval.Window == 0 {
		c.Retrieval.Window = 3
	}
	if c.OpenAI.EmbeddingModel == "" {
		c.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Paths.Captions == "" {
		c.Paths.Captions = "data/captions"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
