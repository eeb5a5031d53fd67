package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Config is the full option surface of the harness. One value is built per
// invocation (file, then env, then flags) and passed by value into the
// evaluation loop and the ingestor.
type Config struct {
	ServiceURL   string  `yaml:"service_url"`
	OutputDir    string  `yaml:"output_dir"`
	Temperature  float64 `yaml:"temperature"`
	MaxNewTokens int     `yaml:"max_new_tokens"`

	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`

	DatasetPath string   `yaml:"dataset_path"`
	DocsPath    string   `yaml:"docs_path"`
	Tasks       []string `yaml:"tasks"`
	IngestDocs  bool     `yaml:"ingest_docs"`

	DatabaseEndpoint  string `yaml:"database_endpoint"`
	EmbeddingEndpoint string `yaml:"embedding_endpoint"`
	RetrievalEndpoint string `yaml:"retrieval_endpoint"`
	LLMEndpoint       string `yaml:"llm_endpoint"`

	ShowProgressBar     bool `yaml:"show_progress_bar"`
	ContainOriginalData bool `yaml:"contain_original_data"`

	// Provider selects the generation backend: "pipeline" (the RAG service at
	// service_url), "openai" (OpenAI-compatible server at llm_endpoint), or
	// "claude".
	Provider  string                    `yaml:"provider,omitempty"`
	Providers map[string]ProviderConfig `yaml:"providers,omitempty"`

	Storage StorageConfig `yaml:"storage"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type StorageConfig struct {
	Path string `yaml:"path,omitempty"` // SQLite file path
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServiceURL:        "http://localhost:8888/v1/chatqna",
		OutputDir:         "output",
		Temperature:       0.1,
		MaxNewTokens:      1280,
		ChunkSize:         256,
		ChunkOverlap:      100,
		DatasetPath:       "data/split_merged.json",
		DocsPath:          "data/80000_docs",
		Tasks:             []string{"question_answering"},
		DatabaseEndpoint:  "http://localhost:6007/v1/dataprep",
		EmbeddingEndpoint: "http://localhost:6000/v1/embeddings",
		RetrievalEndpoint: "http://localhost:7000/v1/retrieval",
		ShowProgressBar:   true,
		Provider:          "pipeline",
		Providers:         make(map[string]ProviderConfig),
		Storage:           StorageConfig{Path: "data/rageval.db"},
	}
}

// Load reads a YAML config file on top of the defaults. A missing file at the
// default path is fine (flags carry the run); an explicitly named missing file
// is an error. API keys come from the environment when present.
func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			applyEnv(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.Provider) == "" {
		cfg.Provider = "pipeline"
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.Providers["claude"]
		p.APIKey = v
		cfg.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.Providers["claude"]
		p.APIKey = v
		cfg.Providers["claude"] = p
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.Providers["openai"]
		p.APIKey = v
		cfg.Providers["openai"] = p
	}
}
