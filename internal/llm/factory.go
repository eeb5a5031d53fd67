package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stellarlinkco/rag-eval/internal/config"
)

// FromConfig builds the generation provider selected by the configuration.
// "pipeline" targets service_url; "openai" targets llm_endpoint (or the
// provider's configured base URL); "claude" uses the Anthropic API.
func FromConfig(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}

	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch name {
	case "", "pipeline":
		if strings.TrimSpace(cfg.ServiceURL) == "" {
			return nil, errors.New("llm: pipeline provider requires service_url")
		}
		return NewPipelineProvider(cfg.ServiceURL), nil
	case "openai":
		pcfg := cfg.Providers["openai"]
		baseURL := strings.TrimSpace(cfg.LLMEndpoint)
		if baseURL == "" {
			baseURL = pcfg.BaseURL
		}
		return NewOpenAIProvider(pcfg.APIKey, baseURL, pcfg.Model), nil
	case "claude", "anthropic":
		pcfg := cfg.Providers["claude"]
		return NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
