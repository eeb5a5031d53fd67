package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// PipelineProvider calls the deployed RAG pipeline (retrieval plus generation
// behind one endpoint). The request schema is owned by the service; the
// response is free-form text, optionally wrapped in a {"text": ...} object.
type PipelineProvider struct {
	endpoint   string
	httpClient *http.Client
}

type pipelineRequest struct {
	Prompt       string  `json:"prompt"`
	Temperature  float64 `json:"temperature"`
	MaxNewTokens int     `json:"max_new_tokens"`
}

type pipelineResponse struct {
	Text string `json:"text"`
}

func NewPipelineProvider(endpoint string) *PipelineProvider {
	return &PipelineProvider{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{},
	}
}

func (p *PipelineProvider) Name() string {
	return "pipeline"
}

func (p *PipelineProvider) Generate(ctx context.Context, req *Request) (string, error) {
	if p == nil || p.httpClient == nil {
		return "", errors.New("llm: pipeline: nil client")
	}
	if ctx == nil {
		return "", errors.New("llm: pipeline: nil context")
	}
	if req == nil {
		return "", errors.New("llm: pipeline: nil request")
	}
	if p.endpoint == "" {
		return "", errors.New("llm: pipeline: empty endpoint")
	}

	body, err := json.Marshal(pipelineRequest{
		Prompt:       req.Prompt,
		Temperature:  req.Temperature,
		MaxNewTokens: req.MaxNewTokens,
	})
	if err != nil {
		return "", &ServiceError{Endpoint: p.endpoint, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ServiceError{Endpoint: p.endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &ServiceError{Endpoint: p.endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Endpoint: p.endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServiceError{Endpoint: p.endpoint, StatusCode: resp.StatusCode}
	}

	var wrapped pipelineResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Text != "" {
		return wrapped.Text, nil
	}
	return string(raw), nil
}
