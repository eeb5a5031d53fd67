package llm

import (
	"context"
	"fmt"
)

// Provider is a remote generation backend. Generation is synchronous and
// blocking; the evaluation loop suspends at this boundary.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *Request) (string, error)
}

// Request carries the generation parameters the harness controls.
type Request struct {
	Prompt       string
	Temperature  float64
	MaxNewTokens int
}

// ServiceError reports a failed call to a remote generation or ingestion
// endpoint.
type ServiceError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm: %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("llm: call %s: %v", e.Endpoint, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
