package ai

import (
	"context"
	"errors"
	"fmt"
)

// Generator is the single seam to the generative model. Everything above it
// (prompt building, JSON extraction, fallbacks) is deterministic and
// unit-testable without the remote API.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var ErrNoJSON = errors.New("no JSON object in model output")

// ParseError reports model output that contained no usable JSON payload.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
