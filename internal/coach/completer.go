package coach

import (
	"context"
	"errors"
	"fmt"
)

// ErrGeneration matches every failure of the text-generation backend.
var ErrGeneration = errors.New("report generation failed")

// ErrMissingCredential is returned when no API key is configured.
var ErrMissingCredential = fmt.Errorf("%w: Missing OpenAI API Key", ErrGeneration)

// GenerationError is a failure reported by the remote backend.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return "OpenAI Failed: " + e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

//go:generate mockgen -source=$GOFILE -destination=../service/completer_mocks_test.go -package=service_test

// Completer produces text for a system prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
