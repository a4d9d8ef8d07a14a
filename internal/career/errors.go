package career

import (
	"errors"
	"fmt"
)

// ErrEmptyGeneration reports a successful advice call that carried no
// usable candidate text.
var ErrEmptyGeneration = errors.New("no candidates in response")

// GenerationError wraps a failed advice call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

const (
	MsgNoResponse = "❌ No response generated. Try again."
	MsgNoReport   = "No career response generated. Try refining your input or uploading a resume."
)

// Message converts a submission error into the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyGeneration) {
		return MsgNoResponse
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return fmt.Sprintf("Error generating response: %v", genErr.Err)
	}
	return fmt.Sprintf("Error generating response: %v", err)
}
