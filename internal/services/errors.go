package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool      = errors.New("external tool error")
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
	ErrNotFound          = errors.New("not found")
	ErrTimeout           = errors.New("timeout")
	ErrTransient         = errors.New("transient failure")
	ErrMalformedResponse = errors.New("malformed response")
)

// Wrap builds an error message that includes phase context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, phase, operation, message string, err error) error {
	detail := buildDetail(phase, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FaultKind returns a short label for the marker carried by err, suitable for
// log fields and journal rows.
func FaultKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrExternalTool):
		return "external"
	default:
		return "transient"
	}
}

func buildDetail(phase, operation, message string) string {
	parts := make([]string, 0, 3)
	if phase = strings.TrimSpace(phase); phase != "" {
		parts = append(parts, phase)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
