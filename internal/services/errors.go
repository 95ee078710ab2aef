package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks deterministic rejections of a candidate file
	// (format, size, duration, resolution, orientation).
	ErrValidation = errors.New("validation error")
	// ErrNoMatch marks a file no manifest slot expects.
	ErrNoMatch = errors.New("no matching slot")
	// ErrTransient marks remote failures that a fresh operator attempt may clear.
	ErrTransient = errors.New("transient failure")
	// ErrConfiguration marks unusable local configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures of external binaries such as ffprobe.
	ErrExternalTool = errors.New("external tool error")
	// ErrNotFound marks missing remote or local resources.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsValidation reports whether the error stems from a deterministic file check.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
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
