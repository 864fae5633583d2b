// Package common defines shared constants and sentinel errors used across
// the rehi client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Capture/persist boundary errors.
	ErrorEmptySelection = errors.New("empty selection")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)
