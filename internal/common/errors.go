// Package common defines shared constants and sentinel errors used across
// the bot, the diary core and the offline tooling. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Pending entry lifecycle errors. These are state errors: they are
	// reported to the user and never abort the process.
	ErrNoPendingEntry   = errors.New("no pending entry")
	ErrNothingToDiscard = errors.New("nothing to discard")
	ErrEmptyEntry       = errors.New("pending entry is empty")

	// Report errors.
	ErrNoData = errors.New("no entries found")

	// Collaborator errors.
	ErrEstimatorUnavailable = errors.New("calorie estimator is not configured")

	// Startup errors.
	ErrMissingToken = errors.New("telegram token is not set")
)
