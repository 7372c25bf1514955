// Package services defines the business logic for submission intake and the
// status triage workflow. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrUnknownStatus is returned when a status transition targets a label
	// outside the configured label set. This is user-correctable (400).
	ErrUnknownStatus = errors.New("unknown status label")

	// ErrSubmissionNotFound indicates the targeted submission does not
	// exist. Per the intake contract this is a persistence failure (500),
	// not a user-correctable one: the admin UI only offers ids it listed.
	ErrSubmissionNotFound = errors.New("submission not found")
)
