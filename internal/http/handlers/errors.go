// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// These symbolic codes are mapped to HTTP responses via the `fail()` helper
// and give clients a stable, machine-readable taxonomy alongside the
// human-readable message. Generic codes mirror common HTTP status semantics;
// domain-specific codes cover business failures that a status alone cannot
// convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "validation_failed",
//	  "message": "submission is invalid",
//	  "details": ["name is required", "message is required"]
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeUpdateFailed     = "update_failed"
)
