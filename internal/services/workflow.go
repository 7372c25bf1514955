// Package services – StatusWorkflow
//
// The triage workflow is a flat, validated-label-set state machine: the
// states are exactly the configured labels, and every label may transition
// to every other label. There are no terminal states and no ordering
// constraints; the only rejection is a target label outside the set.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/repo"
)

// StatusWorkflow validates and applies status transitions.
type StatusWorkflow struct {
	// DB is the database handle used for status mutations.
	DB *gorm.DB
	// Labels is the configured status label set.
	Labels []string
}

// Valid reports whether label belongs to the configured set.
func (w *StatusWorkflow) Valid(label string) bool {
	for _, l := range w.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Apply moves the submission to the target label.
//
// Errors:
//   - ErrUnknownStatus when label is outside the configured set.
//   - ErrSubmissionNotFound when id matches no row.
//   - The underlying DB error otherwise.
//
// Re-applying the current label is legal and still refreshes the record's
// updated_at. Concurrent applies to the same record race last-write-wins;
// the store provides single-statement atomicity and nothing more.
func (w *StatusWorkflow) Apply(ctx context.Context, id, label string) error {
	if !w.Valid(label) {
		return ErrUnknownStatus
	}
	if err := repo.UpdateSubmissionStatus(ctx, w.DB, id, label); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	return nil
}
