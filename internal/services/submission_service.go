// Package services – SubmissionService
//
// This file implements the SubmissionService, which governs the intake
// pipeline after validation: persisting new submissions, kicking off the
// best-effort admin notification, and serving the dashboard list. Persistence
// failures propagate as raw DB errors for the handler to surface as 500;
// notification failures never propagate (the dispatcher absorbs them).
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/forms"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/repo"
)

// Notifier delivers an admin-facing notification for a stored submission.
// Implementations must absorb their own failures; Notify has no error return
// by design so callers cannot couple the HTTP outcome to delivery.
type Notifier interface {
	Notify(ctx context.Context, sub *domain.Submission)
}

// SubmissionService implements the use-cases around submission records.
type SubmissionService struct {
	// DB is the database handle used for all submission operations.
	DB *gorm.DB
	// DefaultStatus is the label assigned to new submissions.
	DefaultStatus string
	// Notifier, when non-nil, is invoked fire-and-forget after a
	// successful insert.
	Notifier Notifier
}

// Create persists a validated payload as a new submission and returns the
// stored record. On success the notifier (if any) is launched on a detached
// goroutine: within the request, validation happened before this call and
// persistence completes before dispatch is initiated, but delivery is
// decoupled from the response and may finish after it is sent.
func (s *SubmissionService) Create(ctx context.Context, p forms.Payload) (*domain.Submission, error) {
	sub, err := repo.CreateSubmission(ctx, s.DB, p, s.DefaultStatus)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		// Detached from the request context on purpose: the host may cancel
		// the request as soon as the response is written.
		go s.Notifier.Notify(context.Background(), sub)
	}

	return sub, nil
}

// List returns every submission, newest-first.
func (s *SubmissionService) List(ctx context.Context) ([]domain.Submission, error) {
	return repo.ListSubmissions(ctx, s.DB)
}

// Stats returns the dashboard aggregate summary.
func (s *SubmissionService) Stats(ctx context.Context) (*repo.SubmissionStats, error) {
	return repo.Stats(ctx, s.DB)
}
