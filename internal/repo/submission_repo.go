// Package repo implements the data persistence layer for intake submissions,
// backed by GORM. This file provides repository functions for the Submission
// model.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules to the services package.
//
// Error semantics:
//   - A status update that matches no row returns ErrNotFound.
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated; the service layer translates it into its
//     persistence sentinel.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/forms"
)

// ErrNotFound is returned when the targeted submission does not exist.
var ErrNotFound = errors.New("submission not found")

// CreateSubmission inserts a new submission row as a single atomic insert.
// It assigns a fresh UUID, stamps both timestamps with the same UTC instant,
// and sets the status to defaultStatus. The stored record is returned.
func CreateSubmission(ctx context.Context, db *gorm.DB, p forms.Payload, defaultStatus string) (*domain.Submission, error) {
	now := time.Now().UTC()
	s := &domain.Submission{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		ServiceType: p.ServiceType,
		Message:     p.Message,
		Status:      defaultStatus,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// ListSubmissions returns all submissions ordered newest-first
// (CreatedAt DESC, ID DESC as a deterministic tiebreak). The ordering is
// load-bearing for the admin dashboard.
func ListSubmissions(ctx context.Context, db *gorm.DB) ([]domain.Submission, error) {
	var out []domain.Submission
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// GetSubmission fetches a submission by ID. Returns ErrNotFound when absent.
func GetSubmission(ctx context.Context, db *gorm.DB, id string) (*domain.Submission, error) {
	var s domain.Submission
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateSubmissionStatus sets the status and refreshes updated_at. The
// refresh happens even when status already equals the new value, so repeated
// no-op updates still advance updated_at. Returns ErrNotFound when no row
// matched the id.
func UpdateSubmissionStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
