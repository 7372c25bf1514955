// Package repo implements the data persistence layer for intake submissions,
// backed by GORM. This file provides small aggregate queries used by the
// admin dashboard summary. Each function is context-aware and safe to call
// from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
)

// SubmissionStats aggregates dashboard metadata: the total submission count,
// the per-status breakdown, and the greatest UpdatedAt among all rows (nil
// when the table is empty).
type SubmissionStats struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"by_status"`
	LastUpdatedAt *time.Time       `json:"last_updated_at,omitempty"`
}

// Stats computes SubmissionStats with three lightweight queries.
func Stats(ctx context.Context, db *gorm.DB) (*SubmissionStats, error) {
	out := &SubmissionStats{ByStatus: map[string]int64{}}

	q := db.WithContext(ctx).Model(&domain.Submission{})
	if err := q.Count(&out.Total).Error; err != nil {
		return nil, err
	}
	if out.Total == 0 {
		return out, nil
	}

	var rows []struct {
		Status string
		N      int64
	}
	if err := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out.ByStatus[r.Status] = r.N
	}

	// Latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Select("updated_at").
		Order("updated_at DESC").
		Limit(1).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	out.LastUpdatedAt = &row.UpdatedAt
	return out, nil
}
