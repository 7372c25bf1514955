// Package domain defines the persistence models for customer intake.
// These types are mapped with GORM and form the core data layer of the
// intake application.
package domain

import "time"

// Submission represents a single customer contact-form submission and its
// position in the triage workflow.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned once at creation.
//   - Name: customer name (required).
//   - Email / Phone: optional contact details; nil when the customer left
//     the field blank.
//   - ServiceType: one of the configured service-type whitelist.
//   - Message: free-text inquiry body.
//   - Status: one of the configured status labels; defaults to the
//     configured initial label (normally "new"). Indexed for dashboard
//     filtering.
//   - CreatedAt: server-assigned, immutable; indexed because the dashboard
//     lists submissions newest-first.
//   - UpdatedAt: refreshed on every status mutation. CreatedAt <= UpdatedAt
//     always holds; both are set to the same instant on insert.
type Submission struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name"         gorm:"type:varchar(100);not null"`
	Email       *string   `json:"email,omitempty" gorm:"type:varchar(254)"`
	Phone       *string   `json:"phone,omitempty" gorm:"type:varchar(32)"`
	ServiceType string    `json:"service_type" gorm:"type:varchar(100);not null"`
	Message     string    `json:"message"      gorm:"type:text;not null"`
	Status      string    `json:"status"       gorm:"type:varchar(32);not null;default:'new';index:idx_submissions_status"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index:idx_submissions_created_at,sort:desc"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Submission.
func (Submission) TableName() string { return "submissions" }
