// Submission intake HTTP handlers.
//
// This file exposes the public endpoints of the contact form:
//   - GET  /        (service descriptor; page rendering lives upstream)
//   - POST /submit  (accept a contact-form submission)
//
// Handlers are transport-thin: they collect raw form fields, delegate to the
// forms validator and the submission service, and translate outcomes into
// HTTP results. Validation failures surface the complete violation list so
// the form can show every problem at once; notification delivery never
// influences the response.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/forms"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/repo"
)

// submissionsCreated counts accepted submissions by service type.
var submissionsCreated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "intake_submissions_created_total",
		Help: "Total number of accepted contact-form submissions.",
	},
	[]string{"service_type"},
)

func init() {
	prometheus.MustRegister(submissionsCreated)
}

//
// Service contracts (context-aware)
//

// SubmissionService defines the intake operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SubmissionService interface {
	// Create persists a validated payload and kicks off the admin
	// notification (fire-and-forget).
	Create(ctx context.Context, p forms.Payload) (*domain.Submission, error)
	// List returns every submission, newest-first.
	List(ctx context.Context) ([]domain.Submission, error)
	// Stats returns the dashboard aggregate summary.
	Stats(ctx context.Context) (*repo.SubmissionStats, error)
}

// WorkflowService defines status-transition operations consumed by handlers.
type WorkflowService interface {
	// Apply moves the submission to the target label after validating it
	// against the configured label set.
	Apply(ctx context.Context, id, label string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for intake and triage. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	subSvc SubmissionService
	wfSvc  WorkflowService
	// FormOptions configures the validator (service-type whitelist).
	formOpts forms.Options
}

// New constructs a Handlers instance bound to the given services.
func New(subSvc SubmissionService, wfSvc WorkflowService, formOpts forms.Options) *Handlers {
	return &Handlers{subSvc: subSvc, wfSvc: wfSvc, formOpts: formOpts}
}

//
// DTOs
//

// SubmitResponse is the JSON envelope for an accepted submission.
type SubmitResponse struct {
	Submission *domain.Submission `json:"submission"`
}

//
// Handlers
//

// Landing godoc
// @ID          landing
// @Summary     Service descriptor
// @Description Returns service metadata; the HTML landing page is rendered upstream.
// @Tags        Public
// @Produce     json
// @Success     200 {object} map[string]any
// @Router      / [get]
func (h *Handlers) Landing(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"service":       "firebird-intake",
		"service_types": h.formOpts.ServiceTypes,
	})
}

// Submit godoc
// @ID          submitForm
// @Summary     Submit a contact-form inquiry
// @Description Validates and persists a customer submission, then notifies administrators best-effort.
// @Tags        Public
// @Accept      x-www-form-urlencoded
// @Produce     json
//
// @Param       name          formData string true  "Customer name"
// @Param       email         formData string false "Contact email"
// @Param       phone         formData string false "Contact phone"
// @Param       service_type  formData string true  "Requested service type (must be whitelisted)"
// @Param       message       formData string true  "Inquiry message"
//
// @Success     200 {object} handlers.SubmitResponse "Stored submission"
// @Failure     400 {object} handlers.ErrorResponse  "Validation failed (details lists every violation)"
// @Failure     500 {object} handlers.ErrorResponse  "Persistence failure"
// @Router      /submit [post]
func (h *Handlers) Submit(c *gin.Context) {
	raw := map[string]string{
		"name":         c.PostForm("name"),
		"email":        c.PostForm("email"),
		"phone":        c.PostForm("phone"),
		"service_type": c.PostForm("service_type"),
		"message":      c.PostForm("message"),
	}

	payload, violations := forms.Validate(raw, h.formOpts)
	if len(violations) > 0 {
		failDetails(c, http.StatusBadRequest, ErrCodeValidationFailed, "submission is invalid", violations)
		return
	}

	sub, err := h.subSvc.Create(c.Request.Context(), payload)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not store submission")
		return
	}

	submissionsCreated.WithLabelValues(sub.ServiceType).Inc()
	ok(c, http.StatusOK, SubmitResponse{Submission: sub})
}
