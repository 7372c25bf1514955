// Admin triage HTTP handlers.
//
// This file exposes the authenticated dashboard endpoints:
//   - GET  /admin         (list submissions newest-first, plus summary stats)
//   - POST /admin/update  (move a submission through the status workflow)
//
// Both endpoints sit behind the AuthGate middleware, which has already
// answered 401/403 before these handlers run. The admitted identity (when
// policy produced one) is echoed back on the dashboard payload.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/http/middleware"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/repo"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/services"
)

// DashboardResponse is the JSON envelope for the admin dashboard.
type DashboardResponse struct {
	// AdminEmail is the admitted identity, empty when the auth policy is
	// disabled and no claim was presented.
	AdminEmail  string                `json:"admin_email,omitempty"`
	Submissions []domain.Submission   `json:"submissions"`
	Stats       *repo.SubmissionStats `json:"stats"`
}

// Dashboard godoc
// @ID          adminDashboard
// @Summary     List submissions for triage
// @Description Returns all submissions newest-first with a per-status summary.
// @Tags        Admin
// @Produce     json
//
// @Param       Cf-Access-Jwt-Assertion header string false "Identity assertion (verified upstream)"
//
// @Success     200 {object} handlers.DashboardResponse
// @Failure     401 {object} handlers.ErrorResponse "No usable identity"
// @Failure     403 {object} handlers.ErrorResponse "Identity not permitted"
// @Failure     500 {object} handlers.ErrorResponse "Persistence failure"
// @Router      /admin [get]
func (h *Handlers) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	subs, err := h.subSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list submissions")
		return
	}
	stats, err := h.subSvc.Stats(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not aggregate submissions")
		return
	}

	resp := DashboardResponse{Submissions: subs, Stats: stats}
	if id := middleware.IdentityFrom(c); id != nil {
		resp.AdminEmail = id.Email
	}
	ok(c, http.StatusOK, resp)
}

// UpdateStatus godoc
// @ID          adminUpdateStatus
// @Summary     Update a submission's status
// @Description Applies a status transition and redirects back to the dashboard.
// @Tags        Admin
// @Accept      x-www-form-urlencoded
//
// @Param       Cf-Access-Jwt-Assertion header   string false "Identity assertion (verified upstream)"
// @Param       id                      formData string true  "Submission ID"
// @Param       status                  formData string true  "Target status label"
//
// @Success     302 {string} string "Redirects to /admin"
// @Failure     400 {object} handlers.ErrorResponse "Missing fields or unknown status label"
// @Failure     401 {object} handlers.ErrorResponse "No usable identity"
// @Failure     403 {object} handlers.ErrorResponse "Identity not permitted"
// @Failure     500 {object} handlers.ErrorResponse "Persistence failure"
// @Router      /admin/update [post]
func (h *Handlers) UpdateStatus(c *gin.Context) {
	id := strings.TrimSpace(c.PostForm("id"))
	status := strings.TrimSpace(c.PostForm("status"))

	var missing []string
	if id == "" {
		missing = append(missing, "id is required")
	}
	if status == "" {
		missing = append(missing, "status is required")
	}
	if len(missing) > 0 {
		failDetails(c, http.StatusBadRequest, ErrCodeBadRequest, "missing form fields", missing)
		return
	}

	if err := h.wfSvc.Apply(c.Request.Context(), id, status); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown status label")
		case errors.Is(err, services.ErrSubmissionNotFound):
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "submission does not exist")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not update submission")
		}
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}
