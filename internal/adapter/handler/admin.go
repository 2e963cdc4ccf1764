package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/usecase/auth"
)

// Admin handles the account approval queue. Routes mounting this handler
// sit behind the shared admin password guard.
type Admin struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAdmin creates a new admin handler
func NewAdmin(service *auth.Service, logger *zap.Logger) *Admin {
	return &Admin{service: service, logger: logger}
}

// PendingUsers lists accounts awaiting approval
// GET /v1/admin/users/pending
func (h *Admin) PendingUsers(c echo.Context) error {
	users, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, users)
}

// ApproveUser approves a pending account
// POST /v1/admin/users/:id/approve
func (h *Admin) ApproveUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid user id"))
	}

	user, err := h.service.Approve(c.Request().Context(), id, "admin")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, user)
}

// RejectUser rejects a pending account
// POST /v1/admin/users/:id/reject
func (h *Admin) RejectUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid user id"))
	}

	user, err := h.service.Reject(c.Request().Context(), id, "admin")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, user)
}
