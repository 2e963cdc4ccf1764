package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	searchdto "github.com/osaa-analytics/unga-readout/internal/adapter/dto/search"
	"github.com/osaa-analytics/unga-readout/internal/usecase/search"
)

// Search handles corpus question answering and trend queries.
type Search struct {
	service *search.Service
	logger  *zap.Logger
}

// NewSearch creates a new search handler
func NewSearch(service *search.Service, logger *zap.Logger) *Search {
	return &Search{service: service, logger: logger}
}

// Query answers a natural-language question over the corpus
// POST /v1/search
func (h *Search) Query(c echo.Context) error {
	var req searchdto.QueryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	answer, err := h.service.Answer(c.Request().Context(), req.Query)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, answer)
}

// Trends returns per-year match counts for the trend chart
// GET /v1/speeches/trends
func (h *Search) Trends(c echo.Context) error {
	var req searchdto.TrendsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	counts, err := h.service.Trends(c.Request().Context(), req.Keyword, req.Country)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, counts)
}
