package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	searchdto "github.com/osaa-analytics/unga-readout/internal/adapter/dto/search"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/ingest"
)

// Speech handles the historical corpus endpoints.
type Speech struct {
	speeches repositories.SpeechRepository
	loader   *ingest.CorpusLoader
	logger   *zap.Logger
}

// NewSpeech creates a new speech handler
func NewSpeech(speeches repositories.SpeechRepository, loader *ingest.CorpusLoader, logger *zap.Logger) *Speech {
	return &Speech{speeches: speeches, loader: loader, logger: logger}
}

// List searches the corpus by keyword and metadata
// GET /v1/speeches
func (h *Speech) List(c echo.Context) error {
	var req searchdto.CorpusSearchRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	filters := repositories.SpeechFilters{
		Keyword:  req.Keyword,
		YearFrom: req.YearFrom,
		YearTo:   req.YearTo,
		Limit:    req.Limit,
	}
	if req.Country != "" {
		filters.Countries = []string{req.Country}
	}

	speeches, err := h.speeches.Search(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStoreQueryFailed("search speeches", err))
	}

	return HandleSuccess(h.logger, c, speeches)
}

// LoadCorpus bulk-imports the on-disk corpus tree
// POST /v1/speeches/corpus
func (h *Speech) LoadCorpus(c echo.Context) error {
	var req struct {
		Path string `json:"path" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	report, err := h.loader.LoadDirectory(c.Request().Context(), req.Path)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, report)
}
