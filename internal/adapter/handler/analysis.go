package handler

import (
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	analysisdto "github.com/osaa-analytics/unga-readout/internal/adapter/dto/analysis"
	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/analysis"
	"github.com/osaa-analytics/unga-readout/internal/usecase/ingest"
)

// Analysis handles readout generation and the stored analyses.
type Analysis struct {
	service   *analysis.Service
	analyses  repositories.AnalysisRepository
	extractor *ingest.Extractor
	logger    *zap.Logger
}

// NewAnalysis creates a new analysis handler
func NewAnalysis(service *analysis.Service, analyses repositories.AnalysisRepository, extractor *ingest.Extractor, logger *zap.Logger) *Analysis {
	return &Analysis{
		service:   service,
		analyses:  analyses,
		extractor: extractor,
		logger:    logger,
	}
}

// Generate creates a readout from pasted statement text
// POST /v1/analyses
func (h *Analysis) Generate(c echo.Context) error {
	var req analysisdto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	result, err := h.service.Generate(c.Request().Context(), analysis.GenerateRequest{
		Country:    req.Country,
		SpeechDate: req.SpeechDate,
		RawText:    req.Text,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// Upload creates a readout from an uploaded PDF, DOCX, MP3 or text file
// POST /v1/analyses/upload
func (h *Analysis) Upload(c echo.Context) error {
	country := c.FormValue("country")
	if country == "" {
		return HandleError(h.logger, c, apperrors.ErrValidation("country is required"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("file is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrExtractionFailed(fileHeader.Filename, err))
	}
	defer src.Close()

	text, err := h.extractor.Extract(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Generate(c.Request().Context(), analysis.GenerateRequest{
		Country:        country,
		SpeechDate:     c.FormValue("speech_date"),
		RawText:        text,
		SourceFilename: fileHeader.Filename,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// List returns stored analyses matching the query filters
// GET /v1/analyses
func (h *Analysis) List(c echo.Context) error {
	var req analysisdto.ListRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	filters, err := buildAnalysisFilters(&req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	results, err := h.analyses.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStoreQueryFailed("list analyses", err))
	}

	return HandleSuccess(h.logger, c, results)
}

// Get returns one stored analysis
// GET /v1/analyses/:id
func (h *Analysis) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid analysis id"))
	}

	result, err := h.analyses.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrAnalysisNotFound) {
			return HandleError(h.logger, c, apperrors.ErrNotFound("analysis"))
		}
		return HandleError(h.logger, c, apperrors.ErrStoreQueryFailed("find analysis", err))
	}

	return HandleSuccess(h.logger, c, result)
}

// Delete removes one stored analysis
// DELETE /v1/analyses/:id
func (h *Analysis) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("invalid analysis id"))
	}

	if err := h.analyses.Delete(c.Request().Context(), id); err != nil {
		if stdErrors.Is(err, entities.ErrAnalysisNotFound) {
			return HandleError(h.logger, c, apperrors.ErrNotFound("analysis"))
		}
		return HandleError(h.logger, c, apperrors.ErrStoreQueryFailed("delete analysis", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": id})
}

// Statistics summarizes the analyses table
// GET /v1/analyses/statistics
func (h *Analysis) Statistics(c echo.Context) error {
	stats, err := h.analyses.Statistics(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStoreQueryFailed("analysis statistics", err))
	}
	return HandleSuccess(h.logger, c, stats)
}

// buildAnalysisFilters converts a ListRequest to repository filters
func buildAnalysisFilters(req *analysisdto.ListRequest) (repositories.AnalysisFilters, error) {
	filters := repositories.AnalysisFilters{
		Country:         req.Country,
		AfricaMentioned: req.AfricaMentioned,
		SearchText:      req.Search,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}
	if req.Classification != "" {
		filters.Classification = entities.Classification(req.Classification)
	}
	if req.SDG > 0 {
		filters.SDGs = []int{req.SDG}
	}
	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return filters, apperrors.ErrValidation("invalid date_from")
		}
		filters.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return filters, apperrors.ErrValidation("invalid date_to")
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &end
	}
	return filters, nil
}
