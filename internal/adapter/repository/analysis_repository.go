package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
)

// AnalysisRepository implements the analysis repository interface using GORM
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create stores a generated readout
func (r *AnalysisRepository) Create(ctx context.Context, analysis *entities.AnalysisResult) error {
	if analysis == nil {
		return errors.New("analysis cannot be nil")
	}
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// FindByID finds an analysis by ID
func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisResult, error) {
	var analysis entities.AnalysisResult
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find analysis by ID: %w", err)
	}
	return &analysis, nil
}

// List returns analyses matching the filters, newest first.
func (r *AnalysisRepository) List(ctx context.Context, filters repositories.AnalysisFilters) ([]*entities.AnalysisResult, error) {
	q := r.db.WithContext(ctx).Model(&entities.AnalysisResult{})

	if filters.Country != "" {
		q = q.Where("LOWER(country) LIKE ?", "%"+strings.ToLower(filters.Country)+"%")
	}
	if filters.Classification != "" {
		q = q.Where("classification = ?", filters.Classification)
	}
	if filters.AfricaMentioned != nil {
		q = q.Where("africa_mentioned = ?", *filters.AfricaMentioned)
	}
	for _, sdg := range filters.SDGs {
		// SDG numbers live in a JSON array column; match the bare number
		// bounded by array syntax so 1 does not match 11.
		q = q.Where("sdgs LIKE ? OR sdgs LIKE ? OR sdgs LIKE ? OR sdgs = ?",
			fmt.Sprintf("[%d,%%", sdg),
			fmt.Sprintf("%%,%d,%%", sdg),
			fmt.Sprintf("%%,%d]", sdg),
			fmt.Sprintf("[%d]", sdg))
	}
	if filters.DateFrom != nil {
		q = q.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("created_at <= ?", *filters.DateTo)
	}
	if filters.SearchText != "" {
		pattern := "%" + strings.ToLower(filters.SearchText) + "%"
		q = q.Where("LOWER(country) LIKE ? OR LOWER(raw_text) LIKE ? OR LOWER(output_markdown) LIKE ?",
			pattern, pattern, pattern)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = repositories.DefaultSearchLimit
	}

	var analyses []*entities.AnalysisResult
	if err := q.Order("created_at DESC").Order("id ASC").
		Limit(limit).
		Offset(filters.Offset).
		Find(&analyses).Error; err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

// Delete removes one analysis.
func (r *AnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.AnalysisResult{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete analysis: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrAnalysisNotFound
	}
	return nil
}

// Statistics summarizes the analyses table for the dashboard.
func (r *AnalysisRepository) Statistics(ctx context.Context) (*repositories.AnalysisStatistics, error) {
	stats := &repositories.AnalysisStatistics{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entities.AnalysisResult{})
	}

	if err := base().Count(&stats.TotalAnalyses).Error; err != nil {
		return nil, fmt.Errorf("failed to count analyses: %w", err)
	}
	if err := base().Where("classification = ?", entities.AfricanMemberState).
		Count(&stats.AfricanAnalyses).Error; err != nil {
		return nil, fmt.Errorf("failed to count african analyses: %w", err)
	}
	if err := base().Where("classification = ?", entities.DevelopmentPartner).
		Count(&stats.PartnerAnalyses).Error; err != nil {
		return nil, fmt.Errorf("failed to count partner analyses: %w", err)
	}
	if err := base().Distinct("country").Count(&stats.UniqueCountries).Error; err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	var latest entities.AnalysisResult
	err := base().Order("created_at DESC").First(&latest).Error
	switch {
	case err == nil:
		stats.LatestAnalysis = &latest.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Empty table; leave LatestAnalysis nil.
	default:
		return nil, fmt.Errorf("failed to find latest analysis: %w", err)
	}

	return stats, nil
}
