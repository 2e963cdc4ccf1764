package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
)

// AnalysisFilters is the fully-enumerated configuration for listing analyses.
type AnalysisFilters struct {
	Country         string
	Classification  entities.Classification
	AfricaMentioned *bool
	SDGs            []int
	DateFrom        *time.Time
	DateTo          *time.Time
	SearchText      string
	Limit           int
	Offset          int
}

// AnalysisStatistics summarizes the analyses table
type AnalysisStatistics struct {
	TotalAnalyses   int64      `json:"total_analyses"`
	AfricanAnalyses int64      `json:"african_analyses"`
	PartnerAnalyses int64      `json:"partner_analyses"`
	UniqueCountries int64      `json:"unique_countries"`
	LatestAnalysis  *time.Time `json:"latest_analysis_date,omitempty"`
}

// AnalysisRepository defines readout persistence operations
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *entities.AnalysisResult) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisResult, error)
	List(ctx context.Context, filters AnalysisFilters) ([]*entities.AnalysisResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context) (*AnalysisStatistics, error)
}
