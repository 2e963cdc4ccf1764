package repositories

import (
	"context"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
)

// SpeechFilters is the fully-enumerated configuration for corpus queries.
// Zero values mean "no constraint".
type SpeechFilters struct {
	Countries []string
	Years     []int
	YearFrom  int
	YearTo    int
	Keyword   string
	Limit     int
}

// DefaultSearchLimit caps result sets when no limit is given.
const DefaultSearchLimit = 50

// ScoredSpeech pairs a record with its similarity to the query embedding.
// Score is zero for keyword-only queries.
type ScoredSpeech struct {
	Record *entities.SpeechRecord
	Score  float64
}

// SpeechRepository defines corpus persistence operations
type SpeechRepository interface {
	Create(ctx context.Context, speech *entities.SpeechRecord) error
	CreateBatch(ctx context.Context, speeches []*entities.SpeechRecord) error
	FindByID(ctx context.Context, id uint) (*entities.SpeechRecord, error)
	Search(ctx context.Context, filters SpeechFilters) ([]*entities.SpeechRecord, error)
	SearchSimilar(ctx context.Context, queryVec []float32, filters SpeechFilters) ([]ScoredSpeech, error)
	UpdateEmbedding(ctx context.Context, id uint, speech *entities.SpeechRecord) error
	CountByYear(ctx context.Context, keyword, country string) (map[int]int, error)
	Count(ctx context.Context) (int64, error)
}
