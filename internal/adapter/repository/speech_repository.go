package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
)

// SpeechRepository implements the speech repository interface using GORM.
// Similarity search decodes the JSON embedding column and scans linearly;
// the corpus is small enough that no vector index is needed.
type SpeechRepository struct {
	db         *gorm.DB
	classifier *classify.Classifier
}

// NewSpeechRepository creates a new speech repository
func NewSpeechRepository(db *gorm.DB, classifier *classify.Classifier) *SpeechRepository {
	return &SpeechRepository{db: db, classifier: classifier}
}

// Create stores a speech record. The african-member flag must agree with the
// roster; a mismatched flag is rejected rather than silently corrected.
func (r *SpeechRepository) Create(ctx context.Context, speech *entities.SpeechRecord) error {
	if speech == nil {
		return errors.New("speech cannot be nil")
	}
	if r.classifier.IsAfricanMember(speech.CountryName) != speech.IsAfricanMember {
		return entities.ErrMembershipMismatch
	}
	if err := r.db.WithContext(ctx).Create(speech).Error; err != nil {
		return fmt.Errorf("failed to create speech: %w", err)
	}
	return nil
}

// CreateBatch stores speeches in one transaction. Any roster mismatch aborts
// the whole batch.
func (r *SpeechRepository) CreateBatch(ctx context.Context, speeches []*entities.SpeechRecord) error {
	if len(speeches) == 0 {
		return nil
	}
	for _, s := range speeches {
		if r.classifier.IsAfricanMember(s.CountryName) != s.IsAfricanMember {
			return entities.ErrMembershipMismatch
		}
	}
	if err := r.db.WithContext(ctx).CreateInBatches(speeches, 100).Error; err != nil {
		return fmt.Errorf("failed to create speech batch: %w", err)
	}
	return nil
}

// FindByID finds a speech by ID
func (r *SpeechRepository) FindByID(ctx context.Context, id uint) (*entities.SpeechRecord, error) {
	var speech entities.SpeechRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&speech).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSpeechNotFound
		}
		return nil, fmt.Errorf("failed to find speech by ID: %w", err)
	}
	return &speech, nil
}

// Search runs a filtered keyword query ordered by year descending then
// country name. Identical filters always return the same order.
func (r *SpeechRepository) Search(ctx context.Context, filters repositories.SpeechFilters) ([]*entities.SpeechRecord, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = repositories.DefaultSearchLimit
	}

	var speeches []*entities.SpeechRecord
	if err := r.applyFilters(r.db.WithContext(ctx), filters).
		Order("year DESC").
		Order("country_name ASC").
		Order("id ASC").
		Limit(limit).
		Find(&speeches).Error; err != nil {
		return nil, fmt.Errorf("failed to search speeches: %w", err)
	}
	return speeches, nil
}

// SearchSimilar ranks filtered speeches by cosine similarity to the query
// vector. Records without an embedding are skipped. Ties break by record ID
// so ranking is deterministic.
func (r *SpeechRepository) SearchSimilar(ctx context.Context, queryVec []float32, filters repositories.SpeechFilters) ([]repositories.ScoredSpeech, error) {
	if len(queryVec) == 0 {
		return nil, errors.New("query vector cannot be empty")
	}

	var candidates []*entities.SpeechRecord
	if err := r.applyFilters(r.db.WithContext(ctx), filters).
		Where("embedding IS NOT NULL").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to load similarity candidates: %w", err)
	}

	scored := make([]repositories.ScoredSpeech, 0, len(candidates))
	for _, speech := range candidates {
		vec, err := speech.EmbeddingVector()
		if err != nil || len(vec) != len(queryVec) {
			continue
		}
		scored = append(scored, repositories.ScoredSpeech{
			Record: speech,
			Score:  cosineSimilarity(queryVec, vec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.ID < scored[j].Record.ID
	})

	limit := filters.Limit
	if limit <= 0 {
		limit = repositories.DefaultSearchLimit
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// UpdateEmbedding replaces the stored vector for one record.
func (r *SpeechRepository) UpdateEmbedding(ctx context.Context, id uint, speech *entities.SpeechRecord) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.SpeechRecord{}).
		Where("id = ?", id).
		Update("embedding", speech.Embedding).Error; err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

// CountByYear counts matching speeches per year for trend charts. Keyword is
// matched case-insensitively against the speech text; country filters by
// canonical name.
func (r *SpeechRepository) CountByYear(ctx context.Context, keyword, country string) (map[int]int, error) {
	type row struct {
		Year  int
		Total int
	}

	q := r.db.WithContext(ctx).Model(&entities.SpeechRecord{}).
		Select("year, COUNT(*) AS total")
	if keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		q = q.Where("LOWER(raw_text) LIKE ? OR LOWER(translated_text) LIKE ?", pattern, pattern)
	}
	if country != "" {
		q = q.Where("country_name = ?", country)
	}

	var rows []row
	if err := q.Group("year").Order("year ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count speeches by year: %w", err)
	}

	counts := make(map[int]int, len(rows))
	for _, rw := range rows {
		counts[rw.Year] = rw.Total
	}
	return counts, nil
}

// Count returns the corpus size.
func (r *SpeechRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.SpeechRecord{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count speeches: %w", err)
	}
	return total, nil
}

func (r *SpeechRepository) applyFilters(q *gorm.DB, filters repositories.SpeechFilters) *gorm.DB {
	if len(filters.Countries) > 0 {
		q = q.Where("country_name IN ?", filters.Countries)
	}
	if len(filters.Years) > 0 {
		q = q.Where("year IN ?", filters.Years)
	}
	if filters.YearFrom > 0 {
		q = q.Where("year >= ?", filters.YearFrom)
	}
	if filters.YearTo > 0 {
		q = q.Where("year <= ?", filters.YearTo)
	}
	if filters.Keyword != "" {
		pattern := "%" + strings.ToLower(filters.Keyword) + "%"
		q = q.Where("LOWER(raw_text) LIKE ? OR LOWER(translated_text) LIKE ?", pattern, pattern)
	}
	return q
}

// cosineSimilarity computes the cosine of the angle between two equal-length
// vectors, zero when either has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
