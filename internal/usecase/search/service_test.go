package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
	"github.com/osaa-analytics/unga-readout/internal/usecase/intent"
	"github.com/osaa-analytics/unga-readout/pkg/config"
)

type memSpeechRepo struct {
	speeches []*entities.SpeechRecord
}

func (m *memSpeechRepo) Create(ctx context.Context, s *entities.SpeechRecord) error {
	s.ID = uint(len(m.speeches) + 1)
	m.speeches = append(m.speeches, s)
	return nil
}

func (m *memSpeechRepo) CreateBatch(ctx context.Context, speeches []*entities.SpeechRecord) error {
	for _, s := range speeches {
		if err := m.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *memSpeechRepo) FindByID(ctx context.Context, id uint) (*entities.SpeechRecord, error) {
	for _, s := range m.speeches {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, entities.ErrSpeechNotFound
}

func (m *memSpeechRepo) matches(s *entities.SpeechRecord, f repositories.SpeechFilters) bool {
	if len(f.Countries) > 0 {
		ok := false
		for _, c := range f.Countries {
			if s.CountryName == c {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Years) > 0 {
		ok := false
		for _, y := range f.Years {
			if s.Year == y {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	if f.Keyword != "" && !strings.Contains(strings.ToLower(s.RawText), strings.ToLower(f.Keyword)) {
		return false
	}
	return true
}

func (m *memSpeechRepo) Search(ctx context.Context, f repositories.SpeechFilters) ([]*entities.SpeechRecord, error) {
	var out []*entities.SpeechRecord
	for _, s := range m.speeches {
		if m.matches(s, f) {
			out = append(out, s)
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memSpeechRepo) SearchSimilar(ctx context.Context, vec []float32, f repositories.SpeechFilters) ([]repositories.ScoredSpeech, error) {
	var out []repositories.ScoredSpeech
	score := 1.0
	for _, s := range m.speeches {
		if m.matches(s, f) {
			out = append(out, repositories.ScoredSpeech{Record: s, Score: score})
			score -= 0.1
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memSpeechRepo) UpdateEmbedding(ctx context.Context, id uint, s *entities.SpeechRecord) error {
	return nil
}

func (m *memSpeechRepo) CountByYear(ctx context.Context, keyword, country string) (map[int]int, error) {
	counts := make(map[int]int)
	for _, s := range m.speeches {
		if keyword != "" && !strings.Contains(strings.ToLower(s.RawText), strings.ToLower(keyword)) {
			continue
		}
		if country != "" && s.CountryName != country {
			continue
		}
		counts[s.Year]++
	}
	return counts, nil
}

func (m *memSpeechRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.speeches)), nil
}

type stubAnswerer struct {
	lastPrompt string
}

func (s *stubAnswerer) Complete(ctx context.Context, system, user string) (string, error) {
	s.lastPrompt = user
	return "## Answer\nGrounded response.", nil
}

type stubEmbedder struct{}

func (stubEmbedder) EmbedTexts(ctx context.Context, model string, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func seed(repo *memSpeechRepo, country, code string, year int, text string, african bool) {
	_ = repo.Create(context.Background(), entities.NewSpeechRecord(country, code, year, year-1945, text, african, ""))
}

func newTestService(repo *memSpeechRepo, answerer Completer) *Service {
	cfg := &config.LLMConfig{EmbeddingModel: "text-embedding-3-small", TokenBudget: 100000}
	router := intent.NewRouter(classify.New())
	return NewService(router, repo, answerer, stubEmbedder{}, cfg, zap.NewNop())
}

func TestAnswerComparisonBalancesCountries(t *testing.T) {
	repo := &memSpeechRepo{}
	for y := 2015; y <= 2020; y++ {
		seed(repo, "Kenya", "KEN", y, "climate adaptation and resilience", true)
	}
	seed(repo, "Nigeria", "NGA", 2019, "climate and energy transition", true)

	answerer := &stubAnswerer{}
	svc := newTestService(repo, answerer)

	got, err := svc.Answer(context.Background(), "Compare Kenya and Nigeria on climate")
	require.NoError(t, err)

	assert.Equal(t, intent.IntentComparison, got.Intent)
	assert.Equal(t, intent.StrategyComparative, got.Strategy)

	countries := make(map[string]bool)
	for _, src := range got.Sources {
		countries[src.Country] = true
	}
	assert.True(t, countries["Kenya"])
	assert.True(t, countries["Nigeria"])
	assert.Contains(t, answerer.lastPrompt, "QUESTION: Compare Kenya and Nigeria on climate")
}

func TestAnswerStatisticalCarriesYearCounts(t *testing.T) {
	repo := &memSpeechRepo{}
	seed(repo, "Kenya", "KEN", 2019, "climate crisis dominates", true)
	seed(repo, "Ghana", "GHA", 2019, "climate finance gap", true)
	seed(repo, "Japan", "JPN", 2020, "climate pledges", false)
	seed(repo, "Kenya", "KEN", 2021, "debt and trade", true)

	answerer := &stubAnswerer{}
	svc := newTestService(repo, answerer)

	got, err := svc.Answer(context.Background(), "How many speeches referenced climate?")
	require.NoError(t, err)

	assert.Equal(t, intent.StrategyStatisticalAnalysis, got.Strategy)
	assert.Equal(t, map[int]int{2019: 2, 2020: 1}, got.YearCounts)
	assert.Contains(t, answerer.lastPrompt, "MATCHING SPEECHES PER YEAR:")
	assert.Contains(t, answerer.lastPrompt, "2019: 2")
}

func TestAnswerEmptyQueryRejected(t *testing.T) {
	svc := newTestService(&memSpeechRepo{}, &stubAnswerer{})
	_, err := svc.Answer(context.Background(), "   ")
	assert.Error(t, err)
}

func TestAnswerEmptyCorpus(t *testing.T) {
	answerer := &stubAnswerer{}
	svc := newTestService(&memSpeechRepo{}, answerer)

	got, err := svc.Answer(context.Background(), "What did Kenya say about debt?")
	require.NoError(t, err)
	assert.Empty(t, got.Sources)
	assert.Contains(t, answerer.lastPrompt, "(none)")
}

func TestFitBudgetKeepsBestRow(t *testing.T) {
	repo := &memSpeechRepo{}
	svc := newTestService(repo, &stubAnswerer{})
	svc.cfg = &config.LLMConfig{TokenBudget: 1} // below even one excerpt

	long := strings.Repeat("w ", 400)
	var rows []repositories.ScoredSpeech
	for i := 0; i < 5; i++ {
		rec := entities.NewSpeechRecord("Kenya", "KEN", 2019+i, 74+i, long, true, "")
		rec.ID = uint(i + 1)
		rows = append(rows, repositories.ScoredSpeech{Record: rec, Score: 1.0 - float64(i)*0.1})
	}

	kept := svc.fitBudget(intent.QueryIntent{Query: "q"}, rows)
	require.Len(t, kept, 1)
	assert.Equal(t, uint(1), kept[0].Record.ID)
}

func TestTrends(t *testing.T) {
	repo := &memSpeechRepo{}
	seed(repo, "Kenya", "KEN", 2019, "climate and health", true)
	seed(repo, "Kenya", "KEN", 2020, "pandemic response", true)

	svc := newTestService(repo, &stubAnswerer{})

	counts, err := svc.Trends(context.Background(), "climate", "")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2019: 1}, counts)

	_, err = svc.Trends(context.Background(), "  ", "")
	assert.Error(t, err)
}

func TestStrategyHandlersCoverAllStrategies(t *testing.T) {
	svc := newTestService(&memSpeechRepo{}, &stubAnswerer{})
	for _, strategy := range intent.Strategies {
		_, ok := svc.handlers[strategy]
		assert.True(t, ok, strategy)
	}
}
