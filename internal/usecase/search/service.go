package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/intent"
	"github.com/osaa-analytics/unga-readout/pkg/config"
)

const (
	// excerptRunes is the citation snippet length.
	excerptRunes = 300

	// charsPerToken mirrors the budget estimate used for readouts.
	charsPerToken = 4
)

// Completer synthesizes a grounded answer from retrieved context.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Embedder turns query text into vectors for similarity retrieval.
type Embedder interface {
	EmbedTexts(ctx context.Context, model string, texts []string) ([][]float32, error)
}

// Source cites one corpus speech backing an answer.
type Source struct {
	SpeechID uint    `json:"speech_id"`
	Country  string  `json:"country"`
	Year     int     `json:"year"`
	Score    float64 `json:"score,omitempty"`
	Excerpt  string  `json:"excerpt"`
}

// Answer is one answered corpus question.
type Answer struct {
	Query          string               `json:"query"`
	Intent         intent.IntentLabel   `json:"intent"`
	Strategy       intent.StrategyLabel `json:"strategy"`
	AnswerMarkdown string               `json:"answer_markdown"`
	Sources        []Source             `json:"sources"`
	YearCounts     map[int]int          `json:"year_counts,omitempty"`
}

// Service answers natural-language questions over the historical corpus by
// routing to a retrieval strategy and synthesizing over the retrieved rows.
type Service struct {
	router    *intent.Router
	speeches  repositories.SpeechRepository
	completer Completer
	embedder  Embedder
	cfg       *config.LLMConfig
	logger    *zap.Logger
	handlers  map[intent.StrategyLabel]strategyFunc
}

// NewService creates the corpus search service.
func NewService(router *intent.Router, speeches repositories.SpeechRepository, completer Completer, embedder Embedder, cfg *config.LLMConfig, logger *zap.Logger) *Service {
	s := &Service{
		router:    router,
		speeches:  speeches,
		completer: completer,
		embedder:  embedder,
		cfg:       cfg,
		logger:    logger,
	}
	s.handlers = strategyHandlers(s)
	return s
}

// Route exposes the routing decision without running retrieval.
func (s *Service) Route(query string) intent.QueryIntent {
	return s.router.Route(query)
}

// Answer routes the question, retrieves context with the selected strategy
// and synthesizes a cited answer.
func (s *Service) Answer(ctx context.Context, query string) (*Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrValidation("query cannot be empty")
	}

	qi := s.router.Route(query)
	handler, ok := s.handlers[qi.Strategy]
	if !ok {
		return nil, apperrors.ErrInternal(fmt.Errorf("no handler for strategy %q", qi.Strategy))
	}

	s.logger.Info("routing corpus query",
		zap.String("intent", string(qi.Intent)),
		zap.String("strategy", string(qi.Strategy)),
		zap.Strings("countries", qi.Entities.Countries))

	result, err := handler(ctx, qi)
	if err != nil {
		return nil, err
	}

	answer := &Answer{
		Query:      qi.Query,
		Intent:     qi.Intent,
		Strategy:   qi.Strategy,
		YearCounts: result.yearCounts,
	}

	rows := s.fitBudget(qi, result.rows)
	for _, r := range rows {
		answer.Sources = append(answer.Sources, Source{
			SpeechID: r.Record.ID,
			Country:  r.Record.CountryName,
			Year:     r.Record.Year,
			Score:    r.Score,
			Excerpt:  r.Record.Excerpt(excerptRunes),
		})
	}

	prompt := buildAnswerPrompt(qi, rows, result.yearCounts)
	markdown, err := s.completer.Complete(ctx, answerSystemMessage, prompt)
	if err != nil {
		return nil, err
	}
	answer.AnswerMarkdown = markdown

	return answer, nil
}

// Trends counts matching speeches per year for the trend chart endpoint.
func (s *Service) Trends(ctx context.Context, keyword, country string) (map[int]int, error) {
	if strings.TrimSpace(keyword) == "" && strings.TrimSpace(country) == "" {
		return nil, apperrors.ErrValidation("keyword or country is required")
	}
	counts, err := s.speeches.CountByYear(ctx, strings.TrimSpace(keyword), strings.TrimSpace(country))
	if err != nil {
		return nil, apperrors.ErrStoreQueryFailed("count by year", err)
	}
	return counts, nil
}

// fitBudget trims context rows to the token budget. Rows arrive ranked best
// first and are dropped from the tail, so the strongest match always
// survives.
func (s *Service) fitBudget(qi intent.QueryIntent, rows []repositories.ScoredSpeech) []repositories.ScoredSpeech {
	budget := s.cfg.TokenBudget
	if budget <= 0 || len(rows) == 0 {
		return rows
	}

	overhead := (len(answerSystemMessage) + len(qi.Query) + 500) / charsPerToken
	remaining := budget - overhead

	kept := rows[:0:0]
	for i, r := range rows {
		cost := (len(r.Record.Excerpt(excerptRunes)) + 40) / charsPerToken
		if i > 0 && cost > remaining {
			break
		}
		kept = append(kept, r)
		remaining -= cost
	}
	return kept
}

// embedQuery returns the query vector, or nil when embedding is not
// configured or fails; callers then fall back to keyword retrieval.
func (s *Service) embedQuery(ctx context.Context, text string) []float32 {
	if s.embedder == nil || s.cfg.EmbeddingModel == "" {
		return nil
	}
	vecs, err := s.embedder.EmbedTexts(ctx, s.cfg.EmbeddingModel, []string{text})
	if err != nil || len(vecs) == 0 {
		s.logger.Warn("query embedding failed, falling back to keyword search", zap.Error(err))
		return nil
	}
	return vecs[0]
}

// keywordFallback wraps a plain keyword search as scored rows.
func (s *Service) keywordFallback(ctx context.Context, filters repositories.SpeechFilters) ([]repositories.ScoredSpeech, error) {
	records, err := s.speeches.Search(ctx, filters)
	if err != nil {
		return nil, apperrors.ErrStoreQueryFailed("keyword search", err)
	}
	rows := make([]repositories.ScoredSpeech, len(records))
	for i, rec := range records {
		rows[i] = repositories.ScoredSpeech{Record: rec}
	}
	return rows, nil
}

// retrieve runs similarity search when an embedding is available and keyword
// search otherwise.
func (s *Service) retrieve(ctx context.Context, queryText string, filters repositories.SpeechFilters) ([]repositories.ScoredSpeech, error) {
	if vec := s.embedQuery(ctx, queryText); vec != nil {
		rows, err := s.speeches.SearchSimilar(ctx, vec, filters)
		if err != nil {
			return nil, apperrors.ErrStoreQueryFailed("similarity search", err)
		}
		return rows, nil
	}
	if filters.Keyword == "" {
		filters.Keyword = primaryKeyword(queryText)
	}
	return s.keywordFallback(ctx, filters)
}

// primaryKeyword picks the longest word of the query as a last-ditch keyword
// filter when no embedding is available.
func primaryKeyword(query string) string {
	best := ""
	for _, w := range strings.Fields(query) {
		w = strings.Trim(strings.ToLower(w), ".,;:?!\"'")
		if len(w) > len(best) {
			best = w
		}
	}
	return best
}

func mergeRows(groups ...[]repositories.ScoredSpeech) []repositories.ScoredSpeech {
	seen := make(map[uint]bool)
	var merged []repositories.ScoredSpeech
	for _, group := range groups {
		for _, r := range group {
			if seen[r.Record.ID] {
				continue
			}
			seen[r.Record.ID] = true
			merged = append(merged, r)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return merged[i].Record.ID < merged[j].Record.ID
	})
	return merged
}
