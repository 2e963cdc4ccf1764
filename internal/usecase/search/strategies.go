package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/intent"
)

// strategyResult is what one retrieval strategy hands to synthesis.
type strategyResult struct {
	rows       []repositories.ScoredSpeech
	yearCounts map[int]int
}

type strategyFunc func(ctx context.Context, qi intent.QueryIntent) (strategyResult, error)

// strategyHandlers binds every routing strategy to its retrieval. The table
// must cover all of intent.Strategies.
func strategyHandlers(s *Service) map[intent.StrategyLabel]strategyFunc {
	return map[intent.StrategyLabel]strategyFunc{
		intent.StrategySemanticSimple:        s.semanticSimple,
		intent.StrategyComprehensiveTemporal: s.comprehensiveTemporal,
		intent.StrategyComparative:           s.comparative,
		intent.StrategySemanticContent:       s.semanticContent,
		intent.StrategyStatisticalAnalysis:   s.statisticalAnalysis,
		intent.StrategyTemporalBroad:         s.temporalBroad,
		intent.StrategyHybrid:                s.hybrid,
	}
}

func filtersFromEntities(e intent.Entities, limit int) repositories.SpeechFilters {
	return repositories.SpeechFilters{
		Countries: e.Countries,
		Years:     e.Years,
		Limit:     limit,
	}
}

// semanticSimple is a narrow top-k retrieval for direct questions.
func (s *Service) semanticSimple(ctx context.Context, qi intent.QueryIntent) (strategyResult, error) {
	rows, err := s.retrieve(ctx, qi.Query, filtersFromEntities(qi.Entities, 10))
	return strategyResult{rows: rows}, err
}

// comprehensiveTemporal pulls a wide evidence set across the full year span
// for trend questions, plus per-year counts for the synthesis context.
func (s *Service) comprehensiveTemporal(ctx context.Context, qi intent.QueryIntent) (strategyResult, error) {
	filters := filtersFromEntities(qi.Entities, 30)
	rows, err := s.retrieve(ctx, qi.Query, filters)
	if err != nil {
		return strategyResult{}, err
	}

	counts := make(map[int]int)
	if kw := topicOrPrimaryKeyword(qi); kw != "" {
		country := ""
		if len(qi.Entities.Countries) == 1 {
			country = qi.Entities.Countries[0]
		}
		counts, err = s.speeches.CountByYear(ctx, kw, country)
		if err != nil {
			return strategyResult{}, apperrors.ErrStoreQueryFailed("count by year", err)
		}
	}
	return strategyResult{rows: rows, yearCounts: counts}, nil
}

// comparative retrieves a balanced per-country evidence set so one side of
// the comparison cannot crowd out the other.
func (s *Service) comparative(ctx context.Context, qi intent.QueryIntent) (strategyResult, error) {
	countries := qi.Entities.Countries
	if len(countries) < 2 {
		// Nothing concrete to compare; degrade to the wide hybrid pull.
		return s.hybrid(ctx, qi)
	}

	perCountry := 6
	groups := make([][]repositories.ScoredSpeech, 0, len(countries))
	for _, country := range countries {
		filters := repositories.SpeechFilters{
			Countries: []string{country},
			Years:     qi.Entities.Years,
			Limit:     perCountry,
		}
		rows, err := s.retrieve(ctx, qi.Query, filters)
		if err != nil {
			return strategyResult{}, err
		}
		groups = append(groups, rows)
	}

	// Interleave so every country is represented before any is repeated.
	var merged []repositories.ScoredSpeech
	seen := make(map[uint]bool)
	for i := 0; i < perCountry; i++ {
		for _, g := range groups {
			if i < len(g) && !seen[g[i].Record.ID] {
				seen[g[i].Record.ID] = true
				merged = append(merged, g[i])
			}
		}
	}
	return strategyResult{rows: merged}, nil
}

// semanticContent widens the query with detected topic vocabulary before
// similarity retrieval.
func (s *Service) semanticContent(ctx context.Context, qi intent.QueryIntent) (strategyResult, error) {
	queryText := qi.Query
	if len(qi.Entities.Topics) > 0 {
		queryText = qi.Query + " " + strings.Join(qi.Entities.Topics, " ")
	}
	rows, err := s.retrieve(ctx, queryText, filtersFromEntities(qi.Entities, 15))
	return strategyResult{rows: rows}, err
}

// statisticalAnalysis answers counting questions from per-year aggregates,
// with a handful of example speeches as qualitative context.
func (s *Service) statisticalAnalysis(ctx context.Context, qi intent.QueryIntent) (strategyResult, error) {
	kw := topicOrPrimaryKeyword(qi)
	country := ""
	if len(qi.Entities.Countries) == 1 {
		country = qi.Entities.Countries[0]
	}

	counts, err := s.speeches.CountByYear(ctx, kw, country)
	if err != nil {
		return strategyResult{}, apperrors.ErrStoreQueryFailed("count by year", err)
	}
	if len(qi.Entities.Years) > 0 {
		wanted := make(map[int]bool, len(qi.Entities.Years))
		for _, y := range qi.Entities.Years {
			wanted[y] = true
		}
		for y := range counts {
			if !wanted[y] {
				delete(counts, y)
			}
		}
	}

	filters := filtersFromEntities(qi.Entities, 5)
	filters.Keyword = kw
	rows, err := s.keywordFallback(ctx, filters)
	if err != nil {
		return strategyResult{}, err
	}
	return strategyResult{rows: rows, yearCounts: counts}, nil
}

// temporalBroad runs a wide keyword sweep across the year range.
func (s *Service) temporalBroad(ctx context.Context, qi intent.QueryIntent) (strategyResult, error) {
	filters := filtersFromEntities(qi.Entities, 40)
	filters.Keyword = topicOrPrimaryKeyword(qi)
	rows, err := s.keywordFallback(ctx, filters)
	return strategyResult{rows: rows}, err
}

// hybrid unions similarity and keyword retrieval, deduplicated by record.
func (s *Service) hybrid(ctx context.Context, qi intent.QueryIntent) (strategyResult, error) {
	semantic, err := s.retrieve(ctx, qi.Query, filtersFromEntities(qi.Entities, 15))
	if err != nil {
		return strategyResult{}, err
	}

	filters := filtersFromEntities(qi.Entities, 15)
	filters.Keyword = topicOrPrimaryKeyword(qi)
	keyword, err := s.keywordFallback(ctx, filters)
	if err != nil {
		return strategyResult{}, err
	}

	return strategyResult{rows: mergeRows(semantic, keyword)}, nil
}

// topicOrPrimaryKeyword prefers a detected topic label over the raw query's
// longest word.
func topicOrPrimaryKeyword(qi intent.QueryIntent) string {
	if len(qi.Entities.Topics) > 0 {
		// The first word of the topic label is the searchable stem
		// ("climate change" -> "climate").
		return strings.Fields(qi.Entities.Topics[0])[0]
	}
	return primaryKeyword(qi.Query)
}

// answerSystemMessage frames corpus answer synthesis.
const answerSystemMessage = `You are a UN OSAA research assistant answering questions about United Nations General Assembly General Debate statements from 1946 onward. Answer only from the provided context excerpts and per-year counts. Cite countries and years inline, for example (Kenya, 2019). Use UN terminology, neutral tone and Markdown formatting. If the context does not contain the answer, say so plainly.`

// buildAnswerPrompt lays out retrieved excerpts and aggregates before the
// question itself.
func buildAnswerPrompt(qi intent.QueryIntent, rows []repositories.ScoredSpeech, yearCounts map[int]int) string {
	var b strings.Builder

	b.WriteString("CONTEXT EXCERPTS:\n")
	if len(rows) == 0 {
		b.WriteString("(none)\n")
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s, %d: \"%s\"\n", r.Record.CountryName, r.Record.Year, r.Record.Excerpt(excerptRunes))
	}

	if len(yearCounts) > 0 {
		b.WriteString("\nMATCHING SPEECHES PER YEAR:\n")
		years := make([]int, 0, len(yearCounts))
		for y := range yearCounts {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			fmt.Fprintf(&b, "%d: %d\n", y, yearCounts[y])
		}
	}

	fmt.Fprintf(&b, "\nQUESTION: %s\n", qi.Query)
	fmt.Fprintf(&b, "\nAnswer the question using only this context. Structure the answer with Markdown and cite (country, year) for every claim.")

	return b.String()
}
