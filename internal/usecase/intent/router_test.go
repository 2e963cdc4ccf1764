package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
)

func newRouter() *Router {
	return NewRouter(classify.New())
}

func TestRouteComparisonWinsOverTrend(t *testing.T) {
	r := newRouter()

	// Carries both comparison and trend vocabulary; comparison must win.
	qi := r.Route("Compare how Kenya and Nigeria evolved on climate over time")
	assert.Equal(t, IntentComparison, qi.Intent)
	assert.Equal(t, StrategyComparative, qi.Strategy)
	assert.Equal(t, []string{"Kenya", "Nigeria"}, qi.Entities.Countries)
}

func TestRouteTrend(t *testing.T) {
	r := newRouter()

	qi := r.Route("How has Ghana's position on debt evolved over time?")
	assert.Equal(t, IntentTrendAnalysis, qi.Intent)
	assert.Contains(t, []StrategyLabel{StrategyTemporalBroad, StrategyComprehensiveTemporal}, qi.Strategy)
	assert.Equal(t, []string{"Ghana"}, qi.Entities.Countries)
	assert.Contains(t, qi.Entities.Topics, "economic development")
}

func TestRouteTrendBareChangeVocabulary(t *testing.T) {
	r := newRouter()

	qi := r.Route("How has climate rhetoric changed since 2010?")
	assert.Equal(t, IntentTrendAnalysis, qi.Intent)
	assert.Contains(t, []StrategyLabel{StrategyTemporalBroad, StrategyComprehensiveTemporal}, qi.Strategy)
	assert.Equal(t, []int{2010}, qi.Entities.Years)
	assert.Contains(t, qi.Entities.Topics, "climate change")

	for _, q := range []string{
		"What themes dominated the past decade?",
		"Which topics grew over the years?",
	} {
		assert.Equal(t, IntentTrendAnalysis, r.Route(q).Intent, q)
	}
}

func TestRouteContent(t *testing.T) {
	r := newRouter()

	qi := r.Route("What did Egypt say about water security in 2015?")
	// "what did" also matches specific_information, but content vocabulary
	// ("say about") is ranked above it.
	assert.Equal(t, IntentContentAnalysis, qi.Intent)
	assert.Equal(t, []int{2015}, qi.Entities.Years)
}

func TestRouteStatistical(t *testing.T) {
	r := newRouter()

	qi := r.Route("How many speeches referenced malaria in the 1990s?")
	assert.Equal(t, IntentStatistical, qi.Intent)
	assert.Equal(t, StrategyStatisticalAnalysis, qi.Strategy)
	require.Len(t, qi.Entities.Years, 10)
	assert.Equal(t, 1990, qi.Entities.Years[0])
	assert.Equal(t, 1999, qi.Entities.Years[9])
}

func TestRouteGeneralFallback(t *testing.T) {
	r := newRouter()

	qi := r.Route("African priorities at the General Assembly")
	assert.Equal(t, IntentGeneral, qi.Intent)
	assert.NotEmpty(t, qi.Strategy)
}

func TestRouteDeterministic(t *testing.T) {
	r := newRouter()

	const q = "Compare South Africa and Japan on trade since 2000"
	first := r.Route(q)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, r.Route(q))
	}
}

func TestRouteYearsBeforeCharterIgnored(t *testing.T) {
	r := newRouter()

	qi := r.Route("What happened in 1944 and 1950?")
	assert.Equal(t, []int{1950}, qi.Entities.Years)
}

func TestStrategyTableCoversAllIntents(t *testing.T) {
	for _, intent := range []IntentLabel{
		IntentTrendAnalysis, IntentComparison, IntentContentAnalysis,
		IntentStatistical, IntentSpecificInformation, IntentGeneral,
	} {
		row, ok := strategyTable[intent]
		require.True(t, ok, intent)
		for _, cx := range []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex} {
			assert.NotEmpty(t, row[cx], "%s/%s", intent, cx)
		}
	}
}

func TestStrategyTableReachesEveryStrategy(t *testing.T) {
	reached := make(map[StrategyLabel]bool)
	for _, row := range strategyTable {
		for _, s := range row {
			reached[s] = true
		}
	}
	for _, s := range Strategies {
		assert.True(t, reached[s], s)
	}
}
