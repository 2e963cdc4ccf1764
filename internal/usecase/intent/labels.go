package intent

// IntentLabel is the closed set of analysis question intents.
type IntentLabel string

const (
	IntentTrendAnalysis       IntentLabel = "trend_analysis"
	IntentComparison          IntentLabel = "comparison"
	IntentContentAnalysis     IntentLabel = "content_analysis"
	IntentStatistical         IntentLabel = "statistical"
	IntentSpecificInformation IntentLabel = "specific_information"
	IntentGeneral             IntentLabel = "general"
)

// StrategyLabel is the closed set of search strategies. Each label maps to
// exactly one handler in the search service's strategy table; the set is
// exhaustively checkable there.
type StrategyLabel string

const (
	StrategySemanticSimple        StrategyLabel = "semantic_simple"
	StrategyComprehensiveTemporal StrategyLabel = "comprehensive_temporal"
	StrategyComparative           StrategyLabel = "comparative"
	StrategySemanticContent       StrategyLabel = "semantic_content"
	StrategyStatisticalAnalysis   StrategyLabel = "statistical_analysis"
	StrategyTemporalBroad         StrategyLabel = "temporal_broad"
	StrategyHybrid                StrategyLabel = "hybrid"
)

// Strategies lists every strategy label; tests assert the handler table
// covers all of them.
var Strategies = []StrategyLabel{
	StrategySemanticSimple,
	StrategyComprehensiveTemporal,
	StrategyComparative,
	StrategySemanticContent,
	StrategyStatisticalAnalysis,
	StrategyTemporalBroad,
	StrategyHybrid,
}

// Complexity grades a question for strategy selection.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Entities holds the structured references extracted from a question.
type Entities struct {
	Countries []string `json:"countries"`
	Years     []int    `json:"years"`
	Topics    []string `json:"topics"`
}

// QueryIntent is the transient per-request routing decision. It is computed
// per call and never persisted.
type QueryIntent struct {
	Intent     IntentLabel   `json:"intent"`
	Entities   Entities      `json:"entities"`
	Strategy   StrategyLabel `json:"strategy"`
	Complexity Complexity    `json:"complexity"`
	Query      string        `json:"original_query"`
}
