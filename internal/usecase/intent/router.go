package intent

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
)

// rule is one ordered intent rule. The first rule whose keywords hit wins,
// so comparison questions route to the comparative strategy even when they
// also carry trend or content vocabulary.
type rule struct {
	intent   IntentLabel
	keywords []string
}

var intentRules = []rule{
	{IntentComparison, []string{
		"compare", "comparison", "versus", " vs ", " vs.", "difference between",
		"differences between", "contrast", "similarities",
	}},
	{IntentTrendAnalysis, []string{
		"evolve", "evolved", "evolution", "over time", "trend", "trends",
		"changed", "changing", "across sessions", "across the years",
		"history", "historically", "through the years", "progression",
		"past", "years",
	}},
	{IntentContentAnalysis, []string{
		"discuss", "discussed", "mention", "mentioned", "say about",
		"said about", "talk about", "talked about", "views on", "view on",
		"position on", "stance on", "address", "addressed", "emphasize",
		"emphasis on", "focus on", "focused on",
	}},
	{IntentStatistical, []string{
		"how many", "how often", "count", "number of", "most frequently",
		"least", "frequency", "percentage", "proportion", "average",
		"statistics", "statistical",
	}},
	{IntentSpecificInformation, []string{
		"when did", "when was", "what year", "which year", "which session",
		"what session", "who ", "where did", "which country", "what country",
		"what did", "did ",
	}},
}

var (
	yearPattern   = regexp.MustCompile(`\b(19[4-9][0-9]|20[0-9][0-9])\b`)
	decadePattern = regexp.MustCompile(`\b(19[4-9]0|20[0-9]0)s\b`)
)

// topicVocabulary maps canonical topic labels to the phrases that signal
// them. Matching is substring based on the lowered query.
var topicVocabulary = map[string][]string{
	"climate change":          {"climate", "global warming", "emissions", "carbon"},
	"sustainable development": {"sustainable development", "sdg", "agenda 2030", "2030 agenda"},
	"peace and security":      {"peace", "security", "conflict", "war", "terrorism", "disarmament"},
	"economic development":    {"economic", "economy", "trade", "debt", "investment", "financing", "poverty"},
	"health":                  {"health", "pandemic", "disease", "covid", "hiv", "malaria"},
	"education":               {"education", "school", "literacy"},
	"human rights":            {"human rights", "rights of", "justice", "rule of law"},
	"gender":                  {"gender", "women", "girls"},
	"migration":               {"migration", "migrants", "refugees", "displacement"},
	"technology":              {"technology", "digital", "artificial intelligence", "innovation"},
	"food security":           {"food security", "hunger", "agriculture", "famine"},
}

// strategyTable selects a search strategy from intent and complexity. Every
// StrategyLabel in Strategies is reachable from some cell.
var strategyTable = map[IntentLabel]map[Complexity]StrategyLabel{
	IntentComparison: {
		ComplexitySimple:  StrategyComparative,
		ComplexityMedium:  StrategyComparative,
		ComplexityComplex: StrategyComparative,
	},
	IntentTrendAnalysis: {
		ComplexitySimple:  StrategyTemporalBroad,
		ComplexityMedium:  StrategyComprehensiveTemporal,
		ComplexityComplex: StrategyComprehensiveTemporal,
	},
	IntentContentAnalysis: {
		ComplexitySimple:  StrategySemanticContent,
		ComplexityMedium:  StrategySemanticContent,
		ComplexityComplex: StrategyHybrid,
	},
	IntentStatistical: {
		ComplexitySimple:  StrategyStatisticalAnalysis,
		ComplexityMedium:  StrategyStatisticalAnalysis,
		ComplexityComplex: StrategyStatisticalAnalysis,
	},
	IntentSpecificInformation: {
		ComplexitySimple:  StrategySemanticSimple,
		ComplexityMedium:  StrategySemanticSimple,
		ComplexityComplex: StrategyHybrid,
	},
	IntentGeneral: {
		ComplexitySimple:  StrategySemanticSimple,
		ComplexityMedium:  StrategySemanticSimple,
		ComplexityComplex: StrategyHybrid,
	},
}

// Router classifies free-text questions into a QueryIntent. It is stateless
// beyond the country roster and safe for concurrent use.
type Router struct {
	classifier *classify.Classifier
}

func NewRouter(classifier *classify.Classifier) *Router {
	return &Router{classifier: classifier}
}

// Route analyzes a question and returns its intent, extracted entities and
// the strategy the search service should run. The same question always yields
// the same decision.
func (r *Router) Route(query string) QueryIntent {
	lower := " " + strings.ToLower(strings.TrimSpace(query)) + " "

	intent := IntentGeneral
	for _, rl := range intentRules {
		if matchesAny(lower, rl.keywords) {
			intent = rl.intent
			break
		}
	}

	entities := Entities{
		Countries: r.classifier.Mentions(query),
		Years:     extractYears(lower),
		Topics:    extractTopics(lower),
	}

	complexity := gradeComplexity(intent, entities, query)

	return QueryIntent{
		Intent:     intent,
		Entities:   entities,
		Strategy:   strategyTable[intent][complexity],
		Complexity: complexity,
		Query:      strings.TrimSpace(query),
	}
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		needle := kw
		if !strings.HasPrefix(kw, " ") {
			// Anchor plain keywords on a leading word boundary.
			needle = " " + kw
		}
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

func extractYears(lower string) []int {
	seen := make(map[int]bool)
	var years []int
	add := func(y int) {
		if y >= 1946 && !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}

	for _, m := range decadePattern.FindAllString(lower, -1) {
		start, _ := strconv.Atoi(strings.TrimSuffix(m, "s"))
		for y := start; y < start+10; y++ {
			add(y)
		}
	}
	// Blank decades so "1990s" does not also read as the year 1990.
	stripped := decadePattern.ReplaceAllString(lower, " ")
	for _, m := range yearPattern.FindAllString(stripped, -1) {
		y, _ := strconv.Atoi(m)
		add(y)
	}

	sort.Ints(years)
	return years
}

func extractTopics(lower string) []string {
	var topics []string
	for topic, phrases := range topicVocabulary {
		if matchesAny(lower, phrases) {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// gradeComplexity scores a question by how much evidence answering it needs.
// Multi-country or multi-decade questions are complex; short single-entity
// lookups are simple.
func gradeComplexity(intent IntentLabel, e Entities, query string) Complexity {
	score := 0
	if len(e.Countries) > 1 {
		score += 2
	}
	if len(e.Years) > 5 {
		score += 2
	} else if len(e.Years) > 1 {
		score++
	}
	if len(e.Topics) > 1 {
		score++
	}
	if intent == IntentComparison || intent == IntentTrendAnalysis {
		score++
	}
	if len(strings.Fields(query)) > 15 {
		score++
	}

	switch {
	case score >= 3:
		return ComplexityComplex
	case score >= 1:
		return ComplexityMedium
	default:
		return ComplexitySimple
	}
}
