package analysis

import (
	"context"
	stderrors "errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
	"github.com/osaa-analytics/unga-readout/pkg/config"
	"github.com/osaa-analytics/unga-readout/pkg/llm"
)

const (
	// maxAttempts bounds chat completion retries. Doubling waits start at
	// one second; the final failure surfaces as LLMUnavailable.
	maxAttempts = 3

	// maxChunkChars is the per-chunk ceiling when a speech is too long for
	// a single completion pass.
	maxChunkChars = 20000

	// charsPerToken is the rough estimate used against the token budget.
	charsPerToken = 4
)

// TextCompleter is the slice of the LLM client the service needs.
type TextCompleter interface {
	ChatCompletion(ctx context.Context, req llm.ChatRequest) (string, error)
}

// Service generates structured readouts from raw statement text and persists
// them. Identical input text always yields one stored analysis row per call.
type Service struct {
	completer  TextCompleter
	analyses   repositories.AnalysisRepository
	classifier *classify.Classifier
	cfg        *config.LLMConfig
	logger     *zap.Logger
}

// NewService creates the readout generation service.
func NewService(completer TextCompleter, analyses repositories.AnalysisRepository, classifier *classify.Classifier, cfg *config.LLMConfig, logger *zap.Logger) *Service {
	return &Service{
		completer:  completer,
		analyses:   analyses,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger,
	}
}

// GenerateRequest carries one statement through readout generation.
type GenerateRequest struct {
	Country        string
	SpeechDate     string
	RawText        string
	SourceFilename string
}

// Generate classifies the speaker, runs the LLM readout and stores the
// result. Long speeches are chunked by paragraph and re-synthesized.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*entities.AnalysisResult, error) {
	text := strings.TrimSpace(req.RawText)
	if text == "" {
		return nil, apperrors.ErrValidation("speech text cannot be empty")
	}

	cls := s.classifier.Classify(req.Country)
	country := cls.CanonicalName
	if country == "" {
		country = strings.TrimSpace(req.Country)
	}

	prompt := BuildUserPrompt(text, cls.Classification, country, req.SpeechDate)

	var output string
	var err error
	if s.overBudget(prompt) {
		s.logger.Info("speech exceeds token budget, chunking",
			zap.String("country", country),
			zap.Int("chars", len(text)))
		output, prompt, err = s.chunkAndSynthesize(ctx, text, cls.Classification, country, req.SpeechDate)
	} else {
		output, err = s.Complete(ctx, systemMessage, prompt)
	}
	if err != nil {
		return nil, err
	}

	result := entities.NewAnalysisResult(country, cls.Classification)
	result.SpeechDate = req.SpeechDate
	result.SourceFilename = req.SourceFilename
	result.RawText = text
	result.PromptUsed = prompt
	result.OutputMarkdown = output
	result.AfricaMentioned = detectAfricaMention(cls.Classification, output, text)
	if err := result.SetSDGs(extractSDGs(output)); err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	if err := s.analyses.Create(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("readout generated",
		zap.String("analysis_id", result.ID.String()),
		zap.String("country", country),
		zap.String("classification", string(cls.Classification)))

	return result, nil
}

// Complete runs one chat completion with retry. Non-retryable API responses
// fail immediately; retryable ones back off starting at one second, doubling,
// for at most maxAttempts tries.
func (s *Service) Complete(ctx context.Context, system, user string) (string, error) {
	req := llm.ChatRequest{
		Model: s.cfg.Model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		TopP:        0.9,
	}

	var out string
	operation := func() error {
		resp, err := s.completer.ChatCompletion(ctx, req)
		if err != nil {
			var statusErr *llm.StatusError
			if stderrors.As(err, &statusErr) && !statusErr.Retryable() {
				return backoff.Permanent(err)
			}
			s.logger.Warn("chat completion failed, will retry", zap.Error(err))
			return err
		}
		out = strings.TrimSpace(resp)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.Multiplier = 2
	bo.RandomizationFactor = 0

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.WithContext(bo, ctx), maxAttempts-1)); err != nil {
		return "", apperrors.ErrLLMUnavailable(err)
	}
	return out, nil
}

// chunkAndSynthesize splits a long speech at paragraph boundaries, analyzes
// every chunk and merges the chunk readouts into one. The returned prompt is
// the synthesis prompt actually stored with the result.
func (s *Service) chunkAndSynthesize(ctx context.Context, text string, classification entities.Classification, country, speechDate string) (output, prompt string, err error) {
	chunks := splitParagraphChunks(text, maxChunkChars)

	analyses := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		chunkOut, err := s.Complete(ctx, systemMessage, BuildUserPrompt(chunk, classification, country, speechDate))
		if err != nil {
			s.logger.Warn("chunk analysis failed",
				zap.Int("chunk", i+1),
				zap.Int("chunks", len(chunks)),
				zap.Error(err))
			continue
		}
		analyses = append(analyses, chunkOut)
	}
	if len(analyses) == 0 {
		return "", "", apperrors.ErrLLMUnavailable(stderrors.New("all chunk analyses failed"))
	}

	prompt = buildSynthesisPrompt(classification, country, speechDate, analyses)
	output, err = s.Complete(ctx, systemMessage, prompt)
	return output, prompt, err
}

func (s *Service) overBudget(prompt string) bool {
	budget := s.cfg.TokenBudget
	if budget <= 0 {
		return false
	}
	return (len(systemMessage)+len(prompt))/charsPerToken > budget
}

// splitParagraphChunks greedily packs paragraphs into chunks not exceeding
// maxChars. A single oversized paragraph becomes its own chunk.
func splitParagraphChunks(text string, maxChars int) []string {
	var chunks []string
	var current strings.Builder

	for _, p := range strings.Split(text, "\n\n") {
		if current.Len() > 0 && current.Len()+len(p) > maxChars {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(p)
		current.WriteString("\n\n")
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

var (
	sdgPattern         = regexp.MustCompile(`(?i)\bSDGs?\s*#?\s*(\d{1,2})`)
	goalPattern        = regexp.MustCompile(`(?i)\bGoal\s+(\d{1,2})`)
	africaMentionRegex = regexp.MustCompile(`(?i)africa mention\*{0,2}\s*[:\-]\s*\*{0,2}\s*yes`)
)

// extractSDGs pulls the SDG numbers the readout explicitly lists. Numbers
// outside 1..17 are discarded; the result is sorted and deduplicated and
// never nil.
func extractSDGs(output string) []int {
	seen := make(map[int]bool)
	for _, re := range []*regexp.Regexp{sdgPattern, goalPattern} {
		for _, m := range re.FindAllStringSubmatch(output, -1) {
			n, err := strconv.Atoi(m[1])
			if err == nil && n >= 1 && n <= 17 {
				seen[n] = true
			}
		}
	}

	sdgs := make([]int, 0, len(seen))
	for n := range seen {
		sdgs = append(sdgs, n)
	}
	sort.Ints(sdgs)
	return sdgs
}

// detectAfricaMention is trivially true for AU member statements. For
// partners it trusts the readout's own "Africa Mention: Yes" marker, falling
// back to scanning the raw speech text.
func detectAfricaMention(classification entities.Classification, output, rawText string) bool {
	if classification == entities.AfricanMemberState {
		return true
	}
	if africaMentionRegex.MatchString(output) {
		return true
	}
	return strings.Contains(strings.ToLower(rawText), "africa")
}
