package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
	"github.com/osaa-analytics/unga-readout/pkg/config"
	"github.com/osaa-analytics/unga-readout/pkg/llm"
)

type stubCompleter struct {
	calls     int
	responses []string
	errs      []error
}

func (s *stubCompleter) ChatCompletion(ctx context.Context, req llm.ChatRequest) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	if len(s.responses) > 0 {
		return s.responses[len(s.responses)-1], nil
	}
	return "## Readout", nil
}

type memAnalysisRepo struct {
	created []*entities.AnalysisResult
}

func (m *memAnalysisRepo) Create(ctx context.Context, a *entities.AnalysisResult) error {
	m.created = append(m.created, a)
	return nil
}

func (m *memAnalysisRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisResult, error) {
	for _, a := range m.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, entities.ErrAnalysisNotFound
}

func (m *memAnalysisRepo) List(ctx context.Context, filters repositories.AnalysisFilters) ([]*entities.AnalysisResult, error) {
	return m.created, nil
}

func (m *memAnalysisRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *memAnalysisRepo) Statistics(ctx context.Context) (*repositories.AnalysisStatistics, error) {
	return &repositories.AnalysisStatistics{TotalAnalyses: int64(len(m.created))}, nil
}

func newTestService(completer TextCompleter, repo repositories.AnalysisRepository, tokenBudget int) *Service {
	cfg := &config.LLMConfig{
		Model:       "gpt-4o",
		Temperature: 0.1,
		MaxTokens:   4000,
		TokenBudget: tokenBudget,
	}
	return NewService(completer, repo, classify.New(), cfg, zap.NewNop())
}

func TestGenerateAfricanMemberState(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		"# Kenya\n\n## 1. Summary\n\nSDGs Referenced: SDG 7, SDG 13 and Goal 1",
	}}
	repo := &memAnalysisRepo{}
	svc := newTestService(completer, repo, 100000)

	got, err := svc.Generate(context.Background(), GenerateRequest{
		Country: "Kenya",
		RawText: "We call for climate justice.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Kenya", got.Country)
	assert.Equal(t, entities.AfricanMemberState, got.Classification)
	assert.True(t, got.AfricaMentioned)
	assert.Contains(t, got.PromptUsed, "Agenda 2063")

	sdgs, err := got.SDGList()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 7, 13}, sdgs)

	require.Len(t, repo.created, 1)
	assert.Equal(t, got.ID, repo.created[0].ID)
}

func TestGeneratePartnerQuestionSetAndAfricaDetection(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		"# Japan\n\n**Africa Mention**: Yes",
	}}
	svc := newTestService(completer, &memAnalysisRepo{}, 100000)

	got, err := svc.Generate(context.Background(), GenerateRequest{
		Country: "Japan",
		RawText: "We pledge support to partners worldwide.",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.DevelopmentPartner, got.Classification)
	assert.NotContains(t, got.PromptUsed, "Agenda 2063")
	assert.True(t, got.AfricaMentioned)
}

func TestGeneratePartnerNoAfricaMention(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		"# Japan\n\nAfrica Mention: No",
	}}
	svc := newTestService(completer, &memAnalysisRepo{}, 100000)

	got, err := svc.Generate(context.Background(), GenerateRequest{
		Country: "Japan",
		RawText: "Regional security in Asia remains our focus.",
	})
	require.NoError(t, err)
	assert.False(t, got.AfricaMentioned)
}

func TestGenerateTwiceProducesDistinctIDsSameMarkdown(t *testing.T) {
	completer := &stubCompleter{responses: []string{"## Readout\n\nStable output."}}
	repo := &memAnalysisRepo{}
	svc := newTestService(completer, repo, 100000)

	req := GenerateRequest{Country: "Ghana", RawText: "Education for all."}
	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.OutputMarkdown, second.OutputMarkdown)
	assert.Len(t, repo.created, 2)
}

func TestGenerateRejectsEmptyText(t *testing.T) {
	svc := newTestService(&stubCompleter{}, &memAnalysisRepo{}, 100000)

	_, err := svc.Generate(context.Background(), GenerateRequest{Country: "Kenya", RawText: "   "})
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_VALIDATION, appErr.Code)
}

func TestCompleteRetriesThenFails(t *testing.T) {
	retryable := &llm.StatusError{StatusCode: 503, Body: "upstream down"}
	completer := &stubCompleter{errs: []error{retryable, retryable, retryable}}
	svc := newTestService(completer, &memAnalysisRepo{}, 100000)

	_, err := svc.Complete(context.Background(), "sys", "user")
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_LLM_UNAVAILABLE, appErr.Code)
	assert.Equal(t, maxAttempts, completer.calls)
}

func TestCompleteDoesNotRetryBadRequest(t *testing.T) {
	completer := &stubCompleter{errs: []error{&llm.StatusError{StatusCode: 400, Body: "bad prompt"}}}
	svc := newTestService(completer, &memAnalysisRepo{}, 100000)

	_, err := svc.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Equal(t, 1, completer.calls)
}

func TestCompleteRecoversAfterTransientFailure(t *testing.T) {
	completer := &stubCompleter{
		errs:      []error{&llm.StatusError{StatusCode: 429, Body: "slow down"}, nil},
		responses: []string{"", "recovered output"},
	}
	svc := newTestService(completer, &memAnalysisRepo{}, 100000)

	got, err := svc.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "recovered output", got)
	assert.Equal(t, 2, completer.calls)
}

func TestGenerateChunksLongSpeech(t *testing.T) {
	paragraph := strings.Repeat("word ", 3000) // ~15k chars
	long := strings.Join([]string{paragraph, paragraph, paragraph}, "\n\n")

	completer := &stubCompleter{responses: []string{"chunk readout"}}
	repo := &memAnalysisRepo{}
	// Tiny budget forces the chunked path.
	svc := newTestService(completer, repo, 1000)

	got, err := svc.Generate(context.Background(), GenerateRequest{Country: "Ghana", RawText: long})
	require.NoError(t, err)

	// Three chunk calls plus one synthesis call.
	assert.Equal(t, 4, completer.calls)
	assert.Contains(t, got.PromptUsed, "synthesize")
	require.Len(t, repo.created, 1)
}

func TestSplitParagraphChunks(t *testing.T) {
	chunks := splitParagraphChunks("aaa\n\nbbb\n\nccc", 8)
	assert.Equal(t, []string{"aaa\n\nbbb", "ccc"}, chunks)

	chunks = splitParagraphChunks("short", 100)
	assert.Equal(t, []string{"short"}, chunks)
}

func TestExtractSDGsBoundsAndDedup(t *testing.T) {
	out := "SDG 13, SDGs 1 and Goal 13, SDG 99, Goal 0"
	assert.Equal(t, []int{1, 13}, extractSDGs(out))
	assert.Empty(t, extractSDGs("no goals here"))
	assert.NotNil(t, extractSDGs("no goals here"))
}
