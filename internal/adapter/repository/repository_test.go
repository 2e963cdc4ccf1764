package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.SpeechRecord{}, &entities.AnalysisResult{}, &entities.User{}))
	return db
}

func seedSpeech(t *testing.T, repo *SpeechRepository, country, code string, year int, text string, african bool, vec []float32) *entities.SpeechRecord {
	t.Helper()
	s := entities.NewSpeechRecord(country, code, year, year-1945, text, african, "")
	if vec != nil {
		require.NoError(t, s.SetEmbedding(vec))
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func TestSpeechCreateRejectsMembershipMismatch(t *testing.T) {
	repo := NewSpeechRepository(newTestDB(t), classify.New())

	s := entities.NewSpeechRecord("Kenya", "KEN", 2020, 75, "some speech", false, "")
	err := repo.Create(context.Background(), s)
	assert.ErrorIs(t, err, entities.ErrMembershipMismatch)

	s = entities.NewSpeechRecord("Japan", "JPN", 2020, 75, "some speech", true, "")
	err = repo.Create(context.Background(), s)
	assert.ErrorIs(t, err, entities.ErrMembershipMismatch)
}

func TestSpeechSearchFilters(t *testing.T) {
	repo := NewSpeechRepository(newTestDB(t), classify.New())
	ctx := context.Background()

	seedSpeech(t, repo, "Kenya", "KEN", 2019, "climate resilience and drought", true, nil)
	seedSpeech(t, repo, "Kenya", "KEN", 2021, "debt relief for developing nations", true, nil)
	seedSpeech(t, repo, "Japan", "JPN", 2021, "climate finance commitments", false, nil)

	got, err := repo.Search(ctx, repositories.SpeechFilters{Keyword: "climate"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest year first, then country name.
	assert.Equal(t, "Japan", got[0].CountryName)
	assert.Equal(t, "Kenya", got[1].CountryName)

	got, err = repo.Search(ctx, repositories.SpeechFilters{
		Countries: []string{"Kenya"},
		YearFrom:  2020,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2021, got[0].Year)

	got, err = repo.Search(ctx, repositories.SpeechFilters{Years: []int{2019}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kenya", got[0].CountryName)

	// Exact country+year returns only that record, not the other Kenya rows.
	got, err = repo.Search(ctx, repositories.SpeechFilters{
		Countries: []string{"Kenya"},
		Years:     []int{2019},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2019, got[0].Year)
	assert.Equal(t, "Kenya", got[0].CountryName)
}

func TestSpeechSearchSimilarRanksByCosine(t *testing.T) {
	repo := NewSpeechRepository(newTestDB(t), classify.New())
	ctx := context.Background()

	near := seedSpeech(t, repo, "Kenya", "KEN", 2020, "a", true, []float32{1, 0, 0})
	far := seedSpeech(t, repo, "Ghana", "GHA", 2020, "b", true, []float32{0, 1, 0})
	seedSpeech(t, repo, "Japan", "JPN", 2020, "c", false, nil) // no embedding

	got, err := repo.SearchSimilar(ctx, []float32{0.9, 0.1, 0}, repositories.SpeechFilters{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, near.ID, got[0].Record.ID)
	assert.Equal(t, far.ID, got[1].Record.ID)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestSpeechCountByYear(t *testing.T) {
	repo := NewSpeechRepository(newTestDB(t), classify.New())
	ctx := context.Background()

	seedSpeech(t, repo, "Kenya", "KEN", 2019, "Climate change is urgent", true, nil)
	seedSpeech(t, repo, "Kenya", "KEN", 2020, "climate adaptation funding", true, nil)
	seedSpeech(t, repo, "Japan", "JPN", 2020, "trade and security", false, nil)

	counts, err := repo.CountByYear(ctx, "climate", "")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2019: 1, 2020: 1}, counts)

	counts, err = repo.CountByYear(ctx, "", "Kenya")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2019: 1, 2020: 1}, counts)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestAnalysisListFilters(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))
	ctx := context.Background()

	a := entities.NewAnalysisResult("Kenya", entities.AfricanMemberState)
	a.OutputMarkdown = "## Readout\nKenya stressed SDG 13."
	a.AfricaMentioned = true
	require.NoError(t, a.SetSDGs([]int{1, 13}))
	require.NoError(t, repo.Create(ctx, a))

	b := entities.NewAnalysisResult("Japan", entities.DevelopmentPartner)
	b.OutputMarkdown = "## Readout\nJapan pledged climate finance."
	require.NoError(t, b.SetSDGs([]int{3}))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.List(ctx, repositories.AnalysisFilters{Classification: entities.AfricanMemberState})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kenya", got[0].Country)

	yes := true
	got, err = repo.List(ctx, repositories.AnalysisFilters{AfricaMentioned: &yes})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.List(ctx, repositories.AnalysisFilters{SDGs: []int{13}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kenya", got[0].Country)

	// SDG 1 must not match the row holding only SDG 13.
	got, err = repo.List(ctx, repositories.AnalysisFilters{SDGs: []int{3}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Japan", got[0].Country)

	got, err = repo.List(ctx, repositories.AnalysisFilters{SearchText: "pledged climate"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Japan", got[0].Country)
}

func TestAnalysisDeleteAndStatistics(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))
	ctx := context.Background()

	a := entities.NewAnalysisResult("Kenya", entities.AfricanMemberState)
	require.NoError(t, repo.Create(ctx, a))
	b := entities.NewAnalysisResult("Japan", entities.DevelopmentPartner)
	require.NoError(t, repo.Create(ctx, b))

	stats, err := repo.Statistics(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalAnalyses)
	assert.EqualValues(t, 1, stats.AfricanAnalyses)
	assert.EqualValues(t, 1, stats.PartnerAnalyses)
	assert.EqualValues(t, 2, stats.UniqueCountries)
	require.NotNil(t, stats.LatestAnalysis)

	require.NoError(t, repo.Delete(ctx, a.ID))
	err = repo.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, entities.ErrAnalysisNotFound)

	_, err = repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, entities.ErrAnalysisNotFound)
}

func TestUserRepositoryLifecycle(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := entities.NewUser("analyst@osaa.un.org", "hash", "Test Analyst", "Analyst", "OSAA", "research")
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.FindByEmail(ctx, "analyst@osaa.un.org")
	require.NoError(t, err)
	assert.Equal(t, entities.UserStatusPending, found.Status)

	pending, err := repo.ListByStatus(ctx, entities.UserStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	found.Approve("admin")
	require.NoError(t, repo.Update(ctx, found))

	approved, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.UserStatusApproved, approved.Status)

	_, err = repo.FindByEmail(ctx, "nobody@osaa.un.org")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}
