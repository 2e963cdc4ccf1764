package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/internal/usecase/classify"
	"github.com/osaa-analytics/unga-readout/pkg/config"
)

// Corpus directory layout: "Session NN - YYYY/ISO3_NN_YYYY.txt".
var (
	sessionDirPattern = regexp.MustCompile(`^Session (\d{2}) - (\d{4})$`)
	speechFilePattern = regexp.MustCompile(`^([A-Z]{3})_(\d{2})_(\d{4})\.txt$`)
)

const (
	embedBatchSize   = 16
	embedConcurrency = 4
)

// Embedder turns speech texts into vectors for the similarity index.
type Embedder interface {
	EmbedTexts(ctx context.Context, model string, texts []string) ([][]float32, error)
}

// LoadReport summarizes one corpus load.
type LoadReport struct {
	SessionsScanned int `json:"sessions_scanned"`
	FilesLoaded     int `json:"files_loaded"`
	FilesSkipped    int `json:"files_skipped"`
	Embedded        int `json:"embedded"`
}

// CorpusLoader bulk-imports the historical General Debate corpus from disk.
// Embedding runs in bounded parallel batches; the final store write is one
// serialized batch insert.
type CorpusLoader struct {
	speeches   repositories.SpeechRepository
	classifier *classify.Classifier
	embedder   Embedder
	cfg        *config.LLMConfig
	logger     *zap.Logger
}

// NewCorpusLoader creates the bulk corpus loader. The embedder may be nil;
// records are then stored without vectors and keyword search still works.
func NewCorpusLoader(speeches repositories.SpeechRepository, classifier *classify.Classifier, embedder Embedder, cfg *config.LLMConfig, logger *zap.Logger) *CorpusLoader {
	return &CorpusLoader{
		speeches:   speeches,
		classifier: classifier,
		embedder:   embedder,
		cfg:        cfg,
		logger:     logger,
	}
}

// LoadDirectory walks a corpus root and stores every parseable speech file.
// Files with unknown country codes or malformed names are skipped and
// counted, never fatal.
func (l *CorpusLoader) LoadDirectory(ctx context.Context, root string) (*LoadReport, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, apperrors.ErrValidation(fmt.Sprintf("cannot read corpus directory: %v", err))
	}

	report := &LoadReport{}
	var records []*entities.SpeechRecord

	for _, entry := range entries {
		if !entry.IsDir() || !sessionDirPattern.MatchString(entry.Name()) {
			continue
		}
		report.SessionsScanned++

		sessionPath := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(sessionPath)
		if err != nil {
			l.logger.Warn("cannot read session directory", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}
			rec, ok := l.parseSpeechFile(sessionPath, f.Name())
			if !ok {
				report.FilesSkipped++
				continue
			}
			records = append(records, rec)
			report.FilesLoaded++
		}
	}

	if len(records) == 0 {
		return report, nil
	}

	if l.embedder != nil && l.cfg.EmbeddingModel != "" {
		embedded, err := l.embedRecords(ctx, records)
		if err != nil {
			return nil, err
		}
		report.Embedded = embedded
	}

	if err := l.speeches.CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	l.logger.Info("corpus loaded",
		zap.Int("sessions", report.SessionsScanned),
		zap.Int("loaded", report.FilesLoaded),
		zap.Int("skipped", report.FilesSkipped),
		zap.Int("embedded", report.Embedded))

	return report, nil
}

func (l *CorpusLoader) parseSpeechFile(dir, name string) (*entities.SpeechRecord, bool) {
	m := speechFilePattern.FindStringSubmatch(name)
	if m == nil {
		return nil, false
	}

	code := m[1]
	session, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year != 1945+session {
		l.logger.Warn("session and year disagree, skipping", zap.String("file", name))
		return nil, false
	}

	country := l.classifier.CountryName(code)
	if country == "" {
		l.logger.Warn("unknown country code, skipping", zap.String("file", name))
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil || len(data) == 0 {
		return nil, false
	}

	return entities.NewSpeechRecord(country, code, year, session, string(data),
		l.classifier.IsAfricanMember(country), name), true
}

// embedRecords computes vectors for all records in parallel batches. Each
// goroutine owns its slice of records, so no locking is needed.
func (l *CorpusLoader) embedRecords(ctx context.Context, records []*entities.SpeechRecord) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for start := 0; start < len(records); start += embedBatchSize {
		batch := records[start:min(start+embedBatchSize, len(records))]
		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, rec := range batch {
				texts[i] = rec.RawText
			}
			vecs, err := l.embedder.EmbedTexts(gctx, l.cfg.EmbeddingModel, texts)
			if err != nil {
				return err
			}
			if len(vecs) != len(batch) {
				return fmt.Errorf("embedding count mismatch: got %d for %d texts", len(vecs), len(batch))
			}
			for i, rec := range batch {
				if l.cfg.EmbeddingDim > 0 && len(vecs[i]) != l.cfg.EmbeddingDim {
					return fmt.Errorf("embedding for %s has %d dimensions, want %d",
						rec.SourceFilename, len(vecs[i]), l.cfg.EmbeddingDim)
				}
				if err := rec.SetEmbedding(vecs[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, apperrors.ErrLLMUnavailable(err)
	}
	return len(records), nil
}
