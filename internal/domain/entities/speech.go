package entities

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// SpeechRecord is one General Debate statement in the historical corpus.
// Records are immutable once stored except for re-embedding.
type SpeechRecord struct {
	ID              uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	CountryName     string `json:"country_name" gorm:"type:varchar(255);not null;index:idx_speeches_country_year"`
	CountryCode     string `json:"country_code" gorm:"type:varchar(3);index"`
	Year            int    `json:"year" gorm:"not null;index:idx_speeches_country_year"`
	SessionNumber   int    `json:"session_number" gorm:"not null"`
	RawText         string `json:"raw_text" gorm:"type:text;not null"`
	TranslatedText  string `json:"translated_text,omitempty" gorm:"type:text"`
	Language        string `json:"language" gorm:"type:varchar(10);default:'en'"`
	WordCount       int    `json:"word_count"`
	IsAfricanMember bool   `json:"is_african_member" gorm:"not null"`
	SourceFilename  string `json:"source_filename" gorm:"type:varchar(255)"`

	// Embedding holds the fixed-length vector as a JSON array. Similarity
	// queries linearly scan these vectors; there is no index structure.
	Embedding datatypes.JSON `json:"-" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for GORM
func (SpeechRecord) TableName() string {
	return "speeches"
}

// NewSpeechRecord creates a speech record. isAfricanMember must come from the
// country classifier so the stored flag stays consistent with the roster.
func NewSpeechRecord(countryName, countryCode string, year, session int, rawText string, isAfricanMember bool, sourceFilename string) *SpeechRecord {
	return &SpeechRecord{
		CountryName:     countryName,
		CountryCode:     countryCode,
		Year:            year,
		SessionNumber:   session,
		RawText:         rawText,
		Language:        "en",
		WordCount:       len(strings.Fields(rawText)),
		IsAfricanMember: isAfricanMember,
		SourceFilename:  sourceFilename,
	}
}

// SetEmbedding stores the vector as a JSON column value.
func (s *SpeechRecord) SetEmbedding(vec []float32) error {
	b, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	s.Embedding = datatypes.JSON(b)
	return nil
}

// EmbeddingVector decodes the stored vector. Returns nil when the record has
// not been embedded yet.
func (s *SpeechRecord) EmbeddingVector() ([]float32, error) {
	if len(s.Embedding) == 0 {
		return nil, nil
	}
	var vec []float32
	if err := json.Unmarshal(s.Embedding, &vec); err != nil {
		return nil, err
	}
	return vec, nil
}

// Excerpt returns the first n runes of the speech text for citation snippets.
func (s *SpeechRecord) Excerpt(n int) string {
	text := s.RawText
	if s.TranslatedText != "" {
		text = s.TranslatedText
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
