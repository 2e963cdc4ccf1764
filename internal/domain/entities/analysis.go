package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalysisResult is one generated readout for a submitted statement.
// Rows are insert-only; they are never mutated after creation and deleted
// only by explicit user action.
type AnalysisResult struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Country         string         `json:"country" gorm:"type:varchar(255);not null;index"`
	Classification  Classification `json:"classification" gorm:"type:varchar(50);not null"`
	SpeechDate      string         `json:"speech_date,omitempty" gorm:"type:varchar(50)"`
	SDGs            datatypes.JSON `json:"sdgs" gorm:"type:json"`
	AfricaMentioned bool           `json:"africa_mentioned" gorm:"default:false"`
	SourceFilename  string         `json:"source_filename,omitempty" gorm:"type:varchar(255)"`
	RawText         string         `json:"raw_text" gorm:"type:text"`
	PromptUsed      string         `json:"prompt_used" gorm:"type:text"`
	OutputMarkdown  string         `json:"output_markdown" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for GORM
func (AnalysisResult) TableName() string {
	return "analyses"
}

// NewAnalysisResult creates an analysis row with a fresh id.
func NewAnalysisResult(country string, classification Classification) *AnalysisResult {
	return &AnalysisResult{
		ID:             uuid.New(),
		Country:        country,
		Classification: classification,
	}
}

// SetSDGs stores the explicitly mentioned SDG numbers.
func (a *AnalysisResult) SetSDGs(sdgs []int) error {
	b, err := json.Marshal(sdgs)
	if err != nil {
		return err
	}
	a.SDGs = datatypes.JSON(b)
	return nil
}

// SDGList decodes the stored SDG numbers.
func (a *AnalysisResult) SDGList() ([]int, error) {
	if len(a.SDGs) == 0 {
		return nil, nil
	}
	var sdgs []int
	if err := json.Unmarshal(a.SDGs, &sdgs); err != nil {
		return nil, err
	}
	return sdgs, nil
}
