package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
)

// mime types docconv understands for the upload formats we accept.
const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AudioTranscriber converts spoken audio to text.
type AudioTranscriber interface {
	TranscribeAudio(ctx context.Context, audio io.Reader) (string, error)
}

// Extractor turns uploaded files into plain text. PDF and DOCX go through
// docconv, audio through the transcriber, and .txt passes through verbatim.
type Extractor struct {
	transcriber AudioTranscriber
	maxBytes    int64
}

// NewExtractor creates an extractor. The transcriber may be nil, in which
// case audio uploads are rejected.
func NewExtractor(transcriber AudioTranscriber, maxBytes int64) *Extractor {
	return &Extractor{transcriber: transcriber, maxBytes: maxBytes}
}

// Extract reads the upload and returns its text content. Unsupported
// extensions and oversized files fail with validation errors.
func (e *Extractor) Extract(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".pdf", ".docx", ".mp3", ".m4a", ".wav":
	default:
		return "", apperrors.ErrUnsupportedFileType(filename)
	}

	data, err := e.readBounded(filename, r)
	if err != nil {
		return "", err
	}

	var text string
	switch ext {
	case ".txt":
		text = string(data)
	case ".pdf":
		text, err = convert(data, mimePDF)
	case ".docx":
		text, err = convert(data, mimeDOCX)
	case ".mp3", ".m4a", ".wav":
		if e.transcriber == nil {
			return "", apperrors.ErrTranscriptionFailed(fmt.Errorf("transcription is not configured"))
		}
		text, err = e.transcriber.TranscribeAudio(ctx, bytes.NewReader(data))
		if err != nil {
			return "", apperrors.ErrTranscriptionFailed(err)
		}
	}
	if err != nil {
		return "", apperrors.ErrExtractionFailed(filename, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.ErrExtractionFailed(filename, fmt.Errorf("no text content found"))
	}
	return text, nil
}

func (e *Extractor) readBounded(filename string, r io.Reader) ([]byte, error) {
	if e.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, apperrors.ErrExtractionFailed(filename, err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, e.maxBytes+1))
	if err != nil {
		return nil, apperrors.ErrExtractionFailed(filename, err)
	}
	if int64(len(data)) > e.maxBytes {
		return nil, apperrors.ErrFileTooLarge(filename, e.maxBytes)
	}
	return data, nil
}

func convert(data []byte, mimeType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, false)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}
