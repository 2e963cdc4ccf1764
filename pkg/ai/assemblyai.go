package ai

import (
	"context"
	"fmt"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/osaa-analytics/unga-readout/pkg/config"
)

// Transcriber wraps the AssemblyAI SDK for speech-to-text of uploaded audio.
type Transcriber struct {
	client *aai.Client
}

// NewTranscriber creates a transcriber using the provided config.
func NewTranscriber(cfg *config.AssemblyAIConfig) *Transcriber {
	return &Transcriber{
		client: aai.NewClient(cfg.APIKey),
	}
}

// TranscribeAudio uploads audio bytes and blocks until the transcript is
// ready, returning the plain transcript text.
func (t *Transcriber) TranscribeAudio(ctx context.Context, audio io.Reader) (string, error) {
	uploadURL, err := t.client.Upload(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}

	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("transcription failed: %s", msg)
	}
	if transcript.Text == nil {
		return "", fmt.Errorf("transcription returned no text")
	}
	return *transcript.Text, nil
}
