package recognize

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/carelog/receipt-extract/constants"
	"github.com/carelog/receipt-extract/internal/common"
)

// ocrPrompt asks for a plain transcription, nothing structured. Field
// extraction stays in the pattern analyzer so every backend is scored the
// same way.
const ocrPrompt = "Transcribe all text visible in this scanned receipt exactly as written, " +
	"line by line. Preserve numbers, dates and umlauts. Output only the raw text, no commentary."

// GeminiBackend sends the document to the Gemini vision API and returns the
// transcription. The costliest backend; only reached when the cheaper ones
// left the engine below its early-stop threshold.
type GeminiBackend struct {
	cfg    common.VisionConfig
	logger *slog.Logger
}

func NewGeminiBackend(cfg common.VisionConfig, logger *slog.Logger) *GeminiBackend {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	return &GeminiBackend{cfg: cfg, logger: logger}
}

func (b *GeminiBackend) ID() string { return constants.BackendGeminiVision }

func (b *GeminiBackend) Recognize(ctx context.Context, doc Document) (Output, error) {
	start := time.Now()

	if b.cfg.APIKey == "" {
		return Output{}, fmt.Errorf("%s: no API key configured: %w", b.ID(), ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  b.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("create client: %w", err)}
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromBytes(doc.Data, mimeTypeFor(doc)),
			genai.NewPartFromText(ocrPrompt),
		},
	}}

	result, err := client.Models.GenerateContent(ctx, b.cfg.Model, contents, nil)
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: err}
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("empty response from %s", b.cfg.Model)}
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		text += part.Text
	}
	text = Normalize(text)
	if text == "" {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("model returned no text")}
	}

	b.logger.Debug("vision transcription ok", "doc", doc.Name, "model", b.cfg.Model, "bytes", len(text))
	return Output{
		Text:      text,
		BackendID: b.ID(),
		Pages:     1,
		Duration:  time.Since(start),
	}, nil
}

func mimeTypeFor(doc Document) string {
	if doc.Format == constants.PDF {
		return "application/pdf"
	}
	return http.DetectContentType(doc.Data)
}
