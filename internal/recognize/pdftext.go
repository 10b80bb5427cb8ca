package recognize

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/carelog/receipt-extract/constants"
)

// PDFTextBackend reads the embedded text layer of a digital PDF via
// pdftotext. It is the cheapest backend: no OCR, no network. Scanned PDFs
// without a text layer fail recognition and fall through to the OCR backends.
type PDFTextBackend struct {
	pdftotext string
	runner    Runner
	logger    *slog.Logger
}

func NewPDFTextBackend(pdftotext string, logger *slog.Logger) *PDFTextBackend {
	if logger == nil {
		logger = slog.Default()
	}
	if pdftotext == "" {
		pdftotext = "pdftotext"
	}
	return &PDFTextBackend{pdftotext: pdftotext, runner: execRunner{}, logger: logger}
}

func (b *PDFTextBackend) ID() string { return constants.BackendPDFText }

func (b *PDFTextBackend) Recognize(ctx context.Context, doc Document) (Output, error) {
	start := time.Now()

	// Raster images carry no text layer; this backend cannot serve them.
	if doc.Format != constants.PDF {
		return Output{}, fmt.Errorf("%s: no text layer on %s input: %w", b.ID(), doc.Format, ErrUnavailable)
	}
	if _, err := b.runner.LookPath(b.pdftotext); err != nil {
		return Output{}, fmt.Errorf("%s: %q not found: %w", b.ID(), b.pdftotext, ErrUnavailable)
	}

	pages, err := pdfPageCount(doc.Data)
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: err}
	}

	path, cleanup, err := writeTempBytes(doc.Data, "pdf")
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: err}
	}
	defer cleanup()

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := b.runner.Run(ctx, b.pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("pdftotext: %w (%s)", err, truncate(string(errb), 512))}
	}

	text := Normalize(string(out))
	if text == "" {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("pdf has no extractable text layer")}
	}

	b.logger.Debug("pdf text layer read", "doc", doc.Name, "pages", pages, "bytes", len(text))
	return Output{
		Text:      text,
		BackendID: b.ID(),
		Pages:     pages,
		Duration:  time.Since(start),
	}, nil
}

// pdfPageCount validates the PDF structure and returns its page count.
func pdfPageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	return pctx.PageCount, nil
}
