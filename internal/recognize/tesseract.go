package recognize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/carelog/receipt-extract/constants"
	"github.com/carelog/receipt-extract/internal/common"
)

// TesseractBackend runs local OCR through the tesseract binary. Raster
// images are pre-processed (grayscale, upscale) first; PDFs are rasterized
// page by page via pdftoppm. The backend-native confidence is the mean word
// confidence from tesseract's TSV output, scaled to 0..1.
type TesseractBackend struct {
	cfg    common.OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewTesseractBackend(cfg common.OCRConfig, logger *slog.Logger) *TesseractBackend {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "deu"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &TesseractBackend{cfg: cfg, runner: execRunner{}, logger: logger}
}

func (b *TesseractBackend) ID() string { return constants.BackendTesseract }

func (b *TesseractBackend) Recognize(ctx context.Context, doc Document) (Output, error) {
	start := time.Now()

	if _, err := b.runner.LookPath(b.cfg.Tesseract); err != nil {
		return Output{}, fmt.Errorf("%s: %q not found: %w", b.ID(), b.cfg.Tesseract, ErrUnavailable)
	}

	switch doc.Format {
	case constants.IMAGE:
		out, err := b.recognizeImage(ctx, doc)
		out.Duration = time.Since(start)
		return out, err
	case constants.PDF:
		if _, err := b.runner.LookPath(b.cfg.Pdftoppm); err != nil {
			return Output{}, fmt.Errorf("%s: %q not found: %w", b.ID(), b.cfg.Pdftoppm, ErrUnavailable)
		}
		out, err := b.recognizePDF(ctx, doc)
		out.Duration = time.Since(start)
		return out, err
	default:
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("unsupported format %q", doc.Format)}
	}
}

func (b *TesseractBackend) recognizeImage(ctx context.Context, doc Document) (Output, error) {
	path, warns, cleanup, err := preprocessImage(doc.Data)
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: err}
	}
	defer cleanup()

	txt, w, err := b.tesseractOCR(ctx, path)
	warns = append(warns, w...)
	if err != nil {
		return Output{Warnings: warns}, &RecognitionError{BackendID: b.ID(), Err: err}
	}

	out := Output{
		Text:      Normalize(txt),
		BackendID: b.ID(),
		Pages:     1,
		Warnings:  warns,
	}
	if conf, w2, err2 := b.tesseractTSVConfidence(ctx, path); err2 == nil && conf > 0 {
		out.NativeConfidence = &conf
		out.Warnings = append(out.Warnings, w2...)
	} else if err2 != nil {
		out.Warnings = append(out.Warnings, err2.Error())
	}
	return out, nil
}

func (b *TesseractBackend) recognizePDF(ctx context.Context, doc Document) (Output, error) {
	path, cleanup, err := writeTempBytes(doc.Data, "pdf")
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: err}
	}
	defer cleanup()

	tmpDir, err := os.MkdirTemp("", "rx-pp-*")
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := b.runner.Run(ctx, b.cfg.Pdftoppm, "-r", strconv.Itoa(b.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))}
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if b.cfg.MaxPages > 0 && len(matches) > b.cfg.MaxPages {
		matches = matches[:b.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return Output{}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("pdftoppm produced no page images")}
	}

	var sb strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := b.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\f\n") // keep a clear page break marker
		}
		sb.WriteString(txt)
		warns = append(warns, w...)
	}

	text := Normalize(sb.String())
	if text == "" {
		return Output{Warnings: warns}, &RecognitionError{BackendID: b.ID(), Err: fmt.Errorf("ocr produced no text for any page")}
	}
	return Output{
		Text:      text,
		BackendID: b.ID(),
		Pages:     len(matches),
		Warnings:  warns,
	}, nil
}

func (b *TesseractBackend) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", b.cfg.TesseractLang}
	if b.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", b.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := b.runner.Run(ctx, b.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}

	// minor cleanup of obvious line noise
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}

// tesseractTSVConfidence runs tesseract in TSV mode and returns mean word conf in 0..1.
func (b *TesseractBackend) tesseractTSVConfidence(ctx context.Context, path string) (float32, []string, error) {
	args := []string{path, "stdout", "-l", b.cfg.TesseractLang}
	if b.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", b.cfg.TessdataDir)
	}
	// TSV output
	args = append(args, "tsv")

	out, errb, err := b.runner.Run(ctx, b.cfg.Tesseract, args...)
	if err != nil {
		return 0, []string{string(errb)}, fmt.Errorf("tesseract TSV: %w", err)
	}
	lines := strings.Split(string(out), "\n")
	// conf is column 11 of 12 (text is last); header line includes "conf"
	var sum, n float64
	for i, ln := range lines {
		if i == 0 || len(ln) == 0 {
			continue
		} // skip header
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil, nil
	}
	mean := sum / n // 0..100
	return float32(mean / 100.0), nil, nil
}
