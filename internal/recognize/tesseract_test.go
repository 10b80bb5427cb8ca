package recognize

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelog/receipt-extract/constants"
	"github.com/carelog/receipt-extract/internal/common"
)

// tinyPNG renders a small valid PNG for the preprocessing path.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageDoc(t *testing.T) Document {
	return Document{Data: tinyPNG(t), Format: constants.IMAGE, Name: "scan.png"}
}

func TestTesseractRecognizeImage(t *testing.T) {
	runner := newStubRunner()
	runner.outputs["tesseract"] = "Adler Apotheke\nGesamt  45,00 EUR"

	b := NewTesseractBackend(common.OCRConfig{TesseractLang: "deu"}, nil)
	b.runner = runner

	out, err := b.Recognize(context.Background(), imageDoc(t))
	require.NoError(t, err)

	assert.Equal(t, constants.BackendTesseract, out.BackendID)
	assert.Equal(t, 1, out.Pages)
	// Normalization collapses the doubled space.
	assert.Contains(t, out.Text, "Gesamt 45,00 EUR")

	// First call plain OCR, second call TSV mode.
	require.Equal(t, 2, runner.countCalls("tesseract"))
	first := runner.argsFor("tesseract", 0)
	assert.Equal(t, "stdout", first[1])
	assert.Contains(t, first, "-l")
	assert.Contains(t, first, "deu")
	second := runner.argsFor("tesseract", 1)
	assert.Equal(t, "tsv", second[len(second)-1])
}

func TestTesseractTSVConfidenceMean(t *testing.T) {
	runner := newStubRunner()
	runner.outputs["tesseract"] = tsvFor(80, 90, 100)

	b := NewTesseractBackend(common.OCRConfig{}, nil)
	b.runner = runner

	conf, warns, err := b.tesseractTSVConfidence(context.Background(), "page.png")
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.InDelta(t, 0.9, float64(conf), 1e-6)
}

func TestTesseractTSVConfidenceSkipsNonWordRows(t *testing.T) {
	runner := newStubRunner()
	// A "-1" conf row (layout element, not a word) must not drag the mean.
	runner.outputs["tesseract"] = tsvFor(-1, 60, 80)

	b := NewTesseractBackend(common.OCRConfig{}, nil)
	b.runner = runner

	conf, _, err := b.tesseractTSVConfidence(context.Background(), "page.png")
	require.NoError(t, err)
	assert.InDelta(t, 0.7, float64(conf), 1e-6)
}

func TestTesseractUnavailableWhenBinaryMissing(t *testing.T) {
	runner := newStubRunner()
	runner.missing["tesseract"] = true

	b := NewTesseractBackend(common.OCRConfig{}, nil)
	b.runner = runner

	_, err := b.Recognize(context.Background(), imageDoc(t))
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, runner.calls)
}

func TestTesseractPDFNeedsPdftoppm(t *testing.T) {
	runner := newStubRunner()
	runner.missing["pdftoppm"] = true

	b := NewTesseractBackend(common.OCRConfig{}, nil)
	b.runner = runner

	_, err := b.Recognize(context.Background(), Document{Data: []byte("%PDF-"), Format: constants.PDF})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestTesseractPDFNoPagesRendered(t *testing.T) {
	runner := newStubRunner()
	// pdftoppm "succeeds" but the stub renders no page images.
	runner.outputs["pdftoppm"] = ""

	b := NewTesseractBackend(common.OCRConfig{}, nil)
	b.runner = runner

	_, err := b.Recognize(context.Background(), Document{Data: []byte("%PDF-"), Format: constants.PDF})
	var recErr *RecognitionError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, constants.BackendTesseract, recErr.BackendID)
}
