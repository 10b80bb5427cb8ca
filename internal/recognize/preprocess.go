package recognize

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// minOCRHeight is the pixel height below which small scans get upscaled
// before OCR; tesseract degrades badly on low-resolution photos.
const minOCRHeight = 800

// preprocessImage applies light enhancement (grayscale, upscale) and writes
// the result to a temp PNG. Falls back to the raw bytes when decoding fails,
// so exotic-but-tesseract-readable formats still get a chance.
func preprocessImage(data []byte) (path string, warnings []string, cleanup func(), err error) {
	img, decErr := imaging.Decode(bytes.NewReader(data))
	if decErr != nil {
		warnings = append(warnings, fmt.Sprintf("image preprocessing skipped: %v", decErr))
		p, c, werr := writeTempBytes(data, "img")
		return p, warnings, c, werr
	}

	gray := imaging.Grayscale(img)
	if gray.Bounds().Dy() < minOCRHeight {
		gray = imaging.Resize(gray, 0, 1200, imaging.Lanczos)
	}

	f, err := os.CreateTemp("", "rx-ocr-*.png")
	if err != nil {
		return "", warnings, nil, err
	}
	cleanup = func() { _ = os.Remove(f.Name()) }
	_ = f.Close()
	if err := imaging.Save(gray, f.Name()); err != nil {
		cleanup()
		return "", warnings, nil, fmt.Errorf("save preprocessed image: %w", err)
	}
	return f.Name(), warnings, cleanup, nil
}

func writeTempBytes(data []byte, ext string) (string, func(), error) {
	f, err := os.CreateTemp("", "rx-doc-*."+ext)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return f.Name(), cleanup, nil
}
