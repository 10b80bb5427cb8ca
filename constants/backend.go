package constants

// Backend identifiers, stable strings recorded as extraction provenance.
// Declaration order is the fixed cost-ascending invocation order: the PDF
// text layer is free, local OCR costs CPU, the vision API costs money.
const (
	BackendPDFText      = "pdf-text"
	BackendTesseract    = "tesseract"
	BackendGeminiVision = "gemini-vision"
)
