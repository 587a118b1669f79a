// Package ocr proof-reads generated reports with Google Cloud Vision.
//
// A rendered PDF is sent inline to the Vision document text detector and
// the recognized text of the first pages is checked for the report title
// and the "Halaman 1 dari N" footer. A report that passes is legible when
// printed; one that fails usually lost its fonts or overflowed its margins.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//
// Cloud Vision API Limitations:
//   - Maximum file size: 20MB for synchronous processing
//   - Maximum pages: 5 pages per synchronous request
package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Extractor recognizes the text of a PDF document.
type Extractor interface {
	// Extract returns the text of the first pages of pdf.
	Extract(ctx context.Context, pdf []byte) (*Result, error)
}

// Result contains the recognized text with metadata.
type Result struct {
	// Text is the recognized text of every processed page, in reading order.
	Text string `json:"text"`

	// Pages holds the text of each processed page.
	Pages []string `json:"pages"`

	// Confidence is the average block confidence (0.0 to 1.0).
	Confidence float32 `json:"confidence"`

	// LanguageCodes are the languages Vision detected.
	LanguageCodes []string `json:"language_codes,omitempty"`

	ProcessedAt        time.Time     `json:"processed_at"`
	ProcessingDuration time.Duration `json:"processing_duration"`
}

// Proof is the outcome of checking one report.
type Proof struct {
	Title       string   `json:"title"`
	TitleFound  bool     `json:"title_found"`
	Footer      string   `json:"footer"`
	FooterFound bool     `json:"footer_found"`
	Confidence  float32  `json:"confidence"`
	Missing     []string `json:"missing,omitempty"`
}

// OK reports whether both the title and the first page footer were read back.
func (p Proof) OK() bool {
	return p.TitleFound && p.FooterFound
}

// FirstFooter is the footer printed on page one of a pages-long report.
func FirstFooter(pages int) string {
	return fmt.Sprintf("Halaman 1 dari %d", pages)
}

// Verify checks the recognized text for title and the page one footer.
// Matching ignores case and collapses whitespace, since OCR breaks lines
// wherever the layout does.
func Verify(result *Result, title string, pages int) (Proof, error) {
	const op = "Verify"

	footer := FirstFooter(pages)
	proof := Proof{Title: title, Footer: footer}
	if result == nil {
		return proof, WrapOCRError(op, ErrEmptyDocument, "no OCR result")
	}
	proof.Confidence = result.Confidence

	// The footer is on page one; fall back to the full text when Vision
	// returned no per-page split.
	first := result.Text
	if len(result.Pages) > 0 {
		first = result.Pages[0]
	}

	haystack := normalize(result.Text)
	proof.TitleFound = strings.Contains(haystack, normalize(title))
	proof.FooterFound = strings.Contains(normalize(first)+" ", normalize(footer)+" ")

	if !proof.TitleFound {
		proof.Missing = append(proof.Missing, title)
	}
	if !proof.FooterFound {
		proof.Missing = append(proof.Missing, footer)
	}
	if !proof.OK() {
		return proof, NewOCRError(op, ErrProofMismatch, "missing: "+strings.Join(proof.Missing, ", "))
	}
	return proof, nil
}

func normalize(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace), " ")
}
