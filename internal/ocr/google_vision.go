package ocr

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const (
	// MaxFileSizeBytes is the maximum file size for synchronous processing (20MB)
	MaxFileSizeBytes = 20 * 1024 * 1024

	// MaxPagesSync is the maximum number of pages for synchronous processing
	MaxPagesSync = 5

	// DefaultProofPages is how many leading pages a proof reads.
	DefaultProofPages = 2
)

// VisionExtractor implements Extractor using Google Cloud Vision API.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
	pages  int
}

// NewVisionExtractor creates an extractor with credentials from environment.
// It expects either GOOGLE_CREDENTIALS JSON or a GOOGLE_APPLICATION_CREDENTIALS path.
func NewVisionExtractor(ctx context.Context, pages int) (*VisionExtractor, error) {
	const op = "NewVisionExtractor"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return NewVisionExtractorWithClient(client, pages), nil
}

// NewVisionExtractorWithClient wraps an explicit client.
func NewVisionExtractorWithClient(client *vision.ImageAnnotatorClient, pages int) *VisionExtractor {
	if pages <= 0 {
		pages = DefaultProofPages
	}
	return &VisionExtractor{client: client, pages: min(pages, MaxPagesSync)}
}

// Extract runs document text detection over the leading pages of pdf.
func (v *VisionExtractor) Extract(ctx context.Context, pdf []byte) (*Result, error) {
	const op = "Extract"
	startTime := time.Now()

	if err := CheckPDF(pdf); err != nil {
		return nil, WrapOCRError(op, err, fmt.Sprintf("%d bytes", len(pdf)))
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  pdf,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				Pages: pageList(v.pages),
			},
		},
	}

	resp, err := v.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, WrapOCRError(op, ctx.Err(), "Vision API call interrupted")
		}
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrOCRFailed, "no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", fileResp.Error.Message))
	}

	result, err := collectText(fileResp)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to process Vision API response")
	}

	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)
	return result, nil
}

// Close closes the underlying Vision client.
func (v *VisionExtractor) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

// CheckPDF rejects payloads Vision cannot take inline.
func CheckPDF(pdf []byte) error {
	if len(pdf) > MaxFileSizeBytes {
		return ErrPDFTooLarge
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		return ErrInvalidPDF
	}
	return nil
}

func pageList(n int) []int32 {
	pages := make([]int32, n)
	for i := range pages {
		pages[i] = int32(i + 1)
	}
	return pages
}

// collectText flattens a file response into per-page text, averaging
// block confidence and gathering detected languages.
func collectText(fileResp *visionpb.AnnotateFileResponse) (*Result, error) {
	if len(fileResp.Responses) == 0 {
		return nil, ErrEmptyDocument
	}

	result := &Result{}
	var confidenceSum float32
	var confidenceCount int
	languages := make(map[string]bool)

	for pageIdx, page := range fileResp.Responses {
		if page.Error != nil {
			return nil, fmt.Errorf("error processing page %d: %s", pageIdx+1, page.Error.Message)
		}
		annotation := page.FullTextAnnotation
		if annotation == nil {
			result.Pages = append(result.Pages, "")
			continue
		}
		result.Pages = append(result.Pages, annotation.Text)

		for _, p := range annotation.Pages {
			for _, block := range p.Blocks {
				if block.Confidence > 0 {
					confidenceSum += block.Confidence
					confidenceCount++
				}
			}
			if p.Property != nil {
				for _, lang := range p.Property.DetectedLanguages {
					if lang.LanguageCode != "" {
						languages[lang.LanguageCode] = true
					}
				}
			}
		}
	}

	result.Text = strings.Join(result.Pages, "\n\n")
	if strings.TrimSpace(result.Text) == "" {
		return nil, ErrEmptyDocument
	}
	if confidenceCount > 0 {
		result.Confidence = confidenceSum / float32(confidenceCount)
	}
	for lang := range languages {
		result.LanguageCodes = append(result.LanguageCodes, lang)
	}
	slices.Sort(result.LanguageCodes)
	return result, nil
}

var pageObject = regexp.MustCompile(`/Type\s*/Page[^s]`)

// CountPages counts the page dictionaries of a PDF that keeps them outside
// object streams, as fpdf does. It returns 0 when none are found.
func CountPages(pdf []byte) int {
	return len(pageObject.FindAll(pdf, -1))
}
