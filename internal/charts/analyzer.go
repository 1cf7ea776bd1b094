package charts

import (
	"context"
	"image"
	"strings"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
	"github.com/raporlabs/finrag/internal/logger"
	"github.com/raporlabs/finrag/internal/vision"
)

// recordConfidence is the fixed confidence stamped on accepted chart
// records; the acceptance threshold already rejected weak detections.
const recordConfidence = 0.8

// ocrBinarizeLevel is the threshold applied before handing the image
// to the OCR engine.
const ocrBinarizeLevel = 127

// Analyzer classifies page images and extracts their numeric content.
// OCR is best effort: a record with an empty parse is still a valid
// detection.
type Analyzer struct {
	ocr driven.OCREngine
}

// NewAnalyzer wires a classifier to an OCR engine. The engine may be
// nil, in which case records carry classification only.
func NewAnalyzer(ocr driven.OCREngine) *Analyzer {
	return &Analyzer{ocr: ocr}
}

// Analyze inspects one rendered page. It returns (nil, nil) when the
// page contains no recognisable chart; OCR failures degrade to a
// record without parsed text rather than an error.
func (a *Analyzer) Analyze(ctx context.Context, img image.Image, pageNumber int) (*domain.ChartRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chartType, score, ok := Classify(ExtractFeatures(img))
	if !ok {
		logger.Debug("page %d: no chart (best score %.2f)", pageNumber, score)
		return nil, nil
	}
	logger.Debug("page %d: classified %s chart (score %.2f)", pageNumber, chartType, score)

	record := &domain.ChartRecord{
		ChartType:  chartType,
		Confidence: recordConfidence,
		SourcePage: pageNumber,
	}

	lines := a.ocrLines(ctx, img, pageNumber)
	record.ExtractedText = lines
	parsed := ParseLines(chartType, lines)
	record.Title = parsed.Title
	record.XAxisLabel = parsed.XAxisLabel
	record.YAxisLabel = parsed.YAxisLabel
	record.DataPoints = parsed.DataPoints
	return record, nil
}

func (a *Analyzer) ocrLines(ctx context.Context, img image.Image, pageNumber int) []string {
	if a.ocr == nil {
		return nil
	}
	lines, err := a.ocr.Lines(ctx, Binarized(img))
	if err != nil {
		logger.Warn("page %d: OCR failed, keeping classification only: %v", pageNumber, err)
		return nil
	}
	trimmed := make([]string, 0, len(lines))
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return trimmed
}

// Binarized prepares a page image for OCR.
func Binarized(img image.Image) image.Image {
	return vision.Binarize(img, ocrBinarizeLevel)
}
