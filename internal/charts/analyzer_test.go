package charts

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raporlabs/finrag/internal/core/domain"
)

type fakeOCR struct {
	lines []string
	err   error
}

func (f *fakeOCR) Lines(_ context.Context, _ image.Image) ([]string, error) {
	return f.lines, f.err
}

// barChartImage draws ten dark bars on a white canvas, enough
// rectangles for an unambiguous bar classification.
func barChartImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 500, 250))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	heights := []int{80, 120, 95, 150, 110, 70, 130, 100, 140, 85}
	for i, h := range heights {
		x := 20 + i*47
		bar := image.Rect(x, 220-h, x+25, 220)
		draw.Draw(img, bar, image.NewUniform(color.Gray{Y: 40}), image.Point{}, draw.Src)
	}
	return img
}

func blankPageImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestAnalyzer_Analyze_BarChart(t *testing.T) {
	ocr := &fakeOCR{lines: []string{"Aylık Satışlar", "  100 200 300  ", ""}}
	a := NewAnalyzer(ocr)

	record, err := a.Analyze(context.Background(), barChartImage(), 7)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.ChartTypeBar, record.ChartType)
	assert.Equal(t, 0.8, record.Confidence)
	assert.Equal(t, 7, record.SourcePage)
	assert.Equal(t, "Aylık Satışlar", record.Title)
	assert.Equal(t, []string{"Aylık Satışlar", "100 200 300"}, record.ExtractedText)
	require.Len(t, record.DataPoints, 3)
	assert.Equal(t, domain.BarPoint{Category: "Bar 1", Value: 100}, record.DataPoints[0])
}

func TestAnalyzer_Analyze_NoChartOnPage(t *testing.T) {
	a := NewAnalyzer(&fakeOCR{})

	record, err := a.Analyze(context.Background(), blankPageImage(), 1)

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestAnalyzer_Analyze_OCRFailureKeepsClassification(t *testing.T) {
	a := NewAnalyzer(&fakeOCR{err: errors.New("tesseract not installed")})

	record, err := a.Analyze(context.Background(), barChartImage(), 3)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.ChartTypeBar, record.ChartType)
	assert.Empty(t, record.ExtractedText)
	assert.Empty(t, record.DataPoints)
}

func TestAnalyzer_Analyze_NilOCREngine(t *testing.T) {
	a := NewAnalyzer(nil)

	record, err := a.Analyze(context.Background(), barChartImage(), 2)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Empty(t, record.ExtractedText)
}

func TestAnalyzer_Analyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := NewAnalyzer(&fakeOCR{})

	_, err := a.Analyze(ctx, barChartImage(), 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractFeatures_BarImage(t *testing.T) {
	f := ExtractFeatures(barChartImage())

	assert.GreaterOrEqual(t, f.Rectangles, 8)
}
