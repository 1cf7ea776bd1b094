package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raporlabs/finrag/internal/core/domain"
)

func TestParseLines_TitleIsFirstSubstantialLine(t *testing.T) {
	p := ParseLines(domain.ChartTypeBar, []string{"ab", "Enflasyon Oranları", "sonra gelen"})

	assert.Equal(t, "Enflasyon Oranları", p.Title)
}

func TestParseLines_AxisKeywords(t *testing.T) {
	p := ParseLines(domain.ChartTypeLine, []string{
		"Tüketim Harcamaları",
		"Zaman (2020-2024)",
		"Değer (Milyar TL)",
	})

	assert.Equal(t, "Zaman (2020-2024)", p.XAxisLabel)
	assert.Equal(t, "Değer (Milyar TL)", p.YAxisLabel)
}

func TestParseLines_BarValues(t *testing.T) {
	p := ParseLines(domain.ChartTypeBar, []string{"120 340", "77.5"})

	require.Len(t, p.DataPoints, 3)
	assert.Equal(t, domain.BarPoint{Category: "Bar 1", Value: 120}, p.DataPoints[0])
	assert.Equal(t, domain.BarPoint{Category: "Bar 2", Value: 340}, p.DataPoints[1])
	assert.Equal(t, domain.BarPoint{Category: "Bar 3", Value: 77.5}, p.DataPoints[2])
}

func TestParseLines_SeriesPairsConsecutiveNumbers(t *testing.T) {
	p := ParseLines(domain.ChartTypeLine, []string{"1 10", "2 20", "3"})

	require.Len(t, p.DataPoints, 2)
	assert.Equal(t, domain.SeriesPoint{X: 1, Y: 10}, p.DataPoints[0])
	assert.Equal(t, domain.SeriesPoint{X: 2, Y: 20}, p.DataPoints[1])
}

func TestParseLines_ScatterUsesSeriesPairing(t *testing.T) {
	p := ParseLines(domain.ChartTypeScatter, []string{"5 50 6 60"})

	require.Len(t, p.DataPoints, 2)
	assert.Equal(t, domain.SeriesPoint{X: 5, Y: 50}, p.DataPoints[0])
}

func TestParseLines_PieSegments(t *testing.T) {
	p := ParseLines(domain.ChartTypePie, []string{
		"Konut 45%",
		"Gıda 30 %",
		"25%",
		"yüzdesiz satır",
	})

	require.Len(t, p.DataPoints, 3)
	assert.Equal(t, domain.PieSegment{Label: "Konut", Percentage: 45}, p.DataPoints[0])
	assert.Equal(t, domain.PieSegment{Label: "Gıda", Percentage: 30}, p.DataPoints[1])
	assert.Equal(t, domain.PieSegment{Label: "Segment 3", Percentage: 25}, p.DataPoints[2])
}

func TestParseLines_EmptyInput(t *testing.T) {
	p := ParseLines(domain.ChartTypeBar, nil)

	assert.Empty(t, p.Title)
	assert.Empty(t, p.DataPoints)
}

func TestParseLines_DecimalNumbers(t *testing.T) {
	p := ParseLines(domain.ChartTypeLine, []string{"1.5 42.25 2.5 38.75"})

	require.Len(t, p.DataPoints, 2)
	assert.Equal(t, domain.SeriesPoint{X: 1.5, Y: 42.25}, p.DataPoints[0])
	assert.Equal(t, domain.SeriesPoint{X: 2.5, Y: 38.75}, p.DataPoints[1])
}
