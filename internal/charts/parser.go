package charts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/raporlabs/finrag/internal/core/domain"
)

var (
	numberPattern  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// Axis keyword vocabularies, Turkish first because the source
// documents are Turkish central bank and statistics office reports.
var (
	xAxisKeywords = []string{"x", "horizontal", "yatay", "zaman", "time"}
	yAxisKeywords = []string{"y", "vertical", "dikey", "değer", "value", "miktar"}
)

// minTitleLength is the shortest OCR line accepted as a chart title.
const minTitleLength = 5

// ParsedText is the labelling and numeric content recovered from the
// OCR lines of a chart image.
type ParsedText struct {
	Title      string
	XAxisLabel string
	YAxisLabel string
	DataPoints []domain.DataPoint
}

// ParseLines interprets OCR output for a chart of the given type. The
// title is the first substantial line; axis labels are the first lines
// matching the keyword vocabularies; numbers are parsed per chart type.
func ParseLines(chartType domain.ChartType, lines []string) ParsedText {
	var p ParsedText
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if p.Title == "" && utf8.RuneCountInString(line) > minTitleLength {
			p.Title = line
		}
		lower := strings.ToLower(line)
		if p.XAxisLabel == "" && containsAny(lower, xAxisKeywords) {
			p.XAxisLabel = line
		}
		if p.YAxisLabel == "" && containsAny(lower, yAxisKeywords) {
			p.YAxisLabel = line
		}
	}

	switch chartType {
	case domain.ChartTypeBar:
		p.DataPoints = parseBars(lines)
	case domain.ChartTypeLine, domain.ChartTypeScatter:
		p.DataPoints = parseSeries(lines)
	case domain.ChartTypePie:
		p.DataPoints = parseSegments(lines)
	}
	return p
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// parseBars maps every number found, in reading order, to a bar with a
// synthesized category label.
func parseBars(lines []string) []domain.DataPoint {
	var points []domain.DataPoint
	for _, v := range allNumbers(lines) {
		points = append(points, domain.BarPoint{
			Category: fmt.Sprintf("Bar %d", len(points)+1),
			Value:    v,
		})
	}
	return points
}

// parseSeries pairs consecutive numbers as (x, y) coordinates. A
// trailing unpaired number is dropped.
func parseSeries(lines []string) []domain.DataPoint {
	nums := allNumbers(lines)
	var points []domain.DataPoint
	for i := 0; i+1 < len(nums); i += 2 {
		points = append(points, domain.SeriesPoint{X: nums[i], Y: nums[i+1]})
	}
	return points
}

// parseSegments reads "label 42%" style lines; the label is the line
// with the percentage removed, or a synthesized segment name.
func parseSegments(lines []string) []domain.DataPoint {
	var points []domain.DataPoint
	for _, line := range lines {
		m := percentPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		label := strings.TrimSpace(strings.Replace(line, m[0], "", 1))
		if label == "" {
			label = fmt.Sprintf("Segment %d", len(points)+1)
		}
		points = append(points, domain.PieSegment{Label: label, Percentage: value})
	}
	return points
}

func allNumbers(lines []string) []float64 {
	var nums []float64
	for _, line := range lines {
		for _, m := range numberPattern.FindAllString(line, -1) {
			v, err := strconv.ParseFloat(m, 64)
			if err != nil {
				continue
			}
			nums = append(nums, v)
		}
	}
	return nums
}
