package domain

import (
	"encoding/json"
	"fmt"
)

// ChartType is the structural class a raster image was recognised as.
type ChartType string

const (
	ChartTypeBar     ChartType = "bar"
	ChartTypeLine    ChartType = "line"
	ChartTypePie     ChartType = "pie"
	ChartTypeScatter ChartType = "scatter"
)

// DataPoint is one numeric record parsed from a chart. The concrete type
// depends on the chart type: BarPoint, SeriesPoint or PieSegment.
type DataPoint interface {
	pointKind() string
}

// BarPoint is one bar of a bar chart.
type BarPoint struct {
	// Category is the synthesized label ("Bar 1", "Bar 2", ...).
	Category string `json:"category"`

	// Value is the numeric value read from OCR text.
	Value float64 `json:"value"`
}

func (BarPoint) pointKind() string { return "bar" }

// SeriesPoint is one (x, y) coordinate of a line chart or scatter plot.
type SeriesPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (SeriesPoint) pointKind() string { return "series" }

// PieSegment is one labelled slice of a pie chart.
type PieSegment struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

func (PieSegment) pointKind() string { return "pie" }

// ChartRecord is the result of analysing one page raster image.
// It is never mutated after creation.
type ChartRecord struct {
	// ChartType is the accepted classification.
	ChartType ChartType `json:"chart_type"`

	// Title is the first substantial OCR line, empty if none.
	Title string `json:"title,omitempty"`

	// XAxisLabel and YAxisLabel are the first OCR lines matching the
	// axis keyword vocabularies, empty if none.
	XAxisLabel string `json:"x_axis_label,omitempty"`
	YAxisLabel string `json:"y_axis_label,omitempty"`

	// DataPoints are the parsed numeric records, in order of discovery.
	DataPoints []DataPoint `json:"data_points"`

	// Confidence is fixed at 0.8 once a type is accepted; the
	// classification threshold already filtered weak detections.
	Confidence float64 `json:"confidence"`

	// ExtractedText holds the raw OCR lines.
	ExtractedText []string `json:"extracted_text"`

	// SourcePage is a back reference to the page the image was rendered
	// from. Lookup only, the chart does not own the page.
	SourcePage int `json:"source_page"`
}

// taggedPoint is the wire form of a DataPoint with an explicit kind tag.
type taggedPoint struct {
	Kind string `json:"kind"`

	Category   string  `json:"category,omitempty"`
	Value      float64 `json:"value,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Label      string  `json:"label,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
}

// MarshalJSON encodes the record with kind-tagged data points so the
// analysis artifact round-trips without losing the point variant.
func (c ChartRecord) MarshalJSON() ([]byte, error) {
	type alias ChartRecord
	tagged := make([]taggedPoint, 0, len(c.DataPoints))
	for _, p := range c.DataPoints {
		switch pt := p.(type) {
		case BarPoint:
			tagged = append(tagged, taggedPoint{Kind: pt.pointKind(), Category: pt.Category, Value: pt.Value})
		case SeriesPoint:
			tagged = append(tagged, taggedPoint{Kind: pt.pointKind(), X: pt.X, Y: pt.Y})
		case PieSegment:
			tagged = append(tagged, taggedPoint{Kind: pt.pointKind(), Label: pt.Label, Percentage: pt.Percentage})
		default:
			return nil, fmt.Errorf("marshal chart record: unknown data point %T", p)
		}
	}

	return json.Marshal(struct {
		alias
		DataPoints []taggedPoint `json:"data_points"`
	}{alias: alias(c), DataPoints: tagged})
}

// UnmarshalJSON decodes kind-tagged data points back into their variants.
func (c *ChartRecord) UnmarshalJSON(data []byte) error {
	type alias ChartRecord
	var raw struct {
		alias
		DataPoints []taggedPoint `json:"data_points"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = ChartRecord(raw.alias)
	c.DataPoints = make([]DataPoint, 0, len(raw.DataPoints))
	for _, t := range raw.DataPoints {
		switch t.Kind {
		case "bar":
			c.DataPoints = append(c.DataPoints, BarPoint{Category: t.Category, Value: t.Value})
		case "series":
			c.DataPoints = append(c.DataPoints, SeriesPoint{X: t.X, Y: t.Y})
		case "pie":
			c.DataPoints = append(c.DataPoints, PieSegment{Label: t.Label, Percentage: t.Percentage})
		default:
			return fmt.Errorf("unmarshal chart record: unknown data point kind %q", t.Kind)
		}
	}
	return nil
}
