package vectorstore

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raporlabs/finrag/internal/chunker"
	"github.com/raporlabs/finrag/internal/core/domain"
)

// chunksFromAnalysis flattens a document analysis into retrieval units:
// page text split by the chunker, tables serialised as JSON row grids,
// and charts rendered as pipe-separated descriptions.
func chunksFromAnalysis(analysis *domain.DocumentAnalysis, splitter *chunker.Chunker) []domain.DocumentChunk {
	source := analysis.DocumentInfo.Filename
	var out []domain.DocumentChunk

	for _, page := range analysis.PDFContent.Pages {
		for _, text := range splitter.Split(page.Text) {
			out = append(out, domain.DocumentChunk{
				ID:         chunker.ChunkID(source, page.PageNumber, text),
				Text:       text,
				Source:     source,
				PageNumber: page.PageNumber,
				ChunkType:  domain.ChunkTypeText,
				Metadata: map[string]string{
					"title":      page.Title,
					"confidence": string(page.Confidence),
				},
			})
		}

		for i, table := range page.Tables {
			text := tableText(table)
			if text == "" {
				continue
			}
			out = append(out, domain.DocumentChunk{
				ID:         chunker.ChunkID(source, page.PageNumber, text),
				Text:       text,
				Source:     source,
				PageNumber: page.PageNumber,
				ChunkType:  domain.ChunkTypeTable,
				Metadata: map[string]string{
					"table_index": fmt.Sprintf("%d", i),
				},
			})
		}
	}

	for _, chart := range analysis.ChartAnalysis.Charts {
		text := chartText(chart)
		if text == "" {
			continue
		}
		out = append(out, domain.DocumentChunk{
			ID:         chunker.ChunkID(source, chart.SourcePage, text),
			Text:       text,
			Source:     source,
			PageNumber: chart.SourcePage,
			ChunkType:  domain.ChunkTypeChart,
			Metadata: map[string]string{
				"chart_type": string(chart.ChartType),
			},
		})
	}
	return out
}

// tableText serialises a table as its JSON row grid.
func tableText(table domain.Table) string {
	if len(table.Rows) == 0 {
		return ""
	}
	data, err := json.Marshal(table.Rows)
	if err != nil {
		return ""
	}
	return string(data)
}

// chartText renders a chart record as a searchable description. Empty
// fields are omitted; a chart with neither labels nor data yields only
// its type marker.
func chartText(chart domain.ChartRecord) string {
	parts := []string{fmt.Sprintf("Grafik (%s)", chart.ChartType)}
	if chart.Title != "" {
		parts = append(parts, "Başlık: "+chart.Title)
	}
	if chart.XAxisLabel != "" {
		parts = append(parts, "X Ekseni: "+chart.XAxisLabel)
	}
	if chart.YAxisLabel != "" {
		parts = append(parts, "Y Ekseni: "+chart.YAxisLabel)
	}
	if len(chart.DataPoints) > 0 {
		parts = append(parts, "Veri: "+strings.Join(pointStrings(chart.DataPoints), ", "))
	}
	if len(chart.ExtractedText) > 0 {
		parts = append(parts, "OCR: "+strings.Join(chart.ExtractedText, " "))
	}
	return strings.Join(parts, " | ")
}

func pointStrings(points []domain.DataPoint) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		switch pt := p.(type) {
		case domain.BarPoint:
			out = append(out, fmt.Sprintf("%s=%g", pt.Category, pt.Value))
		case domain.SeriesPoint:
			out = append(out, fmt.Sprintf("(%g, %g)", pt.X, pt.Y))
		case domain.PieSegment:
			out = append(out, fmt.Sprintf("%s=%g%%", pt.Label, pt.Percentage))
		}
	}
	return out
}
