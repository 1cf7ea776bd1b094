package domain

import "time"

// DocumentInfo identifies an analysed document.
type DocumentInfo struct {
	Filename   string    `json:"filename"`
	TotalPages int       `json:"total_pages"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// ExtractionSummary aggregates page-level extraction outcomes.
type ExtractionSummary struct {
	TotalPages    int                `json:"total_pages"`
	PagesWithText int                `json:"pages_with_text"`
	TableCount    int                `json:"table_count"`
	ByConfidence  map[Confidence]int `json:"by_confidence"`
}

// PDFContent holds the reconciled pages of a document.
type PDFContent struct {
	Pages   []PageRecord      `json:"pages"`
	Summary ExtractionSummary `json:"summary"`
}

// ChartSummary aggregates chart-analysis outcomes.
type ChartSummary struct {
	TotalCharts          int               `json:"total_charts"`
	ByType               map[ChartType]int `json:"chart_types"`
	AnalyzedImages       int               `json:"analyzed_images"`
	SuccessfulDetections int               `json:"successful_detections"`
}

// ChartAnalysis holds the charts detected across a document's pages.
type ChartAnalysis struct {
	Charts  []ChartRecord `json:"charts"`
	Summary ChartSummary  `json:"summary"`
}

// DocumentAnalysis is the persisted analysis artifact for one document.
type DocumentAnalysis struct {
	DocumentInfo  DocumentInfo  `json:"document_info"`
	PDFContent    PDFContent    `json:"pdf_content"`
	ChartAnalysis ChartAnalysis `json:"chart_analysis"`
}

// Summarize recomputes the extraction and chart summaries from the
// pages and charts currently held by the analysis.
func (a *DocumentAnalysis) Summarize() {
	ext := ExtractionSummary{
		TotalPages:   len(a.PDFContent.Pages),
		ByConfidence: make(map[Confidence]int),
	}
	for _, p := range a.PDFContent.Pages {
		if p.Text != "" {
			ext.PagesWithText++
		}
		ext.TableCount += len(p.Tables)
		ext.ByConfidence[p.Confidence]++
	}
	a.PDFContent.Summary = ext

	cs := ChartSummary{
		TotalCharts:          len(a.ChartAnalysis.Charts),
		ByType:               make(map[ChartType]int),
		SuccessfulDetections: len(a.ChartAnalysis.Charts),
	}
	for _, c := range a.ChartAnalysis.Charts {
		cs.ByType[c.ChartType]++
	}
	cs.AnalyzedImages = a.ChartAnalysis.Summary.AnalyzedImages
	a.ChartAnalysis.Summary = cs
}
