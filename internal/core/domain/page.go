package domain

// Confidence grades how reliable an extracted page is.
type Confidence string

const (
	// ConfidenceHigh means both extraction strategies produced text.
	ConfidenceHigh Confidence = "high"

	// ConfidenceMedium means only one strategy produced text.
	ConfidenceMedium Confidence = "medium"

	// ConfidenceLow means neither strategy produced text.
	ConfidenceLow Confidence = "low"
)

// Validation records which extraction strategies contributed to a page.
type Validation string

const (
	// ValidationBothSources means both strategies agreed on having content.
	ValidationBothSources Validation = "both_sources"

	// ValidationLayoutOnly means only the layout-aware strategy produced text.
	ValidationLayoutOnly Validation = "layout_only"

	// ValidationStreamOnly means only the character-stream strategy produced text.
	ValidationStreamOnly Validation = "stream_only"

	// ValidationNoSource means no strategy produced text.
	ValidationNoSource Validation = "no_source"
)

// Table is a raw row grid extracted from a page.
type Table struct {
	// Rows holds the cell values, outer slice per row.
	Rows [][]string `json:"rows"`
}

// PageRecord is the reconciled result of consensus extraction for one page.
// It is created once during extraction and never mutated afterwards.
type PageRecord struct {
	// PageNumber is 1-based.
	PageNumber int `json:"page_number"`

	// Text is the reconciled full text of the page.
	Text string `json:"text"`

	// Paragraphs are the non-empty lines of Text, in order.
	Paragraphs []string `json:"paragraphs"`

	// Tables are the raw row grids found on the page, best effort.
	Tables []Table `json:"tables"`

	// Title is the derived heading, or a synthesized "Page N" default.
	Title string `json:"title"`

	// Confidence grades the consensus outcome.
	Confidence Confidence `json:"confidence"`

	// Validation records which strategies contributed.
	Validation Validation `json:"validation"`
}
