package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/raporlabs/finrag/internal/core/domain"
)

// Title heuristic bounds, in runes.
const (
	titleMinLength = 10
	titleMaxLength = 100
)

// Reconcile merges the two extraction strategies' output for one page
// into a PageRecord. When both produced text the longer wins, with
// exact length ties resolved in favour of the layout strategy.
func Reconcile(pageNumber int, layoutText, streamText string) domain.PageRecord {
	layoutText = strings.TrimSpace(layoutText)
	streamText = strings.TrimSpace(streamText)

	record := domain.PageRecord{PageNumber: pageNumber}
	switch {
	case layoutText != "" && streamText != "":
		// Length is compared in runes so multi-byte Turkish characters
		// don't skew the winner.
		record.Text = layoutText
		if utf8.RuneCountInString(streamText) > utf8.RuneCountInString(layoutText) {
			record.Text = streamText
		}
		record.Confidence = domain.ConfidenceHigh
		record.Validation = domain.ValidationBothSources
	case layoutText != "":
		record.Text = layoutText
		record.Confidence = domain.ConfidenceMedium
		record.Validation = domain.ValidationLayoutOnly
	case streamText != "":
		record.Text = streamText
		record.Confidence = domain.ConfidenceMedium
		record.Validation = domain.ValidationStreamOnly
	default:
		record.Confidence = domain.ConfidenceLow
		record.Validation = domain.ValidationNoSource
	}

	record.Paragraphs = Paragraphs(record.Text)
	record.Title = DeriveTitle(record.Paragraphs, pageNumber)
	return record
}

// Paragraphs splits page text into its non-empty lines, in order.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DeriveTitle scans paragraphs for the first heading-shaped line:
// between 10 and 100 runes exclusive, starting with an uppercase
// letter, not ending with a period, not a bullet, not a table or
// figure caption, not purely numeric. Without a match the title is
// synthesized from the page number.
func DeriveTitle(paragraphs []string, pageNumber int) string {
	for _, p := range paragraphs {
		if isTitle(p) {
			return p
		}
	}
	return fmt.Sprintf("Page %d", pageNumber)
}

func isTitle(s string) bool {
	n := utf8.RuneCountInString(s)
	if n <= titleMinLength || n >= titleMaxLength {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return false
	}
	if strings.HasSuffix(s, ".") {
		return false
	}
	if strings.HasPrefix(s, "•") || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "*") {
		return false
	}
	// Table and figure captions are not headings.
	lower := strings.ToLower(s)
	if strings.Contains(lower, "tablo") || strings.Contains(lower, "grafik") {
		return false
	}
	return !purelyNumeric(s)
}

// purelyNumeric reports whether the string contains digits and
// digit-adjacent punctuation only.
func purelyNumeric(s string) bool {
	hasDigit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSpace(r), r == '.', r == ',', r == '%', r == '-', r == '/':
		default:
			return false
		}
	}
	return hasDigit
}
