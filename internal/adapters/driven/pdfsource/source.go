// Package pdfsource implements the page source port over a pure-Go PDF
// parser. Two strategies expose the same document: a layout-aware read
// ordered by text rows, and a raw character-stream read. The parser
// panics on malformed content objects, so every decode is wrapped in a
// recover guard and surfaced as an error for that page only.
package pdfsource

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
)

// Ensure the adapter implements the ports.
var (
	_ driven.PageSourceOpener = (*Opener)(nil)
	_ driven.PageSource       = (*Source)(nil)
)

// cellGap is the horizontal distance, in PDF points, that separates
// two text fragments into different table cells.
const cellGap = 40.0

// minTableRows is the smallest run of aligned rows treated as a table.
const minTableRows = 2

// Opener opens PDF files as page sources.
type Opener struct{}

// NewOpener creates a PDF opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the PDF at path.
func (o *Opener) Open(path string) (driven.PageSource, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Source{file: f, reader: reader}, nil
}

// Source reads one open PDF document. The underlying reader decodes
// page content lazily and is not safe for concurrent use, so all page
// access is serialised.
type Source struct {
	mu     sync.Mutex
	file   *os.File
	reader *pdf.Reader
}

// PageCount returns the number of pages in the document.
func (s *Source) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reader.NumPage()
}

// LayoutText extracts page text row by row, preserving reading order.
func (s *Source) LayoutText(ctx context.Context, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var text string
	err := safely(func() error {
		p := s.reader.Page(page)
		if p.V.IsNull() {
			return nil
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return fmt.Errorf("page %d rows: %w", page, err)
		}

		var lines []string
		for _, row := range rows {
			if line := rowText(row); line != "" {
				lines = append(lines, line)
			}
		}
		text = strings.Join(lines, "\n")
		return nil
	})
	return text, err
}

// StreamText extracts page text from the raw character stream.
func (s *Source) StreamText(ctx context.Context, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var text string
	err := safely(func() error {
		p := s.reader.Page(page)
		if p.V.IsNull() {
			return nil
		}
		plain, err := p.GetPlainText(nil)
		if err != nil {
			return fmt.Errorf("page %d stream: %w", page, err)
		}
		text = plain
		return nil
	})
	return text, err
}

// Tables detects aligned multi-cell rows. Consecutive rows that split
// into two or more cells form one table; anything shorter than two
// rows is treated as ordinary text and dropped.
func (s *Source) Tables(ctx context.Context, page int) ([]domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var tables []domain.Table
	err := safely(func() error {
		p := s.reader.Page(page)
		if p.V.IsNull() {
			return nil
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return fmt.Errorf("page %d rows: %w", page, err)
		}

		var current [][]string
		flush := func() {
			if len(current) >= minTableRows {
				tables = append(tables, domain.Table{Rows: current})
			}
			current = nil
		}
		for _, row := range rows {
			cells := rowCells(row)
			if len(cells) >= 2 {
				current = append(current, cells)
				continue
			}
			flush()
		}
		flush()
		return nil
	})
	return tables, err
}

// Close releases the underlying file handle.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// rowText joins a row's fragments into one line.
func rowText(row *pdf.Row) string {
	var parts []string
	for _, t := range row.Content {
		if s := strings.TrimSpace(t.S); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// rowCells splits a row into cells at large horizontal gaps.
func rowCells(row *pdf.Row) []string {
	var cells []string
	var cell strings.Builder
	prevEnd := -1.0
	for _, t := range row.Content {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}
		if prevEnd >= 0 && t.X-prevEnd > cellGap {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		} else if cell.Len() > 0 {
			cell.WriteString(" ")
		}
		cell.WriteString(s)
		prevEnd = t.X + t.W
	}
	if cell.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cell.String()))
	}
	return cells
}

// safely converts parser panics into errors.
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()
	return fn()
}
