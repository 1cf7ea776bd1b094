package services

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
	"github.com/raporlabs/finrag/internal/core/ports/driving"
	"github.com/raporlabs/finrag/internal/logger"
	"github.com/raporlabs/finrag/internal/workerpool"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// Rendering policy: high resolution first, a cheaper fallback on
// failure, then a blank US-Letter placeholder so chart analysis always
// receives an image per page.
const (
	renderDPI         = 300
	renderFallbackDPI = 150

	placeholderWidth  = 612
	placeholderHeight = 792
)

// IngestService runs the full pipeline for one PDF: consensus text
// extraction, best-effort table extraction, page rendering, chart
// analysis, then chunking, indexing and persistence.
type IngestService struct {
	opener    driven.PageSourceOpener
	renderer  driven.PageRenderer
	analyzer  driven.ChartAnalyzer
	store     driven.VectorStore
	artifacts driven.ArtifactStore
	pool      *workerpool.Pool
}

// NewIngestService creates the ingest pipeline. The renderer and
// analyzer are optional (can be nil); without them pages are extracted
// and indexed but no chart analysis happens.
func NewIngestService(
	opener driven.PageSourceOpener,
	renderer driven.PageRenderer,
	analyzer driven.ChartAnalyzer,
	store driven.VectorStore,
	artifacts driven.ArtifactStore,
	pool *workerpool.Pool,
) *IngestService {
	if pool == nil {
		pool = workerpool.New(workerpool.DefaultWorkers, workerpool.DefaultTaskTimeout)
	}
	return &IngestService{
		opener:    opener,
		renderer:  renderer,
		analyzer:  analyzer,
		store:     store,
		artifacts: artifacts,
		pool:      pool,
	}
}

// Ingest processes the PDF at path. Page-level failures degrade the
// page's confidence and never abort the document.
func (s *IngestService) Ingest(ctx context.Context, path string) (*domain.DocumentAnalysis, error) {
	src, err := s.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	total := src.PageCount()
	logger.Section(fmt.Sprintf("Ingesting %s (%d pages)", filepath.Base(path), total))

	pages := make([]domain.PageRecord, total)
	images := make([]image.Image, total)
	s.pool.Run(ctx, total, func(ctx context.Context, i int) error {
		pageNumber := i + 1
		pages[i] = s.extractPage(ctx, src, pageNumber)
		images[i] = s.renderPage(ctx, path, pageNumber)
		return nil
	})

	charts := s.analyzeCharts(ctx, images)

	analysis := &domain.DocumentAnalysis{
		DocumentInfo: domain.DocumentInfo{
			Filename:   filepath.Base(path),
			TotalPages: total,
			AnalyzedAt: time.Now().UTC(),
		},
		PDFContent:    domain.PDFContent{Pages: pages},
		ChartAnalysis: domain.ChartAnalysis{Charts: charts},
	}
	analysis.ChartAnalysis.Summary.AnalyzedImages = len(images)
	analysis.Summarize()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if s.artifacts != nil {
		if _, err := s.artifacts.SaveAnalysis(ctx, name, analysis); err != nil {
			return nil, fmt.Errorf("save analysis %s: %w", name, err)
		}
	}
	if err := s.store.AddAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("index %s: %w", name, err)
	}
	if err := s.store.Save(ctx); err != nil {
		return nil, fmt.Errorf("persist vector store: %w", err)
	}
	s.archiveDocument(ctx, path)

	logger.Info("ingested %s: %d pages with text, %d tables, %d charts",
		analysis.DocumentInfo.Filename,
		analysis.PDFContent.Summary.PagesWithText,
		analysis.PDFContent.Summary.TableCount,
		analysis.ChartAnalysis.Summary.TotalCharts)
	return analysis, nil
}

// archiveDocument copies the source PDF into the artifact store's
// documents directory so the corpus stays self-contained. Best effort:
// the document is already indexed, a failed copy only warns. Files
// that already live in the documents directory (the watch flow) stay
// where they are.
func (s *IngestService) archiveDocument(ctx context.Context, path string) {
	if s.artifacts == nil {
		return
	}
	docsDir := s.artifacts.DocumentsDir()
	if docsDir == "" || filepath.Clean(filepath.Dir(path)) == filepath.Clean(docsDir) {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("archive %s: %v", filepath.Base(path), err)
		return
	}
	defer f.Close()

	if _, err := s.artifacts.SaveDocument(ctx, filepath.Base(path), f); err != nil {
		logger.Warn("archive %s: %v", filepath.Base(path), err)
	}
}

// extractPage runs both strategies and reconciles. A strategy error is
// the same as empty output: the page degrades, extraction continues.
func (s *IngestService) extractPage(ctx context.Context, src driven.PageSource, pageNumber int) domain.PageRecord {
	layoutText, err := src.LayoutText(ctx, pageNumber)
	if err != nil {
		logger.Warn("page %d: layout extraction failed: %v", pageNumber, err)
		layoutText = ""
	}
	streamText, err := src.StreamText(ctx, pageNumber)
	if err != nil {
		logger.Warn("page %d: stream extraction failed: %v", pageNumber, err)
		streamText = ""
	}

	record := Reconcile(pageNumber, layoutText, streamText)

	tables, err := src.Tables(ctx, pageNumber)
	if err != nil {
		logger.Warn("page %d: table extraction failed: %v", pageNumber, err)
	} else {
		record.Tables = tables
	}
	return record
}

// renderPage applies the resolution fallback chain.
func (s *IngestService) renderPage(ctx context.Context, path string, pageNumber int) image.Image {
	if s.renderer == nil {
		return blankPage()
	}
	img, err := s.renderer.Render(ctx, path, pageNumber, renderDPI)
	if err == nil {
		return img
	}
	logger.Warn("page %d: render at %d dpi failed, retrying at %d dpi: %v",
		pageNumber, renderDPI, renderFallbackDPI, err)

	img, err = s.renderer.Render(ctx, path, pageNumber, renderFallbackDPI)
	if err == nil {
		return img
	}
	logger.Warn("page %d: render failed at both resolutions, using blank placeholder: %v", pageNumber, err)
	return blankPage()
}

// analyzeCharts runs the analyzer over all page images concurrently.
// A single image's failure yields no record for that image only.
func (s *IngestService) analyzeCharts(ctx context.Context, images []image.Image) []domain.ChartRecord {
	if s.analyzer == nil || len(images) == 0 {
		return nil
	}

	found := make([]*domain.ChartRecord, len(images))
	errs := s.pool.Run(ctx, len(images), func(ctx context.Context, i int) error {
		record, err := s.analyzer.Analyze(ctx, images[i], i+1)
		if err != nil {
			return err
		}
		found[i] = record
		return nil
	})

	var charts []domain.ChartRecord
	for i, record := range found {
		if errs[i] != nil {
			logger.Warn("page %d: chart analysis failed: %v", i+1, errs[i])
			continue
		}
		if record != nil {
			charts = append(charts, *record)
		}
	}
	return charts
}

func blankPage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}
