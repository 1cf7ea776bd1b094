// Package tesseract provides an OCR engine adapter that shells out to
// the tesseract binary over a PNG pipe.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Defaults match the source documents: Turkish reports with English
// labels, page-segmentation mode 6 (a uniform block of text).
const (
	DefaultBinary    = "tesseract"
	DefaultLanguages = "tur+eng"
	DefaultPSM       = "6"
)

// Config holds configuration for the tesseract engine.
type Config struct {
	// Binary is the tesseract executable (default: tesseract, found
	// via PATH).
	Binary string

	// Languages is the -l argument (default: tur+eng).
	Languages string

	// PSM is the page segmentation mode (default: 6).
	PSM string
}

// Engine runs OCR by piping a PNG through the tesseract binary.
type Engine struct {
	binary    string
	languages string
	psm       string
}

// New creates a tesseract OCR engine.
func New(cfg Config) *Engine {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Languages == "" {
		cfg.Languages = DefaultLanguages
	}
	if cfg.PSM == "" {
		cfg.PSM = DefaultPSM
	}
	return &Engine{binary: cfg.Binary, languages: cfg.Languages, psm: cfg.PSM}
}

// Available reports whether the tesseract binary can be found.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// Lines runs recognition and returns the non-empty text lines in
// reading order.
func (e *Engine) Lines(ctx context.Context, img image.Image) ([]string, error) {
	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	// "stdin stdout" makes tesseract read the image from the pipe and
	// print recognised text instead of writing an output file.
	cmd := exec.CommandContext(ctx, e.binary, "stdin", "stdout", "-l", e.languages, "--psm", e.psm)
	cmd.Stdin = &input
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath(e.binary); lookErr != nil {
			return nil, fmt.Errorf("%w: %s not installed", domain.ErrOCRUnavailable, e.binary)
		}
		return nil, fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var lines []string
	for _, line := range strings.Split(out.String(), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, nil
}
