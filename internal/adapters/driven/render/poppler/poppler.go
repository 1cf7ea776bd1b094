// Package poppler provides a page renderer adapter that shells out to
// poppler's pdftoppm binary.
package poppler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.PageRenderer = (*Renderer)(nil)

// DefaultBinary is the pdftoppm executable name, found via PATH.
const DefaultBinary = "pdftoppm"

// Renderer rasterises PDF pages with pdftoppm.
type Renderer struct {
	binary string
}

// New creates a poppler renderer. An empty binary selects the default.
func New(binary string) *Renderer {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Renderer{binary: binary}
}

// Available reports whether the pdftoppm binary can be found.
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Render rasterises a 1-based page at the given DPI. The PNG is
// streamed over stdout, no temporary files.
func (r *Renderer) Render(ctx context.Context, path string, page, dpi int) (image.Image, error) {
	p := strconv.Itoa(page)
	cmd := exec.CommandContext(ctx, r.binary,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", p,
		"-l", p,
		"-singlefile",
		path,
	)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath(r.binary); lookErr != nil {
			return nil, fmt.Errorf("%w: %s not installed", domain.ErrRenderFailed, r.binary)
		}
		return nil, fmt.Errorf("%w: page %d at %d dpi: %s",
			domain.ErrRenderFailed, page, dpi, strings.TrimSpace(stderr.String()))
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("%w: decode page %d: %v", domain.ErrRenderFailed, page, err)
	}
	return img, nil
}
