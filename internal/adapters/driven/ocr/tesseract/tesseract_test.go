package tesseract

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raporlabs/finrag/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	engine := New(Config{})
	assert.Equal(t, DefaultBinary, engine.binary)
	assert.Equal(t, DefaultLanguages, engine.languages)
	assert.Equal(t, DefaultPSM, engine.psm)
}

func TestEngine_Available_MissingBinary(t *testing.T) {
	engine := New(Config{Binary: "tesseract-does-not-exist-xyz"})
	assert.False(t, engine.Available())
}

func TestEngine_Lines_MissingBinary(t *testing.T) {
	engine := New(Config{Binary: "tesseract-does-not-exist-xyz"})

	img := image.NewGray(image.Rect(0, 0, 10, 10))
	_, err := engine.Lines(context.Background(), img)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOCRUnavailable)
}
