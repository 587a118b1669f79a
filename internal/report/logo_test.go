package report

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegLogo(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestPrepareLogoConvertsAndShrinks(t *testing.T) {
	out, err := PrepareLogo(jpegLogo(t, 1200, 600))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, logoMaxPixels, cfg.Width)
	assert.Equal(t, logoMaxPixels/2, cfg.Height)
}

func TestPrepareLogoKeepsSmallImages(t *testing.T) {
	out, err := PrepareLogo(jpegLogo(t, 64, 64))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
}

func TestLoadLogoBestEffort(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, LoadLogo(""))
	assert.Nil(t, LoadLogo(filepath.Join(dir, "missing.png")))

	junk := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	assert.Nil(t, LoadLogo(junk))

	good := filepath.Join(dir, "logo.jpg")
	require.NoError(t, os.WriteFile(good, jpegLogo(t, 32, 32), 0o644))
	assert.NotEmpty(t, LoadLogo(good))
}
