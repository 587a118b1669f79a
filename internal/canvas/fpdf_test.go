package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFPDFProducesDocument(t *testing.T) {
	c := NewFPDF(F4Landscape)
	c.AddPage()
	c.SetFont(Bold, 12)
	c.Text(165, 20, "LAPORAN DATA KETETAPAN PAJAK", AlignCenter)
	c.Rect(15, 30, 100, 8, true)
	c.Line(15, 40, 315, 40)
	c.AddPage()

	w, h := c.PageSize()
	assert.Equal(t, 330.0, w)
	assert.Equal(t, 210.0, h)
	assert.Equal(t, 2, c.PageCount())

	var out bytes.Buffer
	require.NoError(t, c.Output(&out))
	assert.True(t, strings.HasPrefix(out.String(), "%PDF"))
}

func TestFPDFImageFailureIsRecoverable(t *testing.T) {
	c := NewFPDF(A4Landscape)
	c.AddPage()

	err := c.Image("logo", strings.NewReader("not an image"), 15, 13, 22, 22)
	assert.Error(t, err)
	assert.NoError(t, c.Err())

	require.NoError(t, c.Image("logo", bytes.NewReader(tinyPNG(t)), 15, 13, 22, 22))
	assert.NoError(t, c.Err())
}

func TestFPDFStringWidthGrowsWithText(t *testing.T) {
	c := NewFPDF(A4Landscape)
	c.AddPage()
	c.SetFont(Regular, 10)

	short := c.StringWidth("Rp 0")
	long := c.StringWidth("Rp 1.500.000.000")
	assert.Greater(t, long, short)
	assert.Greater(t, c.StringWidth("Nama Usaha…"), c.StringWidth("Nama Usaha"))
}
