package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
)

// logoMaxPixels bounds the longest side of the embedded logo. The masthead
// prints it at 22 mm, so anything larger only inflates the PDF.
const logoMaxPixels = 400

// LoadLogo reads the masthead logo and normalises it to PNG. A missing or
// undecodable file is logged and yields nil; reports are then drawn without it.
func LoadLogo(path string) []byte {
	if path == "" {
		return nil
	}
	log := logger.WithComponent("report")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Logo not available, continuing without it")
		return nil
	}

	png, err := PrepareLogo(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Logo unreadable, continuing without it")
		return nil
	}
	return png
}

// PrepareLogo decodes any image format imaging understands, honours EXIF
// orientation, shrinks it to logoMaxPixels and re-encodes it as PNG.
func PrepareLogo(data []byte) ([]byte, error) {
	const op = "PrepareLogo"

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	b := img.Bounds()
	if b.Dx() > logoMaxPixels || b.Dy() > logoMaxPixels {
		img = imaging.Fit(img, logoMaxPixels, logoMaxPixels, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%s: encode: %w", op, err)
	}
	return buf.Bytes(), nil
}
