package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/webp"

	apperrors "go-food-lens/internal/errors"
)

// Normalizer converts an uploaded image artifact into the canonical form sent
// to the analysis provider: a three-channel JPEG at reduced quality, bounded
// by a maximum dimension. The artifact is overwritten in place.
type Normalizer struct {
	quality      int
	maxDimension int
}

// NewNormalizer creates a normalizer. quality is the JPEG quality in [1,100];
// maxDimension <= 0 disables downscaling.
func NewNormalizer(quality, maxDimension int) *Normalizer {
	return &Normalizer{
		quality:      quality,
		maxDimension: maxDimension,
	}
}

// Normalize decodes the artifact at path and overwrites it with the canonical
// encoding. Undecodable bytes fail with a decode error before any network
// call can happen.
func (n *Normalizer) Normalize(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewInternalError("failed to read image artifact", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return apperrors.NewDecodeError("unreadable image data", err)
	}

	img = n.downscale(img)

	// Composite onto an opaque white background so alpha is dropped rather
	// than left to the encoder.
	bounds := img.Bounds()
	rgb := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgb, rgb.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(rgb, rgb.Bounds(), img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: n.quality}); err != nil {
		return apperrors.NewInternalError("failed to encode normalized image", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.NewInternalError("failed to overwrite image artifact", err)
	}
	return nil
}

// downscale bounds the longer edge to maxDimension, preserving aspect ratio.
func (n *Normalizer) downscale(img image.Image) image.Image {
	if n.maxDimension <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= n.maxDimension && bounds.Dy() <= n.maxDimension {
		return img
	}

	g := gift.New()
	if bounds.Dx() >= bounds.Dy() {
		g.Add(gift.Resize(n.maxDimension, 0, gift.LanczosResampling))
	} else {
		g.Add(gift.Resize(0, n.maxDimension, gift.LanczosResampling))
	}

	resized := image.NewRGBA(g.Bounds(bounds))
	g.Draw(resized, img)
	return resized
}
