// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging validates uploaded images and produces derived files:
// dimension probing, EXIF auto-orientation and hero thumbnails.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	_ "golang.org/x/image/webp" // WebP decoder
)

// Thumbnail dimensions for hero slides.
const (
	ThumbWidth   = 640
	ThumbHeight  = 360
	ThumbQuality = 80
)

// ProbeResult describes a decoded image.
type ProbeResult struct {
	Width  int
	Height int
}

// Probe decodes image data and returns its dimensions, corrected for
// EXIF orientation. It is also the upload validation step: data that
// does not decode is not an image we accept.
func Probe(data []byte) (ProbeResult, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ProbeResult{}, fmt.Errorf("decoding image: %w", err)
	}

	w, h := cfg.Width, cfg.Height
	switch readOrientation(data) {
	case 5, 6, 7, 8: // rotated 90 or 270 degrees
		w, h = h, w
	}

	return ProbeResult{Width: w, Height: h}, nil
}

// Thumbnail decodes image data, applies EXIF orientation, crops to the
// thumbnail size and writes a JPEG to destPath.
func Thumbnail(data []byte, destPath string) error {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readOrientation(data))
	thumb := imaging.Fill(img, ThumbWidth, ThumbHeight, imaging.Center, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating thumbnail directory: %w", err)
	}
	if err := imaging.Save(thumb, destPath, imaging.JPEGQuality(ThumbQuality)); err != nil {
		return fmt.Errorf("saving thumbnail: %w", err)
	}
	return nil
}

// readOrientation extracts the EXIF orientation tag, returning 1
// (normal) when absent or unreadable.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil || orientation < 1 || orientation > 8 {
		return 1
	}
	return orientation
}

// applyOrientation normalizes an image according to its EXIF orientation.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
