// Package visualtest compares rendered grid snapshots against reference images.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest 8-bit channel difference
	Diff            *image.RGBA
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this distance.
	FuzzyRadius int

	// MaxDifferentPercent accepts the images when at most this share of pixels differ.
	MaxDifferentPercent float64

	// DiffImagePath, when set, receives a diff image for failed comparisons.
	DiffImagePath string
}

// DefaultOptions returns sensible defaults for image comparison
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// CompareFiles compares two PNG files.
func CompareFiles(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load actual image: %w", err)
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected image: %w", err)
	}
	return CompareImages(actual, expected, opts)
}

// CompareImages compares two images of the same bounds. Differing pixels are
// red in the diff image; matching ones are the actual image in grey.
func CompareImages(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Diff:        image.NewRGBA(bounds),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := actual.At(x, y)
			d := channelDiff(a, expected.At(x, y))
			result.MaxDifference = max(result.MaxDifference, d)

			if d <= opts.Tolerance || (opts.FuzzyRadius > 0 && nearMatch(a, expected, x, y, opts)) {
				result.Diff.Set(x, y, color.GrayModel.Convert(a))
				continue
			}
			result.Match = false
			result.DifferentPixels++
			result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}

	if !result.Match && opts.DiffImagePath != "" {
		if err := SavePNG(result.Diff, opts.DiffImagePath); err != nil {
			return result, fmt.Errorf("failed to save diff image: %w", err)
		}
	}
	return result, nil
}

// channelDiff is the largest 8-bit difference over the four channels.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar, br),
		absDiff(ag, bg),
		absDiff(ab, bb),
		absDiff(aa, ba),
	)
}

func absDiff(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}

func nearMatch(a color.Color, expected image.Image, x, y int, opts CompareOptions) bool {
	r := opts.FuzzyRadius
	area := image.Rect(x-r, y-r, x+r+1, y+r+1).Intersect(expected.Bounds())
	for ny := area.Min.Y; ny < area.Max.Y; ny++ {
		for nx := area.Min.X; nx < area.Max.X; nx++ {
			if channelDiff(a, expected.At(nx, ny)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

func loadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return png.Decode(file)
}

// SavePNG saves an image as PNG
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
