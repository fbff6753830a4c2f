package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// Load reads and decodes an image file.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Any format registered
//     with the imaging library is accepted (PNG, JPEG, GIF, TIFF, BMP).
//
// Returns:
//   - image.Image: The decoded image with bounds starting at (0,0).
//   - error: Non-nil if the file cannot be opened or decoded.
//
// EXIF orientation is ignored so that pixel coordinates in the label file
// line up with what the OCR engine sees.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("failed to load image %s: empty image", path)
	}
	return img, nil
}

// Save encodes img to path, creating parent directories as needed. The
// format follows the file extension.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// Clone returns an NRGBA copy of img with bounds starting at (0,0). The copy
// is safe to draw on.
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// ListImages returns the names (not paths) of the regular files in dir whose
// extension matches ext, sorted by name. The comparison ignores case and ext
// may be given with or without the leading dot.
func ListImages(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Stem returns the filename without directory and extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
