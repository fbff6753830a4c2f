package annotation

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatLine renders b as "<class> <xc> <yc> <w> <h>" with six decimals and
// no trailing newline.
func FormatLine(b Box) string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", b.ClassID, b.XCenter, b.YCenter, b.Width, b.Height)
}

// LabelPath returns <labelsDir>/<stem>.txt for an image filename.
func LabelPath(labelsDir, filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(labelsDir, stem+".txt")
}

// WriteLabels creates or truncates path and writes one newline-terminated
// line per box, in order.
func WriteLabels(path string, boxes []Box) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create label file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, b := range boxes {
		if _, err := w.WriteString(FormatLine(b) + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write label file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write label file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close label file: %w", err)
	}
	return nil
}
