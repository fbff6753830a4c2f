package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strings"
)

// CLI recognizes characters by running the tesseract executable in makebox
// mode and parsing its box output.
type CLI struct {
	path string
	opts Options
}

// NewCLI constructs an executable-backed Recognizer. An empty path resolves
// "tesseract" on PATH.
func NewCLI(path string, opts Options) *CLI {
	if path == "" {
		path = "tesseract"
	}
	return &CLI{path: path, opts: opts}
}

// Recognize pipes img as PNG into `tesseract stdin stdout <config> makebox`.
// The process is killed when ctx is cancelled.
func (c *CLI) Recognize(ctx context.Context, img image.Image, config string) ([]CharBox, error) {
	if _, err := ParsePageSegMode(config); err != nil {
		return nil, err
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, c.args(config)...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("tesseract failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("tesseract failed: %w", err)
	}

	return ParseBoxes(stdout.String())
}

// args builds the tesseract argument list for one run.
func (c *CLI) args(config string) []string {
	args := []string{"stdin", "stdout", "-l", c.opts.language()}
	if c.opts.TessdataPrefix != "" {
		args = append(args, "--tessdata-dir", c.opts.TessdataPrefix)
	}
	args = append(args, strings.Fields(config)...)
	if c.opts.Whitelist != "" {
		args = append(args, "-c", "tessedit_char_whitelist="+c.opts.Whitelist)
	}
	return append(args, "batch.nochop", "makebox")
}

// Version returns the first line of `tesseract --version`.
func (c *CLI) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.path, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract not available: %w", err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}
