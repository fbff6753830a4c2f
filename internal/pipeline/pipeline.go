package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/expr-labeler/internal/annotation"
	"github.com/ironsheep/expr-labeler/internal/config"
	"github.com/ironsheep/expr-labeler/internal/detection"
	"github.com/ironsheep/expr-labeler/internal/imaging"
	"github.com/ironsheep/expr-labeler/internal/ocr"
	"github.com/ironsheep/expr-labeler/internal/preprocess"
	"github.com/ironsheep/expr-labeler/internal/render"
)

// Pipeline labels images with a fixed configuration and recognizer.
type Pipeline struct {
	cfg      *config.Config
	rec      ocr.Recognizer
	log      logrus.FieldLogger
	classes  annotation.ClassMap
	renderer *render.Renderer
}

// New creates a Pipeline. cfg must already be validated; it is not copied
// and must not be modified afterwards.
func New(cfg *config.Config, rec ocr.Recognizer, logger logrus.FieldLogger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: nil config")
	}
	if rec == nil {
		return nil, errors.New("pipeline: nil recognizer")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &Pipeline{
		cfg:     cfg,
		rec:     rec,
		log:     logger,
		classes: annotation.DefaultClassMap(),
	}

	if cfg.WriteDebug {
		colors, err := cfg.RenderColors()
		if err != nil {
			return nil, err
		}
		p.renderer = render.New(cfg.DebugDir, colors)
	}
	return p, nil
}

// Run labels every image in the configured directory and returns the
// aggregated outcomes.
//
// Per-image failures are recorded in the summary and never stop the run.
// Run returns an error only when the image directory cannot be listed, an
// output directory cannot be created, or ctx is cancelled; in the last case
// the summary covers the images processed so far.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	names, err := imaging.ListImages(p.cfg.ImagesDir, p.cfg.Extension)
	if err != nil {
		return nil, err
	}
	if err := p.ensureDirs(); err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"images":  len(names),
		"dir":     p.cfg.ImagesDir,
		"workers": p.cfg.Workers,
	}).Info("Starting annotation run")

	outcomes := make([]*Outcome, len(names))
	if p.cfg.Workers <= 1 {
		for i, name := range names {
			if ctx.Err() != nil {
				break
			}
			o := p.ProcessFile(ctx, filepath.Join(p.cfg.ImagesDir, name))
			outcomes[i] = &o
		}
	} else {
		var g errgroup.Group
		g.SetLimit(p.cfg.Workers)
		for i, name := range names {
			if ctx.Err() != nil {
				break
			}
			i, name := i, name
			g.Go(func() error {
				o := p.ProcessFile(ctx, filepath.Join(p.cfg.ImagesDir, name))
				outcomes[i] = &o
				return nil
			})
		}
		_ = g.Wait()
	}

	summary := newSummary()
	for _, o := range outcomes {
		if o != nil {
			summary.add(*o)
		}
	}

	p.log.WithFields(logrus.Fields{
		"images":        summary.Images,
		"labeled":       summary.Labeled,
		"undetected":    summary.Undetected,
		"failed":        summary.Failed,
		"ocr_boxes":     summary.OCRBoxes,
		"contour_boxes": summary.ContourBoxes,
		"line_boxes":    summary.LineBoxes,
		"by_strategy":   summary.ByStrategy,
	}).Info("Annotation run complete")

	return summary, ctx.Err()
}

// ProcessFile loads the image at path and labels it.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) Outcome {
	name := filepath.Base(path)

	img, err := imaging.Load(path)
	if err != nil {
		p.log.WithError(err).WithField("image", name).Error("Failed to load image")
		return failed(name, err)
	}
	return p.Process(ctx, name, img)
}

// Process labels an already decoded image. name is the image's filename and
// determines the label and debug paths.
func (p *Pipeline) Process(ctx context.Context, name string, img image.Image) Outcome {
	log := p.log.WithField("image", name)

	if err := p.ensureDirs(); err != nil {
		log.WithError(err).Error("Failed to prepare output directories")
		return failed(name, err)
	}

	sel, err := Select(ctx, preprocess.Build(img), p.rec, log)
	if errors.Is(err, ErrUndetected) {
		log.Warn("No text detected in any strategy")
		return Outcome{Image: name, Status: StatusUndetected}
	}
	if err != nil {
		log.WithError(err).Error("Strategy selection aborted")
		return failed(name, err)
	}

	strategy := sel.Variant.Name()
	log = log.WithField("strategy", strategy)
	out := Outcome{Image: name, Status: StatusLabeled, Strategy: strategy}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	boxes := make([]annotation.Box, 0, len(sel.Boxes))
	marks := make([]render.Mark, 0, len(sel.Boxes))

	for _, cb := range sel.Boxes {
		box, rect, err := annotation.FromCharBox(cb, w, h, p.classes)
		marks = append(marks, render.Mark{Rect: rect, Label: cb.Symbol, Source: annotation.SourceOCR})
		switch {
		case errors.Is(err, annotation.ErrUnknownSymbol):
			log.WithField("symbol", cb.Symbol).Warn("Skipping unmapped symbol")
			out.Skipped = append(out.Skipped, cb.Symbol)
			continue
		case err != nil:
			log.WithError(err).WithField("symbol", cb.Symbol).Warn("Skipping box")
			continue
		}
		boxes = append(boxes, box)
		out.OCRBoxes++
	}

	gray := preprocess.GrayOf(sel.Variant.Image)

	for _, c := range detection.DetectSmallContours(gray, p.cfg.ContourOptions()) {
		r := annotation.Rect{X1: c.Bounds.X1, Y1: c.Bounds.Y1, X2: c.Bounds.X2, Y2: c.Bounds.Y2}
		box, err := annotation.FromRect(r, w, h, annotation.ClassPlus, annotation.SourceContour)
		if err != nil {
			log.WithError(err).Debug("Skipping contour")
			continue
		}
		marks = append(marks, render.Mark{Rect: box.Rect, Source: annotation.SourceContour})
		boxes = append(boxes, box)
		out.ContourBoxes++
	}

	if p.cfg.MinusRecovery {
		for _, l := range detection.DetectHorizontalLines(gray, p.cfg.LineOptions()) {
			r := annotation.Rect{X1: l.Bounds.X1, Y1: l.Bounds.Y1, X2: l.Bounds.X2, Y2: l.Bounds.Y2}
			box, err := annotation.FromRect(r, w, h, annotation.ClassMinus, annotation.SourceLine)
			if err != nil {
				log.WithError(err).Debug("Skipping line")
				continue
			}
			marks = append(marks, render.Mark{Rect: box.Rect, Source: annotation.SourceLine})
			boxes = append(boxes, box)
			out.LineBoxes++
		}
	}

	out.Boxes = boxes
	out.LabelPath = annotation.LabelPath(p.cfg.LabelsDir, name)
	if err := annotation.WriteLabels(out.LabelPath, boxes); err != nil {
		log.WithError(err).Error("Failed to write labels")
		return failed(name, err)
	}

	if p.renderer != nil {
		debugPath, err := p.renderer.Render(sel.Variant.Image, name, strategy, marks)
		if err != nil {
			log.WithError(err).Warn("Failed to write debug image")
		} else {
			out.DebugPath = debugPath
		}
	}

	log.WithFields(logrus.Fields{
		"ocr_boxes":     out.OCRBoxes,
		"contour_boxes": out.ContourBoxes,
		"line_boxes":    out.LineBoxes,
		"attempts":      sel.Attempts,
	}).Info("Labeled image")

	return out
}

func (p *Pipeline) ensureDirs() error {
	dirs := []string{p.cfg.LabelsDir}
	if p.renderer != nil {
		dirs = append(dirs, p.cfg.DebugDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}
