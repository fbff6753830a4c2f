// expr-labeler auto-labels images of handwritten or printed arithmetic
// expressions for YOLO object detection training.
//
// Each image is read by Tesseract under up to four preprocessing strategies
// (original, grayscale, adaptive threshold, contrast enhanced); the first
// strategy that yields character boxes wins. Small light blobs of the
// accepted variant are added as "+" candidates. Labels are written as
// <labels_dir>/<stem>.txt and annotated debug images as
// <debug_dir>/<stem>_<strategy>.png.
//
// Usage:
//
//	expr-labeler        label every image in images_dir
//	expr-labeler mcp    serve the labeler as MCP tools on stdio
//
// Configuration is layered: built-in defaults, the YAML file named by
// EXPR_LABELER_CONFIG, then EXPR_LABELER_* environment variables. A .env file
// in the working directory seeds the environment.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/expr-labeler/internal/config"
	"github.com/ironsheep/expr-labeler/internal/pipeline"
	"github.com/ironsheep/expr-labeler/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// configEnv names the variable holding the YAML configuration path.
const configEnv = config.EnvPrefix + "CONFIG"

func main() {
	mode := "run"

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("expr-labeler %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "mcp":
			mode = "mcp"
		default:
			fmt.Fprintf(os.Stderr, "expr-labeler: unknown argument %q\n\n", os.Args[1])
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	if err := run(mode); err != nil {
		fmt.Fprintf(os.Stderr, "expr-labeler: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig seeds the environment from .env and loads the YAML file named
// by EXPR_LABELER_CONFIG, if any.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	return config.Load(os.Getenv(configEnv))
}

// newLogger writes to stderr; stdout carries the MCP protocol in server mode.
func newLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

func run(mode string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Level())
	logger.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
		"engine":  cfg.Engine,
		"mode":    mode,
	}).Debug("expr-labeler starting")

	rec, err := cfg.NewRecognizer()
	if err != nil {
		return fmt.Errorf("failed to create recognizer: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mode == "mcp" {
		srv, err := server.New(cfg, rec, logger)
		if err != nil {
			return err
		}
		srv.Version = Version
		return srv.Run(ctx)
	}

	p, err := pipeline.New(cfg, rec, logger)
	if err != nil {
		return err
	}
	summary, err := p.Run(ctx)
	if summary != nil {
		for _, name := range summary.UndetectedImages() {
			logger.WithField("image", name).Warn("No detections")
		}
	}
	if err != nil {
		return fmt.Errorf("annotation run failed: %w", err)
	}

	logger.WithField("labels_dir", cfg.LabelsDir).Info("Auto-annotation complete")
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "expr-labeler - YOLO auto-labeling for arithmetic expression images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  expr-labeler          Label every image in images_dir")
	fmt.Fprintln(w, "  expr-labeler mcp      Serve MCP tools over stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from .env):")
	fmt.Fprintln(w, "  EXPR_LABELER_CONFIG=labeler.yaml    YAML configuration file")
	fmt.Fprintln(w, "  EXPR_LABELER_LOG_LEVEL=debug        Enable debug logging")
	fmt.Fprintln(w, "  EXPR_LABELER_ENGINE=cli             Use the tesseract executable")
	fmt.Fprintln(w, "  EXPR_LABELER_<SETTING>              Override any YAML setting by name")
}
