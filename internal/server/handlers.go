package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/expr-labeler/internal/annotation"
	"github.com/ironsheep/expr-labeler/internal/detection"
	"github.com/ironsheep/expr-labeler/internal/imaging"
	"github.com/ironsheep/expr-labeler/internal/pipeline"
	"github.com/ironsheep/expr-labeler/internal/preprocess"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "annotate_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

var errMissingPath = errors.New("path is required")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.WithField("tool", params.Name)
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.Debug("Tool executed")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "annotate_image":
		return s.handleAnnotateImage(ctx, args)
	case "annotate_directory":
		return s.handleAnnotateDirectory(ctx, args)
	case "list_strategies":
		return s.handleListStrategies()
	case "detect_contours":
		return s.handleDetectContours(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data string is
// omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{Code: code, Message: message}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments. Missing arguments decode as the
// zero value.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Annotation Handlers ===

type annotateImageArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleAnnotateImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a annotateImageArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}

	out := s.pipe.ProcessFile(ctx, a.Path)
	if out.Status == pipeline.StatusFailed {
		return nil, out.Err
	}
	return out, nil
}

type annotateDirectoryArgs struct {
	ImagesDir string `json:"images_dir"`
	LabelsDir string `json:"labels_dir"`
	DebugDir  string `json:"debug_dir"`
	Workers   int    `json:"workers"`
}

type directoryResult struct {
	*pipeline.Summary
	UndetectedImages []string `json:"undetected_images"`
}

func (s *Server) handleAnnotateDirectory(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a annotateDirectoryArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	cfg := *s.cfg
	if a.ImagesDir != "" {
		cfg.ImagesDir = a.ImagesDir
	}
	if a.LabelsDir != "" {
		cfg.LabelsDir = a.LabelsDir
	}
	if a.DebugDir != "" {
		cfg.DebugDir = a.DebugDir
	}
	if a.Workers != 0 {
		cfg.Workers = a.Workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pipe, err := pipeline.New(&cfg, s.rec, s.log)
	if err != nil {
		return nil, err
	}
	summary, err := pipe.Run(ctx)
	if err != nil {
		return nil, err
	}
	return directoryResult{Summary: summary, UndetectedImages: summary.UndetectedImages()}, nil
}

// === Inspection Handlers ===

type strategyInfo struct {
	Priority int    `json:"priority"`
	Name     string `json:"name"`
	Config   string `json:"config"`
}

type classInfo struct {
	Symbol  string `json:"symbol"`
	ClassID int    `json:"class_id"`
}

type strategiesResult struct {
	Strategies []strategyInfo `json:"strategies"`
	Classes    []classInfo    `json:"classes"`
	ContourMin float64        `json:"contour_min_area"`
	ContourMax float64        `json:"contour_max_area"`
}

func (s *Server) handleListStrategies() (interface{}, error) {
	result := strategiesResult{
		ContourMin: s.cfg.MinArea,
		ContourMax: s.cfg.MaxArea,
	}
	for i, st := range preprocess.Strategies() {
		result.Strategies = append(result.Strategies, strategyInfo{
			Priority: i + 1,
			Name:     st.String(),
			Config:   st.Config(),
		})
	}
	classes := annotation.DefaultClassMap()
	for _, sym := range classes.Symbols() {
		id, _ := classes.Lookup(sym)
		result.Classes = append(result.Classes, classInfo{Symbol: sym, ClassID: id})
	}
	return result, nil
}

type detectContoursArgs struct {
	Path         string   `json:"path"`
	MinArea      *float64 `json:"min_area"`
	MaxArea      *float64 `json:"max_area"`
	IncludeLines bool     `json:"include_lines"`
}

type region struct {
	X1     int     `json:"x1"`
	Y1     int     `json:"y1"`
	X2     int     `json:"x2"`
	Y2     int     `json:"y2"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Area   float64 `json:"area,omitempty"`
}

func regionOf(b detection.Bounds) region {
	return region{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2, Width: b.Width(), Height: b.Height()}
}

type contoursResult struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Threshold uint8    `json:"threshold"`
	Contours  []region `json:"contours"`
	Lines     []region `json:"lines,omitempty"`
}

func (s *Server) handleDetectContours(args json.RawMessage) (interface{}, error) {
	var a detectContoursArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}

	opts := s.cfg.ContourOptions()
	if a.MinArea != nil {
		opts.MinArea = *a.MinArea
	}
	if a.MaxArea != nil {
		opts.MaxArea = *a.MaxArea
	}
	if opts.MinArea < 0 || opts.MinArea >= opts.MaxArea {
		return nil, fmt.Errorf("min_area must be non-negative and below max_area, got %v and %v", opts.MinArea, opts.MaxArea)
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	gray := preprocess.ToGray(img)

	result := contoursResult{
		Width:     gray.Bounds().Dx(),
		Height:    gray.Bounds().Dy(),
		Threshold: detection.OtsuThreshold(gray),
		Contours:  make([]region, 0),
	}
	for _, c := range detection.DetectSmallContours(gray, opts) {
		r := regionOf(c.Bounds)
		r.Area = c.Area
		result.Contours = append(result.Contours, r)
	}
	if a.IncludeLines {
		result.Lines = make([]region, 0)
		for _, l := range detection.DetectHorizontalLines(gray, s.cfg.LineOptions()) {
			result.Lines = append(result.Lines, regionOf(l.Bounds))
		}
	}
	return result, nil
}
