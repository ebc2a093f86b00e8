package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/shape-analyzer/internal/config"
	"github.com/ironsheep/shape-analyzer/internal/detection"
	"github.com/ironsheep/shape-analyzer/internal/imaging"
	"github.com/ironsheep/shape-analyzer/internal/report"
	"github.com/ironsheep/shape-analyzer/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_analyze_shapes").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Overlays the arguments on the server's configuration and validates it
//  3. Loads images from cache as needed
//  4. Calls the appropriate segment/detection/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	s.logger.Debug("tool call", "tool", name)

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Shape Analysis
	case "image_analyze_shapes":
		return s.handleImageAnalyzeShapes(args)
	case "image_annotate_shapes":
		return s.handleImageAnnotateShapes(args)
	case "image_crop_shape":
		return s.handleImageCropShape(args)

	// Debugging
	case "image_binarize":
		return s.handleImageBinarize(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Shape Analysis Handlers ===

// analysisArgs are the arguments shared by every shape tool. Unset fields
// keep the server's configured value.
type analysisArgs struct {
	Path              string   `json:"path"`
	MinArea           *float64 `json:"min_area"`
	Epsilon           *float64 `json:"epsilon"`
	Threshold         *int     `json:"threshold"`
	BlurKernel        *int     `json:"blur_kernel"`
	CircularityCutoff *float64 `json:"circularity_cutoff"`
	SquareTolerance   *float64 `json:"square_tolerance"`
	OutlineColor      *string  `json:"outline_color"`
	LabelColor        *string  `json:"label_color"`
	OutlineWidth      *int     `json:"outline_width"`
}

// apply returns a validated copy of base with the arguments overlaid.
func (a *analysisArgs) apply(base *config.Config) (*config.Config, error) {
	c := *base
	if a.MinArea != nil {
		c.MinArea = *a.MinArea
	}
	if a.Epsilon != nil {
		c.EpsilonCoefficient = *a.Epsilon
	}
	if a.Threshold != nil {
		c.Threshold = *a.Threshold
	}
	if a.BlurKernel != nil {
		c.BlurKernel = *a.BlurKernel
	}
	if a.CircularityCutoff != nil {
		c.CircularityCutoff = *a.CircularityCutoff
	}
	if a.SquareTolerance != nil {
		c.SquareTolerance = *a.SquareTolerance
	}
	if a.OutlineColor != nil {
		c.OutlineColor = *a.OutlineColor
	}
	if a.LabelColor != nil {
		c.LabelColor = *a.LabelColor
	}
	if a.OutlineWidth != nil {
		c.OutlineWidth = *a.OutlineWidth
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return &c, nil
}

// shapeAnalysisResult is the analysis of one image plus the summary text.
type shapeAnalysisResult struct {
	report.Document

	// Summary holds one "Shape: ..." line per region.
	Summary []string `json:"summary"`

	// Message is the "Total Objects Detected: <n>" line.
	Message string `json:"message"`
}

// analyze loads the image and classifies its shapes with the effective settings.
func (s *Server) analyze(a *analysisArgs) (image.Image, *config.Config, *shapeAnalysisResult, error) {
	cfg, err := a.apply(s.cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, nil, err
	}

	analyzer := detection.NewAnalyzer(cfg.DetectionOptions(), s.logger)
	result, err := analyzer.AnalyzeImage(img, cfg.SegmentOptions())
	if err != nil {
		return nil, nil, nil, err
	}

	lines := detection.SummaryLines(result)
	b := img.Bounds()
	return img, cfg, &shapeAnalysisResult{
		Document: report.Document{
			Source: a.Path,
			Width:  b.Dx(),
			Height: b.Dy(),
			Result: result,
		},
		Summary: lines[:len(lines)-1],
		Message: lines[len(lines)-1],
	}, nil
}

func (s *Server) handleImageAnalyzeShapes(args json.RawMessage) (interface{}, error) {
	var a analysisArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, _, result, err := s.analyze(&a)
	return result, err
}

type imageAnnotateShapesArgs struct {
	analysisArgs
	Format string `json:"format"`
}

// annotateShapesResult carries the analysis and the rendered overlay.
// Exactly one of Image and SVG is set, depending on Format.
type annotateShapesResult struct {
	*shapeAnalysisResult

	Format string                        `json:"format"`
	Image  *imaging.AnnotatedImageResult `json:"image,omitempty"`
	SVG    string                        `json:"svg,omitempty"`
}

func (s *Server) handleImageAnnotateShapes(args json.RawMessage) (interface{}, error) {
	var a imageAnnotateShapesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = "png"
	}
	if a.Format != "png" && a.Format != "svg" {
		return nil, fmt.Errorf("invalid format %q: must be png or svg", a.Format)
	}

	img, cfg, analysis, err := s.analyze(&a.analysisArgs)
	if err != nil {
		return nil, err
	}

	annotations := detection.ToAnnotations(analysis.Result)
	out := &annotateShapesResult{shapeAnalysisResult: analysis, Format: a.Format}

	if a.Format == "svg" {
		var buf bytes.Buffer
		if err := imaging.RenderSVG(&buf, analysis.Width, analysis.Height, annotations, cfg.RenderOptions()); err != nil {
			return nil, err
		}
		out.SVG = buf.String()
		return out, nil
	}

	rendered, err := imaging.RenderAnnotations(img, annotations, cfg.RenderOptions())
	if err != nil {
		return nil, err
	}
	out.Image, err = imaging.EncodePNGBase64(rendered)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type imageCropShapeArgs struct {
	analysisArgs
	Index   int     `json:"index"`
	Padding int     `json:"padding"`
	Scale   float64 `json:"scale"`
}

type cropShapeResult struct {
	Region detection.ClassifiedRegion    `json:"region"`
	Image  *imaging.AnnotatedImageResult `json:"image"`
}

func (s *Server) handleImageCropShape(args json.RawMessage) (interface{}, error) {
	var a imageCropShapeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Padding < 0 {
		return nil, fmt.Errorf("padding must be non-negative, got %d", a.Padding)
	}

	img, _, analysis, err := s.analyze(&a.analysisArgs)
	if err != nil {
		return nil, err
	}

	regions := analysis.Result.Regions
	if a.Index < 0 || a.Index >= len(regions) {
		return nil, fmt.Errorf("shape index %d out of range: %d shapes detected", a.Index, len(regions))
	}

	region := regions[a.Index]
	cropped, err := imaging.CropShape(img, region.Bounds, a.Padding, a.Scale)
	if err != nil {
		return nil, err
	}
	return &cropShapeResult{Region: region, Image: cropped}, nil
}

// === Debugging Handlers ===

type binarizeResult struct {
	Threshold        int `json:"threshold"`
	BlurKernel       int `json:"blur_kernel"`
	ForegroundPixels int `json:"foreground_pixels"`
	*imaging.AnnotatedImageResult
}

func (s *Server) handleImageBinarize(args json.RawMessage) (interface{}, error) {
	var a analysisArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.apply(s.cfg)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	mask, err := segment.Binarize(img, cfg.SegmentOptions())
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNGBase64(mask.Image())
	if err != nil {
		return nil, err
	}

	return &binarizeResult{
		Threshold:            cfg.Threshold,
		BlurKernel:           cfg.BlurKernel,
		ForegroundPixels:     mask.Count(),
		AnnotatedImageResult: encoded,
	}, nil
}
