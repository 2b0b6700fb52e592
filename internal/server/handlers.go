package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/template-match-mcp/internal/imaging"
	"github.com/ironsheep/template-match-mcp/internal/logging"
	"github.com/ironsheep/template-match-mcp/internal/match"
	"github.com/ironsheep/template-match-mcp/internal/peaks"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "template_match").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errUnknownTool is returned by executeTool for a name not in the tool list.
var errUnknownTool = errors.New("unknown tool")

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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logging.LogToolError(s.logger, params.Name, time.Since(start), err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	logging.LogToolComplete(s.logger, params.Name, time.Since(start))

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
//  2. Fills optional parameters from the server configuration
//  3. Loads images from cache as needed
//  4. Calls into imaging, match and peaks
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_evict":
		return s.handleImageEvict(args)
	case "template_match":
		return s.handleTemplateMatch(args)
	case "template_find_peaks":
		return s.handleTemplateFindPeaks(args)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data string is
// left out of the response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Handlers ===

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

type imageEvictArgs struct {
	Path string `json:"path"`
	All  bool   `json:"all"`
}

// EvictResult reports the cache size after an image_evict call.
type EvictResult struct {
	Cached int `json:"cached"`
}

func (s *Server) handleImageEvict(args json.RawMessage) (interface{}, error) {
	var a imageEvictArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	switch {
	case a.All:
		s.cache.Clear()
	case a.Path != "":
		s.cache.Evict(a.Path)
	default:
		return nil, errors.New("path or all is required")
	}
	return &EvictResult{Cached: s.cache.Len()}, nil
}

// === Template Matching Handlers ===

type templateMatchArgs struct {
	ImagePath      string          `json:"image_path"`
	TemplatePath   string          `json:"template_path"`
	TemplateRegion *imaging.Region `json:"template_region"`
	Method         string          `json:"method"`
	Grayscale      string          `json:"grayscale"`
}

// Location is a surface position with its score. X is the column and Y the
// row of the template's top-left corner in the image.
type Location struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Score float64 `json:"score"`
}

// MatchResult summarizes a response surface.
type MatchResult struct {
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Method string   `json:"method"`
	Best   Location `json:"best"`
	match.Summary
}

func (s *Server) handleTemplateMatch(args json.RawMessage) (interface{}, error) {
	var a templateMatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	surface, method, err := s.computeSurface(a)
	if err != nil {
		return nil, err
	}

	row, col, score := match.Best(surface)
	return &MatchResult{
		Rows:    surface.Rows(),
		Cols:    surface.Cols(),
		Method:  method.String(),
		Best:    Location{X: col, Y: row, Score: score},
		Summary: match.Summarize(surface),
	}, nil
}

type findPeaksArgs struct {
	templateMatchArgs
	MaxCount             *int     `json:"max_count"`
	MinSeparation        *float64 `json:"min_separation"`
	MaxIterations        *int     `json:"max_iterations"`
	ReferenceOrSemantics bool     `json:"reference_or_semantics"`
	MinScore             *float64 `json:"min_score"`
}

// options fills unset arguments from defaults.
func (a findPeaksArgs) options(defaults peaks.Options) peaks.Options {
	opts := defaults
	if a.MaxCount != nil {
		opts.MaxCount = *a.MaxCount
	}
	if a.MinSeparation != nil {
		opts.MinSeparation = *a.MinSeparation
	}
	if a.MaxIterations != nil {
		opts.MaxIterations = *a.MaxIterations
	}
	if a.ReferenceOrSemantics {
		opts.Rule = peaks.ReferenceAny
	}
	opts.MinScore = a.MinScore
	return opts
}

// PeaksResult lists the peaks found on a response surface.
type PeaksResult struct {
	Peaks    []peaks.Peak `json:"peaks"`
	Count    int          `json:"count"`
	Examined int          `json:"examined"`
	Rule     string       `json:"rule"`
}

func (s *Server) handleTemplateFindPeaks(args json.RawMessage) (interface{}, error) {
	var a findPeaksArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	// Bad options should fail before the surface is computed.
	opts := a.options(s.cfg.Peaks.PeakOptions())
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	surface, _, err := s.computeSurface(a.templateMatchArgs)
	if err != nil {
		return nil, err
	}

	ex, err := peaks.NewExtractor(surface, opts)
	if err != nil {
		return nil, err
	}
	found := ex.Extract()
	s.logger.Debug("peaks extracted",
		"count", len(found),
		"examined", ex.Examined(),
		"rule", opts.Rule.String(),
	)

	return &PeaksResult{
		Peaks:    found,
		Count:    len(found),
		Examined: ex.Examined(),
		Rule:     opts.Rule.String(),
	}, nil
}

// computeSurface loads the image and template named by a and correlates them.
func (s *Server) computeSurface(a templateMatchArgs) (*match.Grid, match.Method, error) {
	method, err := match.ParseMethod(a.Method)
	if err != nil {
		return nil, 0, err
	}
	mode, err := imaging.ParseGrayscale(a.Grayscale)
	if err != nil {
		return nil, 0, err
	}
	if a.ImagePath == "" {
		return nil, 0, errors.New("image_path is required")
	}

	img, err := s.cache.Load(a.ImagePath)
	if err != nil {
		return nil, 0, err
	}
	scene, err := imaging.ToGrid(img, mode)
	if err != nil {
		return nil, 0, err
	}

	var tpl *match.Grid
	switch {
	case a.TemplatePath != "" && a.TemplateRegion != nil:
		return nil, 0, errors.New("set only one of template_path and template_region")
	case a.TemplatePath != "":
		timg, err := s.cache.Load(a.TemplatePath)
		if err != nil {
			return nil, 0, err
		}
		if tpl, err = imaging.ToGrid(timg, mode); err != nil {
			return nil, 0, err
		}
	case a.TemplateRegion != nil:
		if tpl, err = imaging.CropGrid(img, *a.TemplateRegion, mode); err != nil {
			return nil, 0, err
		}
	default:
		return nil, 0, errors.New("template_path or template_region is required")
	}

	var opts []match.Option
	if s.cfg.Sequential {
		opts = append(opts, match.WithSequential())
	}

	start := time.Now()
	surface, err := match.Match(scene, tpl, method, opts...)
	if err != nil {
		return nil, 0, err
	}
	s.logger.Debug("surface computed",
		"image", a.ImagePath,
		"rows", surface.Rows(),
		"cols", surface.Cols(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return surface, method, nil
}
