package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/image-signal-io/internal/imageio"
	"github.com/ironsheep/image-signal-io/internal/render"
	"github.com/ironsheep/image-signal-io/internal/scalebar"
	"github.com/ironsheep/image-signal-io/internal/signal"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_read", "image_export").
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
		s.logger.Info("tool failed", zap.String("tool", params.Name), zap.Error(err))
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_read":
		return s.handleImageRead(args)
	case "image_export":
		return s.handleImageExport(args)
	case "image_formats":
		return s.handleImageFormats(args)
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

var errMissingPath = errors.New("path is required")

// === Read ===

type imageReadArgs struct {
	Path   string         `json:"path"`
	Lazy   bool           `json:"lazy"`
	Params imageio.Params `json:"params"`
}

// ImageReadResult describes an image read as a signal.
type ImageReadResult struct {
	Path     string          `json:"path"`
	Shape    []int           `json:"shape"`
	DType    signal.DType    `json:"dtype"`
	Lazy     bool            `json:"lazy"`
	Axes     []*signal.Axis  `json:"axes"`
	Metadata signal.Metadata `json:"metadata"`
}

func (s *Server) handleImageRead(args json.RawMessage) (interface{}, error) {
	var a imageReadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}

	sig, err := imageio.Load(a.Path, imageio.ReadOptions{Lazy: a.Lazy, Params: a.Params})
	if err != nil {
		return nil, err
	}
	return &ImageReadResult{
		Path:     a.Path,
		Shape:    sig.Data.Shape(),
		DType:    sig.Data.DType(),
		Lazy:     a.Lazy,
		Axes:     sig.Axes.All(),
		Metadata: sig.Metadata,
	}, nil
}

// === Export ===

type imageExportArgs struct {
	Path            string             `json:"path"`
	Output          string             `json:"output"`
	ScaleBar        bool               `json:"scalebar"`
	Scale           float64            `json:"scale"`
	Units           string             `json:"units"`
	OutputSize      imageio.OutputSize `json:"output_size"`
	ScaleBarOptions *scalebar.Options  `json:"scalebar_options"`
	Params          imageio.Params     `json:"params"`
}

// ImageExportResult describes a completed export.
type ImageExportResult struct {
	Output   string `json:"output"`
	Mode     string `json:"mode"`
	ScaleBar bool   `json:"scalebar"`
}

func (s *Server) handleImageExport(args json.RawMessage) (interface{}, error) {
	var a imageExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	if a.Output == "" {
		return nil, errors.New("output is required")
	}

	sig, err := imageio.Load(a.Path, imageio.ReadOptions{})
	if err != nil {
		return nil, err
	}
	for _, ax := range sig.Axes.All() {
		if a.Scale > 0 {
			ax.Scale = a.Scale
		}
		if a.Units != "" {
			ax.Units = a.Units
		}
	}

	opts := imageio.WriteOptions{
		ScaleBar:        a.ScaleBar,
		ScaleBarOptions: a.ScaleBarOptions,
		OutputSize:      a.OutputSize,
		Params:          a.Params,
	}
	mode := s.writer.Mode(opts)
	if err := s.writer.Write(a.Output, sig, opts); err != nil {
		return nil, err
	}
	return &ImageExportResult{
		Output:   a.Output,
		Mode:     mode.String(),
		ScaleBar: a.ScaleBar && mode == imageio.ModeRendered,
	}, nil
}

// === Formats ===

// ImageFormatsResult lists what can be read and written.
type ImageFormatsResult struct {
	Plugin            imageio.Descriptor `json:"plugin"`
	RenderedFiletypes []string           `json:"rendered_filetypes"`
}

func (s *Server) handleImageFormats(json.RawMessage) (interface{}, error) {
	return &ImageFormatsResult{
		Plugin:            imageio.Plugin,
		RenderedFiletypes: render.SupportedFiletypes(),
	}, nil
}
