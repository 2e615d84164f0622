package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-signal-io/internal/imageio"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool runs a tools/call request for name with the given arguments.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	}

	resp := s.handleRequest(req)
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeToolResult unmarshals the text content of a successful tool call.
func decodeToolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v (%v)", resp.Error.Message, resp.Error.Data)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("Unexpected content: %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("Failed to decode tool result: %v", err)
	}
}

func TestHandleToolsCall_ImageRead(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{100, 100, 100, 255})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_read", map[string]interface{}{"path": imgPath})

	var result ImageReadResult
	decodeToolResult(t, resp, &result)

	if len(result.Shape) != 2 || result.Shape[0] != 80 || result.Shape[1] != 100 {
		t.Errorf("Shape: got %v, want [80 100]", result.Shape)
	}
	if result.DType != "uint8" {
		t.Errorf("DType: got %s, want uint8", result.DType)
	}
	if result.Metadata.Signal.RecordBy != "image" {
		t.Errorf("record_by: got %q, want image", result.Metadata.Signal.RecordBy)
	}
	if result.Metadata.General.OriginalFilename != filepath.Base(imgPath) {
		t.Errorf("original_filename: got %q", result.Metadata.General.OriginalFilename)
	}
	if len(result.Axes) != 2 {
		t.Errorf("Axes: got %d, want 2", len(result.Axes))
	}
}

func TestHandleToolsCall_ImageRead_Color(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name  string
		c     color.Color
		dtype string
	}{
		{"green", color.RGBA{0, 255, 0, 255}, "rgb8"},
		// Only channels 1 and 2 are compared, so pure red reads as gray.
		{"red", color.RGBA{255, 0, 0, 255}, "uint8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imgPath := createTestImageFile(t, 20, 10, tt.c)
			defer os.Remove(imgPath)

			var result ImageReadResult
			decodeToolResult(t, callTool(t, s, "image_read", map[string]interface{}{"path": imgPath}), &result)

			if string(result.DType) != tt.dtype {
				t.Errorf("DType: got %s, want %s", result.DType, tt.dtype)
			}
			if len(result.Shape) != 2 {
				t.Errorf("Shape: got %v, want 2-D", result.Shape)
			}
		})
	}
}

func TestHandleToolsCall_ImageRead_Lazy(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 30, 20, color.Gray{50})
	defer os.Remove(imgPath)

	var result ImageReadResult
	decodeToolResult(t, callTool(t, s, "image_read", map[string]interface{}{
		"path": imgPath,
		"lazy": true,
	}), &result)

	if !result.Lazy {
		t.Error("Lazy should be true")
	}
	if len(result.Shape) != 2 || result.Shape[0] != 20 || result.Shape[1] != 30 {
		t.Errorf("Shape: got %v, want [20 30]", result.Shape)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "image_read", map[string]interface{}{
		"path": "/nonexistent/image.png",
	})

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_UnregisteredExtension(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "image_read", map[string]interface{}{
		"path": "/some/image.tif",
	})

	if resp.Error == nil {
		t.Fatal("Expected error for unregistered extension")
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "unknown tool") {
		t.Errorf("Error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_MissingArguments(t *testing.T) {
	s := New(nil)

	for _, name := range []string{"image_read", "image_export"} {
		resp := callTool(t, s, name, map[string]interface{}{})
		if resp.Error == nil {
			t.Errorf("%s: expected error for missing path", name)
		}
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{"name": 42}`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_ExportScaleBar(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 64, 64, color.Gray{128})
	defer os.Remove(imgPath)
	output := filepath.Join(t.TempDir(), "bar.png")

	var result ImageExportResult
	decodeToolResult(t, callTool(t, s, "image_export", map[string]interface{}{
		"path":        imgPath,
		"output":      output,
		"scalebar":    true,
		"scale":       0.5,
		"units":       "nm",
		"output_size": 256,
		"scalebar_options": map[string]interface{}{
			"location":  "upper right",
			"box_alpha": 1.0,
		},
	}), &result)

	if result.Mode != "rendered" {
		t.Errorf("Mode: got %s, want rendered", result.Mode)
	}
	if !result.ScaleBar {
		t.Error("ScaleBar should be true")
	}

	res, err := imageio.FileReader(output, imageio.ReadOptions{})
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	shape := res[0].Data.Shape()
	if len(shape) != 2 || shape[0] != 256 || shape[1] != 256 {
		t.Errorf("Exported shape: got %v, want [256 256]", shape)
	}
}

func TestHandleToolsCall_ExportOutputSizePair(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 40, 20, color.Gray{10})
	defer os.Remove(imgPath)
	output := filepath.Join(t.TempDir(), "sized.tif")

	var result ImageExportResult
	decodeToolResult(t, callTool(t, s, "image_export", map[string]interface{}{
		"path":        imgPath,
		"output":      output,
		"output_size": []int{200, 100},
	}), &result)

	if result.Mode != "rendered" || result.ScaleBar {
		t.Errorf("Unexpected result: %+v", result)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Output not written: %v", err)
	}
}

func TestHandleToolsCall_ExportUnsupportedFormat(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 32, 32, color.Gray{10})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_export", map[string]interface{}{
		"path":     imgPath,
		"output":   filepath.Join(t.TempDir(), "bar.bmp"),
		"scalebar": true,
		"scale":    1,
		"units":    "nm",
	})

	if resp.Error == nil {
		t.Fatal("Expected error exporting a scale bar to bmp")
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "png") {
		t.Errorf("Error should list supported types, got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_ExportDirect(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 32, 16, color.RGBA{0, 200, 50, 255})
	defer os.Remove(imgPath)
	output := filepath.Join(t.TempDir(), "copy.gif")

	var result ImageExportResult
	decodeToolResult(t, callTool(t, s, "image_export", map[string]interface{}{
		"path":   imgPath,
		"output": output,
		"params": map[string]interface{}{"palettesize": 64},
	}), &result)

	if result.Mode != "direct" {
		t.Errorf("Mode: got %s, want direct", result.Mode)
	}

	res, err := imageio.FileReader(output, imageio.ReadOptions{})
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	shape := res[0].Data.Shape()
	if len(shape) != 2 || shape[0] != 16 || shape[1] != 32 {
		t.Errorf("Exported shape: got %v, want [16 32]", shape)
	}
}

func TestHandleToolsCall_ExportReciprocalUnits(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 64, 64, color.Gray{200})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_export", map[string]interface{}{
		"path":     imgPath,
		"output":   filepath.Join(t.TempDir(), "fft.jpg"),
		"scalebar": true,
		"scale":    0.05,
		"units":    "1/nm",
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v (%v)", resp.Error.Message, resp.Error.Data)
	}
}

func TestHandleToolsCall_Formats(t *testing.T) {
	s := New(nil)

	var result ImageFormatsResult
	decodeToolResult(t, callTool(t, s, "image_formats", nil), &result)

	if result.Plugin.FormatName != "Signal2D" {
		t.Errorf("FormatName: got %s, want Signal2D", result.Plugin.FormatName)
	}
	if result.Plugin.DefaultExtension != "png" {
		t.Errorf("DefaultExtension: got %s, want png", result.Plugin.DefaultExtension)
	}

	hasPNG, hasBMP := false, false
	for _, ext := range result.RenderedFiletypes {
		switch ext {
		case "png":
			hasPNG = true
		case "bmp":
			hasBMP = true
		}
	}
	if !hasPNG || hasBMP {
		t.Errorf("RenderedFiletypes: got %v", result.RenderedFiletypes)
	}
}
