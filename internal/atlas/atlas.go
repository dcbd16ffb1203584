// Package atlas describes sprite sheets: one image cut into equally sized
// cells, with named frames and an optional hotspot shared by all frames.
package atlas

import (
	"encoding/json"
	"image"

	"github.com/pkg/errors"
)

// FrameDefinition defines a single frame within a sheet
type FrameDefinition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "walk_1")
	AtlasX     int                    `json:"atlas_x"`    // X position in sheet (in cells)
	AtlasY     int                    `json:"atlas_y"`    // Y position in sheet (in cells)
	Properties map[string]interface{} `json:"properties"` // Custom properties (duration, sound, etc.)
}

// Sheet is the JSON description of a sprite sheet
type Sheet struct {
	Name       string            `json:"name"`        // Sheet name
	ImagePath  string            `json:"image_path"`  // Image entry, relative to the description
	TileWidth  int               `json:"tile_width"`  // Width of each cell in pixels
	TileHeight int               `json:"tile_height"` // Height of each cell in pixels
	HotX       int               `json:"hot_x"`       // Hotspot shared by all frames
	HotY       int               `json:"hot_y"`
	Frames     []FrameDefinition `json:"frames"` // Explicit frames; empty means every cell, row by row

	framesByName map[string]int
}

// Parse decodes and validates a sheet description.
func Parse(data []byte) (*Sheet, error) {
	var sheet Sheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, errors.Wrap(err, "failed to parse sheet description")
	}

	if sheet.TileWidth <= 0 || sheet.TileHeight <= 0 {
		return nil, errors.Errorf("invalid tile dimensions: %dx%d", sheet.TileWidth, sheet.TileHeight)
	}

	if sheet.ImagePath == "" {
		return nil, errors.New("image_path is required in sheet description")
	}

	sheet.framesByName = make(map[string]int)
	for i, f := range sheet.Frames {
		if f.AtlasX < 0 || f.AtlasY < 0 {
			return nil, errors.Errorf("frame %d (%s) has a negative cell position", i, f.Name)
		}
		if f.Name != "" {
			sheet.framesByName[f.Name] = i
		}
	}

	return &sheet, nil
}

// FrameIndex returns the frame number of a named frame.
func (s *Sheet) FrameIndex(name string) (int, bool) {
	i, ok := s.framesByName[name]
	return i, ok
}

// FrameRects returns the source rectangle of every frame for a sheet image
// of the given size. Frame numbers match the order of Frames.
func (s *Sheet) FrameRects(imgW, imgH int) ([]image.Rectangle, error) {
	cols := imgW / s.TileWidth
	rows := imgH / s.TileHeight

	cell := func(x, y int) image.Rectangle {
		px := x * s.TileWidth
		py := y * s.TileHeight
		return image.Rect(px, py, px+s.TileWidth, py+s.TileHeight)
	}

	if len(s.Frames) == 0 {
		rects := make([]image.Rectangle, 0, cols*rows)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				rects = append(rects, cell(x, y))
			}
		}
		return rects, nil
	}

	rects := make([]image.Rectangle, 0, len(s.Frames))
	for i, f := range s.Frames {
		if f.AtlasX >= cols || f.AtlasY >= rows {
			return nil, errors.Errorf("frame %d (%s) lies outside the %dx%d sheet", i, f.Name, imgW, imgH)
		}
		rects = append(rects, cell(f.AtlasX, f.AtlasY))
	}
	return rects, nil
}

// Duration returns the "duration" property of frame i, in ticks, or def
// when the frame or the property is missing.
func (s *Sheet) Duration(i, def int) int {
	if i < 0 || i >= len(s.Frames) {
		return def
	}
	if d := s.Frames[i].GetPropertyInt("duration", def); d > 0 {
		return d
	}
	return def
}

// GetProperty retrieves a property from a frame definition
func (fd *FrameDefinition) GetProperty(key string) (interface{}, bool) {
	if fd.Properties == nil {
		return nil, false
	}
	val, ok := fd.Properties[key]
	return val, ok
}

// GetPropertyInt retrieves an integer property
func (fd *FrameDefinition) GetPropertyInt(key string, defaultVal int) int {
	val, ok := fd.GetProperty(key)
	if !ok {
		return defaultVal
	}
	// JSON numbers are float64
	if floatVal, ok := val.(float64); ok {
		return int(floatVal)
	}
	return defaultVal
}
