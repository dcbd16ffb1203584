// Package placeholders draws the stand-in assets bundled with quickgfx: a
// bitmap font, a background tile, an animated sprite sheet and a sound, all
// packed into one zip bundle.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
)

// TileSize is the standard size for placeholder tiles
const TileSize = 32

// ColorPalette defines the colors used by the placeholders
var ColorPalette = struct {
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	Border       color.RGBA

	// Sprite frames
	Orb     []color.RGBA
	Outline color.RGBA

	Glyph color.RGBA
}{
	CheckerLight: color.RGBA{70, 65, 60, 255}, // Dark stone gray
	CheckerDark:  color.RGBA{55, 50, 45, 255},
	Border:       color.RGBA{200, 200, 200, 255}, // Light gray

	Orb: []color.RGBA{
		{0, 255, 100, 255}, // Bright green
		{255, 215, 0, 255}, // Gold
		{255, 50, 50, 255}, // Bright red
		{200, 0, 200, 255}, // Magenta
	},
	Outline: color.RGBA{30, 28, 25, 255},

	// Glyphs are white so the draw color tints them
	Glyph: color.RGBA{255, 255, 255, 255},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateCheckerTile creates a tile of size x size squares with a one pixel
// border, so seams show when the tile is repeated.
func CreateCheckerTile(light, dark, border color.RGBA, size int) *image.RGBA {
	img := CreateSolidTile(light)
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			if (x/size+y/size)%2 == 1 {
				img.Set(x, y, dark)
			}
		}
	}
	for i := 0; i < TileSize; i++ {
		img.Set(i, 0, border)
		img.Set(0, i, border)
	}
	return img
}

// CreateCircle creates a circular sprite
func CreateCircle(fillColor, outlineColor color.RGBA, radius int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	center := TileSize / 2

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}

	return img
}

// CreateAtlas lays tiles out in a grid with the given number of columns
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	tileCount := len(tiles)
	rows := (tileCount + columns - 1) / columns

	atlas := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))

	// Copy each tile into the atlas
	for i, tile := range tiles {
		if tile == nil {
			continue
		}

		x := (i % columns) * TileSize
		y := (i / columns) * TileSize

		destRect := image.Rect(x, y, x+TileSize, y+TileSize)
		draw.Draw(atlas, destRect, tile, image.Point{}, draw.Src)
	}

	return atlas
}

// OrbFrames returns the frames of the pulsing orb sprite.
func OrbFrames() []*image.RGBA {
	frames := make([]*image.RGBA, len(ColorPalette.Orb))
	for i, c := range ColorPalette.Orb {
		frames[i] = CreateCircle(c, ColorPalette.Outline, TileSize/2-2-i)
	}
	return frames
}
