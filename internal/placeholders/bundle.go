package placeholders

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"chosenoffset.com/quickgfx/internal/atlas"
)

// Bundle entries written by WriteBundle.
const (
	FontDir     = "fonts/basic"
	CheckerTile = "gfx/checker.bmp"
	OrbSheet    = "gfx/orb.json"
	OrbImage    = "gfx/orb.png"
	BeepSound   = "sfx/beep.wav"
)

// Orb animation: frames are named OrbFramePrefix plus their number and the
// first one is held longer.
const (
	OrbFramePrefix = "pulse_"
	OrbFlashFrame  = OrbFramePrefix + "0"
	OrbHoldTicks   = 24
	OrbStepTicks   = 6
)

// orbSheet describes the orb strip with one named frame per cell.
func orbSheet(n int) atlas.Sheet {
	frames := make([]atlas.FrameDefinition, n)
	for i := range frames {
		d := OrbStepTicks
		if i == 0 {
			d = OrbHoldTicks
		}
		frames[i] = atlas.FrameDefinition{
			Name:       fmt.Sprintf("%s%d", OrbFramePrefix, i),
			AtlasX:     i,
			Properties: map[string]interface{}{"duration": d},
		}
	}
	return atlas.Sheet{
		Name:       "orb",
		ImagePath:  "orb.png",
		TileWidth:  TileSize,
		TileHeight: TileSize,
		HotX:       TileSize / 2,
		HotY:       TileSize / 2,
		Frames:     frames,
	}
}

// WriteBundle writes every placeholder asset as a zip archive.
func WriteBundle(w io.Writer) error {
	zw := zip.NewWriter(w)

	add := func(name string, data []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return errors.Wrapf(err, "failed to add %s", name)
		}
		_, err = f.Write(data)
		return errors.Wrapf(err, "failed to write %s", name)
	}
	addPNG := func(name string, img image.Image) error {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return errors.Wrapf(err, "failed to encode %s", name)
		}
		return add(name, buf.Bytes())
	}

	for code := FirstGlyph; code <= LastGlyph; code++ {
		if err := addPNG(FontDir+"/"+GlyphName(code), RenderGlyph(rune(code))); err != nil {
			return err
		}
	}
	if err := add(FontDir+"/font.ini", []byte(FontDescriptor())); err != nil {
		return err
	}

	var tile bytes.Buffer
	checker := CreateCheckerTile(ColorPalette.CheckerLight, ColorPalette.CheckerDark, ColorPalette.Border, 8)
	if err := bmp.Encode(&tile, checker); err != nil {
		return errors.Wrap(err, "failed to encode checker tile")
	}
	if err := add(CheckerTile, tile.Bytes()); err != nil {
		return err
	}

	frames := OrbFrames()
	if err := addPNG(OrbImage, CreateAtlas(frames, len(frames))); err != nil {
		return err
	}
	sheet, err := json.MarshalIndent(orbSheet(len(frames)), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode orb sheet")
	}
	if err := add(OrbSheet, sheet); err != nil {
		return err
	}

	if err := add(BeepSound, Beep(44100, 880, 0.15)); err != nil {
		return err
	}

	return errors.Wrap(zw.Close(), "failed to finish bundle")
}

// GenerateAndSave writes the placeholder bundle to path.
func GenerateAndSave(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create bundle")
	}
	if err := WriteBundle(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Beep returns a 16 bit stereo WAV file holding a sine tone.
func Beep(sampleRate int, freq, seconds float64) []byte {
	frames := int(float64(sampleRate) * seconds)
	dataSize := frames * 4

	le := binary.LittleEndian
	out := make([]byte, 0, 44+dataSize)
	out = append(out, "RIFF"...)
	out = le.AppendUint32(out, uint32(36+dataSize))
	out = append(out, "WAVEfmt "...)
	out = le.AppendUint32(out, 16)
	out = le.AppendUint16(out, 1) // PCM
	out = le.AppendUint16(out, 2)
	out = le.AppendUint32(out, uint32(sampleRate))
	out = le.AppendUint32(out, uint32(sampleRate*4))
	out = le.AppendUint16(out, 4)
	out = le.AppendUint16(out, 16)
	out = append(out, "data"...)
	out = le.AppendUint32(out, uint32(dataSize))

	for i := 0; i < frames; i++ {
		// fade out to avoid a click at the end
		amp := 0.3 * (1 - float64(i)/float64(frames))
		v := uint16(int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))))
		out = le.AppendUint16(out, v)
		out = le.AppendUint16(out, v)
	}
	return out
}
