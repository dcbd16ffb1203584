package gfx

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"chosenoffset.com/quickgfx/internal/atlas"
	"chosenoffset.com/quickgfx/internal/bundle"
	"chosenoffset.com/quickgfx/internal/logging"
	"chosenoffset.com/quickgfx/internal/render"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a backend.
	ErrUnsupportedFormat = errors.New("gfx: unsupported image format")

	// ErrNoFrames is returned when a sequence or archive holds no images.
	ErrNoFrames = errors.New("gfx: no frames loaded")
)

// ImageBackend decodes one image format.
type ImageBackend interface {
	Decode(r io.Reader) (image.Image, error)
}

// FrameBackend is implemented by backends whose files can hold several
// frames. Loaders prefer it over Decode.
type FrameBackend interface {
	DecodeFrames(r io.Reader) ([]image.Image, error)
}

// BackendFunc adapts a decode function to ImageBackend.
type BackendFunc func(r io.Reader) (image.Image, error)

// Decode calls f.
func (f BackendFunc) Decode(r io.Reader) (image.Image, error) {
	return f(r)
}

type gifBackend struct{}

func (gifBackend) Decode(r io.Reader) (image.Image, error) {
	return gif.Decode(r)
}

// DecodeFrames returns every frame of an animated GIF, composed onto the
// logical screen so each frame is complete. Each frame's disposal method is
// applied before the next one is drawn.
func (gifBackend) DecodeFrames(r io.Reader) ([]image.Image, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	canvas := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	for i, p := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous []byte
		if disposal == gif.DisposalPrevious {
			previous = append([]byte(nil), canvas.Pix...)
		}

		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frame := image.NewRGBA(bounds)
		copy(frame.Pix, canvas.Pix)
		frames = append(frames, frame)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous)
		}
	}
	return frames, nil
}

var backends = map[string]ImageBackend{
	".png":  BackendFunc(png.Decode),
	".jpg":  BackendFunc(jpeg.Decode),
	".jpeg": BackendFunc(jpeg.Decode),
	".bmp":  BackendFunc(bmp.Decode),
	".gif":  gifBackend{},
}

// RegisterBackend installs a backend for a file extension such as ".tga".
// Registering nil removes it.
func RegisterBackend(ext string, b ImageBackend) {
	ext = strings.ToLower(ext)
	if b == nil {
		delete(backends, ext)
		return
	}
	backends[ext] = b
}

// BackendFor returns the backend for a file name.
func BackendFor(name string) (ImageBackend, bool) {
	b, ok := backends[strings.ToLower(path.Ext(name))]
	return b, ok
}

// Loader turns file bytes into drawable images.
type Loader struct {
	renderer render.Renderer
}

// NewLoader creates a loader uploading images through r.
func NewLoader(r render.Renderer) *Loader {
	return &Loader{renderer: r}
}

func (l *Loader) decode(name string, data []byte) ([]render.Image, error) {
	backend, ok := BackendFor(name)
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedFormat, name)
	}

	var decoded []image.Image
	if fb, ok := backend.(FrameBackend); ok {
		imgs, err := fb.DecodeFrames(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load image %s", name)
		}
		decoded = imgs
	} else {
		img, err := backend.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load image %s", name)
		}
		decoded = []image.Image{img}
	}
	if len(decoded) == 0 {
		return nil, errors.Wrap(ErrNoFrames, name)
	}

	frames := make([]render.Image, len(decoded))
	for i, img := range decoded {
		frames[i] = l.renderer.NewImageFromImage(img)
	}
	return frames, nil
}

// LoadBitmap decodes a single bitmap. The file name selects the backend.
func (l *Loader) LoadBitmap(name string, data []byte) (render.Image, error) {
	frames, err := l.decode(name, data)
	if err != nil {
		return nil, err
	}
	for _, f := range frames[1:] {
		f.Dispose()
	}
	return frames[0], nil
}

// LoadFile loads an image file. An archive file (see bundle.IsArchive) is
// loaded as a sequence: each image entry becomes a frame, sorted by entry
// name like bundle.Entries.
func (l *Loader) LoadFile(p string) (*Image, error) {
	if bundle.IsArchive(p) {
		b, err := bundle.Open(p)
		if err != nil {
			return nil, err
		}
		defer b.Close()

		var frames []render.Image
		for _, entry := range b.Entries() {
			if _, ok := BackendFor(entry); !ok {
				continue
			}
			f, err := l.loadEntryFrames(b, entry)
			if err != nil {
				disposeAll(frames)
				return nil, err
			}
			frames = append(frames, f...)
		}
		if len(frames) == 0 {
			return nil, errors.Wrap(ErrNoFrames, p)
		}
		return NewImage(p, frames...), nil
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadImage(%s)", p)
	}
	frames, err := l.decode(p, data)
	if err != nil {
		return nil, err
	}
	return NewImage(p, frames...), nil
}

// LoadEntry loads an image from a bundle. If entry names a directory, every
// image directly inside it becomes a frame, sorted by name.
func (l *Loader) LoadEntry(b *bundle.Bundle, entry string) (*Image, error) {
	if b == nil {
		return nil, errors.New("trying to get images from a nil bundle")
	}

	if b.EntryExists(entry) {
		frames, err := l.loadEntryFrames(b, entry)
		if err != nil {
			return nil, err
		}
		return NewImage(entry, frames...), nil
	}

	if !b.DirectoryExists(entry) {
		return nil, errors.Wrapf(bundle.ErrNotFound, "%s in %s", entry, b.Name())
	}

	files, err := b.Directory(entry)
	if err != nil {
		return nil, err
	}
	var frames []render.Image
	for _, f := range files {
		if _, ok := BackendFor(f); !ok {
			continue
		}
		loaded, err := l.loadEntryFrames(b, f)
		if err != nil {
			disposeAll(frames)
			return nil, errors.Wrapf(err, "entry %s of sequence %s", f, entry)
		}
		frames = append(frames, loaded...)
	}
	if len(frames) == 0 {
		return nil, errors.Wrap(ErrNoFrames, entry)
	}
	logging.Logger().Debug("loaded image sequence", "entry", entry, "frames", len(frames))
	return NewImage(entry, frames...), nil
}

// LoadSheet loads a sprite sheet described by a JSON entry (see package
// atlas). Each frame of the description becomes a frame of the image and
// the sheet's hotspot is applied.
func (l *Loader) LoadSheet(b *bundle.Bundle, configEntry string) (*Image, error) {
	data, err := b.ReadFile(configEntry)
	if err != nil {
		return nil, err
	}
	sheet, err := atlas.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "sheet %s", configEntry)
	}

	imageEntry := sheet.ImagePath
	if !strings.HasPrefix(imageEntry, "/") {
		imageEntry = path.Join(path.Dir(configEntry), imageEntry)
	}
	raw, err := b.ReadFile(imageEntry)
	if err != nil {
		return nil, err
	}
	full, err := l.LoadBitmap(imageEntry, raw)
	if err != nil {
		return nil, err
	}

	rects, err := sheet.FrameRects(full.Size())
	if err != nil {
		full.Dispose()
		return nil, errors.Wrapf(err, "sheet %s", configEntry)
	}
	if len(rects) == 0 {
		full.Dispose()
		return nil, errors.Wrap(ErrNoFrames, configEntry)
	}
	frames := make([]render.Image, len(rects))
	for i, r := range rects {
		frames[i] = full.SubImage(r)
	}
	img := NewImage(configEntry, frames...)
	img.Hot(sheet.HotX, sheet.HotY)
	img.owned = full
	img.sheet = sheet
	return img, nil
}

func (l *Loader) loadEntryFrames(b *bundle.Bundle, entry string) ([]render.Image, error) {
	data, err := b.ReadFile(entry)
	if err != nil {
		return nil, err
	}
	return l.decode(entry, data)
}

func disposeAll(frames []render.Image) {
	for _, f := range frames {
		f.Dispose()
	}
}
