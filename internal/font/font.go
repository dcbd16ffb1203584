// Package font draws text with bitmap fonts: one image per character code,
// kept in a bundle directory and loaded the first time a code is needed.
package font

import (
	"fmt"
	"path"
	"reflect"

	"github.com/pkg/errors"

	"chosenoffset.com/quickgfx/internal/gfx"
	"chosenoffset.com/quickgfx/internal/logging"
	"chosenoffset.com/quickgfx/internal/render"
)

// Source is where glyph bitmaps come from. *bundle.Bundle satisfies it.
type Source interface {
	EntryExists(entry string) bool
	ReadFile(entry string) ([]byte, error)
}

// BitmapLoader turns file bytes into a drawable. *gfx.Loader satisfies it.
type BitmapLoader interface {
	LoadBitmap(name string, data []byte) (render.Image, error)
}

// Options tune layout.
type Options struct {
	// TabWidth is the distance between tab stops. Zero or less ignores tabs.
	TabWidth int

	// SpaceWidth is the advance of a space when AverageSpace is off, or
	// before any glyph has been loaded.
	SpaceWidth int

	// AverageSpace makes a space as wide as the mean width of the loaded glyphs.
	AverageSpace bool

	// SkipMalformedEscapes skips a truncated "|" escape instead of invoking
	// the panic hook.
	SkipMalformedEscapes bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		TabWidth:             40,
		SpaceWidth:           8,
		AverageSpace:         true,
		SkipMalformedEscapes: true,
	}
}

// Font is a lazily populated glyph table. It is not safe for concurrent use.
type Font struct {
	src    Source
	loader BitmapLoader
	dir    string
	desc   *Descriptor
	opts   Options

	glyphs map[uint16]*Glyph

	// running sum and count of the widths of cached, drawable glyphs
	widthSum   int
	widthCount int

	lastErr string
	panicFn gfx.PanicFunc
}

// Load prepares a font whose glyphs live in dir inside src. If dir holds a
// font.ini it is used as the descriptor. No glyph is loaded yet. Nil
// sources and loaders are rejected, including typed nil pointers.
func Load(src Source, loader BitmapLoader, dir string, opts Options) (*Font, error) {
	if isNil(src) || isNil(loader) {
		return nil, errors.New("font: a source and a bitmap loader are required")
	}

	f := New(src, loader, dir, nil, opts)

	descEntry := entryPath(dir, DescriptorFile)
	if src.EntryExists(descEntry) {
		data, err := src.ReadFile(descEntry)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read font descriptor %s", descEntry)
		}
		desc, err := ParseDescriptor(data)
		if err != nil {
			return nil, errors.Wrapf(err, "font %s", dir)
		}
		f.desc = desc
		logging.Logger().Debug("font descriptor loaded", "dir", dir, "codes", desc.Len())
	}
	return f, nil
}

// New creates a font from its parts. desc may be nil.
func New(src Source, loader BitmapLoader, dir string, desc *Descriptor, opts Options) *Font {
	return &Font{
		src:    src,
		loader: loader,
		dir:    dir,
		desc:   desc,
		opts:   opts,
		glyphs: make(map[uint16]*Glyph),
	}
}

// Options returns the layout options.
func (f *Font) Options() Options {
	return f.opts
}

// SetOptions replaces the layout options.
func (f *Font) SetOptions(opts Options) {
	f.opts = opts
}

// LastError returns the last recoverable error, empty after a clean pass.
func (f *Font) LastError() string {
	return f.lastErr
}

// SetPanic replaces the hook called for malformed escapes met while
// measuring, when no canvas is involved. Drawing reports through the
// canvas's own hook. Passing nil restores gfx.DefaultPanic.
func (f *Font) SetPanic(fn gfx.PanicFunc) {
	f.panicFn = fn
}

func (f *Font) panic(c Canvas, msg string) {
	if c != nil {
		c.Panic(msg)
	} else {
		fn := f.panicFn
		if fn == nil {
			fn = gfx.DefaultPanic
		}
		fn(msg)
	}
	f.lastErr = "FATAL ERROR: " + msg
}

// Cached reports whether a code has been resolved.
func (f *Font) Cached(code uint16) bool {
	_, ok := f.glyphs[code]
	return ok
}

// Len returns the number of cached codes, links included.
func (f *Font) Len() int {
	return len(f.glyphs)
}

// Resolve returns the glyph of a code, loading it on first use. Codes
// without a bitmap get a placeholder glyph that draws nothing.
func (f *Font) Resolve(code uint16) *Glyph {
	if g, ok := f.glyphs[code]; ok {
		return g
	}

	if target, ok := f.linkTarget(code); ok {
		g := f.Resolve(target)
		g.refs++
		f.cache(code, g)
		logging.Logger().Debug("glyph linked", "code", fmt.Sprintf("%04X", code), "target", fmt.Sprintf("%04X", target))
		return g
	}

	g := &Glyph{Code: code, refs: 1}
	if img, entry := f.loadBitmap(code); img != nil {
		g.Image = img
		g.W, g.H = img.Size()
		logging.Logger().Debug("glyph loaded", "code", fmt.Sprintf("%04X", code), "entry", entry)
	} else {
		f.lastErr = fmt.Sprintf("No glyph bitmap found for code %04X", code)
		logging.Logger().Warn("no glyph bitmap", "code", fmt.Sprintf("%04X", code), "dir", f.dir)
	}
	if f.desc != nil {
		f.desc.apply(g)
	}
	f.cache(code, g)
	return g
}

// linkTarget follows the LINK chain of a code to the code that owns the
// bitmap. A broken or circular chain is reported and ignored.
func (f *Font) linkTarget(code uint16) (uint16, bool) {
	if f.desc == nil {
		return 0, false
	}
	seen := map[uint16]bool{code: true}
	cur := code
	for {
		next, linked, err := f.desc.Link(cur)
		if err != nil {
			f.lastErr = err.Error()
			logging.Logger().Warn("ignoring glyph link", "code", fmt.Sprintf("%04X", cur), "error", err)
			return 0, false
		}
		if !linked {
			break
		}
		if seen[next] {
			f.lastErr = fmt.Sprintf("Glyph link loop at %04X", cur)
			logging.Logger().Warn("ignoring glyph link loop", "code", fmt.Sprintf("%04X", code))
			return 0, false
		}
		seen[next] = true
		cur = next
	}
	return cur, cur != code
}

// loadBitmap finds and decodes the bitmap of a code. The descriptor's Entry
// wins over the conventional file names.
func (f *Font) loadBitmap(code uint16) (render.Image, string) {
	var probe []string
	if f.desc != nil {
		if e := f.desc.Entry(code); e != "" {
			probe = []string{entryPath(f.dir, e)}
		}
	}
	if probe == nil {
		probe = candidates(f.dir, code)
	}

	for _, entry := range probe {
		if !f.src.EntryExists(entry) {
			continue
		}
		data, err := f.src.ReadFile(entry)
		if err != nil {
			logging.Logger().Warn("glyph read failed", "entry", entry, "error", err)
			return nil, entry
		}
		img, err := f.loader.LoadBitmap(entry, data)
		if err != nil {
			logging.Logger().Warn("glyph decode failed", "entry", entry, "error", err)
			return nil, entry
		}
		return img, entry
	}
	return nil, ""
}

func (f *Font) cache(code uint16, g *Glyph) {
	f.glyphs[code] = g
	if g.Image != nil {
		f.widthSum += g.W
		f.widthCount++
	}
}

// SpaceAdvance returns how far a space moves the cursor.
func (f *Font) SpaceAdvance() int {
	if !f.opts.AverageSpace || f.widthCount == 0 {
		return f.opts.SpaceWidth
	}
	return f.widthSum / f.widthCount
}

// Forget drops a code from the cache. The glyph's bitmap is released once
// no code refers to it any more.
func (f *Font) Forget(code uint16) {
	g, ok := f.glyphs[code]
	if !ok {
		return
	}
	delete(f.glyphs, code)
	if g.Image != nil {
		f.widthSum -= g.W
		f.widthCount--
	}
	g.refs--
	if g.refs <= 0 && g.Image != nil {
		g.Image.Dispose()
		g.Image = nil
	}
}

// Dispose releases every cached glyph.
func (f *Font) Dispose() {
	for code := range f.glyphs {
		f.Forget(code)
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func entryPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}
