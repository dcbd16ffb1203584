// Package bundle gives uniform access to packed resources: a plain
// directory or a zip archive. Entry names are slash separated and matched
// case-insensitively, the way resource archives are usually addressed.
package bundle

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"chosenoffset.com/quickgfx/internal/logging"
)

// ErrNotFound is returned when an entry does not exist in the bundle.
var ErrNotFound = errors.New("bundle: entry not found")

// archiveExts lists the file extensions opened as zip archives.
var archiveExts = map[string]bool{
	".zip": true,
	".jcr": true,
	".pak": true,
}

// Bundle is a read-only resource collection.
type Bundle struct {
	name   string
	fsys   fs.FS
	closer io.Closer

	// upper-cased entry name -> real entry name
	files map[string]string
	dirs  map[string]string
}

// IsArchive reports whether a path names a file Open treats as an archive.
func IsArchive(p string) bool {
	return archiveExts[strings.ToLower(path.Ext(p))]
}

// Open opens a directory or an archive file as a bundle.
func Open(p string) (*Bundle, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bundle %s", p)
	}

	if info.IsDir() {
		return New(p, os.DirFS(p))
	}

	if !IsArchive(p) {
		return nil, errors.Errorf("bundle %s: not a directory or a known archive type", p)
	}

	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read archive %s", p)
	}
	b, err := New(p, zr)
	if err != nil {
		zr.Close()
		return nil, err
	}
	b.closer = zr
	return b, nil
}

// New wraps an fs.FS. The entry index is built immediately.
func New(name string, fsys fs.FS) (*Bundle, error) {
	b := &Bundle{
		name:  name,
		fsys:  fsys,
		files: make(map[string]string),
		dirs:  make(map[string]string),
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			b.dirs[strings.ToUpper(p)] = p
		} else {
			b.files[strings.ToUpper(p)] = p
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to index bundle %s", name)
	}

	logging.Logger().Debug("bundle indexed", "bundle", name, "entries", len(b.files))
	return b, nil
}

// Name returns the path or label the bundle was opened with.
func (b *Bundle) Name() string {
	return b.name
}

// clean normalizes an entry name to the form used in the index.
func clean(entry string) string {
	entry = strings.ReplaceAll(entry, "\\", "/")
	entry = path.Clean("/" + entry)
	return strings.ToUpper(strings.TrimPrefix(entry, "/"))
}

// EntryExists reports whether a file entry exists.
func (b *Bundle) EntryExists(entry string) bool {
	_, ok := b.files[clean(entry)]
	return ok
}

// DirectoryExists reports whether a directory exists.
func (b *Bundle) DirectoryExists(entry string) bool {
	_, ok := b.dirs[clean(entry)]
	return ok
}

// ReadFile returns the contents of a file entry.
func (b *Bundle) ReadFile(entry string) ([]byte, error) {
	real, ok := b.files[clean(entry)]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s in %s", entry, b.name)
	}
	data, err := fs.ReadFile(b.fsys, real)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s from %s", entry, b.name)
	}
	return data, nil
}

// Entries returns every file entry, sorted by name.
func (b *Bundle) Entries() []string {
	out := make([]string, 0, len(b.files))
	for _, real := range b.files {
		out = append(out, real)
	}
	sort.Strings(out)
	return out
}

// Directory returns the files directly inside a directory entry, sorted by name.
func (b *Bundle) Directory(entry string) ([]string, error) {
	dir, ok := b.dirs[clean(entry)]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "directory %s in %s", entry, b.name)
	}

	var out []string
	prefix := strings.ToUpper(dir) + "/"
	for key, real := range b.files {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if strings.Contains(key[len(prefix):], "/") {
			continue
		}
		out = append(out, real)
	}
	sort.Strings(out)
	return out, nil
}

// Close releases the underlying archive, if any.
func (b *Bundle) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.closer = nil
	return err
}
