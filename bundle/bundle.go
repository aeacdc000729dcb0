// Package bundle reads a beatmap set from a .osz archive or an unpacked
// directory into memory.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// Bundle is every file of a beatmap set, keyed by its name inside the set.
type Bundle struct {
	Name  string
	files map[string][]byte
}

// Open reads path as a directory when it is one, otherwise as a zip archive.
func Open(path string) (*Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	if info.IsDir() {
		files, err := readDir(path)
		if err != nil {
			return nil, err
		}
		return &Bundle{Name: name, files: files}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := FromZip(data)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	b.Name = name
	return b, nil
}

// FromZip reads an in-memory .osz archive. Directory entries are skipped and
// file names are kept as stored.
func FromZip(data []byte) (*Bundle, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		contents, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		files[f.Name] = contents
	}
	return &Bundle{files: files}, nil
}

// FromMap wraps an existing name to contents mapping.
func FromMap(name string, files map[string][]byte) *Bundle {
	return &Bundle{Name: name, files: files}
}

func readZipFile(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func readDir(dir string) (map[string][]byte, error) {
	files := make(map[string][]byte)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Entries yields every file in name order.
func (b *Bundle) Entries() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for _, name := range slices.Sorted(maps.Keys(b.files)) {
			if !yield(name, b.files[name]) {
				return
			}
		}
	}
}

// Lookup returns the contents of the file stored under exactly name.
func (b *Bundle) Lookup(name string) ([]byte, bool) {
	data, ok := b.files[name]
	return data, ok
}

// Len is the number of files in the bundle.
func (b *Bundle) Len() int { return len(b.files) }
