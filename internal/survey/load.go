package survey

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Reader decodes one on-disk format into a header and raw text records.
type Reader interface {
	CanRead(filename string) bool
	Read(path string) (header []string, records [][]string, err error)
}

var registry []Reader

// Register adds a format reader. Later registrations do not override earlier ones.
func Register(r Reader) {
	registry = append(registry, r)
}

// Load reads the survey table at path. A missing file yields *NotFoundError.
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat survey: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("load survey: %s is a directory", path)
	}
	r := readerFor(path)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
	header, records, err := r.Read(path)
	if err != nil {
		return nil, err
	}
	return NewTable(filepath.Base(path), header, records), nil
}

func readerFor(path string) Reader {
	for _, r := range registry {
		if r.CanRead(path) {
			return r
		}
	}
	// Fallback to CSV for extensionless exports.
	if filepath.Ext(path) == "" {
		return csvReader{}
	}
	return nil
}

func hasSuffix(path string, exts ...string) bool {
	name := strings.ToLower(path)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}
