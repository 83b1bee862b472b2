package survey

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrUnsupported indicates a file format no reader is registered for.
var ErrUnsupported = errors.New("unsupported survey format")

// NotFoundError indicates the backing data file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("survey data not found at %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err == nil {
		return fs.ErrNotExist
	}
	return e.Err
}

// ColumnError indicates an expected column is absent from the loaded table.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column '%s' not found in dataset", e.Column)
}
