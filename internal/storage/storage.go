// Package storage writes the exported dataset to disk.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// StorageError wraps storage errors with operation and path context.
// Use errors.As() to extract this error type:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s %s: %v\n", storErr.Op, storErr.Path, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("encode", "write").
	Op string
	// Path is the target file.
	Path string
	// Err is the underlying error that occurred.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Encode renders v as UTF-8 JSON with a two-space indent. Non-ASCII and HTML
// characters are written literally and there is no trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON encodes v and atomically replaces path with the result. The file
// at path is either the previous content or the complete new document.
func WriteJSON(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return &StorageError{Op: "encode", Path: path, Err: err}
	}

	// renameio: temp file in the same directory, fsync, rename.
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
