// Package atomicfile provides write-if-changed, crash-safe file writes
// shared by the metadata store, the archive store, and the fragment
// writer, built on natefinch/atomic's temp-file-then-rename primitive.
package atomicfile

import (
	"bytes"
	"os"

	"github.com/natefinch/atomic"
)

// WriteFile atomically replaces the file at path with data. Partial writes
// never land at path: the implementation writes to a temp file in the same
// directory and renames it into place.
func WriteFile(path string, data []byte) error {
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// WriteIfChanged writes data to path only if the file's current contents
// differ. It reports whether a write occurred.
func WriteIfChanged(path string, data []byte) (changed bool, err error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	if err := WriteFile(path, data); err != nil {
		return false, err
	}
	return true, nil
}
