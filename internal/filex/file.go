// Package filex contains filesystem helpers used at startup to lay out the
// data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates base/sub (and parents) if needed and returns its path.
// An empty sub means base itself.
func EnsureDir(base, sub string) (string, error) {
	dir := filepath.Join(base, sub)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Touch creates path when it does not exist and leaves existing content
// untouched.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("touch %s: %w", path, err)
	}
	return f.Close()
}
