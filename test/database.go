// Package test provides helpers shared by the test suites.
package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path for a database file unique to the test. The file
// lives in the test's temporary directory and is cleaned up with it.
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}
