// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsutil resolves user-supplied paths and derives output names from
// source documents.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docconv/pkg/types"
)

// Resolve expands a leading "~" to the user's home directory and returns the
// absolute, cleaned path.
func Resolve(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

// Stem returns the file name without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Sibling returns a path next to src named <stem><suffix>.
func Sibling(src, suffix string) string {
	return filepath.Join(filepath.Dir(src), Stem(src)+suffix)
}

// RequireFile resolves path and checks that it exists. A missing file yields
// an error wrapping types.ErrInputNotFound.
func RequireFile(path string) (string, error) {
	abs, err := Resolve(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", types.ErrInputNotFound, path)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	return abs, nil
}
