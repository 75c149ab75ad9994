// Package export implements the two ways a generated post leaves the app:
// the system clipboard and a markdown file with a fixed name.
package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

// FileName is static: the download always lands under the same name and
// overwrites the previous export.
const FileName = "blog-post.md"

// ErrNothingToExport is returned when no generated post exists yet.
var ErrNothingToExport = errors.New("export: no generated post")

// CopyToClipboard places the raw generated markdown on the system clipboard.
func CopyToClipboard(post string) error {
	if strings.TrimSpace(post) == "" {
		return ErrNothingToExport
	}
	return clipboard.WriteAll(post)
}

// WriteMarkdownFile writes the raw generated markdown into dir (the working
// directory when empty) and returns the path written.
func WriteMarkdownFile(dir, post string) (string, error) {
	if strings.TrimSpace(post) == "" {
		return "", ErrNothingToExport
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(post), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
