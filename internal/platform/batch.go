package platform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Batch file format
const (
	URLListCommentPrefix = "#"
	URLListPermissions   = 0644
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseURLList splits text into URLs: one per line, blank lines and
// "#" comments skipped, surrounding whitespace removed.
func ParseURLList(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, URLListCommentPrefix) {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}

// ReadURLList reads a UTF-8 batch file
func ReadURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("URL list is not valid UTF-8: %s", path)
	}

	return ParseURLList(string(data)), nil
}

// WriteURLList writes one URL per line, creating the parent directory if needed
func WriteURLList(path string, urls []string) error {
	if err := CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory for URL list: %w", err)
	}

	var b strings.Builder
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		b.WriteString(u)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), URLListPermissions); err != nil {
		return fmt.Errorf("failed to write URL list: %w", err)
	}
	return nil
}
