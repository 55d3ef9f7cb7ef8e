package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

const tempPrefix = ".tmp-"

// ValidateName accepts only a single flat file name
func ValidateName(name string) error {
	switch {
	case name == "", name == ".":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q contains '..'", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

func isTempName(name string) bool {
	return strings.HasPrefix(name, tempPrefix)
}

// IsHidden reports whether name is a dot-file. In-flight temp files and
// internal markers are hidden and never served.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
