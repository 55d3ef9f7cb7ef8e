// Package artifacts names, stores and expires the files produced by render requests.
package artifacts

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Artifact extensions
const (
	ExtPNG  = ".png"
	ExtHTML = ".html"
)

// NewName returns a fresh random file name with the given extension
func NewName(ext string) string {
	return uuid.NewString() + ext
}

// IsArtifactName reports whether name looks like a file produced by NewName
// for one of the artifact extensions
func IsArtifactName(name string) bool {
	ext := filepath.Ext(name)
	if ext != ExtPNG && ext != ExtHTML {
		return false
	}
	id := strings.TrimSuffix(name, ext)
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
