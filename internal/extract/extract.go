// Package extract reads uploaded files into attachment descriptors,
// pulling out plain text where the content allows it. Extracted text feeds
// the remote generation request; files that cannot be read as text still
// attach by name.
package extract

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"planfairy/internal/domain"
	"planfairy/internal/render"

	"github.com/google/uuid"
)

// MaxFileTextLen caps the extracted text kept per file. Longer content is
// truncated, matching the limit the generation endpoint applies.
const MaxFileTextLen = 5000

// textExtensions are the file types read verbatim as text.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".rtf": false,
}

// FromFile builds a FileRef for path. Text is populated for text-like
// files; HTML files are reduced to their text content first. Binary or
// unreadable content yields a descriptor with no text rather than an error,
// as long as the file itself exists.
func FromFile(path string) (domain.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileRef{}, fmt.Errorf("reading attachment: %w", err)
	}

	ref := domain.FileRef{
		ID:   uuid.NewString(),
		Name: filepath.Base(path),
		Size: info.Size(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FileRef{}, fmt.Errorf("reading attachment: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".html" || ext == ".htm":
		ref.Text = Truncate(html.UnescapeString(render.StripTags(string(data))), MaxFileTextLen)
	case textExtensions[ext] && looksLikeText(data):
		ref.Text = Truncate(string(data), MaxFileTextLen)
	}

	return ref, nil
}

// Truncate clips s to at most n bytes on a rune boundary.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for !utf8.ValidString(cut) && len(cut) > 0 {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// looksLikeText rejects content with NUL bytes or invalid UTF-8.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return utf8.Valid(data)
}
