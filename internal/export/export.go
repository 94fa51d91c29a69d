// Package export turns rendered plan fragments into shareable artifacts:
// Word-compatible documents on disk and HTML on the system clipboard.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrClipboard reports that the system clipboard was not usable.
var ErrClipboard = fmt.Errorf("clipboard unavailable")

const documentStyle = `body { font-family: Georgia, serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; margin: 0.5em 0; }
th, td { border: 1px solid #444; padding: 4px 8px; text-align: left; vertical-align: top; }
th { background: #eee; }
h1, h2, h3 { page-break-after: avoid; }
table { page-break-inside: avoid; }`

// BuildDocument wraps a plan fragment in a standalone HTML shell that Word
// opens cleanly: charset declaration plus minimal print styling for the
// tables and headings the renderer emits.
func BuildDocument(fragment string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>\n")
	b.WriteString(documentStyle)
	b.WriteString("\n</style></head><body>")
	b.WriteString(fragment)
	b.WriteString("</body></html>")
	return b.String()
}

// WriteDoc writes the fragment as a Word-compatible document at path,
// appending the .doc extension when missing.
func WriteDoc(path, fragment string) (string, error) {
	if !strings.HasSuffix(path, ".doc") {
		path += ".doc"
	}
	if err := os.WriteFile(path, []byte(BuildDocument(fragment)), 0o644); err != nil {
		return "", fmt.Errorf("writing document %s: %w", path, err)
	}
	return path, nil
}

// CopyHTML places the raw fragment on the system clipboard.
func CopyHTML(fragment string) error {
	if err := clipboard.WriteAll(fragment); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
