package extract

import (
	"path/filepath"
	"strings"

	"github.com/samu/email-triage/internal/core"
)

// Format identifies a supported upload format, resolved once from the
// filename suffix and then matched exhaustively.
type Format int

const (
	// FormatTxt is a plain UTF-8 text file
	FormatTxt Format = iota
	// FormatPdf is a PDF document
	FormatPdf
	// FormatEml is an RFC 5322 / MIME email message
	FormatEml
)

// String returns the canonical suffix for the format
func (f Format) String() string {
	switch f {
	case FormatTxt:
		return ".txt"
	case FormatPdf:
		return ".pdf"
	case FormatEml:
		return ".eml"
	default:
		return "unknown"
	}
}

// ResolveFormat maps a filename suffix to its Format. Unknown suffixes
// fail with an UnsupportedFormatError naming the rejected filename.
func ResolveFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return FormatTxt, nil
	case ".pdf":
		return FormatPdf, nil
	case ".eml":
		return FormatEml, nil
	default:
		return 0, &core.UnsupportedFormatError{Filename: filename}
	}
}
