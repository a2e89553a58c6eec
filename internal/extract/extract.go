// Package extract turns uploaded file bytes into plain text based on the
// declared filename, dispatching on the file extension.
package extract

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samu/email-triage/internal/core"
	"go.uber.org/zap"
)

// Extractor implements the core.TextExtractor port
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		logger: logger,
	}
}

// Extract produces the plain text of an uploaded file. Library failures
// never escape raw: they come back as one of the typed extraction errors,
// with ExtractionError as the catch-all.
func (e *Extractor) Extract(filename string, content []byte) (text string, err error) {
	format, err := ResolveFormat(filename)
	if err != nil {
		return "", err
	}

	// Some document parsers signal malformed input by panicking
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Extraction panicked",
				zap.String("filename", filename),
				zap.Any("cause", r))
			text = ""
			err = &core.ExtractionError{Filename: filename, Cause: fmt.Errorf("%v", r)}
		}
	}()

	switch format {
	case FormatTxt:
		text, err = e.extractTxt(filename, content)
	case FormatPdf:
		text, err = e.extractPdf(filename, content)
	case FormatEml:
		text, err = e.extractEml(filename, content)
	}

	if err != nil {
		if isTypedExtractionError(err) {
			return "", err
		}
		return "", &core.ExtractionError{Filename: filename, Cause: err}
	}

	e.logger.Debug("File extracted",
		zap.String("filename", filename),
		zap.String("format", format.String()),
		zap.Int("text_size", len(text)))

	return text, nil
}

// extractTxt decodes the bytes as UTF-8 text verbatim
func (e *Extractor) extractTxt(filename string, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", &core.DecodingError{Filename: filename}
	}
	return string(content), nil
}

func isTypedExtractionError(err error) bool {
	var decodingErr *core.DecodingError
	var malformedErr *core.MalformedDocumentError
	var extractionErr *core.ExtractionError
	return errors.As(err, &decodingErr) ||
		errors.As(err, &malformedErr) ||
		errors.As(err, &extractionErr)
}
