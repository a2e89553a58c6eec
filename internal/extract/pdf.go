package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/samu/email-triage/internal/core"
	"go.uber.org/zap"
)

// extractPdf concatenates the plain text of every page in document order.
// No separator is inserted between pages.
func (e *Extractor) extractPdf(filename string, content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &core.MalformedDocumentError{Filename: filename, Cause: err}
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Skipping unreadable PDF page",
				zap.String("filename", filename),
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		text.WriteString(pageText)
	}

	return text.String(), nil
}
