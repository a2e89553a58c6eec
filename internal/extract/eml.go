package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/samu/email-triage/internal/core"
)

// extractEml extracts the readable body of a MIME email message.
//
// For multipart messages it walks the part tree depth-first in stored order,
// descending into nested containers such as multipart/alternative inside
// multipart/mixed, and returns the payload of the first text/plain leaf that
// is not an attachment; when no such part exists it returns an empty string,
// which is defined behavior rather than an error. Non-multipart messages
// yield their decoded body.
func (e *Extractor) extractEml(filename string, content []byte) (string, error) {
	entity, err := message.Read(bytes.NewReader(content))
	if err != nil && !message.IsUnknownCharset(err) {
		return "", &core.MalformedDocumentError{Filename: filename, Cause: err}
	}

	mr := entity.MultipartReader()
	if mr == nil {
		body, err := io.ReadAll(entity.Body)
		if err != nil {
			return "", &core.MalformedDocumentError{Filename: filename, Cause: err}
		}
		return string(body), nil
	}

	body, found, err := findPlainPart(mr)
	if err != nil {
		return "", &core.MalformedDocumentError{Filename: filename, Cause: err}
	}
	if !found {
		// No plain-text, non-attachment leaf found
		return "", nil
	}
	return body, nil
}

// findPlainPart scans parts in stored order, recursing into multipart
// containers, and returns the first non-attachment text/plain payload.
func findPlainPart(mr message.MultipartReader) (string, bool, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}

		if sub := part.MultipartReader(); sub != nil {
			body, found, err := findPlainPart(sub)
			if err != nil || found {
				return body, found, err
			}
			continue
		}

		mediaType, _, err := part.Header.ContentType()
		if err != nil {
			continue
		}
		disposition, _, _ := part.Header.ContentDisposition()
		if mediaType == "text/plain" && !strings.EqualFold(disposition, "attachment") {
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", false, err
			}
			return string(body), true, nil
		}
	}
}
