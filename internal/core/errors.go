package core

import (
	"fmt"
	"time"
)

// ValidationError reports a request whose submitted content is missing or
// empty. The caller must resubmit with valid input.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// UnsupportedFormatError reports an uploaded file whose extension is not
// one of the supported formats.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("formato de arquivo não suportado: %s", e.Filename)
}

// DecodingError reports file content that is not valid UTF-8 text.
type DecodingError struct {
	Filename string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("o arquivo %s não contém texto UTF-8 válido", e.Filename)
}

// MalformedDocumentError reports a file that could not be parsed as the
// document type its extension declares.
type MalformedDocumentError struct {
	Filename string
	Cause    error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("documento inválido %s: %v", e.Filename, e.Cause)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// ExtractionError wraps any failure raised while extracting text from an
// uploaded file. Callers never see raw library errors.
type ExtractionError struct {
	Filename string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("erro ao processar o arquivo %s: %v", e.Filename, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ConfigurationError reports missing credentials or other operator-actionable
// configuration problems. It is never retried.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return e.Detail
}

// ClassifierTimeoutError reports that the classification call exceeded its
// configured deadline.
type ClassifierTimeoutError struct {
	Timeout time.Duration
}

func (e *ClassifierTimeoutError) Error() string {
	return fmt.Sprintf("o serviço de classificação não respondeu dentro de %s", e.Timeout)
}

// ClassifierError wraps a non-success response or unparseable payload from
// the classification service.
type ClassifierError struct {
	Detail string
	Cause  error
}

func (e *ClassifierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("erro na comunicação com o serviço de classificação: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("erro na comunicação com o serviço de classificação: %s", e.Detail)
}

func (e *ClassifierError) Unwrap() error {
	return e.Cause
}
