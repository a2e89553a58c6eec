package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samu/email-triage/internal/core"
	"go.uber.org/zap"
)

// ProcessResponse is the payload returned by POST /api/processar/
type ProcessResponse struct {
	Categoria        string `json:"categoria"`
	RespostaSugerida string `json:"resposta_sugerida"`
	TextoExtraido    string `json:"texto_extraido"`
}

// TriageHandler serves the email classification endpoint
type TriageHandler struct {
	service *core.TriageService
	logger  *zap.Logger
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(service *core.TriageService, logger *zap.Logger) *TriageHandler {
	return &TriageHandler{
		service: service,
		logger:  logger,
	}
}

// ProcessEmail handles POST /api/processar/
func (h *TriageHandler) ProcessEmail(c *gin.Context) {
	input := core.TriageInput{
		Text: c.PostForm("email_text"),
	}

	if fileHeader, err := c.FormFile("email_file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Error("Failed to open uploaded file",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Não foi possível ler o arquivo enviado."})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.logger.Error("Failed to read uploaded file",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Não foi possível ler o arquivo enviado."})
			return
		}

		input.Filename = fileHeader.Filename
		input.FileData = data
	}

	result, err := h.service.Process(c.Request.Context(), input)
	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Triage failed", zap.Int("status", status), zap.Error(err))
		} else {
			h.logger.Warn("Triage rejected", zap.Int("status", status), zap.Error(err))
		}
		c.JSON(status, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		Categoria:        string(result.Category),
		RespostaSugerida: result.SuggestedReply,
		TextoExtraido:    result.ExtractedText,
	})
}

// statusForError maps the service error taxonomy to HTTP status codes
func statusForError(err error) int {
	var validationErr *core.ValidationError
	var formatErr *core.UnsupportedFormatError
	if errors.As(err, &validationErr) || errors.As(err, &formatErr) {
		return http.StatusBadRequest
	}

	var timeoutErr *core.ClassifierTimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout
	}

	var classifierErr *core.ClassifierError
	if errors.As(err, &classifierErr) {
		return http.StatusBadGateway
	}

	// DecodingError, MalformedDocumentError, ExtractionError,
	// ConfigurationError and anything unexpected
	return http.StatusInternalServerError
}
