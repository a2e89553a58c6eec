package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samu/email-triage/internal/core"
	"go.uber.org/zap"
)

// SendEmailRequest is the payload accepted by POST /api/enviar-email/
type SendEmailRequest struct {
	Destinatario string `json:"destinatario" binding:"required"`
	Mensagem     string `json:"mensagem" binding:"required"`
}

// MailHandler serves the outbound email endpoint
type MailHandler struct {
	sender  core.MailSender
	subject string
	logger  *zap.Logger
}

// NewMailHandler creates a new mail handler
func NewMailHandler(sender core.MailSender, subject string, logger *zap.Logger) *MailHandler {
	return &MailHandler{
		sender:  sender,
		subject: subject,
		logger:  logger,
	}
}

// SendEmail handles POST /api/enviar-email/
func (h *MailHandler) SendEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Requisição inválida: destinatario e mensagem são obrigatórios."})
		return
	}

	if !h.sender.Send(c.Request.Context(), req.Destinatario, h.subject, req.Mensagem) {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Falha ao enviar o email."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Email enviado com sucesso."})
}
