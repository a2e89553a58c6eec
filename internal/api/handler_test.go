package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samu/email-triage/internal/api"
	"github.com/samu/email-triage/internal/config"
	"github.com/samu/email-triage/internal/core"
	"github.com/samu/email-triage/internal/extract"
	"github.com/samu/email-triage/internal/textproc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	result *core.TriageResult
	err    error
}

func (f *fakeLLM) ClassifyEmail(ctx context.Context, text string) (*core.TriageResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := *f.result
	return &result, nil
}

type fakeSender struct {
	ok           bool
	gotRecipient string
	gotBody      string
}

func (f *fakeSender) Send(ctx context.Context, recipient, subject, body string) bool {
	f.gotRecipient = recipient
	f.gotBody = body
	return f.ok
}

func newTestRouter(llm core.LLMClient, sender core.MailSender) *api.Router {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	service := core.NewTriageService(
		llm,
		extract.NewExtractor(logger),
		textproc.NewNormalizer("portuguese", logger),
		logger,
		time.Second,
	)

	return api.NewRouter(
		api.NewTriageHandler(service, logger),
		api.NewMailHandler(sender, "Resposta Automática", logger),
		config.ServerConfig{},
	)
}

func postForm(t *testing.T, router *api.Router, fields map[string]string, filename string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("email_file", filename)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/processar/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.Engine.ServeHTTP(w, req)
	return w
}

func TestProcessEmailWithTypedText(t *testing.T) {
	llm := &fakeLLM{result: &core.TriageResult{
		Category:       core.CategoryProductive,
		SuggestedReply: "Olá, estamos analisando sua solicitação.",
	}}
	router := newTestRouter(llm, &fakeSender{ok: true})

	w := postForm(t, router, map[string]string{
		"email_text": "Preciso de ajuda com meu pedido, status urgente",
	}, "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Produtivo", resp.Categoria)
	assert.Equal(t, "Olá, estamos analisando sua solicitação.", resp.RespostaSugerida)
	assert.Contains(t, resp.TextoExtraido, "Preciso de ajuda")
}

func TestProcessEmailWithUploadedTxt(t *testing.T) {
	llm := &fakeLLM{result: &core.TriageResult{Category: core.CategoryUnproductive}}
	router := newTestRouter(llm, &fakeSender{ok: true})

	w := postForm(t, router, nil, "agradecimento.txt",
		[]byte("Obrigado pela ajuda, tenha um bom dia!"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Improdutivo", resp.Categoria)
	assert.Equal(t, core.ComposeReply(core.CategoryUnproductive), resp.RespostaSugerida)
}

func TestProcessEmailWithoutInputReturns400(t *testing.T) {
	router := newTestRouter(&fakeLLM{}, &fakeSender{ok: true})

	w := postForm(t, router, nil, "", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestProcessEmailWithUnsupportedFileReturns400(t *testing.T) {
	router := newTestRouter(&fakeLLM{}, &fakeSender{ok: true})

	w := postForm(t, router, nil, "planilha.xlsx", []byte("dados"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "planilha.xlsx")
}

func TestProcessEmailUpstreamFailureReturns502(t *testing.T) {
	llm := &fakeLLM{err: &core.ClassifierError{Detail: "upstream indisponível"}}
	router := newTestRouter(llm, &fakeSender{ok: true})

	w := postForm(t, router, map[string]string{"email_text": "Qualquer coisa"}, "", nil)

	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProcessEmailTimeoutReturns504(t *testing.T) {
	llm := &fakeLLM{err: &core.ClassifierTimeoutError{Timeout: time.Second}}
	router := newTestRouter(llm, &fakeSender{ok: true})

	w := postForm(t, router, map[string]string{"email_text": "Qualquer coisa"}, "", nil)

	require.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestProcessEmailMissingCredentialsReturns500(t *testing.T) {
	llm := &fakeLLM{err: &core.ConfigurationError{Detail: "Chave da API da OpenAI não configurada."}}
	router := newTestRouter(llm, &fakeSender{ok: true})

	w := postForm(t, router, map[string]string{"email_text": "Qualquer coisa"}, "", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSendEmailSuccess(t *testing.T) {
	sender := &fakeSender{ok: true}
	router := newTestRouter(&fakeLLM{}, sender)

	body := `{"destinatario": "cliente@example.com", "mensagem": "Segue a resposta."}`
	req := httptest.NewRequest(http.MethodPost, "/api/enviar-email/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.Engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "status")
	assert.Equal(t, "cliente@example.com", sender.gotRecipient)
	assert.Equal(t, "Segue a resposta.", sender.gotBody)
}

func TestSendEmailDeliveryFailureReturns500(t *testing.T) {
	router := newTestRouter(&fakeLLM{}, &fakeSender{ok: false})

	body := `{"destinatario": "cliente@example.com", "mensagem": "Olá"}`
	req := httptest.NewRequest(http.MethodPost, "/api/enviar-email/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.Engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSendEmailMissingFieldsReturns400(t *testing.T) {
	router := newTestRouter(&fakeLLM{}, &fakeSender{ok: true})

	req := httptest.NewRequest(http.MethodPost, "/api/enviar-email/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.Engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&fakeLLM{}, &fakeSender{ok: true})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.Engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
