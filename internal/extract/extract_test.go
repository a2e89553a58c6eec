package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/samu/email-triage/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExtractor() *Extractor {
	return NewExtractor(zap.NewNop())
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		filename string
		format   Format
		wantErr  bool
	}{
		{"email.txt", FormatTxt, false},
		{"relatorio.PDF", FormatPdf, false},
		{"mensagem.eml", FormatEml, false},
		{"planilha.xlsx", 0, true},
		{"sem-extensao", 0, true},
	}

	for _, tt := range tests {
		format, err := ResolveFormat(tt.filename)
		if tt.wantErr {
			var formatErr *core.UnsupportedFormatError
			require.True(t, errors.As(err, &formatErr), "filename %q", tt.filename)
			assert.Equal(t, tt.filename, formatErr.Filename)
		} else {
			require.NoError(t, err, "filename %q", tt.filename)
			assert.Equal(t, tt.format, format)
		}
	}
}

func TestExtractTxtIsIdentityDecode(t *testing.T) {
	e := newTestExtractor()

	content := "Preciso de ajuda com meu pedido, status urgente.\nObrigado."
	text, err := e.Extract("pedido.txt", []byte(content))

	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestExtractTxtRejectsInvalidUTF8(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract("binario.txt", []byte{0xff, 0xfe, 0x00, 0x41})

	var decodingErr *core.DecodingError
	require.True(t, errors.As(err, &decodingErr))
	assert.Equal(t, "binario.txt", decodingErr.Filename)
}

func TestExtractUnsupportedFormatNamesFilename(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract("contrato.docx", []byte("qualquer coisa"))

	var formatErr *core.UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "contrato.docx", formatErr.Filename)
	assert.Contains(t, err.Error(), "contrato.docx")
}

func TestExtractEmlMultipartSkipsAttachment(t *testing.T) {
	e := newTestExtractor()

	raw := strings.Join([]string{
		"From: cliente@example.com",
		"To: suporte@example.com",
		"Subject: Pedido",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="fronteira"`,
		"",
		"--fronteira",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		"Corpo principal do email.",
		"--fronteira",
		`Content-Type: text/plain; charset="utf-8"`,
		`Content-Disposition: attachment; filename="notas.txt"`,
		"",
		"Conteúdo do anexo.",
		"--fronteira--",
		"",
	}, "\r\n")

	text, err := e.Extract("mensagem.eml", []byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "Corpo principal do email.", strings.TrimSpace(text))
	assert.NotContains(t, text, "anexo")
}

func TestExtractEmlNestedMultipartFindsPlainTextLeaf(t *testing.T) {
	e := newTestExtractor()

	// multipart/mixed wrapping a multipart/alternative body plus an
	// attachment, the usual shape of messages with both HTML and anexos.
	raw := strings.Join([]string{
		"From: cliente@example.com",
		"To: suporte@example.com",
		"Subject: Fatura",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="externa"`,
		"",
		"--externa",
		`Content-Type: multipart/alternative; boundary="interna"`,
		"",
		"--interna",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		"Segue em anexo a fatura do mês, favor confirmar o pagamento.",
		"--interna",
		`Content-Type: text/html; charset="utf-8"`,
		"",
		"<p>Segue em anexo a fatura do mês.</p>",
		"--interna--",
		"--externa",
		`Content-Type: application/pdf`,
		`Content-Disposition: attachment; filename="fatura.pdf"`,
		"",
		"%PDF-falso",
		"--externa--",
		"",
	}, "\r\n")

	text, err := e.Extract("fatura.eml", []byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "Segue em anexo a fatura do mês, favor confirmar o pagamento.", strings.TrimSpace(text))
	assert.NotContains(t, text, "<p>")
}

func TestExtractEmlMultipartWithoutPlainTextReturnsEmpty(t *testing.T) {
	e := newTestExtractor()

	raw := strings.Join([]string{
		"From: cliente@example.com",
		"Subject: Newsletter",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="fronteira"`,
		"",
		"--fronteira",
		`Content-Type: text/html; charset="utf-8"`,
		"",
		"<p>Apenas HTML aqui.</p>",
		"--fronteira--",
		"",
	}, "\r\n")

	text, err := e.Extract("newsletter.eml", []byte(raw))

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractEmlNonMultipartReturnsBody(t *testing.T) {
	e := newTestExtractor()

	raw := strings.Join([]string{
		"From: cliente@example.com",
		"Subject: Agradecimento",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		"Obrigado pela ajuda, tenha um bom dia!",
		"",
	}, "\r\n")

	text, err := e.Extract("agradecimento.eml", []byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "Obrigado pela ajuda, tenha um bom dia!", strings.TrimSpace(text))
}

func TestExtractPdfRejectsMalformedDocument(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract("falso.pdf", []byte("isto não é um PDF"))

	require.Error(t, err)
	var malformedErr *core.MalformedDocumentError
	var extractionErr *core.ExtractionError
	assert.True(t, errors.As(err, &malformedErr) || errors.As(err, &extractionErr),
		"expected a typed extraction error, got %T", err)
}
