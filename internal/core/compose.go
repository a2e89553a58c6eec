package core

const (
	replyProductive   = "Olá! Recebemos sua solicitação e nossa equipe já está analisando. Retornaremos com uma atualização em breve."
	replyUnproductive = "Olá! Agradecemos a sua mensagem. Não é necessária nenhuma ação adicional."
	replyFallback     = "Olá! Recebemos sua mensagem e retornaremos assim que possível."
)

// ComposeReply maps a category to its canned reply text. It is a pure,
// total function: unknown categories map to the generic fallback.
func ComposeReply(category Category) string {
	switch category {
	case CategoryProductive:
		return replyProductive
	case CategoryUnproductive:
		return replyUnproductive
	default:
		return replyFallback
	}
}
