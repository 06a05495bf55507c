package chat

import (
	"fmt"
	"strings"

	"blusa/internal/llm"
)

// SystemPersona is prepended to every conversational request. Kept in pt-BR
// so the assistant always answers in Brazilian Portuguese.
const SystemPersona = "Você é um assistente prestativo e amigável chamado Seu Blusa. " +
	"Responda sempre em português do Brasil."

// sourceDescription names the content kind inside the contextual prompt.
func sourceDescription(kind LocatorKind) string {
	switch kind {
	case YouTubeURL:
		return "da transcrição do vídeo do YouTube"
	case PDFPath:
		return "do arquivo PDF"
	default:
		return "da página web"
	}
}

// ConversationalPrompt builds a history-grounded request: the system persona,
// the full prior history in order, then the new user turn.
func ConversationalPrompt(history []Turn, userText string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPersona})
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Text})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userText})
	return messages
}

// ContextualPrompt builds a single-shot, content-grounded request. It stands
// alone: no system persona and no prior history, trading persona consistency
// for context-window economy. Content is hard-cut at maxChars.
func ContextualPrompt(kind LocatorKind, locator, content, question string, maxChars int) []llm.Message {
	content = Truncate(content, maxChars)

	var b strings.Builder
	fmt.Fprintf(&b, "Com base no seguinte conteúdo extraído %s '%s':\n", sourceDescription(kind), locator)
	b.WriteString("--- CONTEÚDO ---\n")
	b.WriteString(content)
	b.WriteString("\n--- FIM DO CONTEÚDO ---\n")
	b.WriteString("Responda à pergunta do usuário de forma concisa, em português do Brasil. ")
	b.WriteString("Se a pergunta pedir uma enumeração, use uma lista.\n")
	fmt.Fprintf(&b, "Pergunta: '%s'", question)

	return []llm.Message{{Role: llm.RoleUser, Content: b.String()}}
}

// Truncate cuts text to at most max characters. The cut is a hard one, not
// aligned to any sentence or word boundary.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
