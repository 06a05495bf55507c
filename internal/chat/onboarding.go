package chat

import "strings"

// Replies emitted by the onboarding flow. User-facing text is pt-BR, like
// the rest of the assistant's voice.
const (
	GreetingMessage = "Olá! Eu sou o Seu Blusa. Para começarmos, qual o seu nome?"
	retryNameReply  = "Sem problemas! Então me diga: como você gostaria de ser chamado?"
)

var affirmatives = map[string]struct{}{
	"sim":      {},
	"s":        {},
	"ok":       {},
	"claro":    {},
	"yes":      {},
	"simsim":   {},
	"pode ser": {},
}

func isAffirmative(text string) bool {
	_, ok := affirmatives[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// Onboard advances the name-collection flow with one user input and returns
// the assistant's reply. It must only be called while the session is not yet
// active. Empty or whitespace-only input is a no-op and returns an empty
// reply: no state changes and nothing is recorded.
//
// Onboarding exchanges never touch History; the model only ever sees turns
// produced after the session became active.
func Onboard(s *Session, input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	switch s.State {
	case StateAwaitingName:
		s.PendingName = trimmed
		s.State = StateAwaitingConfirmation
		return "Prazer! Posso te chamar de " + trimmed + "? (sim/não)"
	case StateAwaitingConfirmation:
		if isAffirmative(trimmed) {
			s.UserName = s.PendingName
			s.PendingName = ""
			s.State = StateActive
			return "Bem-vindo(a), " + s.UserName + "! Pode me fazer perguntas, " +
				"mandar o link de uma página ou vídeo do YouTube para eu analisar, " +
				"ou enviar o caminho de um arquivo PDF."
		}
		s.PendingName = ""
		s.State = StateAwaitingName
		return retryNameReply
	}
	return ""
}
