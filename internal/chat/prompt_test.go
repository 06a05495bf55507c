package chat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blusa/internal/chat"
	"blusa/internal/llm"
)

func TestConversationalPrompt(t *testing.T) {
	history := []chat.Turn{
		{Role: chat.RoleUser, Text: "qual a capital do Brasil?"},
		{Role: chat.RoleAssistant, Text: "Brasília."},
	}
	messages := chat.ConversationalPrompt(history, "e a da Argentina?")

	require.Len(t, messages, 4)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, chat.SystemPersona, messages[0].Content)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.Equal(t, "qual a capital do Brasil?", messages[1].Content)
	assert.Equal(t, llm.RoleAssistant, messages[2].Role)
	assert.Equal(t, llm.RoleUser, messages[3].Role)
	assert.Equal(t, "e a da Argentina?", messages[3].Content)
}

func TestConversationalPromptEmptyHistory(t *testing.T) {
	messages := chat.ConversationalPrompt(nil, "oi")
	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
}

func TestContextualPromptStandsAlone(t *testing.T) {
	messages := chat.ContextualPrompt(
		chat.WebURL, "https://example.com", "conteúdo extraído", "qual o resumo?", 4000)

	require.Len(t, messages, 1)
	assert.Equal(t, llm.RoleUser, messages[0].Role)
	assert.Contains(t, messages[0].Content, "https://example.com")
	assert.Contains(t, messages[0].Content, "conteúdo extraído")
	assert.Contains(t, messages[0].Content, "'qual o resumo?'")
	assert.Contains(t, messages[0].Content, "da página web")
	assert.NotContains(t, messages[0].Content, chat.SystemPersona)
}

func TestContextualPromptSourceKinds(t *testing.T) {
	msg := chat.ContextualPrompt(chat.YouTubeURL, "https://youtu.be/x", "c", "q", 4000)
	assert.Contains(t, msg[0].Content, "da transcrição do vídeo do YouTube")

	msg = chat.ContextualPrompt(chat.PDFPath, "doc.pdf", "c", "q", 4000)
	assert.Contains(t, msg[0].Content, "do arquivo PDF")
}

func TestContextualPromptTruncatesContent(t *testing.T) {
	content := strings.Repeat("a", 4000) + "XYZ"
	messages := chat.ContextualPrompt(chat.WebURL, "https://example.com", content, "q", 4000)

	assert.Contains(t, messages[0].Content, strings.Repeat("a", 4000))
	assert.NotContains(t, messages[0].Content, "XYZ")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", chat.Truncate("abc", 10))
	assert.Equal(t, "abc", chat.Truncate("abcdef", 3))
	assert.Len(t, []rune(chat.Truncate(strings.Repeat("ç", 5000), 4000)), 4000)
	assert.Equal(t, "abc", chat.Truncate("abc", 0))
}
