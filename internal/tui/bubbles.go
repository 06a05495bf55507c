package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// bubble is one rendered message in the chat log. Bubbles are display state
// only; the model-visible history lives in the session and never contains
// the thinking placeholder.
type bubble struct {
	ID       string
	Sender   string
	Text     string
	FromUser bool
	Pending  bool
}

// initials returns the avatar text for a sender, like the circle avatars in
// a graphical chat.
func initials(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	runes := []rune(strings.ToUpper(name))
	if len(runes) < 2 {
		return string(runes)
	}
	return string(runes[:2])
}

func renderBubble(b bubble, width int) string {
	if width < 20 {
		width = 20
	}
	avatar := botAvatarStyle.Render("[:]")
	nameStyle := botNameStyle
	if b.FromUser {
		avatar = userAvatarStyle.Render("(" + initials(b.Sender) + ")")
		nameStyle = userNameStyle
	}
	header := ansi.Truncate(avatar+" "+nameStyle.Render(b.Sender), width, "…")

	text := b.Text
	if b.Pending {
		text = dimStyle.Render(text)
	}
	body := lipgloss.NewStyle().Width(width - 4).Render(text)
	body = indentLines(body, "    ")
	return header + "\n" + body
}

func renderChatLog(bubbles []bubble, width int) string {
	blocks := make([]string, 0, len(bubbles))
	for _, b := range bubbles {
		blocks = append(blocks, renderBubble(b, width))
	}
	return strings.Join(blocks, "\n\n")
}

func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func previewText(text string, limit int) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
