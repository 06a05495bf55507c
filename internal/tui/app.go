package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blusa/internal/chat"
	"blusa/internal/utils"
)

const botName = "Seu Blusa"

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	userNameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	botNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	userAvatarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	botAvatarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	inputBackground = lipgloss.AdaptiveColor{Light: "252", Dark: "236"}
	chatBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

type model struct {
	cfg        chat.Config
	logger     *utils.Logger
	session    *chat.Session
	dispatcher *chat.Dispatcher

	width  int
	height int

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	keys     keyMap
	help     help.Model
	showHelp bool

	bubbles []bubble
	sending bool
	errMsg  string
}

// turnDoneMsg delivers a finished turn back to the UI loop. id names the
// placeholder bubble to replace.
type turnDoneMsg struct {
	id    string
	reply string
}

func Run(cfg chat.Config, session *chat.Session, dispatcher *chat.Dispatcher, logger *utils.Logger) error {
	input := textarea.New()
	input.Placeholder = "Digite seu nome ou sua mensagem..."
	input.Prompt = ""
	input.ShowLineNumbers = false
	input.SetHeight(3)
	input.Focus()
	input.FocusedStyle.Base = input.FocusedStyle.Base.Background(inputBackground)
	input.BlurredStyle.Base = input.BlurredStyle.Base.Background(inputBackground)
	input.FocusedStyle.CursorLine = input.FocusedStyle.CursorLine.Background(inputBackground)
	input.BlurredStyle.CursorLine = input.BlurredStyle.CursorLine.Background(inputBackground)

	spin := spinner.New()
	spin.Spinner = spinner.Line
	spin.Style = dimStyle

	m := model{
		cfg:        cfg,
		logger:     logger,
		session:    session,
		dispatcher: dispatcher,
		viewport:   viewport.New(0, 0),
		input:      input,
		spinner:    spin,
		keys:       defaultKeyMap,
		help:       help.New(),
		bubbles: []bubble{
			{ID: utils.NewID("msg"), Sender: botName, Text: chat.GreetingMessage},
		},
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.syncViewport()
		return m, nil

	case turnDoneMsg:
		m.logger.Infof("reply received: %s", previewText(msg.reply, 80))
		m.replaceBubble(msg.id, bubble{ID: msg.id, Sender: botName, Text: msg.reply})
		m.sending = false
		m.syncViewport()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.sending {
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Type == tea.MouseWheelUp || msg.Type == tea.MouseWheelDown {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.layout()
			return m, nil
		case key.Matches(msg, m.keys.Restart):
			m.restart()
			return m, nil
		case key.Matches(msg, m.keys.Newline):
			m.input.InsertString("\n")
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if strings.TrimSpace(m.input.Value()) == "" {
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		case key.Matches(msg, m.keys.Send):
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit handles the enter key: commands, onboarding input or a chat turn.
func (m model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if strings.HasPrefix(text, "/") {
		return m.applyCommand(text)
	}
	// One turn in flight at a time; extra sends wait for the reply. The typed
	// text stays in the input so nothing is lost.
	if m.session.State == chat.StateActive && m.sending {
		m.errMsg = "Aguarde a resposta anterior antes de enviar outra mensagem."
		return m, nil
	}
	m.input.SetValue("")
	m.errMsg = ""
	m.logger.Infof("message submitted: %s", previewText(text, 80))

	if m.session.State != chat.StateActive {
		m.appendBubble(bubble{ID: utils.NewID("msg"), Sender: m.userDisplayName(text), Text: text, FromUser: true})
		reply := chat.Onboard(m.session, text)
		if reply != "" {
			m.appendBubble(bubble{ID: utils.NewID("msg"), Sender: botName, Text: reply})
		}
		m.syncViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.appendBubble(bubble{ID: utils.NewID("msg"), Sender: m.session.UserName, Text: text, FromUser: true})
	placeholderID := utils.NewID("msg")
	m.appendBubble(bubble{ID: placeholderID, Sender: botName, Text: thinkingText(text), Pending: true})
	m.sending = true
	m.syncViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(m.processTurnCmd(placeholderID, text), m.spinner.Tick)
}

func (m model) applyCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	command := strings.TrimLeft(parts[0], "/")
	switch strings.ToLower(command) {
	case "restart":
		m.input.SetValue("")
		m.restart()
		return m, nil
	case "help":
		m.input.SetValue("")
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	case "pdf":
		if len(parts) < 2 {
			m.errMsg = "Uso: /pdf <caminho do arquivo>"
			return m, nil
		}
		// Re-submit the path as a regular message; the classifier takes it
		// from there.
		m.input.SetValue(strings.Join(parts[1:], " "))
		return m.submit()
	case "quit", "q", "exit":
		return m, tea.Quit
	default:
		m.errMsg = "Comando desconhecido: " + input
		return m, nil
	}
}

// processTurnCmd runs the dispatcher off the UI loop. The session is only
// mutated inside ProcessTurn, which serializes turns itself.
func (m model) processTurnCmd(placeholderID, text string) tea.Cmd {
	dispatcher := m.dispatcher
	session := m.session
	return func() tea.Msg {
		reply := dispatcher.ProcessTurn(context.Background(), session, text)
		return turnDoneMsg{id: placeholderID, reply: reply}
	}
}

// thinkingText picks the placeholder wording: analyzing for content turns,
// thinking for plain conversation.
func thinkingText(text string) string {
	if chat.Classify(text).Kind != chat.PlainText {
		return "analisando o conteúdo..."
	}
	return "pensando..."
}

func (m *model) restart() {
	// The dispatcher orders the reset against a turn still in flight.
	m.dispatcher.Reset(m.session)
	m.sending = false
	m.errMsg = ""
	m.bubbles = []bubble{
		{ID: utils.NewID("msg"), Sender: botName, Text: chat.GreetingMessage},
	}
	m.syncViewport()
	m.viewport.GotoTop()
}

// userDisplayName labels user bubbles before a name is confirmed.
func (m model) userDisplayName(fallback string) string {
	if m.session.UserName != "" {
		return m.session.UserName
	}
	if m.session.State == chat.StateAwaitingName {
		return strings.TrimSpace(fallback)
	}
	return "Você"
}

func (m *model) appendBubble(b bubble) {
	m.bubbles = append(m.bubbles, b)
}

func (m *model) replaceBubble(id string, b bubble) {
	for i := range m.bubbles {
		if m.bubbles[i].ID == id {
			m.bubbles[i] = b
			return
		}
	}
	// Placeholder gone (restart happened while the turn was in flight); the
	// reply belongs to the discarded conversation, drop it.
}

func (m *model) layout() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	height := m.height - m.input.Height() - 6
	if m.showHelp {
		height -= 2
	}
	if height < 5 {
		height = 5
	}
	m.viewport.Width = width
	m.viewport.Height = height
	m.input.SetWidth(width)
}

func (m *model) syncViewport() {
	m.viewport.SetContent(renderChatLog(m.bubbles, m.viewport.Width))
}

func (m model) View() string {
	header := headerStyle.Render("Chat com " + botName)
	status := ""
	if m.sending {
		status = dimStyle.Render(m.spinner.View() + " aguardando resposta")
	} else if m.session.UserName != "" {
		status = dimStyle.Render("conversando com " + m.session.UserName + " · sessão " + m.session.ShortID())
	}
	errLine := ""
	if m.errMsg != "" {
		errLine = errStyle.Render(m.errMsg)
	}
	footer := footerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	if m.showHelp {
		footer = footerStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
	}

	lines := []string{
		header,
		status,
		chatBoxStyle.Render(m.viewport.View()),
		errLine,
		m.input.View(),
		footer,
	}
	return strings.Join(lines, "\n")
}
