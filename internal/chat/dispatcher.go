package chat

import (
	"context"
	"strings"
	"sync"

	"blusa/internal/fetch"
	"blusa/internal/llm"
	"blusa/internal/utils"
)

// Fallback replies when something outside the fetchers breaks.
const (
	msgModelUnavailable = "Desculpe, estou com dificuldade para responder agora. " +
		"Poderia tentar novamente em alguns instantes?"
	msgFetchUnknown = "Desculpe, algo deu errado ao processar esse conteúdo. " +
		"Poderia tentar novamente?"
)

// Fetchers bundles the content capabilities the dispatcher can call, one per
// locator kind.
type Fetchers struct {
	Web     fetch.Fetcher
	YouTube fetch.Fetcher
	PDF     fetch.Fetcher
}

// Dispatcher runs one conversation turn end to end: classify the input,
// fetch content when the message points at some, assemble the model request,
// invoke the model and record the outcome in the session history.
type Dispatcher struct {
	mu       sync.Mutex // serializes turns
	stateMu  sync.Mutex // guards session history and generation
	client   llm.Client
	fetchers Fetchers
	cfg      Config
	logger   *utils.Logger
}

func NewDispatcher(client llm.Client, fetchers Fetchers, cfg Config, logger *utils.Logger) *Dispatcher {
	return &Dispatcher{
		client:   client,
		fetchers: fetchers,
		cfg:      cfg,
		logger:   logger,
	}
}

// Reset returns the session to its initial state. Going through the
// dispatcher keeps the reset ordered against an in-flight turn: the turn's
// outcome is discarded instead of landing in the cleared history.
func (d *Dispatcher) Reset(s *Session) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	s.Reset()
	d.logger.Infof("session %s reset", s.ShortID())
}

// ProcessTurn handles one user message and returns the assistant's reply.
// It must only be called once the session is active; turns are serialized,
// so a second caller blocks until the first finishes.
//
// History is only touched after the outcome of the turn is known, and always
// as the pair (user, rawText) then (assistant, reply). The original message
// is recorded even when an internally rewritten contextual prompt was sent
// to the model. Every non-empty message produces exactly one reply, unless
// the session was reset mid-turn: then the reply is returned but not
// recorded.
func (d *Dispatcher) ProcessTurn(ctx context.Context, s *Session, rawText string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stateMu.Lock()
	if s.State != StateActive {
		d.stateMu.Unlock()
		d.logger.Warnf("ProcessTurn called before onboarding completed (state %s)", s.State)
		return ""
	}
	if strings.TrimSpace(rawText) == "" {
		d.stateMu.Unlock()
		return ""
	}
	generation := s.generation
	history := append([]Turn(nil), s.History...)
	d.stateMu.Unlock()

	locator := Classify(rawText)
	d.logger.Infof("turn classified as %s: %q", locator.Kind, rawText)

	var reply string
	switch locator.Kind {
	case PlainText:
		reply = d.converse(ctx, history, rawText)
	default:
		reply = d.answerFromContent(ctx, locator, rawText)
	}

	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	if s.generation != generation {
		d.logger.Infof("session %s reset during turn; reply not recorded", s.ShortID())
		return reply
	}
	s.append(RoleUser, rawText)
	s.append(RoleAssistant, reply)
	return reply
}

// converse answers from general knowledge, grounded on the full history.
func (d *Dispatcher) converse(ctx context.Context, history []Turn, rawText string) string {
	messages := ConversationalPrompt(history, rawText)
	return d.invokeModel(ctx, messages)
}

// answerFromContent fetches the located content and answers from it. A fetch
// failure ends the turn with the fetcher's message; the model is not called.
// Content-grounded requests deliberately exclude prior history to keep the
// model focused on the fetched material and inside context limits.
func (d *Dispatcher) answerFromContent(ctx context.Context, locator Locator, rawText string) string {
	fetcher := d.fetcherFor(locator.Kind)
	if fetcher == nil {
		d.logger.Errorf("no fetcher configured for locator kind %s", locator.Kind)
		return msgFetchUnknown
	}

	fetchCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeouts.Fetch)
	defer cancel()
	result := fetcher.Fetch(fetchCtx, locator.Value)

	switch {
	case result.OK():
		messages := ContextualPrompt(locator.Kind, locator.Value, result.Content, rawText, d.cfg.Prompt.MaxContentChars)
		return d.invokeModel(ctx, messages)
	case result.Err != "":
		return result.Err
	default:
		// Neither content nor error: treat as failure, never as success.
		d.logger.Errorf("fetcher for %s returned empty result", locator.Kind)
		return msgFetchUnknown
	}
}

func (d *Dispatcher) invokeModel(ctx context.Context, messages []llm.Message) string {
	modelCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeouts.Model)
	defer cancel()

	reply, err := d.client.Invoke(modelCtx, messages)
	if err != nil {
		d.logger.Errorf("model invocation failed: %v", err)
		return msgModelUnavailable
	}
	if strings.TrimSpace(reply) == "" {
		d.logger.Warnf("model returned an empty reply")
		return msgModelUnavailable
	}
	return reply
}

func (d *Dispatcher) fetcherFor(kind LocatorKind) fetch.Fetcher {
	switch kind {
	case WebURL:
		return d.fetchers.Web
	case YouTubeURL:
		return d.fetchers.YouTube
	case PDFPath:
		return d.fetchers.PDF
	}
	return nil
}
