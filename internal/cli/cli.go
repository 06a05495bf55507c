package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"blusa/internal/chat"
	"blusa/internal/fetch"
	"blusa/internal/llm"
	"blusa/internal/tui"
	"blusa/internal/utils"
)

func Run() int {
	fs := flag.NewFlagSet("blusa", flag.ContinueOnError)
	envFile := fs.String("env", ".env", "env file with GROQ_API_KEY")
	modelName := fs.String("model", "", "override the Groq model")
	logFile := fs.String("log-file", "", "log file path")
	verbose := fs.Bool("verbose", false, "debug logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}

	// Missing .env is fine as long as the key is already in the environment.
	_ = godotenv.Load(*envFile)

	cfg := chat.DefaultConfig()
	cfg.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.Groq.Model = v
	}
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.Groq.BaseURL = v
	}
	if *modelName != "" {
		cfg.Groq.Model = *modelName
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	if strings.TrimSpace(cfg.Groq.APIKey) == "" {
		fmt.Fprintln(os.Stderr, "ERRO: a chave da API da Groq não foi encontrada. "+
			"Crie um arquivo .env e defina a variável 'GROQ_API_KEY'.")
		return 1
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	defer logger.Sync()
	logger.Infof("starting blusa (model %s)", cfg.Groq.Model)

	client, err := llm.NewGroqClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.BaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERRO: %v\n", err)
		return 1
	}

	fetchers := chat.Fetchers{
		Web:     fetch.NewWebFetcher(cfg.Timeouts.Fetch, logger),
		YouTube: fetch.NewYouTubeFetcher(cfg.Timeouts.Fetch, cfg.Fetch.Languages, logger),
		PDF:     fetch.NewPDFFetcher(logger),
	}
	dispatcher := chat.NewDispatcher(client, fetchers, cfg, logger)
	session := chat.NewSession()
	logger.Infof("session %s created", session.ShortID())

	if err := tui.Run(cfg, session, dispatcher, logger); err != nil {
		logger.Errorf("tui error: %v", err)
		fmt.Fprintf(os.Stderr, "ERRO: %v\n", err)
		return 1
	}
	return 0
}
