package chat

import "time"

type Config struct {
	Groq struct {
		APIKey  string
		Model   string
		BaseURL string
	}
	Timeouts struct {
		Fetch time.Duration
		Model time.Duration
	}
	Fetch struct {
		Languages []string
	}
	Prompt struct {
		MaxContentChars int
	}
	Logging struct {
		Level string
		File  string
	}
}

func DefaultConfig() Config {
	cfg := Config{}
	cfg.Groq.Model = "llama-3.3-70b-versatile"
	cfg.Groq.BaseURL = ""
	cfg.Timeouts.Fetch = 30 * time.Second
	cfg.Timeouts.Model = 60 * time.Second
	cfg.Fetch.Languages = []string{"pt", "en", "es"}
	cfg.Prompt.MaxContentChars = 4000
	cfg.Logging.Level = "info"
	cfg.Logging.File = "chat_app.log"
	return cfg
}
