package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	PublicURL     string
	HostKey       string
	LobbyCode     string
	FilterMode    string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	TimerSeconds  int
	VoteSeconds   int
}

// FromEnv loads .env if present, then reads the environment.
func FromEnv() Config {
	_ = godotenv.Load()
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.PublicURL = getenv("PUBLIC_URL", "http://localhost:"+c.Port)
	c.HostKey = os.Getenv("HOST_KEY")
	c.LobbyCode = os.Getenv("LOBBY_CODE")
	c.FilterMode = getenv("FILTER_MODE", "mild")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	c.OpenAIModel = getenv("OPENAI_MODEL", "gpt-4o-mini")
	c.TimerSeconds = getint("TIMER_SECONDS", 45)
	c.VoteSeconds = getint("VOTE_TIMER_SECONDS", 30)
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
