package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"partyhub/internal/config"
	"partyhub/internal/content"
	"partyhub/internal/game"
	"partyhub/internal/httpapi"
	"partyhub/internal/moderation"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Party Hub - host-led party game session server

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  PUBLIC_URL          Public base URL used in the join link/QR code
  HOST_KEY            Key required for the host console API (empty = open)
  LOBBY_CODE          Fixed lobby code (default: random per start)
  FILTER_MODE         Content filter: off, mild, or strict (default: mild)
  OPENAI_API_KEY      Enables OpenAI moderation and prompt regeneration
  OPENAI_BASE_URL     Custom OpenAI API base URL (optional)
  OPENAI_MODEL        Model for prompt regeneration (default: gpt-4o-mini)
  TIMER_SECONDS       Default round timer (default: 45)
  VOTE_TIMER_SECONDS  Default vote timer (default: 30)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Party Hub %s\n", version)
		return
	}

	cfg := config.FromEnv()
	if *portFlag != "" {
		cfg.Port = *portFlag
	}

	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)
	log := zerologlog.Logger

	lobbyCode := cfg.LobbyCode
	if lobbyCode == "" {
		lobbyCode = newLobbyCode()
	}

	var modClient *moderation.Client
	var regen *content.Regenerator
	if cfg.OpenAIKey != "" {
		modClient = moderation.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
		regen = content.NewRegenerator(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	}
	policy := moderation.New(cfg.FilterMode, modClient)
	catalog := content.NewCatalog()

	settings := game.DefaultSettings()
	settings.TimerSeconds = cfg.TimerSeconds
	settings.VoteTimerSeconds = cfg.VoteSeconds

	sess := game.New(catalog, policy,
		game.WithLobbyCode(lobbyCode),
		game.WithSettings(settings),
		game.WithLogger(log),
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/state") || path == "/health" {
			// Poll endpoints would drown the log.
			return
		}
		log.Info().
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})

	joinURL := strings.TrimRight(cfg.PublicURL, "/") + "/join?code=" + lobbyCode
	srv := httpapi.New(sess, catalog, regen, cfg.HostKey, joinURL, log)
	srv.Mount(r)

	log.Info().Str("port", cfg.Port).Str("lobbyCode", lobbyCode).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newLobbyCode avoids ambiguous characters (0/O, 1/I).
func newLobbyCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, 4)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
