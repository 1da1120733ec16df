package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/caseclosed/internal/agent"
	"github.com/myrjola/caseclosed/internal/db"
	"github.com/myrjola/caseclosed/internal/envstruct"
	"github.com/myrjola/caseclosed/internal/errors"
	"github.com/myrjola/caseclosed/internal/game"
	"github.com/myrjola/caseclosed/internal/logging"
	"github.com/myrjola/caseclosed/internal/pprofserver"
	"github.com/myrjola/caseclosed/internal/repositories"
)

type config struct {
	Addr      string `env:"CASECLOSED_ADDR" envDefault:"localhost:4000"`
	PprofPort string `env:"CASECLOSED_PPROF_PORT" envDefault:":6060"`
	SQLiteURL string `env:"CASECLOSED_SQLITE_URL" envDefault:"./caseclosed.sqlite"`
	// AIBackend selects the generation pipeline: "openai", "gemini" or
	// "fake" for running locally without an API key.
	AIBackend string `env:"CASECLOSED_AI_BACKEND" envDefault:"openai"`
	OpenAIKey string `env:"OPENAI_API_KEY" envDefault:""`
	GeminiKey string `env:"GEMINI_API_KEY" envDefault:""`
}

type application struct {
	logger         *slog.Logger
	engine         *game.Engine
	games          *repositories.GameRepository
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	// The .env file is optional; deployments configure the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server error", errors.SlogError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	dbs, err := db.New(cfg.SQLiteURL)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database", slog.String("url", cfg.SQLiteURL))

	pipeline, err := newPipeline(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "initialise generation pipeline")
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	app := application{
		logger:         logger,
		engine:         game.NewEngine(pipeline, logger),
		games:          repositories.NewGameRepository(dbs, logger),
		sessionManager: sessionManager,
		htmx:           htmx.New(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func newPipeline(ctx context.Context, cfg config) (agent.Pipeline, error) {
	switch cfg.AIBackend {
	case "gemini":
		return agent.NewGeminiPipeline(ctx, cfg.GeminiKey)
	case "openai":
		return agent.NewOpenAIPipeline(cfg.OpenAIKey), nil
	case "fake":
		return agent.NewFakePipeline(), nil
	default:
		return nil, errors.New("unknown AI backend", slog.String("backend", cfg.AIBackend))
	}
}
