package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/simp-lee/gohotel/internal/app"
	"github.com/simp-lee/gohotel/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	envPath := flag.String("env", ".env", "optional dotenv file with APP__ overrides")
	flag.Parse()

	// A missing dotenv file is fine; variables may come from the environment.
	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(err) {
		fatal("failed to load env file", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to load config", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		fatal("failed to create app", err)
	}

	if err := a.Run(); err != nil {
		fatal("server error", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
