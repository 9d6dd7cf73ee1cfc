package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/ask-the-audience/auth"
	"github.com/danielhkuo/ask-the-audience/cliparse"
	"github.com/danielhkuo/ask-the-audience/quizstore"
	"github.com/danielhkuo/ask-the-audience/ratelimit"
	"github.com/danielhkuo/ask-the-audience/realtime"
	"github.com/danielhkuo/ask-the-audience/router"
	"github.com/danielhkuo/ask-the-audience/session"
)

func main() {
	// Local development keeps settings in a .env file; in production
	// the environment is set by the platform.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using environment as-is")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	signer, err := auth.NewAckSigner(cfg.HMACSecret)
	if err != nil {
		slog.Error("signer setup failed", "error", err)
		os.Exit(1)
	}

	store := session.NewStore()
	limiter := ratelimit.New(cfg.EnableRateLimit)
	hub := realtime.NewHub(store, cfg, limiter, signer)

	quiz := quizstore.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.QuizTimeout)
	if !quiz.Configured() {
		slog.Info("quiz source not configured, quiz loading disabled")
	}

	// Create router
	handler := router.NewRouter(store, cfg, hub, quiz)

	// Create server
	server := http.Server{
		Handler: handler,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
