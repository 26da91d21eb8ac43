package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/studytok/api/config"
	"github.com/studytok/api/extract"
	"github.com/studytok/api/generate"
	"github.com/studytok/api/handlers"
	"github.com/studytok/api/logger"
	"github.com/studytok/api/middleware"
	"github.com/studytok/api/session"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" && !config.Env.IsDevelopment {
		logMode = "production"
	}
	appLog, err := logger.New(logMode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLog.Sync()

	// Initialize database connection
	config.Connect()

	sessions := session.NewManager()
	hub := handlers.NewEventHub()

	DBHandler := &handlers.DBHandler{DB: config.Database, Log: appLog}
	importHandler := &handlers.ImportHandler{
		DB:        config.Database,
		Extractor: extract.NewService(),
		Generator: generate.NewService(),
		Log:       appLog.With("component", "import"),
	}
	sessionHandler := &handlers.SessionHandler{
		DB:           config.Database,
		Sessions:     sessions,
		Hub:          hub,
		AdvanceDelay: config.Env.AdvanceDelay,
		Log:          appLog.With("component", "session"),
	}

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/signup", DBHandler.Signup)
	mux.HandleFunc("POST /api/auth/signin", DBHandler.Signin)
	mux.HandleFunc("POST /api/auth/signout", DBHandler.Signout)
	mux.HandleFunc("GET /api/users/me", middleware.RequireUser(DBHandler.GetCurrentUser))
	mux.HandleFunc("GET /api/users/me/progress", middleware.RequireUser(DBHandler.GetMyProgress))

	// Decks
	mux.HandleFunc("GET /api/decks", middleware.OptionalUser(DBHandler.GetDecks))
	mux.HandleFunc("GET /api/decks/{deckID}", middleware.OptionalUser(DBHandler.GetDeckByID))
	mux.HandleFunc("GET /api/decks/{deckID}/cards", middleware.OptionalUser(DBHandler.GetCardsForDeck))
	mux.HandleFunc("DELETE /api/decks/{deckID}", middleware.RequireUser(DBHandler.DeleteDeckByID))

	// Imports
	mux.HandleFunc("POST /api/imports", middleware.RequireUser(importHandler.UploadFile))
	mux.HandleFunc("POST /api/imports/text", middleware.RequireUser(importHandler.ImportText))

	// Study sessions
	mux.HandleFunc("POST /api/sessions", middleware.RequireUser(sessionHandler.CreateSession))
	mux.HandleFunc("GET /api/sessions/{sessionID}", middleware.RequireUser(sessionHandler.GetSession))
	mux.HandleFunc("POST /api/sessions/{sessionID}/scroll", middleware.RequireUser(sessionHandler.Scroll))
	mux.HandleFunc("POST /api/sessions/{sessionID}/answers", middleware.RequireUser(sessionHandler.SubmitAnswer))
	mux.HandleFunc("POST /api/sessions/{sessionID}/advance", middleware.RequireUser(sessionHandler.Advance))
	mux.HandleFunc("POST /api/sessions/{sessionID}/likes/{cardID}", middleware.RequireUser(sessionHandler.ToggleLike))
	mux.HandleFunc("POST /api/sessions/{sessionID}/bookmarks/{cardID}", middleware.RequireUser(sessionHandler.ToggleBookmark))
	mux.HandleFunc("POST /api/sessions/{sessionID}/ai-help/{cardID}", middleware.RequireUser(sessionHandler.ToggleAIHelp))
	mux.HandleFunc("GET /api/sessions/{sessionID}/events", middleware.RequireUser(sessionHandler.Events))
	mux.HandleFunc("DELETE /api/sessions/{sessionID}", middleware.RequireUser(sessionHandler.CloseSession))

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://studytok.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	server := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: corsHandler,
	}

	go func() {
		appLog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("server failed", "error", err)
		}
	}()

	// On shutdown, close every live session first so pending auto-advance
	// timers are cancelled and progress is flushed.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	appLog.Info("shutting down")
	sessions.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("shutdown error", "error", err)
	}
}
