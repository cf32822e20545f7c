package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"hanzidrill/internal/config"
	"hanzidrill/internal/database"
	"hanzidrill/internal/handlers"
	"hanzidrill/internal/repository"
	"hanzidrill/internal/scheduler"
	"hanzidrill/internal/security"
	"hanzidrill/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Without a configured secret, sessions and CSRF tokens are signed with
	// a random per-process key and die with the process.
	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		sessionSecret = randomSecret()
		log.Println("SESSION_SECRET not set, sessions will not survive restarts")
	}

	// Initialize repositories and services
	characterRepo := repository.NewCharacterRepository(db)
	characterService := service.NewCharacterService(characterRepo)
	reviewService := service.NewReviewService(characterRepo, nil)
	backupService := service.NewBackupService(characterRepo, reviewService.Ladder())

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.DigestEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	reminderService, err := service.NewReminderService(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("Failed to initialize reminder service: %v", err)
	}

	// Security primitives for the passphrase gate
	passphrase := security.NewPassphraseChecker(cfg.Passphrase, cfg.PassphraseHash)
	tokens := security.NewSessionTokens(sessionSecret, cfg.SessionDuration)
	csrf := security.NewCSRFGenerator(sessionSecret)

	if !passphrase.Enabled() {
		log.Println("No passphrase configured, access gate is open")
	}

	// Start the daily reminder/backup job
	daily := scheduler.New(reviewService, backupService, emailService, reminderService, cfg.BackupDir)
	if err := daily.Start(cfg.ReminderHour); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer daily.Stop()

	// Initialize handlers
	loginLimiter := security.NewLoginLimiter(5, time.Minute)
	middleware := handlers.NewMiddleware(tokens, passphrase, loginLimiter)
	authHandler := handlers.NewAuthHandler(passphrase, tokens, templates)
	dashboardHandler := handlers.NewDashboardHandler(reviewService, characterService, csrf, templates)
	flashcardHandler := handlers.NewFlashcardHandler(reviewService, csrf, templates)
	setsHandler := handlers.NewSetsHandler(characterService, csrf, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /{$}", authHandler.Home)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /logout", authHandler.Logout)

	// Review routes
	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(dashboardHandler.ShowDashboard))
	mux.HandleFunc("GET /flashcards", middleware.RequireAuth(flashcardHandler.ShowSession))
	mux.HandleFunc("POST /flashcards/outcome", middleware.RequireAuth(flashcardHandler.RecordOutcome))
	mux.HandleFunc("POST /flashcards/reviewed", middleware.RequireAuth(flashcardHandler.SetDayReviewed))
	mux.HandleFunc("POST /flashcards/mark", middleware.RequireAuth(flashcardHandler.ToggleMarked))

	// Set maintenance routes
	mux.HandleFunc("GET /sets", middleware.RequireAuth(setsHandler.ShowSets))
	mux.HandleFunc("GET /sets/{setNr}", middleware.RequireAuth(setsHandler.ShowSet))
	mux.HandleFunc("POST /sets/characters/add", middleware.RequireAuth(setsHandler.AddCharacter))
	mux.HandleFunc("POST /sets/characters/update", middleware.RequireAuth(setsHandler.UpdateAnnotations))
	mux.HandleFunc("POST /sets/characters/delete", middleware.RequireAuth(setsHandler.DeleteCharacter))
	mux.HandleFunc("POST /sets/date", middleware.RequireAuth(setsHandler.UpdateSetDate))
	mux.HandleFunc("POST /sets/delete", middleware.RequireAuth(setsHandler.DeleteSet))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
