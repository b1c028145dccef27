package main

import (
	"context"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"onna/internal/api"
	"onna/internal/catalog"
	"onna/internal/config"
	"onna/internal/flash"
	"onna/internal/handlers"
	"onna/internal/models"
	"onna/internal/security"
	"onna/internal/session"
)

func main() {
	// Load .env if present; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("loaded .env file")
	}

	cfg := config.Load()
	setupLogging(cfg)

	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading templates")
	}
	log.Info().Msg("templates loaded")

	// The backend REST service owns all marketplace data; this process only
	// renders it.
	backend := api.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout)
	snapshot := catalog.NewSnapshot(backend)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionDuration)
	flashes := flash.NewStore(cfg.SessionSecret)
	limiter := security.NewRateLimiter(20, time.Minute)

	base := handlers.NewBase(sessions, flashes, templates)
	mw := handlers.NewMiddleware(base, limiter)
	authHandler := handlers.NewAuthHandler(base, backend)
	classHandler := handlers.NewClassHandler(base, backend, snapshot)
	reservationHandler := handlers.NewReservationHandler(base, backend)
	dashboardHandler := handlers.NewDashboardHandler(base, backend)
	prefsHandler := handlers.NewPrefsHandler(base)

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /{$}", classHandler.Home)
	mux.HandleFunc("GET /classes", classHandler.List)
	mux.HandleFunc("GET /classes/{id}", classHandler.Detail)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", mw.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /signup", authHandler.ShowSignup)
	mux.HandleFunc("POST /signup", mw.RateLimit(authHandler.Signup))
	mux.HandleFunc("POST /logout", authHandler.Logout)

	// Display preference toggles
	mux.HandleFunc("POST /prefs/high-contrast", prefsHandler.ToggleHighContrast)
	mux.HandleFunc("POST /prefs/large-text", prefsHandler.ToggleLargeText)

	// Learner routes
	mux.HandleFunc("POST /classes/{id}/reserve", mw.RequireRole(models.RoleYouth, mw.RateLimit(classHandler.Reserve)))
	mux.HandleFunc("GET /reservations", mw.RequireUser(reservationHandler.List))
	mux.HandleFunc("GET /reservations/{id}", mw.RequireUser(reservationHandler.Detail))

	// Instructor routes
	mux.HandleFunc("GET /teacher/dashboard", mw.RequireRole(models.RoleSenior, dashboardHandler.Show))

	csrfProtect := csrf.Protect(
		[]byte(cfg.CSRFKey),
		csrf.Secure(cfg.IsProduction()),
		csrf.Path("/"),
	)
	handler := mw.RequestLogger(csrfProtect(mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// loadTemplates parses every page template together with the shared layout
// partials.
func loadTemplates(templatesPath string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatPrice": func(price int) string {
			return "₩" + formatThousands(price)
		},
		"formatHours": func(hours float64) string {
			if hours == float64(int(hours)) {
				return strconv.Itoa(int(hours)) + "h"
			}
			return strconv.FormatFloat(hours, 'f', 1, 64) + "h"
		},
	}

	pattern := filepath.Join(templatesPath, "*.tmpl")
	return template.New("").Funcs(funcMap).ParseGlob(pattern)
}

func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
