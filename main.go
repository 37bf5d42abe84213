package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"nandighosh/internal/booking"
	intconfig "nandighosh/internal/config"
	"nandighosh/internal/contact"
	"nandighosh/internal/content"
	"nandighosh/internal/domain/models"
	router "nandighosh/internal/http"
	"nandighosh/internal/http/handlers"
	"nandighosh/internal/notify"
	"nandighosh/internal/repositories"
	"nandighosh/internal/services"
	"nandighosh/internal/submit"
	"nandighosh/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger := utils.NewLogger(os.Stdout, env.LogLevel)
	utils.SetLogger(logger)
	log := utils.Logger()
	if env.WeakSessionSecret() {
		log.Fatal().Msg("SESSION_SECRET must be set in release mode")
	}

	site, err := content.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load site content")
	}

	catalog := repositories.NewRouteCatalog()
	hub := notify.NewHub(log, nil)
	defer hub.Close()

	sessions := &services.SessionService{
		Catalog:          catalog,
		BookingSubmitter: bookingSubmitter(env, log),
		ContactSubmitter: contactSubmitter(env, log),
		Hub:              hub,
		Location:         env.Location(),
		TTL:              env.SessionTTL,
	}
	defer intconfig.CloseDB()

	r, err := router.NewRouter(router.Deps{
		Env: env,
		Log: log,
		Handler: &handlers.Handler{
			Site:          site,
			Catalog:       catalog,
			Hub:           hub,
			RedirectDelay: env.StoreRedirectDelay,
			Location:      env.Location(),
		},
		Sessions:      sessions,
		Tokens:        services.SessionTokens{Secret: []byte(env.SessionSecret), TTL: env.SessionTTL},
		SecureCookies: env.GinMode == gin.ReleaseMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go sessions.Run(ctx, time.Minute)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return
	}

	log.Info().Msg("server stopped")
}

func bookingSubmitter(env intconfig.Env, log *zerolog.Logger) booking.Submitter {
	sim := submit.NewSimulated[models.BookingRequest](env.BookingSubmitDelay)
	return submit.WithLogging[models.BookingRequest](sim, "booking", log)
}

// contactSubmitter stores messages in MySQL when CONTACT_STORE=mysql and
// the database answers; otherwise it simulates delivery.
func contactSubmitter(env intconfig.Env, log *zerolog.Logger) contact.Submitter {
	if env.ContactStore == intconfig.ContactStoreMySQL {
		repo, err := repositories.OpenContactInbox(context.Background(), env.MySQLDSN)
		if err == nil {
			log.Info().Msg("contact messages stored in mysql")
			return submit.WithLogging[models.ContactDraft](repo, "contact", log)
		}
		log.Warn().Err(err).Msg("contact store unavailable, falling back to simulated delivery")
	}
	sim := submit.NewSimulated[models.ContactDraft](env.ContactSubmitDelay)
	return submit.WithLogging[models.ContactDraft](sim, "contact", log)
}
