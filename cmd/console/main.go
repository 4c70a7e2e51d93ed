package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rosterhq/roster-console/internal/config"
	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/gateway"
	appHTTP "github.com/rosterhq/roster-console/internal/handler/http"
	"github.com/rosterhq/roster-console/internal/pkg/messages"
	"github.com/rosterhq/roster-console/internal/pkg/uisession"
	directoryService "github.com/rosterhq/roster-console/internal/service/directory"
	panesService "github.com/rosterhq/roster-console/internal/service/panes"
	sessionService "github.com/rosterhq/roster-console/internal/service/session"
	"github.com/rosterhq/roster-console/internal/service/statusform"
	"github.com/rosterhq/roster-console/internal/service/watchdog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := newLogger(cfg)
	variant := report.VariantByName(cfg.App.Variant)

	tokens := &gateway.SessionTokenSource{}
	caller := gateway.NewClient(cfg.Backend.URL, tokens, cfg.Backend.Timeout, logger)

	ids := sessionService.NewSessionService(cfg.Session.IdentityFile, caller, tokens, logger)
	msgs := messages.NewLog(20)
	view := panesService.NewViewStore()
	editing := &report.EditingHolder{}

	ctrl := panesService.NewControllerService(caller, ids, editing, variant, msgs, logger)
	form := statusform.NewStatusFormService(variant, caller, ids, editing, msgs, logger)
	ctrl.SetRegistry(panesService.RegistryFor(variant, panesService.RegistryDeps{
		View: view,
		Form: form,
		Dept: ctrl.Department,
	}))

	dirService := directoryService.NewDirectoryService(caller, ids, logger)

	uiSession, err := uisession.NewUISessionService(cfg.Session.UICookieLifetime)
	if err != nil {
		fmt.Println("Error initializing UI session:", err)
		return
	}

	dog := watchdog.New(cfg.Session.InactivityTimeout, func() {
		logger.Info("inactivity timeout reached, logging out")
		// Remote revocation is best effort; the local session always ends.
		if err := ids.Logout(context.Background()); err != nil {
			logger.Warn("inactivity logout cleanup failed", slog.Any("error", err))
		}
		view.Reset()
		editing.Clear()
	})

	lifecycle := appHTTP.SessionLifecycle{
		OnLogin: func(id identity.Identity) {
			view.Reset()
			dog.Start()
			ctrl.ActivateTab(context.Background(), variant.StartTab(id.IsAdmin()))
		},
		OnLogout: func() {
			dog.Stop()
			view.Reset()
			editing.Clear()
		},
	}

	// A previous login survives restarts through the identity file.
	if id, err := ids.Restore(); err == nil {
		logger.Info("restored session",
			slog.String("username", id.Username),
			slog.String("role", string(id.Role)))
		dog.Start()
	} else if !errors.Is(err, identity.ErrNotLoggedIn) {
		logger.Warn("session restore failed", slog.Any("error", err))
	}

	sessionHandler := appHTTP.NewSessionHandler(ids, uiSession, variant, lifecycle)
	consoleHandler := appHTTP.NewConsoleHandler(ctrl, form, ids, view, msgs)
	formHandler := appHTTP.NewFormHandler(form, ctrl)
	directoryHandler := appHTTP.NewDirectoryHandler(dirService)

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		UISession:     uiSession,
		Identity:      ids,
		Session:       sessionHandler,
		Console:       consoleHandler,
		Form:          formHandler,
		Directory:     directoryHandler,
		UIOrigin:      cfg.App.UIOrigin,
		Env:           cfg.App.Env,
		ResetWatchdog: dog.Reset,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("console listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		dog.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fmt.Println("Server error:", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", "roster-console"),
		slog.String("variant", cfg.App.Variant),
	)
}
