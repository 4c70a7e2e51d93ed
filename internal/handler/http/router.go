package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/handler/http/middleware"
	"github.com/rosterhq/roster-console/internal/pkg/uisession"
)

// RouterDeps bundles the handlers and cross-cutting pieces the router
// mounts.
type RouterDeps struct {
	UISession     uisession.Service
	Identity      identity.Service
	Session       SessionHandler
	Console       ConsoleHandler
	Form          FormHandler
	Directory     DirectoryHandler
	UIOrigin      string
	Env           string
	ResetWatchdog func()
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "roster-console"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.UIOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/session", func(r chi.Router) {
			r.Post("/login", deps.Session.Login)
			r.Post("/logout", deps.Session.Logout)
		})

		// Requires the local UI cookie
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.UISession.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.Activity(deps.ResetWatchdog))

			r.Get("/session", deps.Session.Current)

			r.Route("/console", func(r chi.Router) {
				r.Get("/state", deps.Console.State)
				r.Post("/tabs/{tabID}/activate", deps.Console.ActivateTab)
				r.Get("/panes/{paneID}", deps.Console.PaneView)
				r.Put("/panes/{paneID}/search", deps.Console.SetSearch)
				r.Put("/panes/{paneID}/page", deps.Console.SetPage)
				r.Post("/reports/{reportID}/edit", deps.Console.BeginEdit)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly(deps.Identity))
					r.Put("/department", deps.Console.SetDepartment)
				})
			})

			r.Route("/form", func(r chi.Router) {
				r.Get("/", deps.Form.Rows)
				r.Post("/review", deps.Form.Review)
				r.Post("/back", deps.Form.BackToForm)
				r.Post("/submit", deps.Form.Submit)
				r.Post("/set-all-present", deps.Form.SetAllSentinel)

				r.Route("/rows/{personnelID}/entries", func(r chi.Router) {
					r.Post("/", deps.Form.AddEntry)
					r.Put("/", deps.Form.UpdateEntry)
					r.Delete("/", deps.Form.RemoveEntry)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly(deps.Identity))

				r.Route("/personnel", func(r chi.Router) {
					r.Post("/", deps.Directory.SavePersonnel)
					r.Get("/{personnelID}", deps.Directory.PersonnelDetails)
					r.Delete("/{personnelID}", deps.Directory.DeletePersonnel)
				})

				r.Route("/users", func(r chi.Router) {
					r.Post("/", deps.Directory.SaveUser)
					r.Delete("/{userID}", deps.Directory.DeleteUser)
				})
			})
		})
	})
	return r
}
