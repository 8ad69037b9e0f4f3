package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	mW "github.com/bancofortis/backend/internal/middleware"
)

// Routes groups the handlers mounted by NewRouter.
type Routes struct {
	Users      *UserHandler
	Accounts   *AccountHandler
	Transfers  *TransferHandler
	Reports    *ReportHandler
	Categories *CategoryHandler
	Health     *HealthHandler
	StaticDir  string
}

func NewRouter(rt Routes) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         86400,
	}))

	r.Get("/health", rt.Health.Health)

	if rt.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", mW.StaticFileServer(rt.StaticDir)))
	}

	// Pages
	r.Get("/", rt.Users.RegisterPage)
	r.Post("/register", rt.Users.Register)
	r.Get("/landing", rt.Users.Landing)
	r.Get("/users", rt.Users.UsersPage)
	r.Get("/transfer", rt.Transfers.Form)
	r.Post("/transfer", rt.Transfers.Submit)
	r.Get("/accounts", rt.Accounts.AccountsPage)
	r.Post("/accounts/credit", rt.Accounts.Credit)
	r.Get("/report", rt.Reports.Report)
	r.Get("/categories", rt.Categories.List)
	r.Post("/categories", rt.Categories.Create)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Get("/users", rt.Users.ListUsers)
		r.Get("/accounts", rt.Accounts.ListAccounts)
		r.Post("/transfers", rt.Transfers.Create)
	})

	return r
}
