package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sekelas/kelasku/internal/http/auth"
	"github.com/sekelas/kelasku/internal/http/confession"
	"github.com/sekelas/kelasku/internal/http/export"
	"github.com/sekelas/kelasku/internal/http/importcsv"
	"github.com/sekelas/kelasku/internal/http/kas"
	"github.com/sekelas/kelasku/internal/http/note"
	"github.com/sekelas/kelasku/internal/http/pengeluaran"
	"github.com/sekelas/kelasku/internal/http/shopping"
)

func New(
	allowedOrigins []string,
	admin func(http.Handler) http.Handler,
	authV1 *auth.Handler,
	kasV1 *kas.Handler,
	pengeluaranV1 *pengeluaran.Handler,
	confessionsV1 *confession.Handler,
	shoppingV1 *shopping.Handler,
	notesV1 *note.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Route("/kas", kasV1.Routes)

		r.Route("/pengeluaran", func(r chi.Router) {
			pengeluaranV1.Routes(r)
		})

		r.Route("/confessions", func(r chi.Router) {
			confessionsV1.Routes(r)
		})

		r.Route("/shopping", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			shoppingV1.Routes(r)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			notesV1.Routes(r)
		})

		r.Route("/import", func(r chi.Router) {
			r.Use(admin)
			importV1.Routes(r)
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(admin)
			exportV1.Routes(r)
		})
	})

	return router
}
