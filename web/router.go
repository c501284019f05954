package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jkap86/thelabbackground2026/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(render))

	r.Get("/leagues/{leagueID:\\d+}/trades", getTradesHandler(ctrl, render))
	r.Get("/players/{playerID}/values", getValuationsHandler(ctrl, render))

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("ff", map[string]string{"admin": "pa55word"})) // TODO: read from config instead
		r.Use(middleware.Timeout(5 * time.Minute))                                // Sync passes take a while

		r.Post("/sync/leagues", syncLeaguesHandler(ctrl, render))
		r.Post("/sync/valuations", syncValuationsHandler(ctrl, render))
	})

	return r
}
