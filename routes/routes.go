package routes

import (
	"github.com/chessarena/tournament-service/handlers"
	"github.com/chessarena/tournament-service/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts the full HTTP surface on the router.
func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	signupHandler *handlers.SignupHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	jwtSecret string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", healthHandler.Liveness)
	router.Get("/ready", healthHandler.Readiness)

	router.Route("/tournaments", func(r chi.Router) {
		// Public query routes
		r.Get("/view/{phase}", tournamentHandler.ViewByPhase)
		r.Get("/matchups/{tournamentID}", tournamentHandler.GetMatchups)
		r.Get("/ranking/{tournamentID}", tournamentHandler.GetRanking)
		r.Get("/ranking/{tournamentID}/player", tournamentHandler.GetPlayerRank)
		r.Get("/players/{tournamentID}", tournamentHandler.GetPlayers)
		r.Get("/{id}", tournamentHandler.GetByID)

		// Player mutations
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Post("/signup/{playerID}", signupHandler.SignUp)
			r.Delete("/quit/{playerID}", signupHandler.Quit)
		})
	})

	router.Get("/player/{playerID}/tournaments", tournamentHandler.GetPlayerHistory)
}
