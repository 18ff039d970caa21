package routes

import (
	"github.com/Arnaud541/BabyFootClementine/handlers"
	"github.com/Arnaud541/BabyFootClementine/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
	})

	router.Route("/tournois", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Post("/", tournamentHandler.Create)

		r.Route("/{tournoiId}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByID)
			r.Patch("/", tournamentHandler.Update)
			r.Delete("/", tournamentHandler.Delete)
			r.Post("/logo", tournamentHandler.UploadLogo)

			r.Route("/equipes", func(r chi.Router) {
				r.Post("/", teamHandler.CreateTeams)
				r.Patch("/{equipeId}", teamHandler.UpdateTeam)
				r.Delete("/{equipeId}", teamHandler.DeleteTeam)
			})
		})
	})

	router.Route("/utilisateurs", func(r chi.Router) {
		r.Get("/", playerHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Get("/moi", playerHandler.Me)
		})

		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/tournois", playerHandler.ListTournaments)
			r.Patch("/inscription/tournois/{tournoiId}", playerHandler.Subscribe)
			r.Delete("/inscription/tournois/{tournoiId}", playerHandler.Unsubscribe)
		})
	})
}
