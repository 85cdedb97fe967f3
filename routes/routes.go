package routes

import (
	"github.com/GabrielDani/futebol-palpites-backend/handlers"
	"github.com/GabrielDani/futebol-palpites-backend/middleware"
	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Teams     *handlers.TeamHandler
	Matches   *handlers.MatchHandler
	Guesses   *handlers.GuessHandler
	Groups    *handlers.GroupHandler
	Rankings  *handlers.RankingHandler
	Dashboard *handlers.DashboardHandler
	WebSocket *handlers.WebSocketHandler
}

func InitRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/ws/scores", h.WebSocket.ServeScores)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Teams.List)
		r.Get("/{id}", h.Teams.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", h.Teams.Create)
			r.Put("/{id}", h.Teams.Update)
			r.Put("/{id}/logo", h.Teams.UploadLogo)
			r.Delete("/{id}", h.Teams.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Matches.List)
		r.Get("/next", h.Matches.Next)
		r.Get("/standings", h.Matches.Standings)
		r.Get("/round/{round}", h.Matches.ByRound)
		r.Get("/team/{teamId}", h.Matches.ByTeam)
		r.Get("/{id}", h.Matches.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", h.Matches.Create)
			r.Put("/{id}", h.Matches.Update)
			r.Delete("/{id}", h.Matches.Delete)
		})
	})

	router.Route("/guesses", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", h.Guesses.List)
		r.Post("/", h.Guesses.Upsert)
		r.Delete("/{matchId}", h.Guesses.Delete)
	})

	router.Route("/groups", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", h.Groups.List)
		r.Post("/", h.Groups.Create)
		r.Get("/{groupId}", h.Groups.Details)
		r.Post("/{groupId}/join", h.Groups.Join)
		r.Post("/{groupId}/leave", h.Groups.Leave)
		r.Delete("/{groupId}", h.Groups.Delete)
	})

	router.Route("/rankings", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", h.Rankings.GetRanking)
		r.Get("/me", h.Rankings.GetPerformance)
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Get("/metrics", h.Dashboard.Metrics)
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/me", h.Users.Me)
		r.Put("/me", h.Users.UpdateMe)
		r.Delete("/me", h.Users.DeleteMe)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/", h.Users.List)
			r.Get("/{id}", h.Users.Get)
		})
	})

	return router
}
