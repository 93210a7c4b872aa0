package routes

import (
	"github.com/bgmi-arena/tournament-system/handlers"
	"github.com/bgmi-arena/tournament-system/middleware"
	"github.com/bgmi-arena/tournament-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts every handler on the router. Mutating tournament
// operations (open/close polls, commit teams, score entry, declaring
// winners) are admin-only; reads are public.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	pollHandler *handlers.PollHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	tournamentHandler *handlers.TournamentHandler,
	prizeHandler *handlers.PrizeHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/auth/me", authHandler.Me)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/{playerID}", playerHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", playerHandler.Me)
			r.Post("/{playerID}/avatar", playerHandler.UploadAvatar)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/", playerHandler.Create)
			r.Put("/{playerID}/ban", playerHandler.SetBanned)
			r.Put("/{playerID}/uc-exempt", playerHandler.SetUCExempt)
			r.Post("/{playerID}/stats", playerHandler.AddStats)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/standings", tournamentHandler.Standings)
		r.Get("/{tournamentID}/dashboard", tournamentHandler.Dashboard)
		r.Get("/{tournamentID}/teams", teamHandler.ListByTournament)
		r.Get("/{tournamentID}/allocations", prizeHandler.ListAllocations)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}/status", tournamentHandler.UpdateStatus)
			r.Post("/{tournamentID}/polls", pollHandler.Open)
			r.Get("/{tournamentID}/teams/preview", teamHandler.Preview)
			r.Post("/{tournamentID}/teams/commit", teamHandler.Commit)
			r.Post("/{tournamentID}/declare-winners", prizeHandler.DeclareWinners)
		})
	})

	router.Route("/polls", func(r chi.Router) {
		r.Get("/{pollID}", pollHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{pollID}/votes", pollHandler.CastVote)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Put("/{pollID}/close", pollHandler.Close)
			r.Get("/{pollID}/pools", pollHandler.Pools)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.Get)
		r.Get("/{teamID}/results", matchHandler.ListTeamResults)
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Post("/results", matchHandler.RecordResult)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
